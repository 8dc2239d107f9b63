package engine

import (
	"context"
	"sort"

	"github.com/Hu1906/TKB/internal/models"
)

// defaultResultLimit caps the number of complete schedules collected per
// generation call. Reaching it is soft truncation, not an error.
const defaultResultLimit = 500

// CourseSections pairs a course record with its candidate sections after
// the caller's allow-list filtering.
type CourseSections struct {
	Course   models.Course
	Sections []models.Section
}

// Result is the outcome of one generation call.
type Result struct {
	Schedules    [][]models.Section
	LimitReached bool
}

type courseCandidates struct {
	course  models.Course
	bundles []bundle
}

// searchState owns every piece of per-call state: candidate bundles, the
// conflict index, the DFS assignment stack and the collected schedules.
// Nothing escapes the call, so concurrent generations need no coordination.
type searchState struct {
	courses []courseCandidates
	index   conflictIndex
	limit   int
	chosen  []*encodedSection
	results [][]models.Section
}

// Generate enumerates every mutually conflict-free combination of one
// bundle per requested course, in deterministic order, up to limit results
// (<= 0 selects the default). The context is checked at every expansion so
// callers can abort long searches; a cancelled call returns ctx.Err().
func Generate(ctx context.Context, courses []CourseSections, blackouts map[string]bool, limit int) (*Result, error) {
	if limit <= 0 {
		limit = defaultResultLimit
	}
	if len(courses) == 0 {
		// Without the guard the DFS would emit one empty schedule, which
		// callers could mistake for a real result.
		return &Result{Schedules: make([][]models.Section, 0)}, nil
	}
	table, err := parseBlackouts(blackouts)
	if err != nil {
		return nil, err
	}

	candidates := make([]courseCandidates, 0, len(courses))
	for _, input := range courses {
		encoded := make([]*encodedSection, 0, len(input.Sections))
		for i := range input.Sections {
			sec, err := encodeSection(&input.Sections[i])
			if err != nil {
				return nil, err
			}
			encoded = append(encoded, sec)
		}
		bundles, err := generateBundles(input.Course, encoded, table)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, courseCandidates{course: input.Course, bundles: bundles})
	}

	// Most-constrained-first: courses with fewer bundles are placed before
	// those with more, pruning the tree early. Stable so ties keep request
	// order and results stay deterministic.
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].bundles) < len(candidates[j].bundles)
	})

	state := &searchState{
		courses: candidates,
		index:   buildConflictIndex(candidates),
		limit:   limit,
		// Non-nil so an empty result still marshals as [], not null.
		results: make([][]models.Section, 0),
	}
	state.backtrack(ctx, 0)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Schedules:    state.results,
		LimitReached: len(state.results) >= limit,
	}, nil
}

func (s *searchState) backtrack(ctx context.Context, courseIndex int) {
	if len(s.results) >= s.limit || ctx.Err() != nil {
		return
	}
	if courseIndex == len(s.courses) {
		s.results = append(s.results, s.snapshot())
		return
	}
	for _, cand := range s.courses[courseIndex].bundles {
		if len(s.results) >= s.limit || ctx.Err() != nil {
			return
		}
		if !s.admissible(cand) {
			continue
		}
		mark := len(s.chosen)
		s.chosen = append(s.chosen, cand.sections...)
		s.backtrack(ctx, courseIndex+1)
		s.chosen = s.chosen[:mark]
	}
}

// admissible reports whether the candidate bundle conflicts with nothing in
// the partial assignment.
func (s *searchState) admissible(cand bundle) bool {
	for _, sec := range cand.sections {
		adjacent := s.index[sec.section.ClassID]
		for _, picked := range s.chosen {
			if adjacent[picked.section.ClassID] {
				return false
			}
		}
	}
	return true
}

// snapshot flattens the current assignment into original section records,
// weeks in plain list form. The mask encoding never leaves the engine.
func (s *searchState) snapshot() []models.Section {
	schedule := make([]models.Section, 0, len(s.chosen))
	for _, sec := range s.chosen {
		schedule = append(schedule, *sec.section)
	}
	return schedule
}
