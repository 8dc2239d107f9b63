package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Hu1906/TKB/internal/models"
	appErrors "github.com/Hu1906/TKB/pkg/errors"
)

// middayBoundary splits a day into morning and afternoon halves for
// blackout purposes (HHMM).
const middayBoundary = 1230

// bundle is the atomic unit a student can select for one course: 1-3
// sections that together satisfy the course's composition requirement and
// do not conflict with each other.
type bundle struct {
	sections []*encodedSection
}

func (b bundle) internallyConsistent() bool {
	for i := 0; i < len(b.sections); i++ {
		for j := i + 1; j < len(b.sections); j++ {
			if sectionsConflict(b.sections[i], b.sections[j]) {
				return false
			}
		}
	}
	return true
}

// blackoutTable is the parsed form of the request's blackout map, indexed
// by day 2..8.
type blackoutTable struct {
	morning   [9]bool
	afternoon [9]bool
}

func parseBlackouts(raw map[string]bool) (blackoutTable, error) {
	var table blackoutTable
	for key, active := range raw {
		// Validate the key shape regardless of the value, so a typo
		// does not pass silently just because it is toggled off.
		dayPart, half, ok := strings.Cut(key, "-")
		if !ok {
			return table, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("blackout key %q must look like \"<day>-morning\" or \"<day>-afternoon\"", key))
		}
		day, err := strconv.Atoi(dayPart)
		if err != nil || day < 2 || day > 8 {
			return table, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("blackout key %q: day must be 2-8", key))
		}
		if half != "morning" && half != "afternoon" {
			return table, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("blackout key %q: half must be morning or afternoon", key))
		}
		if !active {
			continue
		}
		if half == "morning" {
			table.morning[day] = true
		} else {
			table.afternoon[day] = true
		}
	}
	return table, nil
}

func (t blackoutTable) violates(m encodedMeeting) bool {
	if m.day < 2 || m.day > 8 {
		return false
	}
	if t.morning[m.day] && m.start < middayBoundary {
		return true
	}
	if t.afternoon[m.day] && m.end > middayBoundary {
		return true
	}
	return false
}

func (t blackoutTable) allows(b bundle) bool {
	for _, sec := range b.sections {
		for _, m := range sec.meetings {
			if t.violates(m) {
				return false
			}
		}
	}
	return true
}

// generateBundles applies the composition rules of one course to its
// allow-list-filtered sections. Rules, in priority order: combined
// theory-exercise sections stand alone; exercises pair with their linked
// theory section (or with every theory section when unlinked); theory
// sections stand alone only when the course has no exercise component at
// all; sections of unknown kind always stand alone. A required lab is then
// cross-joined into every candidate. An exercise whose linked theory was
// filtered out by the caller's allow-list is unusable.
func generateBundles(course models.Course, sections []*encodedSection, blackouts blackoutTable) ([]bundle, error) {
	var theory, exercise, combined, labs, other []*encodedSection
	for _, sec := range sections {
		switch models.ParseCompositionKind(sec.section.ClassType) {
		case models.KindTheory:
			theory = append(theory, sec)
		case models.KindExercise:
			exercise = append(exercise, sec)
		case models.KindTheoryExercise:
			combined = append(combined, sec)
		case models.KindLab:
			labs = append(labs, sec)
		default:
			other = append(other, sec)
		}
	}

	var candidates []bundle
	for _, sec := range combined {
		candidates = append(candidates, bundle{sections: []*encodedSection{sec}})
	}
	if len(theory) > 0 && len(exercise) > 0 {
		theoryByID := make(map[string]*encodedSection, len(theory))
		for _, th := range theory {
			theoryByID[th.section.ClassID] = th
		}
		for _, ex := range exercise {
			if linked := ex.section.LinkedTheoryID; linked != "" {
				if th, ok := theoryByID[linked]; ok {
					candidates = append(candidates, bundle{sections: []*encodedSection{th, ex}})
				}
				continue
			}
			for _, th := range theory {
				candidates = append(candidates, bundle{sections: []*encodedSection{th, ex}})
			}
		}
	}
	if len(exercise) == 0 && len(combined) == 0 {
		for _, th := range theory {
			candidates = append(candidates, bundle{sections: []*encodedSection{th}})
		}
	}
	for _, sec := range other {
		candidates = append(candidates, bundle{sections: []*encodedSection{sec}})
	}

	// Should not normally occur in catalog data, but checked defensively.
	consistent := candidates[:0]
	for _, cand := range candidates {
		if cand.internallyConsistent() {
			consistent = append(consistent, cand)
		}
	}
	candidates = consistent

	if course.RequiresLab {
		if len(labs) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNoValidBundle,
				fmt.Sprintf("course %s requires a lab but no lab section is available", course.SubjectID))
		}
		withLabs := make([]bundle, 0, len(candidates)*len(labs))
		for _, cand := range candidates {
			for _, lab := range labs {
				joined := bundle{sections: append(append([]*encodedSection{}, cand.sections...), lab)}
				if joined.internallyConsistent() {
					withLabs = append(withLabs, joined)
				}
			}
		}
		candidates = withLabs
	}

	beforeBlackout := len(candidates)
	allowed := candidates[:0]
	for _, cand := range candidates {
		if blackouts.allows(cand) {
			allowed = append(allowed, cand)
		}
	}
	candidates = allowed

	if len(candidates) == 0 {
		if beforeBlackout > 0 {
			return nil, appErrors.Clone(appErrors.ErrNoValidBundle,
				fmt.Sprintf("blackout constraints exclude every option for course %s", course.SubjectID))
		}
		return nil, appErrors.Clone(appErrors.ErrNoValidBundle,
			fmt.Sprintf("course %s has no usable theory/exercise combination", course.SubjectID))
	}
	return candidates, nil
}
