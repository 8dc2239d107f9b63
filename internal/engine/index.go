package engine

// conflictIndex precomputes, for every section appearing in any bundle, the
// set of cross-course sections it conflicts with, keyed by class id. The
// search then tests a candidate bundle against the partial assignment in
// O(bundle size) lookups instead of re-running the detector.
type conflictIndex map[string]map[string]bool

func buildConflictIndex(courses []courseCandidates) conflictIndex {
	var universe []*encodedSection
	seen := make(map[string]bool)
	for _, course := range courses {
		for _, cand := range course.bundles {
			for _, sec := range cand.sections {
				if seen[sec.section.ClassID] {
					continue
				}
				seen[sec.section.ClassID] = true
				universe = append(universe, sec)
			}
		}
	}

	index := make(conflictIndex, len(universe))
	for _, sec := range universe {
		index[sec.section.ClassID] = make(map[string]bool)
	}

	// Same-course pairs are skipped: a schedule never holds two sections of
	// one course.
	for i := 0; i < len(universe); i++ {
		for j := i + 1; j < len(universe); j++ {
			a, b := universe[i], universe[j]
			if a.section.SubjectID == b.section.SubjectID {
				continue
			}
			if sectionsConflict(a, b) {
				index[a.section.ClassID][b.section.ClassID] = true
				index[b.section.ClassID][a.section.ClassID] = true
			}
		}
	}
	return index
}
