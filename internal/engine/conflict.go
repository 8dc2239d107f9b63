package engine

// sectionsConflict reports whether any meeting of a overlaps any meeting of
// b in day, week and time. The endpoint comparison is inclusive: a meeting
// ending exactly when another starts counts as a conflict, since
// back-to-back periods leave no gap to move between rooms. That behaviour
// is a program-observable contract and must not be "fixed" to exclusive.
func sectionsConflict(a, b *encodedSection) bool {
	for _, ma := range a.meetings {
		for _, mb := range b.meetings {
			if ma.day != mb.day {
				continue
			}
			if ma.weekMask&mb.weekMask == 0 {
				continue
			}
			if ma.end >= mb.start && mb.end >= ma.start {
				return true
			}
		}
	}
	return false
}
