package models

// CompositionKind classifies a section within its course's composition rules.
type CompositionKind int

const (
	KindOther CompositionKind = iota
	KindTheory
	KindExercise
	KindTheoryExercise
	KindLab
)

// Catalog class-type strings as they appear in the source registrar data.
const (
	classTypeTheory         = "LT"
	classTypeExercise       = "BT"
	classTypeTheoryExercise = "LT+BT"
	classTypeLab            = "TN"
)

// ParseCompositionKind maps a catalog class-type string to its kind.
// Unknown strings fall into KindOther so sections with ad hoc types stay
// selectable.
func ParseCompositionKind(raw string) CompositionKind {
	switch raw {
	case classTypeTheory:
		return KindTheory
	case classTypeExercise:
		return KindExercise
	case classTypeTheoryExercise:
		return KindTheoryExercise
	case classTypeLab:
		return KindLab
	default:
		return KindOther
	}
}

// String returns the catalog representation of the kind.
func (k CompositionKind) String() string {
	switch k {
	case KindTheory:
		return classTypeTheory
	case KindExercise:
		return classTypeExercise
	case KindTheoryExercise:
		return classTypeTheoryExercise
	case KindLab:
		return classTypeLab
	default:
		return "OTHER"
	}
}

// Meeting is one recurring weekly time slot of a section. Day follows the
// academic convention 2=Monday .. 8=Sunday. StartTime and EndTime are HHMM
// integers; numeric order matches chronological order because no meeting
// spans midnight.
type Meeting struct {
	Day       int    `json:"day"`
	StartTime int    `json:"start_time"`
	EndTime   int    `json:"end_time"`
	Room      string `json:"room"`
	Weeks     []int  `json:"weeks"`
}

// Section is one schedulable class unit of a course. LinkedTheoryID points
// an Exercise section at the Theory section it must be taken with; empty
// when the section is free-standing.
type Section struct {
	ClassID        string    `json:"class_id"`
	SubjectID      string    `json:"subject_id"`
	LinkedTheoryID string    `json:"class_included_id,omitempty"`
	ClassType      string    `json:"class_type"`
	Note           string    `json:"note"`
	Sessions       []Meeting `json:"sessions"`
}
