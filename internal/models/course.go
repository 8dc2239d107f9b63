package models

// Course describes one subject in the catalog. RequiresLab forces every
// valid bundle for the course to contain exactly one lab section.
type Course struct {
	SubjectID   string `json:"subject_id"`
	Name        string `json:"subject_name"`
	NameEN      string `json:"subject_name_en,omitempty"`
	Credits     string `json:"credits"`
	School      string `json:"school"`
	RequiresLab bool   `json:"required_lab"`
}
