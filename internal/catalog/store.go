package catalog

import (
	"context"

	"github.com/Hu1906/TKB/internal/models"
)

// Store is an in-memory catalog snapshot. It satisfies the collaborator
// contract the generation service consumes: given course codes, hand back
// every matching section and course record. How the snapshot was populated
// (spreadsheet import, database dump) is outside this module.
type Store struct {
	sections map[string][]models.Section
	courses  map[string]models.Course
}

// NewStore indexes the given records by subject id.
func NewStore(courses []models.Course, sections []models.Section) *Store {
	store := &Store{
		sections: make(map[string][]models.Section),
		courses:  make(map[string]models.Course, len(courses)),
	}
	for _, course := range courses {
		store.courses[course.SubjectID] = course
	}
	for _, section := range sections {
		store.sections[section.SubjectID] = append(store.sections[section.SubjectID], section)
	}
	return store
}

// FetchSections returns every section of the requested courses, preserving
// snapshot order. Courses without sections simply contribute nothing; the
// caller decides whether that is fatal.
func (s *Store) FetchSections(ctx context.Context, codes []string) ([]models.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result []models.Section
	for _, code := range codes {
		result = append(result, s.sections[code]...)
	}
	return result, nil
}

// FetchCourses returns the course records found for the requested codes.
func (s *Store) FetchCourses(ctx context.Context, codes []string) ([]models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var result []models.Course
	for _, code := range codes {
		if course, ok := s.courses[code]; ok {
			result = append(result, course)
		}
	}
	return result, nil
}
