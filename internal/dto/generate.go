package dto

import "github.com/Hu1906/TKB/internal/models"

// GenerateRequest asks for every conflict-free timetable over the requested
// courses. Exactly one of Courses and Sections must be non-empty: Courses
// considers every section of each course, Sections maps a course code to an
// allow-list of section identifiers (empty list = all sections of that
// course). Blackouts holds optional "<day>-morning" / "<day>-afternoon"
// keys, day 2..8; a true value bans classes in that half of the day.
type GenerateRequest struct {
	Courses   []string            `json:"subjectCodes" validate:"omitempty,dive,required"`
	Sections  map[string][]string `json:"subjectClasses" validate:"omitempty,dive,omitempty,dive,required"`
	Blackouts map[string]bool     `json:"blackouts" validate:"omitempty"`
}

// GenerateResponse carries every schedule found up to the result limit.
// Each schedule is the flattened section list of one bundle per course,
// with original session data (weeks as plain lists, never masks).
type GenerateResponse struct {
	Success      bool               `json:"success"`
	Message      string             `json:"message,omitempty"`
	Schedules    [][]models.Section `json:"schedules"`
	TotalFound   int                `json:"total_found"`
	LimitReached bool               `json:"limit_reached"`
}
