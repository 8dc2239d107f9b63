package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hu1906/TKB/internal/dto"
	"github.com/Hu1906/TKB/internal/engine"
	"github.com/Hu1906/TKB/internal/models"
	appErrors "github.com/Hu1906/TKB/pkg/errors"
	"github.com/Hu1906/TKB/pkg/metrics"
)

type sectionFetcher interface {
	FetchSections(ctx context.Context, codes []string) ([]models.Section, error)
}

type courseFetcher interface {
	FetchCourses(ctx context.Context, codes []string) ([]models.Course, error)
}

// TimetableService runs timetable generation over a catalog snapshot.
type TimetableService struct {
	sections  sectionFetcher
	courses   courseFetcher
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *metrics.Recorder
	limit     int
}

// TimetableConfig governs generation behaviour.
type TimetableConfig struct {
	ResultLimit int
}

// NewTimetableService wires the generation dependencies.
func NewTimetableService(
	sections sectionFetcher,
	courses courseFetcher,
	validate *validator.Validate,
	logger *zap.Logger,
	recorder *metrics.Recorder,
	cfg TimetableConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		sections:  sections,
		courses:   courses,
		validator: validate,
		logger:    logger,
		metrics:   recorder,
		limit:     cfg.ResultLimit,
	}
}

// Generate fetches the catalog snapshot for the requested courses once,
// builds bundles per course, and enumerates every conflict-free schedule up
// to the result limit. Any per-course failure aborts the whole call; no
// partial schedule list is returned.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	start := time.Now()
	log := s.logger.With(zap.String("generation_id", uuid.NewString()))

	resp, err := s.generate(ctx, req)

	outcome := "success"
	found := 0
	limitReached := false
	if err != nil {
		outcome = appErrors.FromError(err).Code
	} else {
		found = resp.TotalFound
		limitReached = resp.LimitReached
	}
	s.metrics.ObserveGeneration(outcome, found, limitReached, time.Since(start))

	if err != nil {
		log.Warn("timetable_generation_failed",
			zap.String("code", outcome),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, err
	}
	log.Info("timetable_generation",
		zap.Int("courses", len(req.Courses)+len(req.Sections)),
		zap.Int("total_found", found),
		zap.Bool("limit_reached", limitReached),
		zap.Duration("duration", time.Since(start)))
	return resp, nil
}

func (s *TimetableService) generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}
	codes, allowLists, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	sections, err := s.sections.FetchSections(ctx, codes)
	if err != nil {
		return nil, wrapFetch(err, "failed to load sections")
	}
	courses, err := s.courses.FetchCourses(ctx, codes)
	if err != nil {
		return nil, wrapFetch(err, "failed to load courses")
	}

	courseByID := make(map[string]models.Course, len(courses))
	for _, course := range courses {
		courseByID[course.SubjectID] = course
	}
	sectionsByCourse := make(map[string][]models.Section, len(codes))
	for _, section := range sections {
		sectionsByCourse[section.SubjectID] = append(sectionsByCourse[section.SubjectID], section)
	}

	inputs := make([]engine.CourseSections, 0, len(codes))
	for _, code := range codes {
		candidates := filterAllowed(sectionsByCourse[code], allowLists[code])
		if len(candidates) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNoSections,
				fmt.Sprintf("course %s has no matching sections", code))
		}
		course, ok := courseByID[code]
		if !ok {
			// No course record means no composition flags; sections alone
			// still schedule.
			course = models.Course{SubjectID: code}
		}
		inputs = append(inputs, engine.CourseSections{Course: course, Sections: candidates})
	}

	result, err := engine.Generate(ctx, inputs, req.Blackouts, s.limit)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "scheduling failed")
	}

	resp := &dto.GenerateResponse{
		Success:      true,
		Schedules:    result.Schedules,
		TotalFound:   len(result.Schedules),
		LimitReached: result.LimitReached,
	}
	if result.LimitReached {
		resp.Message = fmt.Sprintf("result limit reached; returning the first %d schedules", len(result.Schedules))
	}
	return resp, nil
}

// normalizeRequest reduces the two accepted request shapes to an ordered
// course-code list plus per-course allow-lists (nil = all sections).
func normalizeRequest(req dto.GenerateRequest) ([]string, map[string][]string, error) {
	if len(req.Courses) > 0 && len(req.Sections) > 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrInvalidRequest,
			"request must use either the course list or the course-to-section map, not both")
	}
	if len(req.Courses) > 0 {
		return dedupe(req.Courses), nil, nil
	}
	if len(req.Sections) > 0 {
		codes := make([]string, 0, len(req.Sections))
		for code := range req.Sections {
			codes = append(codes, code)
		}
		// Map iteration order is random; sort so identical requests yield
		// identical schedules.
		sort.Strings(codes)
		return codes, req.Sections, nil
	}
	return nil, nil, appErrors.Clone(appErrors.ErrInvalidRequest, "")
}

func filterAllowed(sections []models.Section, allowed []string) []models.Section {
	if len(allowed) == 0 {
		return sections
	}
	allowSet := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		allowSet[id] = true
	}
	var result []models.Section
	for _, section := range sections {
		if allowSet[section.ClassID] {
			result = append(result, section)
		}
	}
	return result
}

func dedupe(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	result := make([]string, 0, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		result = append(result, code)
	}
	return result
}

func wrapFetch(err error, message string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
