package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"campusmind/internal/cache"
	"campusmind/internal/model"
	"campusmind/internal/repository"
	"campusmind/internal/scoring"
)

// AssessmentService orchestrates submissions: score, then guidance,
// then persistence. It also serves the history and stats readers.
type AssessmentService struct {
	repo       repository.AssessmentRepo
	guidance   GuidanceProvider
	statsCache cache.StatsCache
	registry   *scoring.Registry
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(repo repository.AssessmentRepo, guidance GuidanceProvider, statsCache cache.StatsCache, registry *scoring.Registry) *AssessmentService {
	return &AssessmentService{
		repo:       repo,
		guidance:   guidance,
		statsCache: statsCache,
		registry:   registry,
	}
}

// Submit scores a response set, fetches guidance for the result and
// persists the combined record. Scoring failures abort before any
// external call; guidance and persistence failures abort the whole
// submission rather than returning a partial result. Resubmission
// creates a new record.
func (s *AssessmentService) Submit(ctx context.Context, studentID, collegeID string, form model.Instrument, responses model.ResponseSet) (*model.SubmitAssessmentResponse, error) {
	result, err := s.registry.Calculate(form, responses)
	if err != nil {
		return nil, err
	}

	// Guidance and the persisted record both use this one result;
	// nothing re-scores between the steps.
	guidance, err := s.guidance.GetGuidance(ctx, form, responses, result.Score, result.Severity)
	if err != nil {
		return nil, err
	}

	assessment := &model.Assessment{
		ID:                 uuid.New().String(),
		StudentID:          studentID,
		CollegeID:          collegeID,
		FormType:           form,
		Responses:          responses,
		Score:              result.Score,
		SeverityLevel:      result.Severity,
		Guidance:           guidance.Guidance,
		RecommendedActions: guidance.RecommendedActions,
		CreatedAt:          time.Now(),
	}

	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to persist assessment: %w", err)
	}

	// Best effort; stats are recomputed on the next cache miss anyway
	_ = s.statsCache.Invalidate(ctx, collegeID)

	return submissionView(assessment), nil
}

// Get returns one assessment scoped to its student and tenant
func (s *AssessmentService) Get(ctx context.Context, id, studentID, collegeID string) (*model.SubmitAssessmentResponse, error) {
	assessment, err := s.repo.GetByID(ctx, id, studentID, collegeID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, nil
	}
	return submissionView(assessment), nil
}

// History lists a student's past submissions, newest first. The entry
// shape differs from the submission view; both are frozen API formats.
func (s *AssessmentService) History(ctx context.Context, studentID, collegeID string, form model.Instrument, limit, offset int64) ([]model.HistoryEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	assessments, err := s.repo.ListByStudent(ctx, studentID, collegeID, form, limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(assessments))
	for _, a := range assessments {
		entries = append(entries, model.HistoryEntry{
			ID:             a.ID,
			AssessmentName: a.FormType,
			Date:           a.CreatedAt.Format("2006-01-02"),
			Time:           a.CreatedAt.Format("15:04"),
			Score:          a.Score,
			Severity:       a.SeverityLevel,
			Responses:      a.Responses,
		})
	}
	return entries, nil
}

// Stats aggregates a tenant's submissions per instrument, cache-aside
// through Redis.
func (s *AssessmentService) Stats(ctx context.Context, collegeID string) (*model.TenantStats, error) {
	cached, err := s.statsCache.Get(ctx, collegeID)
	if err == nil && cached != nil {
		return cached, nil
	}

	counts, err := s.repo.SeverityCounts(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	stats := &model.TenantStats{
		CollegeID:   collegeID,
		Instruments: make([]model.InstrumentStats, 0, len(counts)),
		GeneratedAt: time.Now(),
	}
	for form, breakdown := range counts {
		instStats := model.InstrumentStats{
			FormType:   form,
			Severities: breakdown,
		}
		for _, n := range breakdown {
			instStats.Count += n
		}
		stats.Total += instStats.Count
		stats.Instruments = append(stats.Instruments, instStats)
	}
	sort.Slice(stats.Instruments, func(i, j int) bool {
		return stats.Instruments[i].FormType < stats.Instruments[j].FormType
	})

	_ = s.statsCache.Set(ctx, stats)

	return stats, nil
}

func submissionView(a *model.Assessment) *model.SubmitAssessmentResponse {
	return &model.SubmitAssessmentResponse{
		ID:                 a.ID,
		FormType:           a.FormType,
		Score:              a.Score,
		SeverityLevel:      a.SeverityLevel,
		Guidance:           a.Guidance,
		RecommendedActions: a.RecommendedActions,
		CreatedAt:          a.CreatedAt,
	}
}
