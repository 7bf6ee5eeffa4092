package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campusmind/internal/model"
	"campusmind/internal/repository"
)

// AnnouncementService handles counselor announcements per tenant
type AnnouncementService struct {
	repo repository.AnnouncementRepo
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(repo repository.AnnouncementRepo) *AnnouncementService {
	return &AnnouncementService{repo: repo}
}

// Create publishes an announcement to a college
func (s *AnnouncementService) Create(ctx context.Context, counselorID, collegeID, title, body string) (*model.Announcement, error) {
	a := &model.Announcement{
		ID:          uuid.New().String(),
		CollegeID:   collegeID,
		CounselorID: counselorID,
		Title:       title,
		Body:        body,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns a college's announcements, newest first
func (s *AnnouncementService) List(ctx context.Context, collegeID string, limit int64) ([]*model.Announcement, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByCollege(ctx, collegeID, limit)
}
