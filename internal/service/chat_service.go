package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campusmind/internal/crisis"
	"campusmind/internal/model"
	"campusmind/internal/repository"
)

// ChatService persists chat messages and runs every message through the
// crisis detector before it is stored
type ChatService struct {
	chatRepo    repository.ChatRepo
	detector    *crisis.Detector
	broadcaster Broadcaster
}

// NewChatService creates a new chat service
func NewChatService(chatRepo repository.ChatRepo, detector *crisis.Detector) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		detector: detector,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ChatService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SendMessage stores a message with its crisis flag. The flag is
// recomputed on every message; flagged messages raise an alert on the
// counselor channel. Detection classifies only - it never blocks
// delivery of the message itself.
func (s *ChatService) SendMessage(ctx context.Context, studentID, collegeID, text string) (*model.ChatMessage, error) {
	msg := &model.ChatMessage{
		ID:        uuid.New().String(),
		StudentID: studentID,
		CollegeID: collegeID,
		Text:      text,
		IsCrisis:  s.detector.IsCrisisMessage(text),
		SentAt:    time.Now(),
	}

	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to persist chat message: %w", err)
	}

	if msg.IsCrisis && s.broadcaster != nil {
		s.broadcaster.BroadcastToCounselors(collegeID, "crisis_alert", &model.CrisisAlert{
			AlertID:   uuid.New().String(),
			StudentID: studentID,
			CollegeID: collegeID,
			MessageID: msg.ID,
			Excerpt:   excerpt(text),
			SentAt:    msg.SentAt,
		})
	}

	return msg, nil
}

// History lists a student's messages, newest first
func (s *ChatService) History(ctx context.Context, studentID, collegeID string, limit int64) ([]*model.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.chatRepo.ListByStudent(ctx, studentID, collegeID, limit)
}

// CrisisLog lists a tenant's flagged messages for counselor review
func (s *ChatService) CrisisLog(ctx context.Context, collegeID string, limit int64) ([]*model.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.chatRepo.ListCrisis(ctx, collegeID, limit)
}

func excerpt(text string) string {
	const max = 120
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
