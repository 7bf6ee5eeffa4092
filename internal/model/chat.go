package model

import "time"

// ChatMessage is a student chat message persisted with its crisis flag.
// The flag is recomputed on every send, never read back for detection.
type ChatMessage struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	StudentID string    `json:"studentId" bson:"studentId"`
	CollegeID string    `json:"collegeId" bson:"collegeId"`
	Text      string    `json:"text" bson:"text"`
	IsCrisis  bool      `json:"isCrisis" bson:"isCrisis"`
	SentAt    time.Time `json:"sentAt" bson:"sentAt"`
}

// CrisisAlert is the payload pushed to counselor connections when a
// message trips the crisis detector
type CrisisAlert struct {
	AlertID   string    `json:"alertId"`
	StudentID string    `json:"studentId"`
	CollegeID string    `json:"collegeId"`
	MessageID string    `json:"messageId"`
	Excerpt   string    `json:"excerpt"`
	SentAt    time.Time `json:"sentAt"`
}
