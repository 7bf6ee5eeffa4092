package model

import "time"

// Announcement is a counselor-authored notice scoped to one college
type Announcement struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	CollegeID   string    `json:"collegeId" bson:"collegeId"`
	CounselorID string    `json:"counselorId" bson:"counselorId"`
	Title       string    `json:"title" bson:"title"`
	Body        string    `json:"body" bson:"body"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
