package model

import "time"

// Assessment is a persisted screening submission with its computed
// score, severity band and guidance output
type Assessment struct {
	ID                 string      `json:"id" bson:"_id,omitempty"`
	StudentID          string      `json:"studentId" bson:"studentId"`
	CollegeID          string      `json:"collegeId" bson:"collegeId"`
	FormType           Instrument  `json:"formType" bson:"formType"`
	Responses          ResponseSet `json:"responses" bson:"responses"`
	Score              int         `json:"score" bson:"score"`
	SeverityLevel      Severity    `json:"severityLevel" bson:"severityLevel"`
	Guidance           string      `json:"guidance" bson:"guidance"`
	RecommendedActions []string    `json:"recommendedActions" bson:"-"`
	CreatedAt          time.Time   `json:"createdAt" bson:"createdAt"`
}

// SubmitAssessmentResponse is the caller-facing view of a fresh submission
type SubmitAssessmentResponse struct {
	ID                 string     `json:"id"`
	FormType           Instrument `json:"formType"`
	Score              int        `json:"score"`
	SeverityLevel      Severity   `json:"severityLevel"`
	Guidance           string     `json:"guidance"`
	RecommendedActions []string   `json:"recommendedActions"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// HistoryEntry is the caller-facing view of a past submission.
// Field names differ from the submission view; existing clients
// depend on both shapes.
type HistoryEntry struct {
	ID             string      `json:"id"`
	AssessmentName Instrument  `json:"assessmentName"`
	Date           string      `json:"date"`
	Time           string      `json:"time"`
	Score          int         `json:"score"`
	Severity       Severity    `json:"severity"`
	Responses      ResponseSet `json:"responses"`
}

// SeverityBreakdown counts assessments per severity band
type SeverityBreakdown map[Severity]int

// InstrumentStats aggregates one instrument's submissions for a tenant
type InstrumentStats struct {
	FormType   Instrument        `json:"formType"`
	Count      int               `json:"count"`
	Severities SeverityBreakdown `json:"severities"`
}

// TenantStats is the counselor-facing aggregate over all instruments
type TenantStats struct {
	CollegeID   string            `json:"collegeId"`
	Total       int               `json:"total"`
	Instruments []InstrumentStats `json:"instruments"`
	GeneratedAt time.Time         `json:"generatedAt"`
}
