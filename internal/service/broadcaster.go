package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToCounselors(collegeID string, msgType string, payload interface{})
	BroadcastToStudent(collegeID, studentID string, msgType string, payload interface{})
}
