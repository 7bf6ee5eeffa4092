package model

import "github.com/golang-jwt/jwt/v5"

// StudentClaims is the JWT payload for student tokens
type StudentClaims struct {
	StudentID string `json:"studentId"`
	CollegeID string `json:"collegeId"`
	jwt.RegisteredClaims
}

// CounselorClaims is the JWT payload for counselor tokens
type CounselorClaims struct {
	CounselorID string `json:"counselorId"`
	CollegeID   string `json:"collegeId"`
	jwt.RegisteredClaims
}

// LoginResponse is returned by both login endpoints
type LoginResponse struct {
	Token     string `json:"token"`
	SubjectID string `json:"subjectId"`
	CollegeID string `json:"collegeId"`
}
