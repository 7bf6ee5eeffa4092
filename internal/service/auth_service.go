package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"campusmind/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles student and counselor authentication
type AuthService struct {
	counselorUsername string
	counselorPassword string
	studentAccessCode string
	jwtSecret         []byte
}

// NewAuthService creates a new auth service
func NewAuthService(jwtSecret string) *AuthService {
	username := os.Getenv("COUNSELOR_USERNAME")
	if username == "" {
		username = "counselor"
	}
	password := os.Getenv("COUNSELOR_PASSWORD")
	if password == "" {
		password = "password123"
	}
	accessCode := os.Getenv("STUDENT_ACCESS_CODE")
	if accessCode == "" {
		accessCode = "campus2026"
	}

	return &AuthService{
		counselorUsername: username,
		counselorPassword: password,
		studentAccessCode: accessCode,
		jwtSecret:         []byte(jwtSecret),
	}
}

// StudentLogin validates the campus access code and issues a
// tenant-scoped student token
func (s *AuthService) StudentLogin(studentID, collegeID, accessCode string) (*model.LoginResponse, error) {
	if studentID == "" || collegeID == "" || accessCode != s.studentAccessCode {
		return nil, ErrInvalidCredentials
	}

	claims := &model.StudentClaims{
		StudentID: studentID,
		CollegeID: collegeID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		SubjectID: studentID,
		CollegeID: collegeID,
	}, nil
}

// CounselorLogin validates counselor credentials and issues a
// tenant-scoped counselor token
func (s *AuthService) CounselorLogin(username, password, collegeID string) (*model.LoginResponse, error) {
	if username != s.counselorUsername || password != s.counselorPassword || collegeID == "" {
		return nil, ErrInvalidCredentials
	}

	counselorID := "counselor_" + uuid.New().String()[:8]

	claims := &model.CounselorClaims{
		CounselorID: counselorID,
		CollegeID:   collegeID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		SubjectID: counselorID,
		CollegeID: collegeID,
	}, nil
}

// ValidateStudentToken validates a student JWT and returns claims
func (s *AuthService) ValidateStudentToken(tokenString string) (*model.StudentClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.StudentClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.StudentClaims)
	if !ok || !token.Valid || claims.StudentID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateCounselorToken validates a counselor JWT and returns claims
func (s *AuthService) ValidateCounselorToken(tokenString string) (*model.CounselorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.CounselorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.CounselorClaims)
	if !ok || !token.Valid || claims.CounselorID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
