package middleware

import (
	"context"
	"net/http"
	"strings"

	"campusmind/internal/service"
)

type contextKey string

const (
	StudentIDKey   contextKey = "studentId"
	CounselorIDKey contextKey = "counselorId"
	CollegeIDKey   contextKey = "collegeId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireStudent validates a student JWT from the Authorization header
func (m *AuthMiddleware) RequireStudent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateStudentToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, StudentIDKey, claims.StudentID)
		ctx = context.WithValue(ctx, CollegeIDKey, claims.CollegeID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCounselor validates a counselor JWT from the Authorization header
func (m *AuthMiddleware) RequireCounselor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateCounselorToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, CounselorIDKey, claims.CounselorID)
		ctx = context.WithValue(ctx, CollegeIDKey, claims.CollegeID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStudentID extracts the student ID from context
func GetStudentID(ctx context.Context) string {
	if v := ctx.Value(StudentIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetCounselorID extracts the counselor ID from context
func GetCounselorID(ctx context.Context) string {
	if v := ctx.Value(CounselorIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetCollegeID extracts the tenant ID from context
func GetCollegeID(ctx context.Context) string {
	if v := ctx.Value(CollegeIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
