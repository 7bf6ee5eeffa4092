package handler

import (
	"encoding/json"
	"net/http"

	"campusmind/internal/service"
)

// AuthHandler handles login endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// StudentLoginRequest is the request body for student login
type StudentLoginRequest struct {
	StudentID  string `json:"studentId"`
	CollegeID  string `json:"collegeId"`
	AccessCode string `json:"accessCode"`
}

// CounselorLoginRequest is the request body for counselor login
type CounselorLoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	CollegeID string `json:"collegeId"`
}

// StudentLogin handles POST /v1/auth/student
func (h *AuthHandler) StudentLogin(w http.ResponseWriter, r *http.Request) {
	var req StudentLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.StudentLogin(req.StudentID, req.CollegeID, req.AccessCode)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CounselorLogin handles POST /v1/auth/counselor
func (h *AuthHandler) CounselorLogin(w http.ResponseWriter, r *http.Request) {
	var req CounselorLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.CounselorLogin(req.Username, req.Password, req.CollegeID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
