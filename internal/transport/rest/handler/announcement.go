package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"campusmind/internal/service"
	"campusmind/internal/transport/rest/middleware"
)

// AnnouncementHandler handles announcement endpoints
type AnnouncementHandler struct {
	announcementSvc *service.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementSvc *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: announcementSvc}
}

// CreateAnnouncementRequest is the request body for publishing an announcement
type CreateAnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Create handles POST /v1/announcements (counselor only)
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	counselorID := middleware.GetCounselorID(r.Context())
	collegeID := middleware.GetCollegeID(r.Context())
	if counselorID == "" || collegeID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	announcement, err := h.announcementSvc.Create(r.Context(), counselorID, collegeID, req.Title, req.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, announcement)
}

// List handles GET /v1/announcements
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	collegeID := middleware.GetCollegeID(r.Context())
	if collegeID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	announcements, err := h.announcementSvc.List(r.Context(), collegeID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"announcements": announcements})
}
