package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"campusmind/internal/model"
	"campusmind/internal/scoring"
	"campusmind/internal/service"
	"campusmind/internal/transport/rest/middleware"
)

// AssessmentHandler handles assessment endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// SubmitAssessmentRequest is the request body for a submission
type SubmitAssessmentRequest struct {
	FormType  model.Instrument  `json:"formType"`
	Responses model.ResponseSet `json:"responses"`
}

// Submit handles POST /v1/assessments
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())
	collegeID := middleware.GetCollegeID(r.Context())
	if studentID == "" || collegeID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SubmitAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.assessmentSvc.Submit(r.Context(), studentID, collegeID, req.FormType, req.Responses)
	if err != nil {
		var malformed *scoring.MalformedResponseError
		switch {
		case errors.Is(err, scoring.ErrUnknownInstrument):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &malformed):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGuidanceUnavailable):
			writeError(w, http.StatusServiceUnavailable, "guidance service unavailable, please retry")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Get handles GET /v1/assessments/{id}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	studentID := middleware.GetStudentID(r.Context())
	collegeID := middleware.GetCollegeID(r.Context())

	result, err := h.assessmentSvc.Get(r.Context(), id, studentID, collegeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// History handles GET /v1/assessments
func (h *AssessmentHandler) History(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())
	collegeID := middleware.GetCollegeID(r.Context())

	form := model.Instrument(r.URL.Query().Get("form"))
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)

	entries, err := h.assessmentSvc.History(r.Context(), studentID, collegeID, form, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"assessments": entries})
}

// Stats handles GET /v1/assessments/stats (counselor only)
func (h *AssessmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	collegeID := middleware.GetCollegeID(r.Context())
	if collegeID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.assessmentSvc.Stats(r.Context(), collegeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
