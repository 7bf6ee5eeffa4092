package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"campusmind/internal/service"
	"campusmind/internal/transport/rest/middleware"
)

// ChatHandler handles chat endpoints
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// SendMessageRequest is the request body for sending a chat message
type SendMessageRequest struct {
	Text string `json:"text"`
}

// Send handles POST /v1/chat/messages
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())
	collegeID := middleware.GetCollegeID(r.Context())
	if studentID == "" || collegeID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	msg, err := h.chatSvc.SendMessage(r.Context(), studentID, collegeID, req.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// History handles GET /v1/chat/messages
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())
	collegeID := middleware.GetCollegeID(r.Context())

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	messages, err := h.chatSvc.History(r.Context(), studentID, collegeID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// CrisisLog handles GET /v1/chat/crisis (counselor only)
func (h *ChatHandler) CrisisLog(w http.ResponseWriter, r *http.Request) {
	collegeID := middleware.GetCollegeID(r.Context())
	if collegeID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	messages, err := h.chatSvc.CrisisLog(r.Context(), collegeID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
