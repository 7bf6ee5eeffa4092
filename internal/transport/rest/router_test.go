package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmind/internal/crisis"
	"campusmind/internal/model"
	"campusmind/internal/scoring"
	"campusmind/internal/service"
	"campusmind/internal/transport/ws"
)

type memAssessmentRepo struct {
	records []*model.Assessment
}

func (m *memAssessmentRepo) Create(ctx context.Context, a *model.Assessment) error {
	m.records = append(m.records, a)
	return nil
}

func (m *memAssessmentRepo) GetByID(ctx context.Context, id, studentID, collegeID string) (*model.Assessment, error) {
	for _, a := range m.records {
		if a.ID == id && a.StudentID == studentID && a.CollegeID == collegeID {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memAssessmentRepo) ListByStudent(ctx context.Context, studentID, collegeID string, form model.Instrument, limit, offset int64) ([]*model.Assessment, error) {
	var out []*model.Assessment
	for i := len(m.records) - 1; i >= 0; i-- {
		a := m.records[i]
		if a.StudentID == studentID && a.CollegeID == collegeID && (form == "" || a.FormType == form) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssessmentRepo) SeverityCounts(ctx context.Context, collegeID string) (map[model.Instrument]model.SeverityBreakdown, error) {
	counts := map[model.Instrument]model.SeverityBreakdown{}
	for _, a := range m.records {
		if a.CollegeID != collegeID {
			continue
		}
		if counts[a.FormType] == nil {
			counts[a.FormType] = model.SeverityBreakdown{}
		}
		counts[a.FormType][a.SeverityLevel]++
	}
	return counts, nil
}

type memChatRepo struct {
	messages []*model.ChatMessage
}

func (m *memChatRepo) Create(ctx context.Context, msg *model.ChatMessage) error {
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memChatRepo) ListByStudent(ctx context.Context, studentID, collegeID string, limit int64) ([]*model.ChatMessage, error) {
	var out []*model.ChatMessage
	for _, msg := range m.messages {
		if msg.StudentID == studentID && msg.CollegeID == collegeID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memChatRepo) ListCrisis(ctx context.Context, collegeID string, limit int64) ([]*model.ChatMessage, error) {
	var out []*model.ChatMessage
	for _, msg := range m.messages {
		if msg.CollegeID == collegeID && msg.IsCrisis {
			out = append(out, msg)
		}
	}
	return out, nil
}

type memAnnouncementRepo struct {
	items []*model.Announcement
}

func (m *memAnnouncementRepo) Create(ctx context.Context, a *model.Announcement) error {
	m.items = append(m.items, a)
	return nil
}

func (m *memAnnouncementRepo) ListByCollege(ctx context.Context, collegeID string, limit int64) ([]*model.Announcement, error) {
	var out []*model.Announcement
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].CollegeID == collegeID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

type noopStatsCache struct{}

func (noopStatsCache) Get(ctx context.Context, collegeID string) (*model.TenantStats, error) {
	return nil, nil
}
func (noopStatsCache) Set(ctx context.Context, stats *model.TenantStats) error { return nil }
func (noopStatsCache) Invalidate(ctx context.Context, collegeID string) error  { return nil }

type stubGuidance struct{}

func (stubGuidance) GetGuidance(ctx context.Context, instrument model.Instrument, responses model.ResponseSet, score int, severity model.Severity) (*model.GuidanceResult, error) {
	return &model.GuidanceResult{
		Guidance:           "stub guidance",
		RecommendedActions: []string{"one", "two"},
	}, nil
}

func newTestRouter() http.Handler {
	authSvc := service.NewAuthService("router-test-secret")
	assessmentSvc := service.NewAssessmentService(&memAssessmentRepo{}, stubGuidance{}, noopStatsCache{}, scoring.NewRegistry())
	chatSvc := service.NewChatService(&memChatRepo{}, crisis.NewDetector())
	announcementSvc := service.NewAnnouncementService(&memAnnouncementRepo{})

	return NewRouter(&Container{
		AuthService:         authSvc,
		AssessmentService:   assessmentSvc,
		ChatService:         chatSvc,
		AnnouncementService: announcementSvc,
		WSHub:               ws.NewHub(),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func studentToken(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doJSON(t, router, "POST", "/v1/auth/student", "", map[string]string{
		"studentId": "stu-1", "collegeId": "col-1", "accessCode": "campus2026",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func counselorToken(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doJSON(t, router, "POST", "/v1/auth/counselor", "", map[string]string{
		"username": "counselor", "password": "password123", "collegeId": "col-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func uniform(items int, value string) map[string]string {
	out := map[string]string{}
	for i := 1; i <= items; i++ {
		out[fmt.Sprintf("q%d", i)] = value
	}
	return out
}

func TestHealth(t *testing.T) {
	router := newTestRouter()
	rec := doJSON(t, router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitRequiresAuth(t *testing.T) {
	router := newTestRouter()
	rec := doJSON(t, router, "POST", "/v1/assessments", "", map[string]interface{}{
		"formType": "PHQ-9", "responses": uniform(9, "2"),
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitAndHistoryFlow(t *testing.T) {
	router := newTestRouter()
	token := studentToken(t, router)

	rec := doJSON(t, router, "POST", "/v1/assessments", token, map[string]interface{}{
		"formType": "PHQ-9", "responses": uniform(9, "2"),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var submitted model.SubmitAssessmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))
	assert.Equal(t, 18, submitted.Score)
	assert.Equal(t, model.SeverityModeratelySevere, submitted.SeverityLevel)
	assert.Equal(t, "stub guidance", submitted.Guidance)
	assert.Equal(t, []string{"one", "two"}, submitted.RecommendedActions)

	// Point lookup
	rec = doJSON(t, router, "GET", "/v1/assessments/"+submitted.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// History view carries the divergent field names
	rec = doJSON(t, router, "GET", "/v1/assessments", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Assessments []model.HistoryEntry `json:"assessments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Assessments, 1)
	assert.Equal(t, model.InstrumentPHQ9, history.Assessments[0].AssessmentName)
	assert.Equal(t, 18, history.Assessments[0].Score)
	assert.NotEmpty(t, history.Assessments[0].Date)
}

func TestSubmitRejectsBadInput(t *testing.T) {
	router := newTestRouter()
	token := studentToken(t, router)

	rec := doJSON(t, router, "POST", "/v1/assessments", token, map[string]interface{}{
		"formType": "NOT-A-FORM", "responses": uniform(9, "2"),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, "POST", "/v1/assessments", token, map[string]interface{}{
		"formType": "PHQ-9", "responses": uniform(8, "2"),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsRequiresCounselor(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "GET", "/v1/assessments/stats", studentToken(t, router), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, "GET", "/v1/assessments/stats", counselorToken(t, router), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChatAndCrisisLog(t *testing.T) {
	router := newTestRouter()
	sToken := studentToken(t, router)

	rec := doJSON(t, router, "POST", "/v1/chat/messages", sToken, map[string]string{
		"text": "I want to kill myself",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var msg model.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.True(t, msg.IsCrisis)

	rec = doJSON(t, router, "GET", "/v1/chat/crisis", counselorToken(t, router), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var log struct {
		Messages []model.ChatMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &log))
	require.Len(t, log.Messages, 1)
}

func TestAnnouncementsFlow(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, "POST", "/v1/announcements", counselorToken(t, router), map[string]string{
		"title": "Wellness week", "body": "Drop-in sessions all week.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, "GET", "/v1/announcements", studentToken(t, router), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Announcements []model.Announcement `json:"announcements"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Announcements, 1)
	assert.Equal(t, "Wellness week", list.Announcements[0].Title)
}
