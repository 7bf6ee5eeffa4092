package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"campusmind/internal/config"
	"campusmind/internal/model"
)

// ErrGuidanceUnavailable means the guidance collaborator failed. The
// submission must fail with it: guidance text is never fabricated on an
// error path.
var ErrGuidanceUnavailable = errors.New("guidance service unavailable")

// GuidanceProvider turns a scored submission into guidance text and a
// recommended-action list
type GuidanceProvider interface {
	GetGuidance(ctx context.Context, instrument model.Instrument, responses model.ResponseSet, score int, severity model.Severity) (*model.GuidanceResult, error)
}

// GuidanceService produces guidance via the Gemini API
type GuidanceService struct {
	config *config.AIConfig
	client *http.Client
}

// NewGuidanceService creates a new guidance service
func NewGuidanceService() *GuidanceService {
	return NewGuidanceServiceWithConfig(config.DefaultAIConfig())
}

// NewGuidanceServiceWithConfig creates a guidance service with explicit
// configuration
func NewGuidanceServiceWithConfig(cfg *config.AIConfig) *GuidanceService {
	return &GuidanceService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// GetGuidance requests guidance for one scored submission. When no API
// key is configured (local dev) a static library response is returned;
// a configured-but-failing call surfaces ErrGuidanceUnavailable.
func (s *GuidanceService) GetGuidance(ctx context.Context, instrument model.Instrument, responses model.ResponseSet, score int, severity model.Severity) (*model.GuidanceResult, error) {
	if !s.config.IsEnabled() {
		return staticGuidance(instrument, severity), nil
	}

	prompt := buildGuidancePrompt(instrument, responses, score, severity)
	response, err := s.callGemini(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGuidanceUnavailable, err)
	}

	var result model.GuidanceResult
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("%w: bad response payload: %v", ErrGuidanceUnavailable, err)
	}
	if result.Guidance == "" {
		return nil, fmt.Errorf("%w: empty guidance text", ErrGuidanceUnavailable)
	}
	if result.RecommendedActions == nil {
		result.RecommendedActions = []string{}
	}

	return &result, nil
}

// callGemini makes a request to the Gemini API
func (s *GuidanceService) callGemini(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned %d", resp.StatusCode)
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from gemini")
}

func buildGuidancePrompt(instrument model.Instrument, responses model.ResponseSet, score int, severity model.Severity) string {
	responsesJSON, _ := json.Marshal(responses)

	return fmt.Sprintf(`You are a campus mental-health assistant writing supportive, non-clinical guidance for a student who completed a screening questionnaire. Return ONLY valid JSON:
{
  "guidance": "2-4 supportive sentences tailored to the result",
  "recommendedActions": ["short actionable step", "..."]
}

Questionnaire: %s
Score: %d
Severity level: %s
Responses: %s

Rules:
1. Do not diagnose. Do not mention raw answer values.
2. Tone: warm, encouraging, practical.
3. For Severe or Moderately-Severe results, the first recommended action must be to contact the campus counseling center.
4. 2-5 recommended actions, each under 12 words.`,
		instrument, score, severity, responsesJSON)
}

// staticGuidance is the development-mode guidance library used when no
// API key is set. It is keyed by severity band only.
func staticGuidance(instrument model.Instrument, severity model.Severity) *model.GuidanceResult {
	switch severity {
	case model.SeveritySevere, model.SeverityModeratelySevere:
		return &model.GuidanceResult{
			Guidance:           fmt.Sprintf("Your %s result suggests you are carrying a heavy load right now. Please reach out for support - you do not have to handle this alone.", instrument),
			RecommendedActions: []string{"Contact the campus counseling center today", "Talk to someone you trust", "Keep a regular sleep schedule"},
		}
	case model.SeverityModerate:
		return &model.GuidanceResult{
			Guidance:           fmt.Sprintf("Your %s result shows a moderate level of difficulty. Small consistent steps tend to help more than big changes.", instrument),
			RecommendedActions: []string{"Consider booking a counseling session", "Schedule short daily walks", "Limit screen time before bed"},
		}
	case model.SeverityMild:
		return &model.GuidanceResult{
			Guidance:           fmt.Sprintf("Your %s result is in the mild range. Keeping an eye on your routines now can stop things from building up.", instrument),
			RecommendedActions: []string{"Keep a simple mood journal", "Stay connected with friends"},
		}
	default:
		return &model.GuidanceResult{
			Guidance:           fmt.Sprintf("Your %s result is in the minimal range. Whatever you are doing is working - keep it up.", instrument),
			RecommendedActions: []string{"Maintain your current routines"},
		}
	}
}
