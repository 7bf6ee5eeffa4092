package config

import "os"

// AIConfig holds the guidance-generation configuration
type AIConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultAIConfig returns the default guidance configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		// Guidance is on the submission path, so a fast model
		Model:     getEnv("GEMINI_MODEL_GUIDANCE", "gemini-2.0-flash"),
		TimeoutMS: 10000,
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full generateContent endpoint
func (c *AIConfig) ModelEndpoint() string {
	return c.BaseURL + "/" + c.Model + ":generateContent"
}
