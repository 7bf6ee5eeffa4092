package model

// GuidanceResult is what the guidance collaborator returns for one
// scored submission
type GuidanceResult struct {
	Guidance           string   `json:"guidance"`
	RecommendedActions []string `json:"recommendedActions"`
}
