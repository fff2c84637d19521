package models

// RecommendationRequest represents the request payload for job recommendations.
// Required fields are pointers so that a present but empty string passes validation
// while a missing key does not.
type RecommendationRequest struct {
	Preferences          *string `json:"preferences" validate:"required"`
	Skills               *string `json:"skills" validate:"required"`
	DetailedExpectations *string `json:"detailed_expectations,omitempty"`
}

// Payload converts the request into the field map consumed by the dispatcher
func (r *RecommendationRequest) Payload() map[string]any {
	payload := map[string]any{
		"preferences": r.Preferences,
		"skills":      r.Skills,
	}
	if r.DetailedExpectations != nil {
		payload["detailed_expectations"] = r.DetailedExpectations
	}
	return payload
}

// ChatRequest represents the request payload for a chat message
type ChatRequest struct {
	Message *string `json:"message" validate:"required"`
}

// MarketTrendsRequest represents the query parameters for market trends
type MarketTrendsRequest struct {
	Sector *string
}
