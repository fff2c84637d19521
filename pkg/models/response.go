package models

import "time"

// RecommendationsResponse carries the extracted job recommendations.
// Elements are passed through exactly as the completion produced them.
type RecommendationsResponse struct {
	Recommendations []any `json:"recommendations"`
}

// ChatResponse carries the model's reply to a chat message
type ChatResponse struct {
	Response string `json:"response"`
}

// MarketTrendsResponse carries the extracted career tips for a sector
type MarketTrendsResponse struct {
	MarketTrends []any `json:"market_trends"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response.
// Detail holds the human readable message shown by clients.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Detail    string    `json:"detail"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
