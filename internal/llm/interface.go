package llm

import (
	"context"

	"career-relay/pkg/models"
)

// LLMProvider defines the interface for completion providers
type LLMProvider interface {
	// Complete sends one prompt and returns the raw completion text, "" when the
	// service produced none
	Complete(ctx context.Context, req models.CompletionRequest) (string, error)

	// IsHealthy checks if the provider is configured and usable
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the provider
	GetProviderName() string
}
