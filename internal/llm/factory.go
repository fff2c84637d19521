package llm

import (
	"context"
	"fmt"
	"strings"

	"career-relay/internal/config"
	"career-relay/internal/llm/providers"
	"career-relay/pkg/utils"
)

// LLMFactory creates LLM provider instances
type LLMFactory struct {
	config *config.Config
}

// NewLLMFactory creates a new LLM factory instance
func NewLLMFactory(cfg *config.Config) *LLMFactory {
	return &LLMFactory{
		config: cfg,
	}
}

// CreateProvider creates an LLM provider based on the configuration
func (f *LLMFactory) CreateProvider(ctx context.Context) (LLMProvider, error) {
	provider := utils.GetStringOrDefault(strings.ToLower(f.config.LLM.Provider), "gemini")

	switch provider {
	case "gemini":
		return providers.NewGeminiProvider(ctx, f.config)
	case "claude":
		return providers.NewClaudeProvider(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q (supported: %s)",
			f.config.LLM.Provider, strings.Join(f.GetSupportedProviders(), ", "))
	}
}

// GetSupportedProviders returns a list of supported LLM providers
func (f *LLMFactory) GetSupportedProviders() []string {
	return []string{"gemini", "claude"}
}
