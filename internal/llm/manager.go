package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"career-relay/internal/config"
	"career-relay/internal/llm/processors"
	"career-relay/internal/logging"
	"career-relay/pkg/models"
	"career-relay/pkg/utils"
)

// EmptyChatReply is returned for a chat message that is empty after sanitization
const EmptyChatReply = "Please provide a message to chat."

// logPreviewLength bounds how much of a completion is written to the log
const logPreviewLength = 200

// ErrProviderUnavailable is returned when a call is made before Start or after Stop
var ErrProviderUnavailable = errors.New("LLM manager not started or provider not available")

// Manager owns the completion provider and turns career requests into completion calls
type Manager struct {
	config    *config.Config
	factory   *LLMFactory
	extractor *processors.JSONExtractor
	provider  LLMProvider
	logger    logging.Logger
	mu        sync.RWMutex
	healthy   bool
}

// NewManager creates a manager whose provider is built from configuration on Start
func NewManager(cfg *config.Config) *Manager {
	logger := logging.GetGlobalLogger()
	return &Manager{
		config:    cfg,
		factory:   NewLLMFactory(cfg),
		extractor: processors.NewJSONExtractor(logger),
		logger:    logger,
	}
}

// NewManagerWithProvider creates a manager around an existing provider
func NewManagerWithProvider(cfg *config.Config, provider LLMProvider, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Manager{
		config:    cfg,
		factory:   NewLLMFactory(cfg),
		extractor: processors.NewJSONExtractor(logger),
		provider:  provider,
		logger:    logger,
	}
}

// Start creates the provider if needed and records its health
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Starting LLM manager", map[string]interface{}{
		"provider": m.config.LLM.Provider,
		"model":    m.config.LLM.Model,
	})

	if m.provider == nil {
		provider, err := m.factory.CreateProvider(ctx)
		if err != nil {
			return fmt.Errorf("failed to create LLM provider: %w", err)
		}
		m.provider = provider
	}

	if err := m.provider.IsHealthy(ctx); err != nil {
		m.healthy = false
		return fmt.Errorf("LLM provider %s is not usable: %w", m.provider.GetProviderName(), err)
	}

	m.healthy = true
	m.logger.Info("LLM manager started successfully", map[string]interface{}{
		"provider": m.provider.GetProviderName(),
	})
	return nil
}

// Stop releases the provider
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Stopping LLM manager")
	m.provider = nil
	m.healthy = false
	return nil
}

// IsHealthy reports whether the manager has a usable provider
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy && m.provider != nil
}

// GetProviderName returns the name of the current LLM provider
func (m *Manager) GetProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.GetProviderName()
	}
	return "none"
}

// Dispatch runs one call in the given mode. payload maps field names to values;
// non-string values sanitize to "". The result is []any for the JSON modes and
// string for chat.
func (m *Manager) Dispatch(ctx context.Context, mode models.Mode, payload map[string]any) (any, error) {
	switch mode {
	case models.ModeRecommendation:
		return m.Recommend(ctx, payload)
	case models.ModeChat:
		return m.Chat(ctx, payload["message"])
	case models.ModeMarketTrends:
		return m.MarketTrends(ctx, payload["sector"])
	default:
		m.logger.Error("Unknown mode", map[string]interface{}{"mode": mode.String()})
		return nil, utils.NewValidationError(fmt.Sprintf("Unknown mode: %s", mode), models.ErrUnknownMode)
	}
}

// Recommend asks for job postings matching preferences, skills and detailed_expectations
func (m *Manager) Recommend(ctx context.Context, payload map[string]any) ([]any, error) {
	prompt := BuildRecommendationPrompt(
		processors.SanitizeText(payload["preferences"]),
		processors.SanitizeText(payload["skills"]),
		processors.SanitizeText(payload["detailed_expectations"]),
	)
	m.logger.Info("Recommendation prompt", map[string]interface{}{"prompt": prompt})

	return m.completeJSON(ctx, models.ModeRecommendation, prompt)
}

// MarketTrends asks for career tips for a sector; a missing sector leaves the segment empty
func (m *Manager) MarketTrends(ctx context.Context, sector any) ([]any, error) {
	prompt := BuildMarketTrendsPrompt(processors.SanitizeText(sector))
	m.logger.Info("Market trends prompt", map[string]interface{}{"prompt": prompt})

	return m.completeJSON(ctx, models.ModeMarketTrends, prompt)
}

// Chat forwards the sanitized message as-is. An empty message short-circuits
// without calling the provider.
func (m *Manager) Chat(ctx context.Context, message any) (string, error) {
	text := processors.SanitizeText(message)
	if text == "" {
		return EmptyChatReply, nil
	}
	m.logger.Info("Chat message", map[string]interface{}{
		"message": utils.Truncate(text, logPreviewLength),
	})

	raw, err := m.complete(ctx, models.ModeChat, text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// completeJSON calls the provider and extracts the JSON array from its answer.
// Extraction failures degrade to an empty list.
func (m *Manager) completeJSON(ctx context.Context, mode models.Mode, prompt string) ([]any, error) {
	raw, err := m.complete(ctx, mode, prompt)
	if err != nil {
		return nil, err
	}

	result := m.extractor.Extract(raw, processors.FallbackEmpty)
	if !result.OK() {
		m.logger.Warn("Completion did not contain a usable JSON array, returning empty result", map[string]interface{}{
			"mode":  mode.String(),
			"cause": result.Cause.Error(),
		})
	}
	return result.Records, nil
}

func (m *Manager) complete(ctx context.Context, mode models.Mode, prompt string) (string, error) {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return "", ErrProviderUnavailable
	}

	params, err := m.config.GenerationFor(mode)
	if err != nil {
		return "", utils.NewValidationError(err.Error(), err)
	}

	raw, err := provider.Complete(ctx, models.CompletionRequest{
		Mode:   mode,
		Prompt: prompt,
		Params: params,
	})
	if err != nil {
		return "", utils.NewLLMError(provider.GetProviderName(), err)
	}

	m.logger.Info("Raw response start", map[string]interface{}{
		"mode":    mode.String(),
		"preview": utils.Truncate(raw, logPreviewLength),
	})
	return raw, nil
}
