package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"career-relay/internal/config"
	"career-relay/internal/logging"
	"career-relay/pkg/models"
)

// ClaudeProvider implements the LLM provider interface using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	model  anthropic.Model
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.LLM.APIKey)}
	if cfg.LLM.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLM.BaseURL))
	}

	model := anthropic.ModelClaude3_7SonnetLatest
	if cfg.LLM.Model != "" && strings.HasPrefix(cfg.LLM.Model, "claude") {
		model = anthropic.Model(cfg.LLM.Model)
	}

	return &ClaudeProvider{
		client: anthropic.NewClient(opts...),
		config: cfg,
		model:  model,
		logger: logging.GetGlobalLogger().WithField("provider", "claude"),
	}
}

// Complete sends the prompt as a single user message and joins the text blocks of the reply
func (cp *ClaudeProvider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	startTime := time.Now()

	if req.Params.SearchAugmented {
		cp.logger.Debug("Search augmentation is not supported by Claude provider, ignoring", map[string]interface{}{
			"mode": req.Mode.String(),
		})
	}

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       cp.model,
		MaxTokens:   int64(req.Params.MaxOutputTokens),
		Temperature: anthropic.Float(float64(req.Params.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: req.Prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	var sb strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	text := sb.String()

	cp.logger.Debug("Claude completion received", map[string]interface{}{
		"mode":            req.Mode.String(),
		"model":           string(cp.model),
		"response_length": len(text),
		"processing_time": time.Since(startTime).String(),
	})

	return text, nil
}

// IsHealthy checks that a credential is configured. It does not call the API.
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return errors.New("Claude API key not configured - set LLM_API_KEY environment variable")
	}
	return ctx.Err()
}

// GetProviderName returns the name of the LLM provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
