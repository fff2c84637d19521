package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"career-relay/internal/config"
	"career-relay/internal/logging"
	"career-relay/pkg/models"
)

// GeminiProvider implements the LLM provider interface using Google's Gemini API
type GeminiProvider struct {
	client *genai.Client
	config *config.Config
	model  string
	logger logging.Logger
}

// NewGeminiProvider creates a Gemini client bound to the configured API key and model
func NewGeminiProvider(ctx context.Context, cfg *config.Config) (*GeminiProvider, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.LLM.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.LLM.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.LLM.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: cfg,
		model:  cfg.LLM.Model,
		logger: logging.GetGlobalLogger().WithField("provider", "gemini"),
	}, nil
}

// Complete issues a single GenerateContent call. Google Search grounding is
// attached when the request asks for search augmentation.
func (gp *GeminiProvider) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	startTime := time.Now()

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Params.Temperature),
		MaxOutputTokens: req.Params.MaxOutputTokens,
	}
	if req.Params.SearchAugmented {
		genConfig.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	response, err := gp.client.Models.GenerateContent(ctx, gp.model, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}

	text := ""
	if response != nil {
		text = response.Text()
	}

	gp.logger.Debug("Gemini completion received", map[string]interface{}{
		"mode":            req.Mode.String(),
		"model":           gp.model,
		"response_length": len(text),
		"processing_time": time.Since(startTime).String(),
	})

	return text, nil
}

// IsHealthy checks that a client and credential are present. It does not call the API.
func (gp *GeminiProvider) IsHealthy(ctx context.Context) error {
	if gp.config.LLM.APIKey == "" {
		return errors.New("Gemini API key not configured - set GEMINI_API_KEY environment variable")
	}
	if gp.client == nil {
		return errors.New("Gemini client not initialized")
	}
	return ctx.Err()
}

// GetProviderName returns the name of the LLM provider
func (gp *GeminiProvider) GetProviderName() string {
	return "gemini"
}
