package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/blogcraft/internal/config"
	"google.golang.org/genai"
)

// Sampling parameters used for every request.
const (
	defaultTemperature float32 = 0.5
	defaultTopP        float32 = 0.9
)

// Model generates text with a single Gemini model.
type Model struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client, shared between models
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// NewModels creates the primary model and, when configured and distinct, the
// fallback model, in the order they should be tried.
func NewModels(ctx context.Context, logger *slog.Logger, cfg config.BackendConfig) ([]*Model, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}

	models := []*Model{{logger: logger, client: client, model: cfg.ModelName}}
	if cfg.FallbackModelName != "" && cfg.FallbackModelName != cfg.ModelName {
		models = append(models, &Model{logger: logger, client: client, model: cfg.FallbackModelName})
	}

	return models, nil
}

// Name returns the Gemini model name.
func (m *Model) Name() string {
	return m.model
}

// Generate sends prompt to the model and returns the text of the first candidate.
func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	temperature := defaultTemperature
	topP := defaultTopP

	m.logger.DebugContext(ctx, "Making Gemini API call",
		"model", m.model,
		"prompt_length", len(prompt))

	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
		TopP:        &topP,
	})
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", m.model, err)
	}

	return candidateText(resp)
}

// candidateText extracts the concatenated text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil:
		return "", fmt.Errorf("%w: nil response", ErrInvalidResponse)
	case len(resp.Candidates) == 0 || resp.Candidates[0] == nil:
		return "", fmt.Errorf("%w: no content generated", ErrInvalidResponse)
	case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
		return "", ErrContentBlocked
	case resp.Candidates[0].Content == nil:
		return "", fmt.Errorf("%w: empty content in response", ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}
