package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/blogcraft/internal/config"
)

// validateConfig checks that the backend configuration can build Gemini models.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.BackendConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key", "error", "GeminiAPIKey is empty")
		return fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		logger.ErrorContext(ctx, "Missing model name", "error", "ModelName is empty")
		return fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	if cfg.FallbackModelName == "" {
		logger.WarnContext(ctx, "No fallback model configured, generation has a single attempt")
	}

	return nil
}
