package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/blogcraft/internal/api"
	"github.com/phrazzld/blogcraft/internal/backend"
	"github.com/phrazzld/blogcraft/internal/config"
	"github.com/phrazzld/blogcraft/internal/generation"
	"github.com/phrazzld/blogcraft/internal/platform/gemini"
	"github.com/phrazzld/blogcraft/internal/redact"
)

// backendPath is where the development backend is mounted.
const backendPath = "/dev/generate"

// application holds all the shared application dependencies.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	generator generation.Generator
	// backend is nil unless the development backend is enabled.
	backend http.Handler
}

// newApplication wires configuration into the generation client and, when
// enabled, the development backend. models overrides the Gemini models the
// backend would otherwise build from configuration.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, models ...backend.Model) (*application, error) {
	app := &application{config: cfg, logger: logger}

	clientCfg := cfg.Client
	if cfg.Backend.Enabled {
		h, err := newBackend(ctx, cfg.Backend, logger, models)
		if err != nil {
			return nil, fmt.Errorf("failed to create development backend: %w", err)
		}
		app.backend = h

		if clientCfg.Endpoint == "" {
			clientCfg.Endpoint = fmt.Sprintf("http://127.0.0.1:%d%s", cfg.Server.Port, backendPath)
			logger.Info("Client endpoint not set, using development backend",
				"endpoint", clientCfg.Endpoint)
		}
	}

	client, err := generation.NewClient(clientCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}
	app.generator = client

	logger.Info("Application initialized",
		"endpoint", redact.URL(clientCfg.Endpoint),
		"timeout", clientCfg.Timeout.String(),
		"backend_enabled", cfg.Backend.Enabled)

	return app, nil
}

func newBackend(ctx context.Context, cfg config.BackendConfig, logger *slog.Logger, models []backend.Model) (http.Handler, error) {
	if len(models) == 0 {
		geminiModels, err := gemini.NewModels(ctx, logger, cfg)
		if err != nil {
			return nil, err
		}
		for _, m := range geminiModels {
			models = append(models, m)
		}
	}

	h, err := backend.NewHandler(logger.With("component", "backend"),
		backend.Options{ProxyEnvelope: cfg.ProxyEnvelope}, models...)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// routes builds the HTTP handler for the whole server.
func (app *application) routes() http.Handler {
	r := api.NewRouter(api.NewBlogHandler(app.generator), app.logger)
	if app.backend != nil {
		r.Handle(backendPath, app.backend)
	}
	return r
}

// Run serves HTTP until ctx is cancelled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.routes())
}
