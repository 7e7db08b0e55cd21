package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const (
	// DefaultTopic is used when a request names no topic.
	DefaultTopic = "AI in Modern DevOps"

	// CompletedMessage is reported on every response, whether or not text was produced.
	CompletedMessage = "Blog Generation completed"

	maxRequestBytes = 64 << 10
)

// corsHeaders are sent on every response, including preflight.
var corsHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "OPTIONS,POST",
	"Access-Control-Allow-Headers": "Content-Type,Authorization,X-Amz-Date,X-Api-Key,X-Amz-Security-Token",
}

// Response is the generation payload.
type Response struct {
	Message   string  `json:"message"`
	Generated bool    `json:"generated"`
	Content   *string `json:"content"`
}

// proxyResponse mirrors a serverless proxy-integration result.
type proxyResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Options configure a Handler.
type Options struct {
	// ProxyEnvelope wraps every payload as {"statusCode", "headers", "body"}.
	ProxyEnvelope bool
}

// Handler serves the generation contract.
type Handler struct {
	models []Model
	logger *slog.Logger
	opts   Options
}

// NewHandler creates a Handler that tries models in order.
func NewHandler(logger *slog.Logger, opts Options, models ...Model) (*Handler, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if len(models) == 0 {
		return nil, errors.New("at least one model is required")
	}
	return &Handler{models: models, logger: logger, opts: opts}, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for k, v := range corsHeaders {
		w.Header().Set(k, v)
	}

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "OPTIONS, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to read request body", "error", err)
	}

	topic := parseTopic(raw)
	text := h.generate(r.Context(), topic)

	resp := Response{Message: CompletedMessage, Generated: text != ""}
	if text != "" {
		resp.Content = &text
	}

	h.write(w, r, resp)
}

// generate tries each model in turn and returns the first non-empty cleaned
// text, or "" when every model failed.
func (h *Handler) generate(ctx context.Context, topic string) string {
	prompt := fmt.Sprintf("Write a clear, 200-word blog post on the topic: %s.", topic)

	for _, m := range h.models {
		h.logger.InfoContext(ctx, "invoking model", "model", m.Name())

		raw, err := m.Generate(ctx, prompt)
		if err != nil {
			h.logger.WarnContext(ctx, "model failed, trying next", "model", m.Name(), "error", err)
			continue
		}

		if text := cleanText(extractText(raw)); text != "" {
			h.logger.InfoContext(ctx, "blog generated", "model", m.Name(), "content_length", len(text))
			return text
		}
		h.logger.WarnContext(ctx, "model returned no text, trying next", "model", m.Name())
	}

	h.logger.WarnContext(ctx, "all models failed or returned no text", "models", len(h.models))
	return ""
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, resp Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if h.opts.ProxyEnvelope {
		payload, err = json.Marshal(proxyResponse{
			StatusCode: http.StatusOK,
			Headers:    corsHeaders,
			Body:       string(payload),
		})
		if err != nil {
			h.logger.ErrorContext(r.Context(), "failed to encode proxy envelope", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write response", "error", err)
	}
}

// parseTopic reads blog_topic from a request body that is either a JSON
// object or a JSON string containing one. Anything unparsable counts as an
// empty request.
func parseTopic(raw []byte) string {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		var encoded string
		if json.Unmarshal(raw, &encoded) == nil {
			_ = json.Unmarshal([]byte(encoded), &body)
		}
	}

	if topic, ok := body["blog_topic"].(string); ok && strings.TrimSpace(topic) != "" {
		return strings.TrimSpace(topic)
	}
	return DefaultTopic
}
