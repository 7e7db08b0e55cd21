package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/phrazzld/blogcraft/internal/api/shared"
	"github.com/phrazzld/blogcraft/internal/export"
	"github.com/phrazzld/blogcraft/internal/generation"
	"github.com/phrazzld/blogcraft/internal/platform/logger"
	"golang.org/x/sync/singleflight"
)

// MinTopicLength is the shortest topic, in characters, the UI accepts.
const MinTopicLength = 3

// GenerateBlogRequest represents the request body for generating a blog post.
type GenerateBlogRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// BlogHandler handles blog generation requests.
type BlogHandler struct {
	generator generation.Generator
	// inflight collapses concurrent requests for the same topic into one
	// upstream call, standing in for the UI disabling its submit button.
	inflight singleflight.Group
	now      func() time.Time
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(generator generation.Generator) *BlogHandler {
	return &BlogHandler{
		generator: generator,
		now:       time.Now,
	}
}

// Generate handles POST /api/blog requests
func (h *BlogHandler) Generate(w http.ResponseWriter, r *http.Request) {
	result, ok := h.handle(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Export handles POST /api/blog/export requests. The generated content is
// returned as a plain-text attachment.
func (h *BlogHandler) Export(w http.ResponseWriter, r *http.Request) {
	result, ok := h.handle(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(h.now())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(result.Content)); err != nil {
		logger.FromContext(r.Context(), nil).Error("failed to write export response", "error", err)
	}
}

// handle decodes, validates and generates. On failure it has already written
// the error response and returns false.
func (h *BlogHandler) handle(w http.ResponseWriter, r *http.Request) (generation.Result, bool) {
	var req GenerateBlogRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			generation.KindInvalidInput.String(), "Invalid request format", err)
		return generation.Result{}, false
	}

	req.Topic = strings.TrimSpace(req.Topic)
	err := shared.ValidateRequest(&req)
	if err == nil && utf8.RuneCountInString(req.Topic) < MinTopicLength {
		err = fmt.Errorf("topic has %d characters", utf8.RuneCountInString(req.Topic))
	}
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, generation.KindInvalidInput.String(),
			fmt.Sprintf("topic must be at least %d characters", MinTopicLength), err)
		return generation.Result{}, false
	}

	result, err := h.generateOnce(r.Context(), req.Topic)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), generation.KindOf(err).String(),
			GetSafeErrorMessage(err), err)
		return generation.Result{}, false
	}

	logger.FromContext(r.Context(), nil).InfoContext(r.Context(), "blog generated",
		"topic_length", len(req.Topic),
		"content_length", len(result.Content))

	return result, true
}

// generateOnce shares one upstream call between concurrent requests for the
// same topic. The shared call is detached from any one caller's cancellation
// and is bounded by the client timeout; each caller stops waiting only when
// its own context ends.
func (h *BlogHandler) generateOnce(ctx context.Context, topic string) (generation.Result, error) {
	detached := context.WithoutCancel(ctx)
	ch := h.inflight.DoChan(topic, func() (interface{}, error) {
		return h.generator.Generate(detached, topic)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return generation.Result{}, res.Err
		}
		return res.Val.(generation.Result), nil
	case <-ctx.Done():
		return generation.Result{}, &generation.Error{Kind: generation.KindCancelled, Err: ctx.Err()}
	}
}
