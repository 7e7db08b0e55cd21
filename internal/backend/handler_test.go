package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/phrazzld/blogcraft/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel returns a canned output or error and records prompts.
type fakeModel struct {
	name   string
	output string
	err    error

	mu      sync.Mutex
	prompts []string
}

func (m *fakeModel) Name() string { return m.name }

func (m *fakeModel) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	return m.output, m.err
}

func newTestHandler(t *testing.T, opts Options, models ...Model) *Handler {
	t.Helper()

	l, _ := logger.NewTestLogger(t)
	h, err := NewHandler(l, opts, models...)
	require.NoError(t, err)
	return h
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return w
}

func TestNewHandlerValidation(t *testing.T) {
	t.Parallel()

	l, _ := logger.NewTestLogger(t)

	_, err := NewHandler(nil, Options{}, &fakeModel{})
	assert.EqualError(t, err, "logger cannot be nil")

	_, err = NewHandler(l, Options{})
	assert.EqualError(t, err, "at least one model is required")
}

func TestHandlerGeneratesWithPrimaryModel(t *testing.T) {
	t.Parallel()

	primary := &fakeModel{name: "primary", output: "<s> Rust post </s>"}
	fallback := &fakeModel{name: "fallback", output: "unused"}
	h := newTestHandler(t, Options{}, primary, fallback)

	w := post(h, `{"blog_topic":"Rust ownership"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"message":"Blog Generation completed","generated":true,"content":"Rust post"}`, w.Body.String())
	assert.Equal(t, []string{"Write a clear, 200-word blog post on the topic: Rust ownership."}, primary.prompts)
	assert.Empty(t, fallback.prompts)
}

func TestHandlerFallsBack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		primary *fakeModel
	}{
		{"primary error", &fakeModel{name: "primary", err: errors.New("throttled")}},
		{"primary empty", &fakeModel{name: "primary", output: "  </s> "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fallback := &fakeModel{name: "fallback", output: `{"outputs":[{"text":"Fallback post"}]}`}
			h := newTestHandler(t, Options{}, tt.primary, fallback)

			w := post(h, `{}`)

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Content)
			assert.Equal(t, "Fallback post", *resp.Content)
			assert.True(t, resp.Generated)
			assert.Contains(t, fallback.prompts[0], DefaultTopic)
		})
	}
}

func TestHandlerAllModelsFail(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, Options{},
		&fakeModel{name: "a", err: errors.New("down")},
		&fakeModel{name: "b", output: ""})

	w := post(h, `{"blog_topic":"anything"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Blog Generation completed","generated":false,"content":null}`, w.Body.String())
}

func TestHandlerProxyEnvelope(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, Options{ProxyEnvelope: true}, &fakeModel{name: "m", output: "Wrapped post"})

	w := post(h, `{"blog_topic":"serverless"}`)

	var envelope struct {
		StatusCode int               `json:"statusCode"`
		Headers    map[string]string `json:"headers"`
		Body       string            `json:"body"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 200, envelope.StatusCode)
	assert.Equal(t, "*", envelope.Headers["Access-Control-Allow-Origin"])
	assert.JSONEq(t, `{"message":"Blog Generation completed","generated":true,"content":"Wrapped post"}`, envelope.Body)
}

func TestHandlerMethods(t *testing.T) {
	t.Parallel()

	model := &fakeModel{name: "m", output: "x"}
	h := newTestHandler(t, Options{}, model)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OPTIONS,POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, w.Body.String())

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w = httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(method, "/", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, "OPTIONS, POST", w.Header().Get("Allow"), method)
	}

	assert.Empty(t, model.prompts, "only POST generates")
}
