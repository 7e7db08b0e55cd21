package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/blogcraft/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))
	assert.Equal(t, "req-42", GetTraceID(SetTraceID(context.Background(), "req-42")))

	generated := GetTraceID(SetTraceID(context.Background(), ""))
	assert.Len(t, generated, 36, "generated trace IDs are UUIDs")
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]string{"content": "hello"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"content":"hello"}`, w.Body.String())
}

func TestRespondWithErrorLogsRedactedCause(t *testing.T) {
	t.Parallel()

	l, buf := logger.NewTestLogger(t)
	ctx := logger.WithLogger(SetTraceID(context.Background(), "trace-1"), l)
	req := httptest.NewRequest(http.MethodPost, "/api/blog", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadGateway, "ServerError", "server error",
		errors.New("upstream rejected api_key=abcdef1234567890"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Error: "server error", Kind: "ServerError", TraceID: "trace-1"}, body)

	logger.AssertLogField(t, buf, "level", "ERROR")
	logger.AssertLogField(t, buf, "trace_id", "trace-1")
	assert.NotContains(t, buf.String(), "abcdef1234567890")
}

type topicRequest struct {
	Topic string `json:"topic" validate:"required,min=3"`
}

func TestDecodeAndValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		body          string
		wantDecodeErr bool
		wantValidErr  bool
	}{
		{"valid", `{"topic":"Go generics"}`, false, false},
		{"too short", `{"topic":"Go"}`, false, true},
		{"missing", `{}`, false, true},
		{"unknown field", `{"topic":"Go generics","extra":1}`, true, false},
		{"not json", `topic=Go`, true, false},
		{"too large", `{"topic":"` + strings.Repeat("a", MaxRequestBytes) + `"}`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var v topicRequest
			err := DecodeJSON(w, req, &v)
			if tt.wantDecodeErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			err = ValidateRequest(&v)
			if tt.wantValidErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
