package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		want      Result
		wantShape shape
	}{
		{
			name:      "flat with message",
			body:      `{"content":"Hello","message":"ok"}`,
			want:      Result{Content: "Hello", Message: "ok"},
			wantShape: shapeFlat,
		},
		{
			name:      "whitespace content is returned as is",
			body:      `{"content":"  \n "}`,
			want:      Result{Content: "  \n ", Message: DefaultMessage},
			wantShape: shapeFlat,
		},
		{
			name:      "proxy wrapped without message",
			body:      `{"body":"{\"content\":\"Hi\"}"}`,
			want:      Result{Content: "Hi", Message: DefaultMessage},
			wantShape: shapeProxyWrapped,
		},
		{
			name:      "flat alt",
			body:      `{"blog":"X"}`,
			want:      Result{Content: "X", Message: DefaultMessage},
			wantShape: shapeFlatAlt,
		},
		{
			name:      "proxy wrapped lambda payload",
			body:      `{"statusCode":200,"headers":{"Content-Type":"application/json"},"body":"{\"message\":\"Blog Generation completed\",\"generated\":true,\"content\":\"Post\"}"}`,
			want:      Result{Content: "Post", Message: "Blog Generation completed"},
			wantShape: shapeProxyWrapped,
		},
		{
			name:      "proxy wrapped falls back to inner message",
			body:      `{"body":"{\"message\":\"only a message\"}"}`,
			want:      Result{Content: "only a message", Message: "only a message"},
			wantShape: shapeProxyWrapped,
		},
		{
			name:      "wrapped body wins over outer content",
			body:      `{"body":"{\"content\":\"inner\"}","content":"outer","message":"outer message"}`,
			want:      Result{Content: "inner", Message: DefaultMessage},
			wantShape: shapeProxyWrapped,
		},
		{
			name:      "content wins over blog",
			body:      `{"content":"from content","blog":"from blog"}`,
			want:      Result{Content: "from content", Message: DefaultMessage},
			wantShape: shapeFlat,
		},
		{
			name:      "non-string body is not a wrapper",
			body:      `{"body":{"content":"ignored"},"content":"used"}`,
			want:      Result{Content: "used", Message: DefaultMessage},
			wantShape: shapeFlat,
		},
		{
			name:      "empty message uses default",
			body:      `{"content":"text","message":""}`,
			want:      Result{Content: "text", Message: DefaultMessage},
			wantShape: shapeFlat,
		},
		{
			name:      "non-string message uses default",
			body:      `{"content":"text","message":42}`,
			want:      Result{Content: "text", Message: DefaultMessage},
			wantShape: shapeFlat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, gotShape, err := normalize([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantShape, gotShape)
		})
	}
}

func TestNormalizeFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantKind   Kind
		wantDetail string
	}{
		{"empty content", `{"content":""}`, KindEmptyContent, "flat"},
		{"null content", `{"content":null,"message":"Blog Generation completed"}`, KindEmptyContent, "flat"},
		{"wrapped null content", `{"body":"{\"content\":null,\"message\":\"Blog Generation completed\",\"generated\":false}"}`, KindEmptyContent, "proxy-wrapped"},
		{"empty blog", `{"blog":""}`, KindEmptyContent, "flat-alt"},
		{"no known fields", `{"status":"done"}`, KindEmptyContent, "no body, content or blog"},
		{"empty object", `{}`, KindEmptyContent, "no body, content or blog"},
		{"malformed top level", `not json`, KindMalformedResponse, "response body"},
		{"truncated top level", `{"content":"Hel`, KindMalformedResponse, "response body"},
		{"top level array", `["content"]`, KindMalformedResponse, "response body"},
		{"top level null", `null`, KindMalformedResponse, "response body"},
		{"empty body", ``, KindMalformedResponse, "response body"},
		{"malformed wrapped body", `{"body":"not json"}`, KindMalformedResponse, "wrapped body"},
		{"wrapped body is a string literal", `{"body":"\"just text\""}`, KindMalformedResponse, "wrapped body"},
		{"numeric content", `{"content":42}`, KindMalformedResponse, "expected field structure"},
		{"object blog", `{"blog":{"text":"x"}}`, KindMalformedResponse, "expected field structure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Normalize([]byte(tt.body))
			require.Error(t, err)

			var genErr *Error
			require.True(t, errors.As(err, &genErr), "error should be *Error, got %T", err)
			assert.Equal(t, tt.wantKind, genErr.Kind)
			assert.Contains(t, genErr.Detail, tt.wantDetail)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{"content":"Hello","message":"ok"}`,
		`{"body":"{\"content\":\"Hi\"}"}`,
		`{"blog":"X"}`,
		`{"content":""}`,
		`not json`,
	}

	for _, body := range bodies {
		first, firstErr := Normalize([]byte(body))
		second, secondErr := Normalize([]byte(body))

		assert.Equal(t, first, second, "body %s", body)
		assert.Equal(t, KindOf(firstErr), KindOf(secondErr), "body %s", body)
	}
}
