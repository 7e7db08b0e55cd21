package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultMessage is reported when the service does not supply a message.
const DefaultMessage = "Blog generated successfully"

// Result is a normalized successful generation. Content is never empty.
type Result struct {
	Message string `json:"message"`
	Content string `json:"content"`
}

// shape tags the envelope variant detected in a response body.
type shape int

const (
	shapeUnknown shape = iota
	shapeProxyWrapped
	shapeFlat
	shapeFlatAlt
)

func (s shape) String() string {
	switch s {
	case shapeProxyWrapped:
		return "proxy-wrapped"
	case shapeFlat:
		return "flat"
	case shapeFlatAlt:
		return "flat-alt"
	default:
		return "unknown"
	}
}

// envelope is a decoded response body. payload is the JSON object that
// carries content and message: the outer object for the flat shapes, the
// unwrapped body for the proxy-wrapped shape.
type envelope struct {
	shape   shape
	payload map[string]json.RawMessage
}

// Normalize extracts a Result from a raw 2xx response body. It is pure:
// the same input always yields the same Result or the same kind of error.
func Normalize(raw []byte) (Result, error) {
	res, _, err := normalize(raw)
	return res, err
}

func normalize(raw []byte) (Result, shape, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return Result{}, shapeUnknown, err
	}
	res, err := env.resolve()
	return res, env.shape, err
}

// decodeEnvelope detects the envelope variant by field presence, in
// precedence order: a string "body", then "content", then "blog".
func decodeEnvelope(raw []byte) (envelope, error) {
	outer, err := decodeObject(raw)
	if err != nil {
		return envelope{}, newError(KindMalformedResponse, "response body is not a valid JSON object", err)
	}

	if wrapped, ok := outer["body"]; ok && isJSONString(wrapped) {
		var text string
		if err := json.Unmarshal(wrapped, &text); err != nil {
			return envelope{}, newError(KindMalformedResponse, "wrapped body field is not a valid JSON object", err)
		}
		inner, err := decodeObject([]byte(text))
		if err != nil {
			return envelope{}, newError(KindMalformedResponse, "wrapped body field is not a valid JSON object", err)
		}
		return envelope{shape: shapeProxyWrapped, payload: inner}, nil
	}

	if _, ok := outer["content"]; ok {
		return envelope{shape: shapeFlat, payload: outer}, nil
	}
	if _, ok := outer["blog"]; ok {
		return envelope{shape: shapeFlatAlt, payload: outer}, nil
	}
	return envelope{shape: shapeUnknown, payload: outer}, nil
}

func (e envelope) resolve() (Result, error) {
	var field string
	switch e.shape {
	case shapeProxyWrapped:
		field = "content"
		if _, ok := e.payload[field]; !ok {
			field = "message"
		}
	case shapeFlat:
		field = "content"
	case shapeFlatAlt:
		field = "blog"
	default:
		return Result{}, newError(KindEmptyContent, "response has no body, content or blog field", nil)
	}

	content, err := stringField(e.payload, field)
	if err != nil {
		return Result{}, err
	}
	if content == "" {
		return Result{}, newError(KindEmptyContent, fmt.Sprintf("%s envelope has empty %q", e.shape, field), nil)
	}

	message := DefaultMessage
	if m, err := stringField(e.payload, "message"); err == nil && m != "" {
		message = m
	}

	return Result{Message: message, Content: content}, nil
}

// decodeObject parses raw as a JSON object. Any other JSON value is an error.
func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	return obj, nil
}

// stringField reads a string field. Absent and null both read as "";
// any other non-string value is a structural error.
func stringField(obj map[string]json.RawMessage, name string) (string, error) {
	raw, ok := obj[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", newError(KindMalformedResponse, fmt.Sprintf("response lacks expected field structure: %q is not a string", name), err)
	}
	return s, nil
}

func isJSONString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}
