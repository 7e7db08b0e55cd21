package generation

import "strings"

// Request is the outbound wire body.
type Request struct {
	Topic string `json:"blog_topic"`
}

// NewRequest trims topic and rejects it when nothing is left.
// Callers may enforce a longer minimum before calling.
func NewRequest(topic string) (Request, error) {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return Request{}, newError(KindInvalidInput, "", nil)
	}
	return Request{Topic: trimmed}, nil
}
