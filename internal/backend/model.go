package backend

import "context"

// Model produces raw text for a prompt.
type Model interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
