package ai

import (
	"context"
	"errors"
	"fmt"
)

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

var ErrUnavailable = errors.New("ai: generator unavailable")

// Unavailable stands in for a client that could not be constructed.
// Generate never touches the network.
type Unavailable struct {
	Cause error
}

func (u Unavailable) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if u.Cause == nil {
		return "", ErrUnavailable
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, u.Cause)
}
