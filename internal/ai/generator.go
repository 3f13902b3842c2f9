package ai

import (
	"context"
	"errors"
)

// Generator sends a prompt to a language model and returns the generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ErrUpstreamStatus is wrapped by errors for non-2xx replies from the model endpoint.
var ErrUpstreamStatus = errors.New("unexpected status from model endpoint")
