package ai

import (
	"context"
	"errors"
)

// SystemInstruction is sent with every completion request.
const SystemInstruction = "You are a helpful AI assistant for a hiring platform."

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("ai provider returned empty response")

// Completer turns a prompt into free text. Implementations may return
// ErrEmptyResponse or a transport error.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
