package generation

import (
	"context"
	"errors"
	"fmt"
)

// Completer sends a single prompt to a text-generation backend.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyCompletion is returned when the backend answered without content.
var ErrEmptyCompletion = errors.New("empty completion")

// UpstreamError is a non-success response from the completion API.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream status %d", e.Status)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}
