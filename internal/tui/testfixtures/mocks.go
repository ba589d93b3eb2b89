// Package testfixtures provides mock implementations and test utilities for TUI testing.
//
//   - MockGenerator: records generation calls and returns a canned result
//   - MockRecognizer: speech recognizer driven from the test
//
// All mocks are thread-safe and provide verification methods for assertions in tests.
package testfixtures

import (
	"context"
	"sync"

	"github.com/mark3labs/vacancy/internal/generation"
)

// MockGenerator is a canned generation backend.
type MockGenerator struct {
	mu sync.Mutex

	// Result to return from Generate
	Result generation.Result

	// Answers passed to each call
	Calls [][]string
}

// NewMockGenerator returns a generator that yields SamplePosting.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{Result: generation.Result{Text: SamplePosting}}
}

// Generate records the call and returns Result.
func (m *MockGenerator) Generate(_ context.Context, answers []string) generation.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, append([]string(nil), answers...))
	return m.Result
}

// SetResult changes the result returned by later calls.
func (m *MockGenerator) SetResult(r generation.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Result = r
}

// CallCount returns the number of Generate calls.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockRecognizer blocks each Recognize call until the test sends a transcript
// or an error, or the session is cancelled.
type MockRecognizer struct {
	Transcripts chan string
	Errors      chan error

	mu    sync.Mutex
	calls int
}

// NewMockRecognizer returns a recognizer with buffered control channels.
func NewMockRecognizer() *MockRecognizer {
	return &MockRecognizer{
		Transcripts: make(chan string, 1),
		Errors:      make(chan error, 1),
	}
}

// Recognize waits for the next transcript or error.
func (m *MockRecognizer) Recognize(ctx context.Context, _ string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	select {
	case text := <-m.Transcripts:
		return text, nil
	case err := <-m.Errors:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// CallCount returns the number of Recognize calls.
func (m *MockRecognizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
