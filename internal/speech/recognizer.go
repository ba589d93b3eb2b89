// Package speech provides one-shot voice dictation for wizard answers.
//
// Recognition is delegated to an external command (for example a whisper.cpp
// wrapper) that records from the microphone and prints the transcript.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mark3labs/vacancy/internal/config"
	"github.com/mark3labs/vacancy/internal/logger"
)

// DefaultTimeout bounds a single recognition when none is configured.
const DefaultTimeout = 30 * time.Second

// Recognizer turns one utterance into text.
type Recognizer interface {
	Recognize(ctx context.Context, lang string) (string, error)
}

// CommandRecognizer runs a shell command and treats its stdout as the transcript.
// The placeholder {{lang}} in Command is replaced with the locale.
type CommandRecognizer struct {
	Command string
	Timeout time.Duration
}

// Detect returns a recognizer when cfg names a speech command whose
// executable is on PATH.
func Detect(cfg *config.Config) (Recognizer, bool) {
	if cfg == nil || strings.TrimSpace(cfg.SpeechCommand) == "" {
		return nil, false
	}

	bin := strings.Fields(cfg.SpeechCommand)[0]
	if _, err := exec.LookPath(bin); err != nil {
		logger.Warn("speech command %q not found: %v", bin, err)
		return nil, false
	}

	return &CommandRecognizer{Command: cfg.SpeechCommand, Timeout: cfg.SpeechTimeout}, true
}

// Recognize runs the command once.
func (r *CommandRecognizer) Recognize(ctx context.Context, lang string) (string, error) {
	command := strings.ReplaceAll(r.Command, "{{lang}}", lang)
	logger.Debug("Executing speech command: %s", command)

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Recorder children may hold the pipes open after the shell is killed.
	cmd.WaitDelay = time.Second

	err := cmd.Run()

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if execCtx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("speech command timed out after %s", timeout)
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("speech command failed: %w", err)
		}
		return "", fmt.Errorf("speech command failed: %w: %s", err, msg)
	}

	return strings.TrimSpace(stdout.String()), nil
}
