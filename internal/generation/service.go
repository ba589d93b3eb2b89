package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/vacancy/internal/config"
	"github.com/mark3labs/vacancy/internal/logger"
)

// User-facing failure texts.
const (
	MsgUpstreamFailed = "Ошибка генерации (OpenAI)"
	MsgNoContent      = "Ошибка генерации (нет ответа)"
	MsgServerPrefix   = "Ошибка сервера: "
	MsgUnknown        = "Неизвестная ошибка"
)

// Result is the outcome of one generation. Text always carries something to
// show: the posting on success or the failure message in its place. Error is
// set only on failure.
type Result struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Failed reports whether the result describes a failure.
func (r Result) Failed() bool {
	return r.Error != ""
}

func failure(msg string) Result {
	return Result{Text: msg, Error: msg}
}

// Service builds prompts and forwards them to a Completer.
type Service struct {
	completer Completer
}

// NewService returns a Service backed by c.
func NewService(c Completer) *Service {
	return &Service{completer: c}
}

// NewCompleter picks the backend named by cfg.Completer.
func NewCompleter(cfg *config.Config) (Completer, error) {
	switch cfg.Completer {
	case config.CompleterEcho:
		return EchoCompleter{}, nil
	case config.CompleterOpenAI, "":
		return NewOpenAICompleter(cfg)
	default:
		return nil, fmt.Errorf("unknown completer %q", cfg.Completer)
	}
}

// Generate never fails outright; every error is folded into the Result.
func (s *Service) Generate(ctx context.Context, answers []string) Result {
	prompt, err := BuildPrompt(answers)
	if err != nil {
		logger.Warn("generation: rejected request: %v", err)
		return failure(MsgServerPrefix + err.Error())
	}

	text, err := s.completer.Complete(ctx, prompt)
	if err == nil {
		logger.Debug("generation: %d bytes returned", len(text))
		return Result{Text: text}
	}

	var upstream *UpstreamError
	switch {
	case errors.As(err, &upstream):
		logger.Warn("generation: %v", upstream)
		if upstream.Message == "" {
			return failure(MsgUpstreamFailed)
		}
		return failure(upstream.Message)
	case errors.Is(err, ErrEmptyCompletion):
		logger.Warn("generation: upstream returned no content")
		return failure(MsgNoContent)
	default:
		logger.Error("generation: %v", err)
		detail := err.Error()
		if detail == "" {
			detail = MsgUnknown
		}
		return failure(MsgServerPrefix + detail)
	}
}
