package generation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mark3labs/vacancy/internal/config"
)

var exampleAnswers = []string{
	"Fintech startup",
	"Go, Kubernetes",
	"Remote, full-time",
	"3+ years backend",
	"Build payment APIs",
}

type upstreamRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// newUpstream starts a stub chat-completions API. The handler receives the
// decoded request and writes the response.
func newUpstream(t *testing.T, handler func(w http.ResponseWriter, req upstreamRequest)) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req upstreamRequest
		require.NoError(t, json.Unmarshal(body, &req))

		w.Header().Set("Content-Type", "application/json")
		handler(w, req)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testConfig(baseURL string) *config.Config {
	cfg := config.Defaults()
	cfg.APIKey = "sk-test"
	cfg.APIBaseURL = baseURL
	cfg.MaxRetries = 0
	return cfg
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4.1",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(exampleAnswers)
	require.NoError(t, err)

	for _, a := range exampleAnswers {
		require.Contains(t, prompt, a)
	}
	require.True(t, strings.HasPrefix(prompt, "Сформируй профессиональное описание вакансии для hh.ru"))
	require.Contains(t, prompt, "О компании и проекте: Fintech startup\n")
	require.Contains(t, prompt, "Чем предстоит заниматься: Build payment APIs\n")
	require.Contains(t, prompt, "Заголовки — через ###")
	require.Contains(t, prompt, "Списки — через -")
	require.Contains(t, prompt, "Выделения — через **")
	require.Contains(t, prompt, "Не добавляй пустых строк между пунктами списка.")

	again, _ := BuildPrompt(exampleAnswers)
	require.Equal(t, prompt, again, "prompt must be deterministic")
}

func TestBuildPrompt_WrongCount(t *testing.T) {
	_, err := BuildPrompt([]string{"one"})
	require.ErrorIs(t, err, ErrAnswerCount)
}

func TestOpenAICompleter_Success(t *testing.T) {
	var got upstreamRequest
	srv, _ := newUpstream(t, func(w http.ResponseWriter, req upstreamRequest) {
		got = req
		_, _ = io.WriteString(w, completion("### Role\n- Build APIs"))
	})

	c, err := NewOpenAICompleter(testConfig(srv.URL))
	require.NoError(t, err)

	svc := NewService(c)
	result := svc.Generate(context.Background(), exampleAnswers)

	require.False(t, result.Failed())
	require.Equal(t, "### Role\n- Build APIs", result.Text)

	require.Equal(t, "gpt-4.1", got.Model)
	require.Equal(t, 900, got.MaxTokens)
	require.InDelta(t, 0.7, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 1)
	require.Equal(t, "user", got.Messages[0].Role)
	for _, a := range exampleAnswers {
		require.Contains(t, got.Messages[0].Content, a)
	}
}

func TestOpenAICompleter_UpstreamError(t *testing.T) {
	srv, _ := newUpstream(t, func(w http.ResponseWriter, _ upstreamRequest) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"rate limited"}}`)
	})

	c, err := NewOpenAICompleter(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "prompt")
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, http.StatusTooManyRequests, upstream.Status)
	require.Equal(t, "rate limited", upstream.Message)

	result := NewService(c).Generate(context.Background(), exampleAnswers)
	require.Equal(t, Result{Text: "rate limited", Error: "rate limited"}, result)
}

func TestOpenAICompleter_UpstreamErrorWithoutMessage(t *testing.T) {
	srv, _ := newUpstream(t, func(w http.ResponseWriter, _ upstreamRequest) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `{}`)
	})

	c, err := NewOpenAICompleter(testConfig(srv.URL))
	require.NoError(t, err)

	result := NewService(c).Generate(context.Background(), exampleAnswers)
	require.Equal(t, MsgUpstreamFailed, result.Error)
	require.Equal(t, MsgUpstreamFailed, result.Text)
}

func TestOpenAICompleter_RetriesServerErrors(t *testing.T) {
	var n atomic.Int32
	srv, calls := newUpstream(t, func(w http.ResponseWriter, _ upstreamRequest) {
		if n.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"error":{"message":"overloaded"}}`)
			return
		}
		_, _ = io.WriteString(w, completion("### Вакансия"))
	})

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1
	c, err := NewOpenAICompleter(cfg)
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "### Вакансия", text)
	require.Equal(t, int32(2), calls.Load())
}

func TestOpenAICompleter_EmptyChoices(t *testing.T) {
	srv, _ := newUpstream(t, func(w http.ResponseWriter, _ upstreamRequest) {
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","choices":[]}`)
	})

	c, err := NewOpenAICompleter(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrEmptyCompletion)

	result := NewService(c).Generate(context.Background(), exampleAnswers)
	require.Equal(t, MsgNoContent, result.Error)
}

func TestNewOpenAICompleter_RequiresKey(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.APIKey = ""

	_, err := NewOpenAICompleter(cfg)
	require.Error(t, err)
}

type failingCompleter struct{ err error }

func (f failingCompleter) Complete(context.Context, string) (string, error) {
	return "", f.err
}

func TestService_TransportFailure(t *testing.T) {
	svc := NewService(failingCompleter{err: errors.New("dial tcp: connection refused")})

	result := svc.Generate(context.Background(), exampleAnswers)

	require.True(t, result.Failed())
	require.Equal(t, "Ошибка сервера: dial tcp: connection refused", result.Text)
	require.Equal(t, result.Text, result.Error)
}

func TestService_WrongAnswerCount(t *testing.T) {
	svc := NewService(EchoCompleter{})

	result := svc.Generate(context.Background(), []string{"only one"})

	require.True(t, result.Failed())
	require.True(t, strings.HasPrefix(result.Error, MsgServerPrefix))
}

func TestEchoCompleter(t *testing.T) {
	result := NewService(EchoCompleter{}).Generate(context.Background(), exampleAnswers)

	require.False(t, result.Failed())
	require.True(t, strings.HasPrefix(result.Text, "### Вакансия\n"))
	require.Contains(t, result.Text, "### Стек и технологии\n- Go, Kubernetes")
	require.NotContains(t, result.Text, "Оформи текст")
}

func TestNewCompleter(t *testing.T) {
	cfg := config.Defaults()
	cfg.Completer = config.CompleterEcho
	c, err := NewCompleter(cfg)
	require.NoError(t, err)
	require.IsType(t, EchoCompleter{}, c)

	cfg.Completer = config.CompleterOpenAI
	cfg.APIKey = "sk-test"
	c, err = NewCompleter(cfg)
	require.NoError(t, err)
	require.IsType(t, &OpenAICompleter{}, c)

	cfg.Completer = "bogus"
	_, err = NewCompleter(cfg)
	require.Error(t, err)
}
