package mcpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/vacancy/internal/generation"
)

type stubCompleter struct {
	text   string
	err    error
	prompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

// extractText is a helper function to extract text from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

func generateRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "generate-vacancy",
			Arguments: args,
		},
	}
}

func fullArgs() map[string]any {
	return map[string]any{
		"company":      "Fintech startup",
		"stack":        "Go, Kubernetes",
		"conditions":   "Remote, full-time",
		"requirements": "3+ years backend",
		"duties":       "Build payment APIs",
	}
}

func TestGenerateHandlerSuccess(t *testing.T) {
	stub := &stubCompleter{text: "### Role\n- Build APIs"}
	server := New(generation.NewService(stub))

	result, err := server.handleGenerate(context.Background(), generateRequest(fullArgs()))

	require.NoError(t, err)
	require.False(t, result.IsError, extractText(result))
	require.Equal(t, "### Role\n- Build APIs", extractText(result))
	require.Contains(t, stub.prompt, "Стек и технологии: Go, Kubernetes")
}

func TestGenerateHandlerUpstreamFailure(t *testing.T) {
	stub := &stubCompleter{err: &generation.UpstreamError{Status: 429, Message: "rate limited"}}
	server := New(generation.NewService(stub))

	result, err := server.handleGenerate(context.Background(), generateRequest(fullArgs()))

	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, "rate limited", extractText(result))
}

func TestGenerateHandlerMissingArgument(t *testing.T) {
	stub := &stubCompleter{text: "unused"}
	server := New(generation.NewService(stub))

	args := fullArgs()
	delete(args, "duties")
	result, err := server.handleGenerate(context.Background(), generateRequest(args))

	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, extractText(result), "duties")
	require.Empty(t, stub.prompt, "completer must not be called")
}

func TestGenerateHandlerBlankArgument(t *testing.T) {
	stub := &stubCompleter{text: "unused"}
	server := New(generation.NewService(stub))

	args := fullArgs()
	args["stack"] = "   "
	result, err := server.handleGenerate(context.Background(), generateRequest(args))

	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, extractText(result), "Стек и технологии")
}

func TestGenerateHandlerNoArguments(t *testing.T) {
	server := New(generation.NewService(&stubCompleter{}))

	result, err := server.handleGenerate(context.Background(), mcp.CallToolRequest{})

	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestListQuestionsHandler(t *testing.T) {
	server := New(generation.NewService(&stubCompleter{}))

	result, err := server.handleListQuestions(context.Background(), mcp.CallToolRequest{})

	require.NoError(t, err)
	text := extractText(result)
	require.Len(t, strings.Split(text, "\n"), 5)
	require.True(t, strings.HasPrefix(text, "1. О компании и проекте (company)"))
}

func TestHandlerListsToolsOverHTTP(t *testing.T) {
	server := New(generation.NewService(&stubCompleter{}))
	srv := httptest.NewServer(server.Handler())
	defer srv.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/mcp", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	require.Contains(t, string(data), "generate-vacancy")
	require.Contains(t, string(data), "list-questions")
}
