package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mark3labs/vacancy/internal/wizard"
)

// answerParams are the generate-vacancy arguments in questionnaire order.
var answerParams = []struct {
	name        string
	description string
}{
	{"company", "About the company and the project"},
	{"stack", "Technology stack"},
	{"conditions", "Working conditions: format, employment, salary"},
	{"requirements", "Candidate requirements"},
	{"duties", "What the hire will be doing"},
}

func (s *Server) registerTools() {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Generate a markdown job posting for hh.ru from five questionnaire answers"),
	}
	for _, p := range answerParams {
		opts = append(opts, mcp.WithString(p.name, mcp.Required(), mcp.Description(p.description)))
	}
	s.mcpServer.AddTool(mcp.NewTool("generate-vacancy", opts...), s.handleGenerate)

	s.mcpServer.AddTool(
		mcp.NewTool("list-questions",
			mcp.WithDescription("List the questionnaire sections in order"),
		),
		s.handleListQuestions,
	)
}

// handleGenerate collects the five answers and runs a generation.
func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("no arguments provided"), nil
	}

	answers := make([]string, 0, len(answerParams))
	for _, p := range answerParams {
		v, ok := args[p.name].(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("%s parameter must be a string", p.name)), nil
		}
		answers = append(answers, v)
	}

	if err := wizard.Validate(answers); err != nil {
		return mcp.NewToolResultError(wizard.ValidationMessage(err)), nil
	}

	result := s.gen.Generate(ctx, answers)
	if result.Failed() {
		return mcp.NewToolResultError(result.Error), nil
	}
	return mcp.NewToolResultText(result.Text), nil
}

func (s *Server) handleListQuestions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for i, q := range wizard.Questions {
		fmt.Fprintf(&sb, "%d. %s (%s): %s\n", i+1, q.Label, answerParams[i].name, q.Hint)
	}
	return mcp.NewToolResultText(strings.TrimRight(sb.String(), "\n")), nil
}
