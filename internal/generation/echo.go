package generation

import (
	"context"
	"strings"

	"github.com/mark3labs/vacancy/internal/wizard"
)

// EchoCompleter is a local stand-in that never calls a model. It lays the
// answers found in the prompt out as a markdown posting.
type EchoCompleter struct{}

func (EchoCompleter) Complete(_ context.Context, prompt string) (string, error) {
	var sb strings.Builder
	sb.WriteString("### Вакансия\n")

	for _, line := range strings.Split(prompt, "\n") {
		for _, q := range wizard.Questions {
			prefix := q.Label + ": "
			if strings.HasPrefix(line, prefix) {
				sb.WriteString("### ")
				sb.WriteString(q.Label)
				sb.WriteString("\n- ")
				sb.WriteString(strings.TrimSpace(strings.TrimPrefix(line, prefix)))
				sb.WriteString("\n")
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}
