// Package generation turns questionnaire answers into a job posting by way of
// an external chat-completion model.
package generation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/vacancy/internal/wizard"
)

// ErrAnswerCount is returned when the number of answers does not match the questionnaire.
var ErrAnswerCount = errors.New("wrong number of answers")

const promptHeader = "Сформируй профессиональное описание вакансии для hh.ru на основе следующих данных:"

// formatRules instructs the model to emit strict markdown.
const formatRules = `Оформи текст строго в markdown:
- Заголовки — через ###
- Списки — через -
- Выделения — через **
- Не используй просто абзацы для списков, только списки!
- Не добавляй пустых строк между пунктами списка.`

// BuildPrompt interpolates answers verbatim into the generation prompt.
func BuildPrompt(answers []string) (string, error) {
	if len(answers) != len(wizard.Questions) {
		return "", fmt.Errorf("%w: expected %d, got %d", ErrAnswerCount, len(wizard.Questions), len(answers))
	}

	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\n\n")
	for i, q := range wizard.Questions {
		sb.WriteString(q.Label)
		sb.WriteString(": ")
		sb.WriteString(answers[i])
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(formatRules)

	return sb.String(), nil
}
