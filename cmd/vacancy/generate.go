package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/vacancy/internal/export"
	"github.com/mark3labs/vacancy/internal/logger"
	"github.com/mark3labs/vacancy/internal/markdown"
	"github.com/mark3labs/vacancy/internal/wizard"
)

var generateFlags struct {
	answers     []string
	answersFile string
	out         string
	html        bool
	render      bool
	list        bool
	proxyURL    string
	local       bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a posting without the interactive wizard",
	Long: `Generate a posting without the interactive wizard.

Answers are given in question order, either as five --answer flags or as a
YAML file with --answers. The file may be a plain list or a mapping with the
keys company, stack, conditions, requirements and duties.

The posting is printed to stdout unless --out names a file or directory.`,
	Example: `  vacancy generate --list
  vacancy generate -a "Fintech startup" -a "Go, Kubernetes" -a "Remote" -a "3+ years" -a "Payment APIs"
  vacancy generate --answers answers.yml --out postings/ --html`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVarP(&generateFlags.answers, "answer", "a", nil, "Answer, repeat once per question in order")
	generateCmd.Flags().StringVarP(&generateFlags.answersFile, "answers", "f", "", "YAML file with the answers")
	generateCmd.Flags().StringVarP(&generateFlags.out, "out", "o", "", "Write the posting to this file or directory")
	generateCmd.Flags().BoolVar(&generateFlags.html, "html", false, "Write HTML instead of markdown")
	generateCmd.Flags().BoolVarP(&generateFlags.render, "render", "r", false, "Render markdown for the terminal")
	generateCmd.Flags().BoolVarP(&generateFlags.list, "list", "l", false, "List the questions and exit")
	generateCmd.Flags().StringVarP(&generateFlags.proxyURL, "proxy-url", "u", "", "Generation proxy URL (default: http://localhost:8080)")
	generateCmd.Flags().BoolVar(&generateFlags.local, "local", false, "Generate in-process instead of using the proxy")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateFlags.list {
		return listQuestions(cmd.OutOrStdout())
	}

	answers := generateFlags.answers
	if generateFlags.answersFile != "" {
		if len(answers) > 0 {
			return fmt.Errorf("use either --answer or --answers, not both")
		}
		var err error
		answers, err = readAnswers(generateFlags.answersFile)
		if err != nil {
			return err
		}
	}
	if err := wizard.Validate(answers); err != nil {
		return errors.New(wizard.ValidationMessage(err))
	}

	cfg, err := loadConfig(cmd, map[string]string{
		"proxy_url": "proxy-url",
	})
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFile, os.Stderr); err != nil {
		return err
	}

	gen, err := newGenerator(cfg, generateFlags.local)
	if err != nil {
		return err
	}

	res := gen.Generate(context.Background(), answers)
	if res.Failed() {
		return errors.New(res.Error)
	}

	format := export.Markdown
	if generateFlags.html {
		format = export.HTML
	}

	if generateFlags.out != "" {
		path, err := writeOutput(generateFlags.out, answers[0], res.Text, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Posting written to: %s\n", path)
		return nil
	}

	out := res.Text
	switch {
	case generateFlags.html:
		body, err := markdown.ToHTML(res.Text)
		if err != nil {
			return err
		}
		out = markdown.Document(answers[0], body)
	case generateFlags.render:
		out = markdown.Render(res.Text, 100)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
	return nil
}

// listQuestions prints the questions with their hints.
func listQuestions(w io.Writer) error {
	for i, q := range wizard.Questions {
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, q.Label, q.Hint); err != nil {
			return err
		}
	}
	return nil
}

// answerKeys are the mapping keys accepted in an answers file, in question order.
var answerKeys = []string{"company", "stack", "conditions", "requirements", "duties"}

// readAnswers loads answers from a YAML list or mapping.
func readAnswers(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}

	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var byKey map[string]string
	if err := yaml.Unmarshal(data, &byKey); err != nil {
		return nil, fmt.Errorf("failed to parse answers: expected a list or a mapping: %w", err)
	}
	answers := make([]string, len(answerKeys))
	for i, key := range answerKeys {
		answers[i] = byKey[key]
	}
	return answers, nil
}

// writeOutput writes the posting to out. A directory (existing, or given with
// a trailing separator) receives a slugged file name.
func writeOutput(out, title, content string, format export.Format) (string, error) {
	info, err := os.Stat(out)
	isDir := (err == nil && info.IsDir()) || strings.HasSuffix(out, string(filepath.Separator))
	if isDir {
		return export.Write(out, title, content, format)
	}

	data := content
	if format == export.HTML {
		body, err := markdown.ToHTML(content)
		if err != nil {
			return "", err
		}
		data = markdown.Document(title, body)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(out, []byte(data), 0644); err != nil {
		return "", fmt.Errorf("failed to write posting: %w", err)
	}
	return out, nil
}
