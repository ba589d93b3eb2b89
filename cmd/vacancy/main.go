package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mark3labs/vacancy/internal/config"
	"github.com/mark3labs/vacancy/internal/logger"
	"github.com/mark3labs/vacancy/internal/tui/theme"
)

const (
	logoText1 = "█ █ ▄▀█ █▀▀ ▄▀█ █▄ █ █▀▀ █▄█"
	logoText2 = "▀▄▀ █▀█ █▄▄ █▀█ █ ▀█ █▄▄  █ "
)

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	noColor bool
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vacancy",
	Short: "Questionnaire wizard that drafts job postings with an LLM",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootFlags.noColor {
			lipgloss.Writer.Profile = colorprofile.Ascii
		}
	},
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

vacancy walks a recruiter through five questions about an opening and turns
the answers into a markdown job posting using an OpenAI-compatible model.
The wizard talks to a small generation proxy (vacancy serve) that holds the
API key, exposes an HTTP API and an MCP endpoint for agents.`

	rootCmd.PersistentFlags().BoolVar(&rootFlags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig loads configuration with the named command flags bound to their
// config keys so that explicitly set flags take precedence.
func loadConfig(cmd *cobra.Command, flagKeys map[string]string) (*config.Config, error) {
	v := viper.New()
	for key, name := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	cfg, err := config.LoadWith(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
