package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mark3labs/vacancy/internal/client"
	"github.com/mark3labs/vacancy/internal/config"
	"github.com/mark3labs/vacancy/internal/generation"
	"github.com/mark3labs/vacancy/internal/logger"
	"github.com/mark3labs/vacancy/internal/speech"
	"github.com/mark3labs/vacancy/internal/tui/vacancy"
)

var wizardFlags struct {
	proxyURL string
	local    bool
	export   string
}

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Answer the questionnaire and edit the generated posting",
	Long: `Answer the questionnaire and edit the generated posting.

The wizard asks five questions, sends the answers to the generation proxy
and shows the posting as rendered markdown. From there the posting can be
edited in place or in $EDITOR, copied to the clipboard and saved as
markdown or HTML. Voice input is available when speech_command is set.

Use --local to generate in-process instead of going through a proxy.`,
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().StringVarP(&wizardFlags.proxyURL, "proxy-url", "u", "", "Generation proxy URL (default: http://localhost:8080)")
	wizardCmd.Flags().BoolVar(&wizardFlags.local, "local", false, "Generate in-process instead of using the proxy")
	wizardCmd.Flags().StringVarP(&wizardFlags.export, "export-dir", "o", "", "Directory for saved postings (default: .)")
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, map[string]string{
		"proxy_url":  "proxy-url",
		"export_dir": "export-dir",
	})
	if err != nil {
		return err
	}

	// The wizard owns the terminal; log only to a file.
	if err := logger.Setup(cfg.LogLevel, cfg.LogFile, nil); err != nil {
		return err
	}

	gen, err := newGenerator(cfg, wizardFlags.local)
	if err != nil {
		return err
	}

	rec, ok := speech.Detect(cfg)
	if !ok {
		logger.Info("Voice input disabled")
	}
	adapter := speech.NewAdapter(rec, cfg.Locale)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return vacancy.Run(ctx, cfg, gen, adapter)
}

// newGenerator returns the proxy client, or the in-process service when
// local is set.
func newGenerator(cfg *config.Config, local bool) (vacancy.Generator, error) {
	if !local {
		logger.Debug("Using generation proxy at %s", cfg.ProxyURL)
		return client.New(cfg.ProxyURL, cfg.RequestTimeout), nil
	}
	completer, err := newCompleter(cfg)
	if err != nil {
		return nil, err
	}
	return generation.NewService(completer), nil
}

// newCompleter builds the configured completion backend. Without a config
// file or an API key the openai backend cannot work, so point at setup.
func newCompleter(cfg *config.Config) (generation.Completer, error) {
	if !config.Exists() && cfg.Completer == config.CompleterOpenAI && cfg.APIKey == "" {
		return nil, fmt.Errorf("no configuration found\n\nRun 'vacancy setup' to create a config file and set OPENAI_API_KEY, or use the echo completer")
	}
	completer, err := generation.NewCompleter(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create completer: %w", err)
	}
	return completer, nil
}
