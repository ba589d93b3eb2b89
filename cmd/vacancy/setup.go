package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mark3labs/vacancy/internal/config"
)

var setupFlags struct {
	project   bool
	force     bool
	model     string
	completer string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create vacancy configuration file",
	Long: `Create a vacancy configuration file with sensible defaults.

By default, creates a global config at ~/.config/vacancy/vacancy.yml.
Use --project to create a project-local config in the current directory.
The API key is never written; set OPENAI_API_KEY or VACANCY_API_KEY instead.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVarP(&setupFlags.model, "model", "m", config.DefaultModel, "Completion model")
	setupCmd.Flags().StringVar(&setupFlags.completer, "completer", config.CompleterOpenAI, "Completion backend: openai or echo")
}

func runSetup(cmd *cobra.Command, args []string) error {
	// Determine target path
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	// Check if config already exists
	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Defaults()
	cfg.Model = setupFlags.model
	cfg.Completer = setupFlags.completer
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Write config to target location
	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'vacancy serve' and then 'vacancy wizard' to get started.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
