package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mark3labs/vacancy/internal/generation"
	"github.com/mark3labs/vacancy/internal/logger"
	"github.com/mark3labs/vacancy/internal/server"
)

var serveFlags struct {
	addr      string
	cors      []string
	completer string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the generation proxy",
	Long: `Run the generation proxy.

The proxy accepts POST /api/generate-vacancy with five answers, builds the
prompt, calls the completion API and always answers 200 with either the
posting or a readable error. It also serves GET /api/questions, GET
/api/health and an MCP endpoint at /mcp.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.addr, "addr", "a", "", "Listen address (default: :8080)")
	serveCmd.Flags().StringSliceVar(&serveFlags.cors, "cors", nil, "Allowed CORS origins (default: *)")
	serveCmd.Flags().StringVar(&serveFlags.completer, "completer", "", "Completion backend: openai or echo")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, map[string]string{
		"server_addr":  "addr",
		"cors_origins": "cors",
		"completer":    "completer",
	})
	if err != nil {
		return err
	}

	if err := logger.Setup(cfg.LogLevel, cfg.LogFile, os.Stderr); err != nil {
		return err
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	completer, err := newCompleter(cfg)
	if err != nil {
		return err
	}
	srv := server.New(cfg, generation.NewService(completer))

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Using %s completer with model %s", cfg.Completer, cfg.Model)
	return srv.Run(ctx)
}
