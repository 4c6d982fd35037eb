package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/budgetgarden/budgetgarden/internal/app"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	application, err := app.NewApplication(ctx, cfg)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}

// signalContext is shared by commands that should stop on Ctrl+C.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
