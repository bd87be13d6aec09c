package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/cia-forge/internal/service/builder"
)

// gameCmd builds one CIA package from a single game directory.
var gameCmd = &cobra.Command{
	Use:   "game [game-dir]",
	Short: "Build a CIA package from a single game directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		return builder.RunGame(ctx, args[0], buildOptions())
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(gameCmd)
}
