package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/cia-forge/internal/service/builder"
)

// batchCmd builds one CIA package per game directory under a common root.
var batchCmd = &cobra.Command{
	Use:   "batch [games-dir]",
	Short: "Build CIA packages for every game directory under a common root",
	Long: "Build CIA packages for every immediate subdirectory of games-dir that " +
		"contains an RPG Maker 2000/2003 game. Games with incomplete metadata or " +
		"assets are skipped with a message; a failing build aborts that game only. " +
		"The exit code is zero when the batch completes, even with skips.",
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		return builder.RunBatch(ctx, args[0], buildOptions())
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(batchCmd)
}
