package commands

import (
	"catalog-crawler/internal/components/telemetry"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	providers  telemetry.Otel
)

var rootCmd = &cobra.Command{
	Use:   "catalog-cli",
	Short: "catalog-cli crawls a program's catalog pages into a course and specialization registry.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)
		var err error
		providers, err = telemetry.SetupOtelFromEnv(cmd.Context(), "catalog-cli")
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := providers.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
	SilenceUsage: true,
}

func init() {
	configPath = rootCmd.PersistentFlags().StringP("config", "c", "config.json5", "The crawler configuration file.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and dump HTTP exchanges.")
}

// ExecuteContext runs the CLI and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
