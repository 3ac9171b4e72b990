// Package commands implements the drdementabase CLI.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/samestrin/drdementabase/internal/config"
	"github.com/samestrin/drdementabase/pkg/output"
)

// Version is set at build time using ldflags
var Version = "0.3.0"

// Global flags accessible to all commands
var (
	GlobalJSONOutput bool
	GlobalMinOutput  bool
	globalVerbose    bool
	globalConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "drdementabase",
	Short: "Dr. Demento playlist catalog builder",
	Long: `drdementabase reads Dr. Demento show transcripts, extracts every track
played on each show and builds a deduplicated catalog of tracks with the
dates they aired.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cmd.ErrOrStderr(), globalVerbose || cfg.Verbose)
		return nil
	},
}

// Execute runs the root command. Cancelling ctx stops a build between shows.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalConfigPath, "config", "", "Config file (.yaml, .yml, .toml)")
	rootCmd.PersistentFlags().BoolVar(&GlobalJSONOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&GlobalMinOutput, "min", false, "Minimal/token-optimized output")
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig reads the --config file, falling back to $DRDEMENTABASE_CONFIG,
// or returns defaults when neither is set.
func loadConfig() (*config.Config, error) {
	path := config.ResolveValue(globalConfigPath, os.Getenv(config.EnvConfigPath))
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// setupLogging routes the default slog logger to w.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func newFormatter(cmd *cobra.Command) *output.Formatter {
	return output.New(GlobalJSONOutput, GlobalMinOutput, cmd.OutOrStdout())
}
