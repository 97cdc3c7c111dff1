package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ic-timon/gapscan/finder"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOut    bool
)

var rootCmd = &cobra.Command{
	Use:   "gapscan",
	Short: "Find the values missing from an almost complete integer domain",
	Long: `gapscan generates, resolves and verifies datasets of the form
"every value of [0, N) except K of them". Resolution uses recursive range
partitioning with checksum recovery and a bounded bitmap, so extra memory
stays independent of N.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML finder config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger returns a text logger on w at debug level when --verbose is set.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads --config, or returns the default config.
func loadConfig(cmd *cobra.Command) (*finder.Config, error) {
	cfg := finder.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = finder.LoadConfig(configPath); err != nil {
			return nil, err
		}
	}
	cfg.Logger = newLogger(cmd.ErrOrStderr())
	return cfg, nil
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
