package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/overlay/internal/config"
)

var (
	version    string
	configPath string
	logFile    string

	cfg     config.Config
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	closers []io.Closer
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Animated modal dialogs and action sheets for the terminal",
	Long: `overlay - present alert dialogs and action sheets over a terminal UI.

Surfaces animate in and out, dim what is behind them, and dismiss through
an action, a backdrop click, or a downward swipe on a sheet.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		for _, c := range closers {
			c.Close()
		}
		closers = nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write debug logs to this file")
}

// initConfig loads the config and installs the logger. The TUI owns the
// terminal, so logs go to --log-file or nowhere.
func initConfig() error {
	res, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = res.Config
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	if logFile == "" {
		return nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	closers = append(closers, f)
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	logger.Info("overlay starting", "version", version, "config", configPath, "profile", cfg.Profile)
	return nil
}
