package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hostsnap/hostsnap/internal/agg"
	"github.com/hostsnap/hostsnap/internal/config"
	"github.com/hostsnap/hostsnap/internal/probes"
	"github.com/hostsnap/hostsnap/internal/toolrun"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X github.com/hostsnap/hostsnap/cmd.Version=..."
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "hostsnap",
	Short: "Point-in-time host health snapshots",
	Long: `Hostsnap fans out to the host's diagnostic tools (lsblk, smartctl,
zpool, zfs, free, docker) concurrently and assembles one structured
snapshot per run, either as a one-shot JSON report or on demand from a
long-running HTTP listener.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file path (or HOSTSNAP_CONFIG env)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig builds the effective configuration for a command and sets up
// logging from it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	setupLogging(cfg.LogLevel)

	return cfg, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// newAggregator wires the runner and catalog for one process lifetime.
func newAggregator(cfg *config.Config) (*agg.Aggregator, error) {
	runner := toolrun.NewExecRunner(cfg.MaxConcurrent)
	aggregator, err := agg.New(runner, probes.Catalog(cfg.Pool), agg.Options{
		DefaultTimeout: cfg.DefaultTimeout(),
		ProbeTimeouts:  cfg.ProbeTimeouts(),
	})
	if err != nil {
		return nil, fmt.Errorf("build aggregator: %w", err)
	}
	return aggregator, nil
}
