package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hostsnap/hostsnap/internal/probes"
	"github.com/hostsnap/hostsnap/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the snapshot HTTP listener",
	Long: `Serve answers on-demand snapshot queries. Every GET /api/snapshot
request runs an independent aggregation cycle; concurrent requests share
nothing beyond the read-only probe catalog and the subprocess limit.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	serveCmd.Flags().String("auth-token", "", "Bearer token for the API (or HOSTSNAP_AUTH_TOKEN env)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutdown signal received")
		cancel()
	}()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.ListenAddr = addr
	}
	if token, _ := cmd.Flags().GetString("auth-token"); token != "" {
		cfg.AuthToken = token
	}

	aggregator, err := newAggregator(cfg)
	if err != nil {
		return err
	}

	server := web.NewServer(aggregator, probes.Descriptors(cfg.Pool), cfg)
	return server.Run(ctx)
}
