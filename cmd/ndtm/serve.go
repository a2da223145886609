package main

import (
	"context"
	"fmt"

	"github.com/aretw0/ndtm/internal/cli"
	"github.com/aretw0/ndtm/internal/service"
	httpAdapter "github.com/aretw0/ndtm/pkg/adapters/http"
	"github.com/aretw0/ndtm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes simulation, formatting and program storage as a JSON API over HTTP.
Programs are kept in memory unless a Redis address is configured (NDTM_REDIS_ADDR).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		logger := serverLogger(cfg)

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		store, closeStore, err := cli.OpenStore(ctx, *cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		reg := prometheus.NewRegistry()
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		svc := service.New(store,
			service.WithMetrics(metrics),
			service.WithDialect(cfg.Dialect),
			service.WithLogger(logger),
		)

		if dir, _ := cmd.Flags().GetString("programs"); dir != "" {
			n, err := cli.Seed(ctx, svc, dir)
			if err != nil {
				return err
			}
			logger.Info("programs loaded", "dir", dir, "count", n)
		}

		handler := httpAdapter.NewHandler(svc,
			httpAdapter.WithMetricsHandler(reg),
			httpAdapter.WithLogger(logger),
		)
		return httpAdapter.ListenAndServe(ctx, cfg.Server.Addr, handler, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from config, :8080)")
	serveCmd.Flags().String("programs", "", "Directory of *.tm programs to store at startup")
}
