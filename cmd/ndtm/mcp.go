package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aretw0/ndtm/internal/cli"
	"github.com/aretw0/ndtm/internal/service"
	"github.com/aretw0/ndtm/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts ndtm as an MCP Server so AI agents can simulate, format and graph programs as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("transport") {
			cfg.MCP.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("port") {
			cfg.MCP.Port, _ = cmd.Flags().GetInt("port")
		}

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		log.SetOutput(os.Stderr)
		logger := serverLogger(cfg)
		slog.SetDefault(logger)

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		store, closeStore, err := cli.OpenStore(ctx, *cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		svc := service.New(store, service.WithDialect(cfg.Dialect), service.WithLogger(logger))
		if dir, _ := cmd.Flags().GetString("programs"); dir != "" {
			if _, err := cli.Seed(ctx, svc, dir); err != nil {
				return err
			}
		}

		srv := mcp.NewServer(svc, logger)

		switch cfg.MCP.Transport {
		case "stdio":
			logger.Info("Starting ndtm MCP Server (Stdio)...")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting ndtm MCP Server (SSE)", "port", cfg.MCP.Port)
			if err := srv.ServeSSE(ctx, cfg.MCP.Port); err != nil {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", cfg.MCP.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("programs", "", "Directory of *.tm programs to store at startup")
}
