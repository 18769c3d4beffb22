package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/askdeskhq/askdesk"
	mcpAdapter "github.com/askdeskhq/askdesk/internal/adapters/mcp"
	"github.com/askdeskhq/askdesk/internal/logging"
	"github.com/askdeskhq/askdesk/pkg/dialog"
	"github.com/askdeskhq/askdesk/pkg/domain"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the inquiry board as an MCP server, so AI agents can browse,
post and answer inquiries as tools.

Supported transports:
- stdio (default): Standard input/output. Ideal for local process integration.
- sse: Server-Sent Events over HTTP. Ideal for remote agents or debuggers.

The --operator flag fixes the server's capability for its whole lifetime.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		operator, _ := cmd.Flags().GetBool("operator")

		store, closeStore, err := openStore(cfg)
		if err != nil {
			log.Fatalf("Error opening store: %v", err)
		}
		defer closeStore()

		logger := logging.New(slog.LevelInfo)
		slog.SetDefault(logger)

		board := askdesk.New(store, dialog.Answers{}, askdesk.WithLogger(logger))

		cap := domain.Visitor
		if operator {
			cap = domain.AsOperator
		}
		srv := mcpAdapter.NewServer(board, cap, askdesk.Version)

		switch transport {
		case "stdio":
			// Keep logs off stdout so they never corrupt JSON-RPC.
			log.SetOutput(os.Stderr)
			slog.Info("starting askdesk MCP server (stdio)", "operator", operator)
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("starting askdesk MCP server (SSE)", "port", port, "operator", operator)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					slog.Error("MCP server execution failed", "err", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().Bool("operator", false, "Run with operator capability")
}
