package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/kestrel/pkg/adapters/mcp"
	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/spf13/cobra"
)

// mcpCmd exposes the kernel as an MCP server, over stdio by default or
// over SSE when --port is given.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the kernel as a Model Context Protocol server",
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")

		k, _, err := setup(cmd, domain.LifecycleHooks{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		server := mcp.NewServer(k)

		if port > 0 {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := server.ServeSSE(ctx, port); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if err := server.ServeStdio(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().Int("port", 0, "Serve over SSE on this port instead of stdio")
}
