package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cori/Memex/internal/adapters/driving/rpc"
	"github.com/cori/Memex/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the RPC server",
	Long: `Start the MCP server exposing the search and index operations to
front-end clients.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default)
  memex serve

  # HTTP mode
  memex serve --port 8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &rpc.Ports{
		Search: searchService,
		Index:  indexService,
	}

	server, err := rpc.NewServer(ports)
	if err != nil {
		return err
	}

	// Pick up config edits while the server runs.
	if watcher, ok := configStore.(interface {
		Watch(context.Context, func()) error
	}); ok {
		go func() {
			if err := watcher.Watch(cmd.Context(), func() {
				logger.SetVerbose(configStore.GetBool("logging.verbose") || verbose)
			}); err != nil && cmd.Context().Err() == nil {
				logger.Warn("Config watcher stopped: %v", err)
			}
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "RPC server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
