package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/boardtools/miro-mcp/internal/instrumentation"
	"github.com/boardtools/miro-mcp/internal/logging"
	"github.com/boardtools/miro-mcp/internal/miro"
	"github.com/boardtools/miro-mcp/internal/resources"
	"github.com/boardtools/miro-mcp/internal/server"
	"github.com/boardtools/miro-mcp/internal/tools/board_tools"
	"github.com/boardtools/miro-mcp/internal/tools/connector_tools"
	"github.com/boardtools/miro-mcp/internal/tools/group_tools"
	"github.com/boardtools/miro-mcp/internal/tools/item_tools"
	"github.com/boardtools/miro-mcp/internal/tools/member_tools"
	"github.com/boardtools/miro-mcp/internal/tools/tag_tools"
	"github.com/boardtools/miro-mcp/internal/tools/webhook_tools"
)

// MetricsConfig holds metrics server settings.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// resolveAccessToken returns the access token from the flag value or the
// MIRO_ACCESS_TOKEN environment variable. The flag takes precedence.
func resolveAccessToken(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if token := os.Getenv("MIRO_ACCESS_TOKEN"); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("no access token configured: set --access-token or MIRO_ACCESS_TOKEN")
}

// resolveBaseURL returns the API base URL from the flag value or the
// MIRO_BASE_URL environment variable. Empty means the client default.
func resolveBaseURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("MIRO_BASE_URL")
}

func newServeCmd() *cobra.Command {
	var (
		debugMode   bool
		transport   string
		httpAddr    string
		yolo        bool
		accessToken string
		baseURL     string
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Miro whiteboard
tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Safety Mode:
  By default, the server operates in read-only mode, exposing only board,
  item, connector, tag, group, and member reads.
  Use --yolo to enable write operations (creating, updating, and deleting
  boards and their content).

Authentication:
  A Miro access token is required:
    --access-token flag OR MIRO_ACCESS_TOKEN env var
  The flag takes precedence when both are set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := resolveAccessToken(accessToken)
			if err != nil {
				return err
			}

			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}

			return runServe(transport, debugMode, httpAddr, yolo, token, resolveBaseURL(baseURL), metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (board, item, and member mutation). Default is read-only mode.")
	cmd.Flags().StringVar(&accessToken, "access-token", "", "Miro access token. Can also use MIRO_ACCESS_TOKEN env var.")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Miro API base URL (for testing against a mock). Can also use MIRO_BASE_URL env var.")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport string, debugMode bool, httpAddr string, yolo bool, accessToken, baseURL string, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load metrics config from environment if not set via flags
	if !metricsConfig.Enabled {
		if os.Getenv("METRICS_ENABLED") == "true" {
			metricsConfig.Enabled = true
		}
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == server.DefaultMetricsAddr {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	if debugMode {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		if transport != "stdio" {
			slog.Debug("resolved credentials", "token", logging.SanitizeToken(accessToken))
		}
	}

	// Create the remote client with the configured credentials
	client, err := miro.NewClient(miro.Config{
		AccessToken: accessToken,
		BaseURL:     baseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create Miro client: %w", err)
	}
	if debugMode && transport != "stdio" {
		slog.Debug("miro client configured", "endpoint", client.BaseURL())
	}

	serverContext, err := server.NewServerContext(shutdownCtx, client)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			if transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
	}

	defer func() {
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				if transport != "stdio" {
					log.Printf("Error during metrics server shutdown: %v", err)
				}
			}
		}
	}()

	mcpSrv := mcpserver.NewMCPServer("miro-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	// readOnly is the inverse of yolo
	readOnly := !yolo

	// Log the mode for visibility (only for non-stdio transports)
	if transport != "stdio" {
		if readOnly {
			log.Println("Starting server in READ-ONLY mode (use --yolo to enable write operations)")
		} else {
			log.Println("Starting server with WRITE operations enabled (--yolo flag is set)")
		}
	}

	if err := registerAllTools(mcpSrv, serverContext, readOnly); err != nil {
		return err
	}

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		fmt.Printf("Starting miro-mcp server with %s transport...\n", transport)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, httpAddr, metricsConfig)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Boards",
			register: func() error {
				return board_tools.RegisterBoardTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Items",
			register: func() error {
				return item_tools.RegisterItemTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Connectors",
			register: func() error {
				return connector_tools.RegisterConnectorTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Tags",
			register: func() error {
				return tag_tools.RegisterTagTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Groups",
			register: func() error {
				return group_tools.RegisterGroupTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Members",
			register: func() error {
				return member_tools.RegisterMemberTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Webhooks",
			register: func() error {
				return webhook_tools.RegisterWebhookTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Board Resources",
			register: func() error {
				return resources.RegisterBoardResources(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, addr string, metricsConfig MetricsConfig) error {
	streamableServer := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath("/mcp"),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamableServer)

	// Health check endpoints for orchestration probes
	healthChecker := server.NewHealthChecker(serverContext)
	healthChecker.RegisterHealthEndpoints(mux)
	healthChecker.SetReady(true)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Streamable HTTP server starting on %s\n", addr)
	fmt.Printf("  HTTP endpoint: /mcp\n")
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if metricsConfig.Enabled {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", metricsConfig.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}
