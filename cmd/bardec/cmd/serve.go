package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/strichware/bardec/internal/server"
)

// serveCmd starts the HTTP decode server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the decode API",
	Long: `Start an HTTP server exposing the decode pipeline.

Endpoints:
  POST   /decode    - Decode an uploaded image (multipart or base64 JSON)
  GET    /scans     - List recorded scans
  DELETE /scans     - Clear the scan log
  GET    /products  - Look up product names for payloads
  POST   /products  - Register a product name
  GET    /ws/scans  - WebSocket feed of new scans
  GET    /health    - Health check
  GET    /metrics   - Prometheus metrics

Examples:
  bardec serve
  bardec serve --port 8080
  bardec serve --host 0.0.0.0 --rate-limit 60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		corsOrigin := cfg.Server.CORSOrigin
		if cmd.Flags().Changed("cors-origin") {
			corsOrigin, _ = cmd.Flags().GetString("cors-origin")
		}
		maxUpload := cfg.Server.MaxUploadMB
		if cmd.Flags().Changed("max-upload-size") {
			maxUpload, _ = cmd.Flags().GetInt("max-upload-size")
		}
		timeout := cfg.Server.TimeoutSec
		if cmd.Flags().Changed("timeout") {
			timeout, _ = cmd.Flags().GetInt("timeout")
		}
		shutdownTimeout := cfg.Server.ShutdownTimeout
		if cmd.Flags().Changed("shutdown-timeout") {
			shutdownTimeout, _ = cmd.Flags().GetInt("shutdown-timeout")
		}
		rateLimit := cfg.Server.RateLimitPerMin
		if cmd.Flags().Changed("rate-limit") {
			rateLimit, _ = cmd.Flags().GetInt("rate-limit")
		}

		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
		}

		srv, err := server.NewServer(server.Config{
			Host:            host,
			Port:            port,
			CORSOrigin:      corsOrigin,
			MaxUploadMB:     int64(maxUpload),
			TimeoutSec:      timeout,
			ShutdownTimeout: shutdownTimeout,
			RateLimitPerMin: rateLimit,
			Pipeline:        cfg.PipelineBuilder().Config(),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		go func() {
			<-ctx.Done()
			slog.Info("received shutdown signal")
		}()

		addr := fmt.Sprintf("%s:%d", host, port)
		if err := srv.Run(ctx, addr, time.Duration(shutdownTimeout)*time.Second); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
		slog.Info("graceful shutdown completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("host", "H", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("cors-origin", "*", "CORS allowed origins")
	serveCmd.Flags().Int("max-upload-size", 20, "maximum upload size in MB")
	serveCmd.Flags().Int("timeout", 30, "request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "shutdown timeout in seconds")
	serveCmd.Flags().Int("rate-limit", 120, "maximum requests per minute per client (0 = unlimited)")
}
