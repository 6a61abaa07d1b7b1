// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dotandev/solseq/internal/config"
	"github.com/dotandev/solseq/internal/daemon"
	"github.com/dotandev/solseq/internal/logger"
	"github.com/dotandev/solseq/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	servePort      string
	serveAuthToken string
	serveTracing   bool
	serveOTLPURL   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a JSON-RPC server for remote diagram generation",
	Long: `Start a JSON-RPC 2.0 server that exposes diagram generation for editors,
CI pipelines, and other tools.

Endpoints:
  - diagram.Generate:   diagram from AST JSON supplied in the request
  - diagram.FromSource: compile .sol files on the server and diagram them

Example:
  solseq serve --port 8080
  solseq serve --port 8080 --auth-token secret123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Initialize OpenTelemetry if enabled
		var cleanup func()
		if serveTracing || cfg.TelemetryEnabled {
			exporterURL := serveOTLPURL
			if exporterURL == "" {
				exporterURL = cfg.TelemetryEndpoint
			}
			cleanup, err = telemetry.Init(ctx, telemetry.Config{
				Enabled:     true,
				ExporterURL: exporterURL,
				ServiceName: "solseq-daemon",
				Version:     Version,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize telemetry: %w", err)
			}
			defer cleanup()
		}

		server, err := daemon.NewServer(daemon.Config{
			Port:      servePort,
			SolcPath:  cfg.SolcPath,
			AuthToken: serveAuthToken,
		})
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		// Setup graceful shutdown
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			logger.Logger.Info("Received shutdown signal")
			cancel()
		}()

		return server.Start(ctx, servePort)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "Port to listen on")
	serveCmd.Flags().StringVar(&serveAuthToken, "auth-token", "", "Bearer token required on RPC requests")
	serveCmd.Flags().BoolVar(&serveTracing, "tracing", false, "Enable OpenTelemetry trace export")
	serveCmd.Flags().StringVar(&serveOTLPURL, "otlp-url", "localhost:4318", "OTLP HTTP exporter endpoint")

	rootCmd.AddCommand(serveCmd)
}
