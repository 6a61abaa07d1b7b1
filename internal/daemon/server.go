// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

// Package daemon exposes diagram generation over JSON-RPC for editor and CI
// integrations that want to avoid spawning the CLI per request.
package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dotandev/solseq/internal/generate"
	"github.com/dotandev/solseq/internal/logger"
	"github.com/dotandev/solseq/internal/solc"
	"github.com/dotandev/solseq/internal/telemetry"
	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"go.opentelemetry.io/otel/attribute"
)

// Server represents the JSON-RPC daemon server
type Server struct {
	runner    *solc.Runner
	authToken string
}

// Config holds daemon configuration
type Config struct {
	Port      string
	SolcPath  string
	AuthToken string
}

// GenerateRequest represents the generate_diagram RPC request. AST carries
// the compiler output verbatim, in either flat or combined-json shape.
type GenerateRequest struct {
	AST         json.RawMessage `json:"ast"`
	LightColors bool            `json:"light_colors"`
}

// GenerateResponse represents the generate_diagram RPC response
type GenerateResponse struct {
	Diagram string `json:"diagram"`
	Status  string `json:"status"`
}

// FromSourceRequest represents the generate_from_source RPC request
type FromSourceRequest struct {
	SourcePaths []string `json:"source_paths"`
	LightColors bool     `json:"light_colors"`
}

// FromSourceResponse represents the generate_from_source RPC response
type FromSourceResponse struct {
	Diagram string `json:"diagram"`
	Sources int    `json:"sources"`
	Status  string `json:"status"`
}

// NewServer creates a new JSON-RPC server. The solc runner is resolved
// eagerly so a missing compiler fails at startup rather than per request.
func NewServer(config Config) (*Server, error) {
	runner, err := solc.NewRunner(config.SolcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to locate solc: %w", err)
	}

	return &Server{
		runner:    runner,
		authToken: config.AuthToken,
	}, nil
}

// authenticate validates the authorization token
func (s *Server) authenticate(r *http.Request) bool {
	if s.authToken == "" {
		return true // No auth required
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return false
	}

	// Support "Bearer <token>" format
	if strings.HasPrefix(auth, "Bearer ") {
		token := strings.TrimPrefix(auth, "Bearer ")
		return token == s.authToken
	}

	return auth == s.authToken
}

// Generate handles generate_diagram RPC calls over a pre-compiled AST.
func (s *Server) Generate(r *http.Request, req *GenerateRequest, resp *GenerateResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	ctx := r.Context()
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "rpc_generate_diagram")
	span.SetAttributes(attribute.Int("ast.size_bytes", len(req.AST)))
	defer span.End()

	logger.Logger.Info("Processing generate_diagram RPC", "ast_bytes", len(req.AST))

	out, err := generate.FromAST(ctx, req.AST, generate.Config{LightColors: req.LightColors})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to generate diagram: %w", err)
	}

	*resp = GenerateResponse{
		Diagram: out,
		Status:  "success",
	}

	return nil
}

// FromSource handles generate_from_source RPC calls. Each listed Solidity
// file is compiled with solc and the ASTs are merged before rendering.
func (s *Server) FromSource(r *http.Request, req *FromSourceRequest, resp *FromSourceResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	if len(req.SourcePaths) == 0 {
		return fmt.Errorf("source_paths must not be empty")
	}

	ctx := r.Context()
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "rpc_generate_from_source")
	span.SetAttributes(attribute.Int("sources.count", len(req.SourcePaths)))
	defer span.End()

	logger.Logger.Info("Processing generate_from_source RPC", "sources", len(req.SourcePaths))

	out, err := generate.FromSources(ctx, s.runner, req.SourcePaths, generate.Config{LightColors: req.LightColors})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to generate diagram: %w", err)
	}

	*resp = FromSourceResponse{
		Diagram: out,
		Sources: len(req.SourcePaths),
		Status:  "success",
	}

	return nil
}

// Start starts the JSON-RPC server
func (s *Server) Start(ctx context.Context, port string) error {
	server := rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	server.RegisterCodec(json2.NewCodec(), "application/json;charset=UTF-8")

	if err := server.RegisterService(s, "diagram"); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", server)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	logger.Logger.Info("Starting JSON-RPC server", "port", port)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()
	logger.Logger.Info("Shutting down JSON-RPC server")
	return srv.Shutdown(context.Background())
}
