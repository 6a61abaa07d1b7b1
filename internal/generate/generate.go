// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

// Package generate ties the pipeline together: AST JSON in, fenced Mermaid
// sequence-diagram markup out.
package generate

import (
	"context"
	"encoding/json"
	"os"

	"github.com/dotandev/solseq/internal/ast"
	"github.com/dotandev/solseq/internal/diagram"
	"github.com/dotandev/solseq/internal/errors"
	"github.com/dotandev/solseq/internal/extract"
	"github.com/dotandev/solseq/internal/solc"
	"github.com/dotandev/solseq/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Config controls one generation run.
type Config struct {
	// LightColors selects the lighter of the two diagram palettes.
	LightColors bool
	// OutputFile receives the diagram as UTF-8 text; empty means the caller
	// prints it.
	OutputFile string
}

// FromAST generates a diagram from raw AST JSON.
func FromAST(ctx context.Context, raw []byte, cfg Config) (string, error) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "generate_diagram")
	span.SetAttributes(
		attribute.Int("ast.size_bytes", len(raw)),
		attribute.Bool("diagram.light_colors", cfg.LightColors),
	)
	defer span.End()

	doc, err := ast.Decode(raw)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	return render(ctx, doc, cfg)
}

// FromValue generates a diagram from an already-parsed AST document, as
// produced by the solc runner or the merge step.
func FromValue(ctx context.Context, root map[string]any, cfg Config) (string, error) {
	doc, err := ast.DecodeValue(root)
	if err != nil {
		return "", err
	}
	return render(ctx, doc, cfg)
}

// FromFile generates a diagram from an AST JSON file on disk.
func FromFile(ctx context.Context, astPath string, cfg Config) (string, error) {
	raw, err := os.ReadFile(astPath)
	if err != nil {
		return "", errors.WrapInvalidAST("failed to read AST file "+astPath, err)
	}
	return FromAST(ctx, raw, cfg)
}

// FromSources compiles each Solidity source file with solc, merges the
// per-file ASTs, and generates one diagram over the combined document.
func FromSources(ctx context.Context, runner *solc.Runner, sourcePaths []string, cfg Config) (string, error) {
	combined := make(map[string]any)

	for _, path := range sourcePaths {
		doc, err := runner.CompileAST(ctx, path)
		if err != nil {
			return "", err
		}
		solc.MergeAST(combined, doc)
	}

	return FromValue(ctx, combined, cfg)
}

// MarshalCombined serializes a merged AST document, used for cache keying.
func MarshalCombined(root map[string]any) ([]byte, error) {
	raw, err := json.Marshal(root)
	if err != nil {
		return nil, errors.WrapMarshalFailed(err)
	}
	return raw, nil
}

func render(ctx context.Context, doc *ast.Document, cfg Config) (string, error) {
	tracer := telemetry.GetTracer()

	_, extractSpan := tracer.Start(ctx, "extract_model")
	model := extract.Extract(doc)
	extractSpan.End()

	_, renderSpan := tracer.Start(ctx, "render_diagram")
	out := diagram.Render(model, cfg.LightColors)
	renderSpan.End()

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, []byte(out), 0644); err != nil {
			return "", errors.WrapConfigError("failed to write output file "+cfg.OutputFile, err)
		}
	}

	return out, nil
}
