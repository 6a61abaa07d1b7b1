// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

// Package solc invokes the Solidity compiler to produce AST JSON.
package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"github.com/dotandev/solseq/internal/errors"
	"github.com/dotandev/solseq/internal/logger"
	"github.com/dotandev/solseq/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// MinVersion is the oldest compiler known to emit the AST shapes the decoder
// understands.
const MinVersion = "0.8.0"

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// Runner executes the solc binary.
type Runner struct {
	BinaryPath string
}

// NewRunner locates the compiler binary. Discovery order: SOLSEQ_SOLC_PATH,
// the configured path, then the global PATH.
func NewRunner(configuredPath string) (*Runner, error) {
	if envPath := os.Getenv("SOLSEQ_SOLC_PATH"); envPath != "" {
		return &Runner{BinaryPath: envPath}, nil
	}

	if configuredPath != "" {
		if _, err := os.Stat(configuredPath); err == nil {
			return &Runner{BinaryPath: configuredPath}, nil
		}
	}

	if path, err := exec.LookPath("solc"); err == nil {
		return &Runner{BinaryPath: path}, nil
	}

	return nil, errors.WrapSolcNotFound("install solc or set SOLSEQ_SOLC_PATH")
}

// Version runs `solc --version` and parses the release number.
func (r *Runner) Version(ctx context.Context) (*goversion.Version, error) {
	out, err := exec.CommandContext(ctx, r.BinaryPath, "--version").Output()
	if err != nil {
		return nil, errors.WrapSolcFailed(err, "")
	}

	match := versionPattern.FindString(string(out))
	if match == "" {
		return nil, errors.WrapInvalidAST("unrecognized solc version output: "+strings.TrimSpace(string(out)), nil)
	}

	return goversion.NewVersion(match)
}

// CheckVersion verifies the compiler meets the minimum supported release.
func (r *Runner) CheckVersion(ctx context.Context) error {
	current, err := r.Version(ctx)
	if err != nil {
		return err
	}

	minimum := goversion.Must(goversion.NewVersion(MinVersion))
	if current.LessThan(minimum) {
		return errors.WrapValidationError(
			"solc " + current.String() + " is older than the minimum supported " + MinVersion)
	}

	logger.Logger.Debug("solc version check passed", "version", current.String())
	return nil
}

// CompileAST runs the compiler on one source file and returns the parsed
// combined-json AST document. A non-zero exit or unparseable output is a hard
// failure.
func (r *Runner) CompileAST(ctx context.Context, sourcePath string) (map[string]any, error) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "solc_compile_ast")
	span.SetAttributes(
		attribute.String("solc.binary_path", r.BinaryPath),
		attribute.String("solc.source", sourcePath),
	)
	defer span.End()

	logger.Logger.Debug("invoking solc", "binary", r.BinaryPath, "source", sourcePath)

	cmd := exec.CommandContext(ctx, r.BinaryPath, "--combined-json", "ast", sourcePath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		span.RecordError(err)
		logger.Logger.Error("solc execution failed", "source", sourcePath, "error", err, "stderr", stderr.String())
		return nil, errors.WrapSolcFailed(err, stderr.String())
	}

	span.SetAttributes(attribute.Int("solc.output_bytes", stdout.Len()))

	var doc map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		span.RecordError(err)
		logger.Logger.Error("failed to parse solc output", "source", sourcePath, "error", err)
		return nil, errors.WrapUnmarshalFailed(err, stdout.String())
	}

	logger.Logger.Info("compiled source to AST", "source", sourcePath)
	return doc, nil
}
