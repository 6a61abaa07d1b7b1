// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison with errors.Is
var (
	ErrSolcNotFound    = errors.New("solc binary not found")
	ErrSolcFailed      = errors.New("solc execution failed")
	ErrInvalidAST      = errors.New("invalid AST document")
	ErrMissingNodes    = errors.New("AST is missing a required nodes array")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrMarshalFailed   = errors.New("failed to marshal request")
	ErrUnmarshalFailed = errors.New("failed to unmarshal response")
	ErrCacheFailed     = errors.New("cache operation failed")
)

// Wrap functions for consistent error wrapping

func WrapSolcNotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrSolcNotFound, msg)
}

func WrapSolcFailed(err error, stderr string) error {
	return fmt.Errorf("%w: %w, stderr: %s", ErrSolcFailed, err, stderr)
}

func WrapInvalidAST(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrInvalidAST, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalidAST, msg, err)
}

func WrapMissingNodes(where string) error {
	return fmt.Errorf("%w: %s", ErrMissingNodes, where)
}

func WrapConfigError(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfigInvalid, msg, err)
}

func WrapValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrConfigInvalid, msg)
}

func WrapMarshalFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrMarshalFailed, err)
}

func WrapUnmarshalFailed(err error, output string) error {
	return fmt.Errorf("%w: %w, output: %s", ErrUnmarshalFailed, err, output)
}

func WrapCacheFailed(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCacheFailed, msg, err)
}
