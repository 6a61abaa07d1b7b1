// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package solc

// MergeAST deep-merges a per-file AST document into target. Arrays are
// concatenated, objects merge recursively, and on a type mismatch or scalar
// conflict the source value wins. Used to combine the compiler output of
// several source files before a single extraction pass.
func MergeAST(target, source map[string]any) {
	for key, sourceVal := range source {
		targetVal, exists := target[key]
		if !exists {
			target[key] = sourceVal
			continue
		}

		switch tv := targetVal.(type) {
		case []any:
			if sv, ok := sourceVal.([]any); ok {
				target[key] = append(tv, sv...)
				continue
			}
		case map[string]any:
			if sv, ok := sourceVal.(map[string]any); ok {
				MergeAST(tv, sv)
				continue
			}
		}

		target[key] = sourceVal
	}
}
