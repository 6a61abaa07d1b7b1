// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"fmt"
	"strings"
)

// maxTypeDepth bounds recursion over pathologically nested type descriptions;
// past it the resolver degrades to "unknown" instead of blowing the stack.
const maxTypeDepth = 64

// Resolve maps a decoded type-description node to a canonical type-name
// string. It is total: absent or unrecognized information degrades to
// "unknown" and never produces an error.
func Resolve(t *TypeName) string {
	return resolve(t, 0)
}

func resolve(t *TypeName, depth int) string {
	if t == nil || depth > maxTypeDepth {
		return "unknown"
	}

	switch t.Kind {
	case TypeElementary:
		if t.Name == "" {
			return "unknown"
		}
		return t.Name

	case TypeUserDefined:
		if t.PathName != "" {
			return t.PathName
		}
		if t.Name != "" {
			return t.Name
		}
		return "unknown"

	case TypeArray:
		base := resolve(t.Base, depth+1)
		if t.Length != "" {
			return fmt.Sprintf("%s[%s]", base, t.Length)
		}
		return base + "[]"

	case TypeMapping:
		key := resolve(t.Key, depth+1)
		value := resolve(t.Value, depth+1)
		return fmt.Sprintf("mapping(%s=>%s)", key, value)

	case TypeTuple:
		if !t.HasComponents {
			return "tuple"
		}
		parts := make([]string, 0, len(t.Components))
		for _, c := range t.Components {
			parts = append(parts, resolve(c, depth+1))
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case TypeFunction:
		return "function"

	case TypeAddress:
		if t.StateMutability == "payable" {
			return "address payable"
		}
		return "address"

	default:
		if t.TypeString != "" {
			return t.TypeString
		}
		return "unknown"
	}
}
