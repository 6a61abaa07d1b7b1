// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"fmt"
	"strings"

	"github.com/dotandev/solseq/internal/ast"
	"github.com/dotandev/solseq/internal/heuristic"
	"github.com/dotandev/solseq/internal/logger"
)

// Extract runs the two-pass extraction over a decoded document. The pass
// order is required: function-body call resolution in pass two consults the
// participant set that pass one fills in.
func Extract(doc *ast.Document) *Model {
	m := NewModel()

	for _, unit := range doc.Units {
		collectDeclarations(m, unit)
	}

	// Synthetic lanes exist only when there is at least one contract, so an
	// empty document renders an empty participant list.
	if len(m.Contracts) > 0 {
		m.AddParticipant("User")
		m.AddParticipant("Events")
		m.AddParticipant("TokenContract")
	}

	for _, unit := range doc.Units {
		collectInteractions(m, unit)
	}

	logger.Logger.Debug("extraction complete",
		"contracts", len(m.Contracts),
		"participants", len(m.Participants),
		"relationships", len(m.Relationships))

	return m
}

// collectDeclarations is pass one: contracts, inheritance, state variables
// and events.
func collectDeclarations(m *Model, unit ast.SourceUnit) {
	for _, contract := range unit.Contracts {
		name := contract.Name
		if name == "" {
			name = "Unknown"
		}

		m.AddParticipant(name)

		info := &ContractInfo{
			Name:       name,
			Kind:       contract.Kind,
			SourceFile: unit.Path,
		}

		for _, base := range contract.Bases {
			info.InheritsFrom = append(info.InheritsFrom, base)
			m.Relationships = append(m.Relationships, Relationship{
				Source: name,
				Target: base,
				Kind:   "inherits",
			})
		}

		for _, event := range contract.Events {
			m.Events = append(m.Events, [2]string{name, event})
			info.Events = append(info.Events, event)
		}

		for _, v := range contract.Variables {
			varType := ast.Resolve(v.Type)
			info.Variables = append(info.Variables, Variable{Name: v.Name, Type: varType})

			// A variable typed as another participant, or as an address,
			// links this contract to that type.
			if m.HasParticipant(varType) || strings.Contains(strings.ToLower(varType), "address") {
				m.Relationships = append(m.Relationships, Relationship{
					Source: name,
					Target: varType,
					Kind:   "references",
				})
			}
		}

		m.addContract(info)
	}
}

// collectInteractions is pass two: function entries, user-facing call lines
// and body walks.
func collectInteractions(m *Model, unit ast.SourceUnit) {
	for _, contract := range unit.Contracts {
		contractName := contract.Name
		if contractName == "" {
			contractName = "Unknown"
		}

		for _, fn := range contract.Functions {
			functionName := fn.Name
			if functionName == "" && fn.Kind == "constructor" {
				functionName = "constructor"
			}

			if info, ok := m.Contracts[contractName]; ok {
				info.Functions = append(info.Functions, functionName)
			}

			if fn.Visibility != "public" && fn.Visibility != "external" {
				continue
			}

			message := callSignature(functionName, fn.Params)

			if purpose, ok := heuristic.FunctionPurpose(functionName); ok {
				m.UserInteractions = append(m.UserInteractions,
					fmt.Sprintf("Note over User,%s: %s", contractName, purpose))
			}

			m.UserInteractions = append(m.UserInteractions,
				fmt.Sprintf("User->>+%s: %s", contractName, message))

			if fn.HasBody {
				key := fmt.Sprintf("%s.%s", contractName, functionName)
				m.setInteractions(key, walkBody(contractName, functionName, fn.Body))
			}

			if ret := returnDescription(fn.Returns); ret != "" {
				m.UserInteractions = append(m.UserInteractions,
					fmt.Sprintf("%s-->>-User: return %s", contractName, ret))
			} else if fn.StateMutability == "view" || fn.StateMutability == "pure" {
				m.UserInteractions = append(m.UserInteractions,
					fmt.Sprintf("%s-->>-User: return (view function)", contractName))
			} else {
				m.UserInteractions = append(m.UserInteractions,
					fmt.Sprintf("%s-->>-User: return", contractName))
			}
		}
	}
}

// callSignature renders "name(param: type, ...)" for the user call line.
// Unnamed parameters are omitted; a parameter whose structural type resolves
// to "unknown" falls back to the free-text type description.
func callSignature(functionName string, params []ast.Param) string {
	var parts []string
	for _, p := range params {
		if p.Name == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name, paramType(p)))
	}
	if len(parts) == 0 {
		return functionName + "()"
	}
	return fmt.Sprintf("%s(%s)", functionName, strings.Join(parts, ", "))
}

func paramType(p ast.Param) string {
	t := "unknown"
	if p.Type != nil {
		t = ast.Resolve(p.Type)
	}
	if t == "unknown" && p.TypeString != "" {
		t = p.TypeString
	}
	return t
}

// returnDescription renders the declared return list, "name: type" pairs when
// every return value is named, bare types otherwise. Empty when the function
// declares no returns.
func returnDescription(returns []ast.Param) string {
	if len(returns) == 0 {
		return ""
	}

	var types, names []string
	for _, p := range returns {
		types = append(types, paramType(p))
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}

	if len(names) > 0 && len(names) == len(types) {
		combined := make([]string, len(types))
		for i := range types {
			combined[i] = fmt.Sprintf("%s: %s", names[i], types[i])
		}
		return strings.Join(combined, ", ")
	}
	return strings.Join(types, ", ")
}
