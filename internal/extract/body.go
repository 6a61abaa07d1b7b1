// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"fmt"
	"strings"

	"github.com/dotandev/solseq/internal/ast"
	"github.com/dotandev/solseq/internal/heuristic"
)

// nestedIndent is the per-level indentation for lines inside loop and alt
// blocks.
const nestedIndent = "    "

// walkBody renders a function body as an ordered list of interaction lines.
// Unrecognized statement kinds produce no output and do not halt the walk.
func walkBody(contractName, functionName string, stmts []ast.Statement) []string {
	var lines []string

	for _, stmt := range stmts {
		switch stmt.Kind {
		case ast.StmtLoop:
			lines = append(lines, renderLoop(contractName, functionName, stmt.Loop)...)
		case ast.StmtIf:
			lines = append(lines, renderIf(contractName, functionName, stmt.If)...)
		case ast.StmtEmit:
			lines = append(lines, renderEmit(contractName, stmt.Emit))
		case ast.StmtCall:
			lines = append(lines, renderCall(contractName, stmt.Call)...)
		case ast.StmtVarDeclCall:
			lines = append(lines, renderVarDeclCall(contractName, stmt.VarDecl)...)
		}
	}

	return lines
}

func renderLoop(contractName, functionName string, loop *ast.LoopStmt) []string {
	description := "For each item"
	if loop.VarName != "" {
		description = fmt.Sprintf("For each %s", loop.VarName)
		if varType := ast.Resolve(loop.VarType); varType != "unknown" {
			description = fmt.Sprintf("For each %s: %s", loop.VarName, varType)
		}
	}

	lines := []string{"loop " + description}
	for _, line := range walkBody(contractName, functionName, loop.Body) {
		lines = append(lines, nestedIndent+line)
	}
	return append(lines, "end")
}

func renderIf(contractName, functionName string, stmt *ast.IfStmt) []string {
	description := "if condition"
	if stmt.Cond != nil {
		description = fmt.Sprintf("if %s %s %s", stmt.Cond.Var, stmt.Cond.Op, stmt.Cond.Value)
	}

	lines := []string{"alt " + description}
	for _, line := range walkBody(contractName, functionName, stmt.True) {
		lines = append(lines, nestedIndent+line)
	}

	if stmt.HasElse {
		lines = append(lines, "else")
		for _, line := range walkBody(contractName, functionName, stmt.False) {
			lines = append(lines, nestedIndent+line)
		}
	}

	return append(lines, "end")
}

func renderEmit(contractName string, emit *ast.EmitStmt) string {
	return fmt.Sprintf("%s->>Events: emit %s(%s)", contractName, emit.Name, renderArgs(emit.Args))
}

// renderCall classifies a bare call expression by member name and target and
// emits the corresponding call/return pair, preceded by a purpose note when
// the member name matches the purpose table.
func renderCall(contractName string, call *ast.CallExpr) []string {
	argStr := renderArgs(call.Args)

	if call.TargetIsConversion {
		// Casts like payable(recipient).transfer(...) move ETH to an
		// address rather than calling a named contract.
		if call.Member == "transfer" || call.Member == "send" || call.Member == "call" {
			return []string{
				fmt.Sprintf("%s->>+Recipient: ETH %s(%s)", contractName, call.Member, argStr),
				fmt.Sprintf("Recipient-->>-%s: return (success)", contractName),
			}
		}
		return nil
	}

	var lines []string
	purpose, hasPurpose := heuristic.FunctionPurpose(call.Member)

	switch {
	case call.Member == "transfer" || call.Member == "send":
		if hasPurpose {
			lines = append(lines, fmt.Sprintf("Note right of %s: %s", contractName, purpose))
		}
		lines = append(lines,
			fmt.Sprintf("%s->>+%s: %s(%s)", contractName, call.Target, call.Member, argStr),
			fmt.Sprintf("%s-->>-%s: return (success)", call.Target, contractName))

	case (call.Member == "transferFrom" || call.Member == "transfer") &&
		strings.Contains(strings.ToLower(call.Target), "token"):
		if hasPurpose {
			lines = append(lines, fmt.Sprintf("Note right of %s: %s", contractName, purpose))
		}
		lines = append(lines,
			fmt.Sprintf("%s->>+TokenContract: %s(%s)", contractName, call.Member, argStr),
			fmt.Sprintf("TokenContract-->>-%s: return (success)", contractName))

	default:
		if hasPurpose {
			lines = append(lines, fmt.Sprintf("Note right of %s: %s", contractName, purpose))
		}
		lines = append(lines,
			fmt.Sprintf("%s->>+%s: %s(%s)", contractName, call.Target, call.Member, argStr),
			fmt.Sprintf("%s-->>-%s: return", call.Target, contractName))
	}

	return lines
}

func renderVarDeclCall(contractName string, decl *ast.VarDeclStmt) []string {
	varStr := "result"
	if len(decl.Names) > 0 {
		varStr = strings.Join(decl.Names, ", ")
	}

	return []string{
		fmt.Sprintf("%s->>+%s: %s(%s)", contractName, decl.Call.Target, decl.Call.Member, renderArgs(decl.Call.Args)),
		fmt.Sprintf("%s-->>-%s: return → %s", decl.Call.Target, contractName, varStr),
	}
}

// renderArgs renders call arguments as "name: type" pairs; identifier types
// are guessed from the name, literal types come from the literal's kind tag.
func renderArgs(args []ast.Arg) string {
	var parts []string
	for _, arg := range args {
		if arg.IsIdent {
			parts = append(parts, fmt.Sprintf("%s: %s", arg.Name, heuristic.GuessTypeFromName(arg.Name)))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", arg.Value, heuristic.LiteralType(arg.LiteralKind)))
		}
	}
	return strings.Join(parts, ", ")
}
