// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dotandev/solseq/internal/errors"
)

// Decode parses raw AST JSON and decodes it into a Document. Both the
// combined-json shape ({"sources": {path: {"AST": {...}}}}) and the flat
// single-unit shape ({"nodes": [...]}) are accepted. Unparseable JSON or a
// missing nodes array is a hard failure; missing leaf fields degrade to
// placeholder values.
func Decode(raw []byte) (*Document, error) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, errors.WrapInvalidAST("unparseable AST JSON", err)
	}
	return DecodeValue(root)
}

// DecodeValue decodes an already-parsed AST document.
func DecodeValue(root map[string]any) (*Document, error) {
	if root == nil {
		return nil, errors.WrapInvalidAST("AST document is not an object", nil)
	}

	doc := &Document{}

	if sources, ok := root["sources"].(map[string]any); ok {
		// Combined-json shape. Go map iteration is randomized, so walk the
		// source paths in sorted order to keep output deterministic.
		paths := make([]string, 0, len(sources))
		for p := range sources {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		for _, p := range paths {
			src, ok := sources[p].(map[string]any)
			if !ok {
				return nil, errors.WrapInvalidAST(fmt.Sprintf("source entry %q is not an object", p), nil)
			}
			unitRaw, ok := src["AST"].(map[string]any)
			if !ok {
				// Units without an AST are skipped, matching solc output
				// that may carry metadata-only entries.
				continue
			}
			unit, err := decodeUnit(unitRaw)
			if err != nil {
				return nil, err
			}
			doc.Units = append(doc.Units, unit)
		}
		return doc, nil
	}

	unit, err := decodeUnit(root)
	if err != nil {
		return nil, err
	}
	doc.Units = append(doc.Units, unit)
	return doc, nil
}

func decodeUnit(m map[string]any) (SourceUnit, error) {
	nodes, ok := m["nodes"].([]any)
	if !ok {
		return SourceUnit{}, errors.WrapMissingNodes("source unit")
	}

	unit := SourceUnit{Path: getString(m, "absolutePath", "unknown")}

	for _, n := range nodes {
		node, ok := n.(map[string]any)
		if !ok {
			continue
		}
		if getString(node, "nodeType", "") != "ContractDefinition" {
			continue
		}
		unit.Contracts = append(unit.Contracts, decodeContract(node, unit.Path))
	}

	return unit, nil
}

func decodeContract(node map[string]any, sourcePath string) Contract {
	c := Contract{
		Name:       getString(node, "name", "Unknown"),
		Kind:       getString(node, "contractKind", "contract"),
		SourcePath: sourcePath,
	}

	for _, b := range getSlice(node, "baseContracts") {
		base, ok := b.(map[string]any)
		if !ok {
			continue
		}
		baseName, ok := base["baseName"].(map[string]any)
		if !ok {
			continue
		}
		if name := getString(baseName, "name", ""); name != "" {
			c.Bases = append(c.Bases, name)
		}
	}

	for _, n := range getSlice(node, "nodes") {
		member, ok := n.(map[string]any)
		if !ok {
			continue
		}
		switch getString(member, "nodeType", "") {
		case "EventDefinition":
			c.Events = append(c.Events, getString(member, "name", "UnknownEvent"))
		case "VariableDeclaration":
			c.Variables = append(c.Variables, Variable{
				Name: getString(member, "name", "unknown"),
				Type: decodeTypeName(member["typeName"]),
			})
		case "FunctionDefinition":
			if fn, ok := decodeFunction(member); ok {
				c.Functions = append(c.Functions, fn)
			}
		}
	}

	return c
}

func decodeFunction(node map[string]any) (Function, bool) {
	// A FunctionDefinition without any name field at all is skipped; an
	// empty name is kept so constructors can be detected by kind.
	if _, ok := node["name"].(string); !ok {
		return Function{}, false
	}

	fn := Function{
		Name:            getString(node, "name", ""),
		Kind:            getString(node, "kind", ""),
		Visibility:      getString(node, "visibility", ""),
		StateMutability: getString(node, "stateMutability", ""),
		Params:          decodeParamList(node["parameters"]),
		Returns:         decodeParamList(node["returnParameters"]),
	}

	if body, ok := node["body"].(map[string]any); ok {
		if stmts, ok := body["statements"].([]any); ok {
			fn.HasBody = true
			fn.Body = decodeStatements(stmts)
		}
	}

	return fn, true
}

func decodeParamList(v any) []Param {
	wrapper, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := wrapper["parameters"].([]any)
	if !ok {
		return nil
	}

	params := make([]Param, 0, len(raw))
	for _, p := range raw {
		pm, ok := p.(map[string]any)
		if !ok {
			continue
		}
		param := Param{Name: getString(pm, "name", "")}
		if _, ok := pm["typeName"]; ok {
			param.Type = decodeTypeName(pm["typeName"])
		}
		if desc, ok := pm["typeDescriptions"].(map[string]any); ok {
			param.TypeString = getString(desc, "typeString", "")
		}
		params = append(params, param)
	}
	return params
}

func decodeStatements(raw []any) []Statement {
	stmts := make([]Statement, 0, len(raw))
	for _, s := range raw {
		sm, ok := s.(map[string]any)
		if !ok {
			continue
		}
		stmts = append(stmts, decodeStatement(sm))
	}
	return stmts
}

func decodeStatement(node map[string]any) Statement {
	switch getString(node, "nodeType", "") {
	case "ForStatement":
		return Statement{Kind: StmtLoop, Loop: decodeLoop(node)}
	case "IfStatement":
		return Statement{Kind: StmtIf, If: decodeIf(node)}
	case "EmitStatement":
		if emit := decodeEmit(node); emit != nil {
			return Statement{Kind: StmtEmit, Emit: emit}
		}
	case "ExpressionStatement":
		if expr, ok := node["expression"].(map[string]any); ok {
			if call := decodeCall(expr); call != nil {
				return Statement{Kind: StmtCall, Call: call}
			}
		}
	case "VariableDeclarationStatement":
		if decl := decodeVarDeclCall(node); decl != nil {
			return Statement{Kind: StmtVarDeclCall, VarDecl: decl}
		}
	}
	return Statement{Kind: StmtUnknown}
}

func decodeLoop(node map[string]any) *LoopStmt {
	loop := &LoopStmt{}

	if init, ok := node["initializationExpression"].(map[string]any); ok {
		for _, d := range getSlice(init, "declarations") {
			decl, ok := d.(map[string]any)
			if !ok {
				continue
			}
			if name, ok := decl["name"].(string); ok {
				loop.VarName = name
				if _, ok := decl["typeName"]; ok {
					loop.VarType = decodeTypeName(decl["typeName"])
				}
			}
		}
	}

	loop.Body = decodeBlockOrSingle(node["body"])
	return loop
}

func decodeIf(node map[string]any) *IfStmt {
	stmt := &IfStmt{}

	if cond, ok := node["condition"].(map[string]any); ok {
		stmt.Cond = decodeCondition(cond)
	}

	stmt.True = decodeBlockOrSingle(node["trueBody"])

	if falseBody, ok := node["falseBody"].(map[string]any); ok {
		stmt.HasElse = true
		stmt.False = decodeBlockOrSingle(falseBody)
	}

	return stmt
}

// decodeCondition recognizes a binary comparison between an identifier and a
// literal; anything else yields nil and a generic condition description.
func decodeCondition(cond map[string]any) *Condition {
	if getString(cond, "nodeType", "") != "BinaryOperation" {
		return nil
	}
	left, lok := cond["leftExpression"].(map[string]any)
	right, rok := cond["rightExpression"].(map[string]any)
	op, ook := cond["operator"].(string)
	if !lok || !rok || !ook {
		return nil
	}
	name, ok := left["name"].(string)
	if !ok {
		return nil
	}
	value, ok := literalValue(right["value"])
	if !ok {
		return nil
	}
	return &Condition{Var: name, Op: op, Value: value}
}

func decodeEmit(node map[string]any) *EmitStmt {
	eventCall, ok := node["eventCall"].(map[string]any)
	if !ok {
		return nil
	}
	expr, ok := eventCall["expression"].(map[string]any)
	if !ok {
		return nil
	}
	name, ok := expr["name"].(string)
	if !ok {
		return nil
	}
	return &EmitStmt{
		Name: name,
		Args: decodeArgs(getSlice(eventCall, "arguments")),
	}
}

// decodeCall recognizes a member-access call on an identifier target or on a
// type-conversion expression. Other call shapes are not modeled.
func decodeCall(expr map[string]any) *CallExpr {
	if getString(expr, "nodeType", "") != "FunctionCall" {
		return nil
	}
	callExpr, ok := expr["expression"].(map[string]any)
	if !ok || getString(callExpr, "nodeType", "") != "MemberAccess" {
		return nil
	}

	member := getString(callExpr, "memberName", "unknown")
	base, ok := callExpr["expression"].(map[string]any)
	if !ok {
		return nil
	}

	switch getString(base, "nodeType", "") {
	case "Identifier":
		return &CallExpr{
			Target: getString(base, "name", "Unknown"),
			Member: member,
			Args:   decodeArgs(getSlice(expr, "arguments")),
		}
	case "FunctionCall":
		if getString(base, "kind", "") == "typeConversion" {
			return &CallExpr{
				Member:             member,
				Args:               decodeArgs(getSlice(expr, "arguments")),
				TargetIsConversion: true,
			}
		}
	}
	return nil
}

func decodeVarDeclCall(node map[string]any) *VarDeclStmt {
	init, ok := node["initialValue"].(map[string]any)
	if !ok {
		return nil
	}
	call := decodeCall(init)
	if call == nil || call.TargetIsConversion {
		return nil
	}

	decl := &VarDeclStmt{Call: call}
	for _, d := range getSlice(node, "declarations") {
		dm, ok := d.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := dm["name"].(string); ok && name != "" {
			decl.Names = append(decl.Names, name)
		}
	}
	return decl
}

func decodeArgs(raw []any) []Arg {
	var args []Arg
	for _, a := range raw {
		am, ok := a.(map[string]any)
		if !ok {
			continue
		}
		switch getString(am, "nodeType", "") {
		case "Identifier":
			if name, ok := am["name"].(string); ok {
				args = append(args, Arg{IsIdent: true, Name: name})
			}
		case "Literal":
			if value, ok := literalValue(am["value"]); ok {
				args = append(args, Arg{
					Value:       value,
					LiteralKind: getString(am, "kind", ""),
				})
			}
		}
	}
	return args
}

// decodeBlockOrSingle handles both block bodies ({"statements": [...]}) and
// single-statement bodies (a bare statement node).
func decodeBlockOrSingle(v any) []Statement {
	body, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if stmts, ok := body["statements"].([]any); ok {
		return decodeStatements(stmts)
	}
	if _, ok := body["nodeType"]; ok {
		return []Statement{decodeStatement(body)}
	}
	return nil
}

func decodeTypeName(v any) *TypeName {
	tn, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	t := &TypeName{}
	if desc, ok := tn["typeDescriptions"].(map[string]any); ok {
		t.TypeString = getString(desc, "typeString", "")
	}

	switch getString(tn, "nodeType", "") {
	case "ElementaryTypeName":
		t.Kind = TypeElementary
		t.Name = getString(tn, "name", "")
	case "UserDefinedTypeName":
		t.Kind = TypeUserDefined
		t.Name = getString(tn, "name", "")
		if path, ok := tn["pathNode"].(map[string]any); ok {
			t.PathName = getString(path, "name", "")
		}
	case "ArrayTypeName":
		t.Kind = TypeArray
		t.Base = decodeTypeName(tn["baseType"])
		if length, ok := tn["length"].(map[string]any); ok {
			if v, ok := literalValue(length["value"]); ok {
				t.Length = v
			}
		}
	case "Mapping":
		t.Kind = TypeMapping
		t.Key = decodeTypeName(tn["keyType"])
		t.Value = decodeTypeName(tn["valueType"])
	case "TupleType":
		t.Kind = TypeTuple
		if components, ok := tn["components"].([]any); ok {
			t.HasComponents = true
			for _, c := range components {
				t.Components = append(t.Components, decodeTypeName(c))
			}
		}
	case "FunctionTypeName":
		t.Kind = TypeFunction
	case "AddressType":
		t.Kind = TypeAddress
		t.StateMutability = getString(tn, "stateMutability", "")
	default:
		t.Kind = TypeUnknown
	}

	return t
}

// literalValue renders a literal JSON value (string- or number-encoded) as a
// plain string.
func literalValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val)), true
		}
		return fmt.Sprintf("%v", val), true
	case bool:
		return fmt.Sprintf("%t", val), true
	default:
		return "", false
	}
}

// getString returns the string value at key, or fallback when the key is
// missing or not a string. An empty string present in the input is returned
// as-is so constructor detection can see it.
func getString(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return fallback
}

func getSlice(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}
