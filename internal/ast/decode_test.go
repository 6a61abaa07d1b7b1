// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	solseqerrors "github.com/dotandev/solseq/internal/errors"
)

const flatAST = `{
	"absolutePath": "Token.sol",
	"nodes": [
		{
			"nodeType": "ContractDefinition",
			"name": "Token",
			"contractKind": "contract",
			"baseContracts": [
				{"baseName": {"name": "Ownable"}}
			],
			"nodes": [
				{"nodeType": "EventDefinition", "name": "Transfer"},
				{
					"nodeType": "VariableDeclaration",
					"name": "owner",
					"typeName": {"nodeType": "ElementaryTypeName", "name": "address"}
				},
				{
					"nodeType": "FunctionDefinition",
					"name": "transfer",
					"kind": "function",
					"visibility": "public",
					"stateMutability": "nonpayable",
					"parameters": {"parameters": [
						{
							"name": "to",
							"typeName": {"nodeType": "ElementaryTypeName", "name": "address"}
						},
						{
							"name": "amount",
							"typeName": {"nodeType": "ElementaryTypeName", "name": "uint256"}
						}
					]},
					"returnParameters": {"parameters": []},
					"body": {"statements": [
						{
							"nodeType": "EmitStatement",
							"eventCall": {
								"expression": {"name": "Transfer"},
								"arguments": [
									{"nodeType": "Identifier", "name": "to"},
									{"nodeType": "Literal", "kind": "number", "value": "100"}
								]
							}
						}
					]}
				}
			]
		}
	]
}`

func TestDecodeFlatShape(t *testing.T) {
	doc, err := Decode([]byte(flatAST))
	require.NoError(t, err)
	require.Len(t, doc.Units, 1)

	unit := doc.Units[0]
	assert.Equal(t, "Token.sol", unit.Path)
	require.Len(t, unit.Contracts, 1)

	c := unit.Contracts[0]
	assert.Equal(t, "Token", c.Name)
	assert.Equal(t, "contract", c.Kind)
	assert.Equal(t, []string{"Ownable"}, c.Bases)
	assert.Equal(t, []string{"Transfer"}, c.Events)

	require.Len(t, c.Variables, 1)
	assert.Equal(t, "owner", c.Variables[0].Name)
	assert.Equal(t, "address", Resolve(c.Variables[0].Type))

	require.Len(t, c.Functions, 1)
	fn := c.Functions[0]
	assert.Equal(t, "transfer", fn.Name)
	assert.Equal(t, "public", fn.Visibility)
	assert.True(t, fn.HasBody)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "to", fn.Params[0].Name)

	require.Len(t, fn.Body, 1)
	require.Equal(t, StmtEmit, fn.Body[0].Kind)
	emit := fn.Body[0].Emit
	assert.Equal(t, "Transfer", emit.Name)
	require.Len(t, emit.Args, 2)
	assert.True(t, emit.Args[0].IsIdent)
	assert.Equal(t, "to", emit.Args[0].Name)
	assert.False(t, emit.Args[1].IsIdent)
	assert.Equal(t, "100", emit.Args[1].Value)
	assert.Equal(t, "number", emit.Args[1].LiteralKind)
}

func TestDecodeCombinedShape(t *testing.T) {
	combined := `{
		"sources": {
			"b.sol": {"AST": {"absolutePath": "b.sol", "nodes": [
				{"nodeType": "ContractDefinition", "name": "Beta", "contractKind": "contract", "nodes": []}
			]}},
			"a.sol": {"AST": {"absolutePath": "a.sol", "nodes": [
				{"nodeType": "ContractDefinition", "name": "Alpha", "contractKind": "contract", "nodes": []}
			]}},
			"meta.sol": {"id": 3}
		},
		"version": "0.8.20"
	}`

	doc, err := Decode([]byte(combined))
	require.NoError(t, err)

	// Units come out in sorted path order; the AST-less entry is skipped.
	require.Len(t, doc.Units, 2)
	assert.Equal(t, "a.sol", doc.Units[0].Path)
	assert.Equal(t, "Alpha", doc.Units[0].Contracts[0].Name)
	assert.Equal(t, "b.sol", doc.Units[1].Path)
	assert.Equal(t, "Beta", doc.Units[1].Contracts[0].Name)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.ErrorIs(t, err, solseqerrors.ErrInvalidAST)

	_, err = Decode([]byte(`{"absolutePath": "x.sol"}`))
	assert.ErrorIs(t, err, solseqerrors.ErrMissingNodes)

	_, err = Decode([]byte(`{"sources": {"a.sol": {"AST": {"absolutePath": "a.sol"}}}}`))
	assert.ErrorIs(t, err, solseqerrors.ErrMissingNodes)
}

func TestDecodeConstructor(t *testing.T) {
	raw := `{
		"absolutePath": "c.sol",
		"nodes": [{
			"nodeType": "ContractDefinition",
			"name": "Vault",
			"contractKind": "contract",
			"nodes": [
				{
					"nodeType": "FunctionDefinition",
					"name": "",
					"kind": "constructor",
					"visibility": "public"
				},
				{
					"nodeType": "FunctionDefinition",
					"kind": "function"
				}
			]
		}]
	}`

	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	// The constructor's empty name survives; the nameless definition is
	// dropped entirely.
	fns := doc.Units[0].Contracts[0].Functions
	require.Len(t, fns, 1)
	assert.Equal(t, "", fns[0].Name)
	assert.Equal(t, "constructor", fns[0].Kind)
	assert.False(t, fns[0].HasBody)
}

func TestDecodeStatements(t *testing.T) {
	raw := `{
		"absolutePath": "s.sol",
		"nodes": [{
			"nodeType": "ContractDefinition",
			"name": "Airdrop",
			"contractKind": "contract",
			"nodes": [{
				"nodeType": "FunctionDefinition",
				"name": "distribute",
				"kind": "function",
				"visibility": "external",
				"body": {"statements": [
					{
						"nodeType": "ForStatement",
						"initializationExpression": {
							"declarations": [
								{"name": "i", "typeName": {"nodeType": "ElementaryTypeName", "name": "uint256"}}
							]
						},
						"body": {"statements": [
							{
								"nodeType": "ExpressionStatement",
								"expression": {
									"nodeType": "FunctionCall",
									"expression": {
										"nodeType": "MemberAccess",
										"memberName": "transfer",
										"expression": {"nodeType": "Identifier", "name": "token"}
									},
									"arguments": [{"nodeType": "Identifier", "name": "recipient"}]
								}
							}
						]}
					},
					{
						"nodeType": "IfStatement",
						"condition": {
							"nodeType": "BinaryOperation",
							"operator": ">",
							"leftExpression": {"name": "balance"},
							"rightExpression": {"value": 0}
						},
						"trueBody": {"statements": []}
					},
					{
						"nodeType": "VariableDeclarationStatement",
						"declarations": [{"name": "ok"}],
						"initialValue": {
							"nodeType": "FunctionCall",
							"expression": {
								"nodeType": "MemberAccess",
								"memberName": "verify",
								"expression": {"nodeType": "Identifier", "name": "registry"}
							},
							"arguments": []
						}
					},
					{
						"nodeType": "ExpressionStatement",
						"expression": {
							"nodeType": "FunctionCall",
							"expression": {
								"nodeType": "MemberAccess",
								"memberName": "transfer",
								"expression": {"nodeType": "FunctionCall", "kind": "typeConversion"}
							},
							"arguments": [{"nodeType": "Identifier", "name": "amount"}]
						}
					},
					{"nodeType": "Return"}
				]}
			}]
		}]
	}`

	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	body := doc.Units[0].Contracts[0].Functions[0].Body
	require.Len(t, body, 5)

	require.Equal(t, StmtLoop, body[0].Kind)
	assert.Equal(t, "i", body[0].Loop.VarName)
	assert.Equal(t, "uint256", Resolve(body[0].Loop.VarType))
	require.Len(t, body[0].Loop.Body, 1)
	require.Equal(t, StmtCall, body[0].Loop.Body[0].Kind)
	assert.Equal(t, "token", body[0].Loop.Body[0].Call.Target)

	require.Equal(t, StmtIf, body[1].Kind)
	require.NotNil(t, body[1].If.Cond)
	assert.Equal(t, "balance", body[1].If.Cond.Var)
	assert.Equal(t, ">", body[1].If.Cond.Op)
	assert.Equal(t, "0", body[1].If.Cond.Value)
	assert.False(t, body[1].If.HasElse)

	require.Equal(t, StmtVarDeclCall, body[2].Kind)
	assert.Equal(t, []string{"ok"}, body[2].VarDecl.Names)
	assert.Equal(t, "registry", body[2].VarDecl.Call.Target)
	assert.Equal(t, "verify", body[2].VarDecl.Call.Member)

	require.Equal(t, StmtCall, body[3].Kind)
	assert.True(t, body[3].Call.TargetIsConversion)
	assert.Equal(t, "transfer", body[3].Call.Member)

	assert.Equal(t, StmtUnknown, body[4].Kind)
}
