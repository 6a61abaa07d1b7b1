// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

// Package ast decodes the raw solc AST JSON into a closed set of typed nodes.
// Only the node categories the extractor consumes are modeled; everything else
// decodes to an Unknown variant and is skipped downstream. The raw JSON tree
// never crosses out of this package.
package ast

// Document is a decoded compiler output, one unit per source file.
type Document struct {
	Units []SourceUnit
}

// SourceUnit holds the contract declarations of a single source file.
type SourceUnit struct {
	Path      string
	Contracts []Contract
}

// Contract is a decoded ContractDefinition node.
type Contract struct {
	Name       string
	Kind       string // "contract", "interface" or "library"
	SourcePath string
	Bases      []string
	Events     []string
	Variables  []Variable
	Functions  []Function
}

// Variable is a decoded state VariableDeclaration.
type Variable struct {
	Name string
	Type *TypeName
}

// Function is a decoded FunctionDefinition.
type Function struct {
	Name            string
	Kind            string // "function", "constructor", "fallback", ...
	Visibility      string
	StateMutability string
	Params          []Param
	Returns         []Param
	Body            []Statement
	HasBody         bool
}

// Param is a function parameter or return value.
type Param struct {
	Name string
	Type *TypeName
	// TypeString is the free-text type from typeDescriptions, used as a
	// fallback when structural resolution yields "unknown".
	TypeString string
}

// StmtKind tags the statement variants the body walker understands.
type StmtKind int

const (
	StmtUnknown StmtKind = iota
	StmtLoop
	StmtIf
	StmtEmit
	StmtCall
	StmtVarDeclCall
)

// Statement is a tagged union over the statement kinds. Exactly one of the
// pointer fields matching Kind is non-nil; StmtUnknown carries nothing.
type Statement struct {
	Kind    StmtKind
	Loop    *LoopStmt
	If      *IfStmt
	Emit    *EmitStmt
	Call    *CallExpr
	VarDecl *VarDeclStmt
}

// LoopStmt is a decoded ForStatement.
type LoopStmt struct {
	VarName string
	VarType *TypeName
	Body    []Statement
}

// IfStmt is a decoded IfStatement. Cond is nil when the condition is not a
// recognizable identifier-vs-literal comparison.
type IfStmt struct {
	Cond    *Condition
	True    []Statement
	False   []Statement
	HasElse bool
}

// Condition is a binary comparison between an identifier and a literal.
type Condition struct {
	Var   string
	Op    string
	Value string
}

// EmitStmt is a decoded EmitStatement.
type EmitStmt struct {
	Name string
	Args []Arg
}

// CallExpr is a member-access function call on an identifier target, or on a
// type-conversion expression (e.g. payable(addr).transfer(...)).
type CallExpr struct {
	Target             string
	Member             string
	Args               []Arg
	TargetIsConversion bool
}

// VarDeclStmt is a variable declaration whose initializer is a call.
type VarDeclStmt struct {
	Names []string
	Call  *CallExpr
}

// Arg is a call or event argument: either an identifier or a literal.
type Arg struct {
	IsIdent     bool
	Name        string // identifier name
	Value       string // literal value
	LiteralKind string // literal "kind" tag ("number", "string", "bool", ...)
}

// TypeKind tags the type-description variants.
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeElementary
	TypeUserDefined
	TypeArray
	TypeMapping
	TypeTuple
	TypeFunction
	TypeAddress
)

// TypeName is a decoded type-description node. Field usage depends on Kind;
// TypeString holds the free-text typeDescriptions fallback for unrecognized
// variants.
type TypeName struct {
	Kind            TypeKind
	Name            string // elementary keyword or user-defined plain name
	PathName        string // user-defined qualified path name
	Base            *TypeName
	Length          string // fixed array length, "" when dynamic
	Key             *TypeName
	Value           *TypeName
	Components      []*TypeName
	HasComponents   bool
	StateMutability string
	TypeString      string
}
