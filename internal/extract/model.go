// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

// Package extract walks a decoded AST document and populates the intermediate
// model the diagram renderer consumes. A model is built fresh per extraction
// and never reused.
package extract

// ContractInfo collects everything the renderer needs about one contract.
type ContractInfo struct {
	Name         string
	Events       []string
	Functions    []string
	Variables    []Variable
	InheritsFrom []string
	Kind         string
	SourceFile   string
}

// Variable is a state variable with its resolved type name.
type Variable struct {
	Name string
	Type string
}

// Relationship is a directed edge between two participants.
type Relationship struct {
	Source string
	Target string
	// Kind is one of "inherits", "references" or "calls".
	Kind string
}

// Model is the normalized representation handed to the renderer. Participants
// are membership-tested; everything else preserves insertion order.
type Model struct {
	Participants  map[string]struct{}
	Contracts     map[string]*ContractInfo
	ContractOrder []string

	UserInteractions []string

	// ContractInteractions maps "<contract>.<function>" keys to the rendered
	// body lines for that function; InteractionOrder preserves first-insert
	// order, which drives render order.
	ContractInteractions map[string][]string
	InteractionOrder     []string

	// Events holds (contract, event) pairs in declaration order; duplicates
	// are permitted.
	Events [][2]string

	Relationships []Relationship
}

// NewModel returns an empty model ready for one extraction pass.
func NewModel() *Model {
	return &Model{
		Participants:         make(map[string]struct{}),
		Contracts:            make(map[string]*ContractInfo),
		ContractInteractions: make(map[string][]string),
	}
}

// AddParticipant registers a participant lane.
func (m *Model) AddParticipant(name string) {
	m.Participants[name] = struct{}{}
}

// HasParticipant reports lane membership.
func (m *Model) HasParticipant(name string) bool {
	_, ok := m.Participants[name]
	return ok
}

// addContract stores a ContractInfo, tracking first-insert order.
func (m *Model) addContract(info *ContractInfo) {
	if _, exists := m.Contracts[info.Name]; !exists {
		m.ContractOrder = append(m.ContractOrder, info.Name)
	}
	m.Contracts[info.Name] = info
}

// setInteractions stores a function's body lines under its key. A repeated
// key (overloads) replaces the lines but keeps the original position.
func (m *Model) setInteractions(key string, lines []string) {
	if _, exists := m.ContractInteractions[key]; !exists {
		m.InteractionOrder = append(m.InteractionOrder, key)
	}
	m.ContractInteractions[key] = lines
}
