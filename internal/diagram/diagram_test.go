// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotandev/solseq/internal/extract"
)

func modelWithContracts(names ...string) *extract.Model {
	m := extract.NewModel()
	m.AddParticipant("User")
	m.AddParticipant("Events")
	for _, name := range names {
		m.AddParticipant(name)
	}
	return m
}

func TestOrderParticipants(t *testing.T) {
	m := modelWithContracts("Zebra", "Alpha", "Middle")

	assert.Equal(t,
		[]string{"User", "Alpha", "Middle", "Zebra", "Events"},
		orderParticipants(m))
}

func TestOrderParticipantsInsertionInvariance(t *testing.T) {
	a := modelWithContracts("Vault", "Token", "Registry")
	b := modelWithContracts("Registry", "Vault", "Token")

	assert.Equal(t, orderParticipants(a), orderParticipants(b))
}

func TestRenderEmptyModel(t *testing.T) {
	out := Render(extract.NewModel(), false)

	// The frame is always present.
	assert.True(t, strings.HasPrefix(out, "```mermaid\nsequenceDiagram"))
	assert.True(t, strings.HasSuffix(out, "```"))
	assert.Contains(t, out, "autonumber")

	// No participants and no section titles for an empty document.
	assert.NotContains(t, out, "participant")
	assert.NotContains(t, out, "User Interactions")
	assert.NotContains(t, out, "Contract-to-Contract Interactions")
	assert.NotContains(t, out, "Event Definitions")
	assert.NotContains(t, out, "Contract Relationships")
}

func populatedModel() *extract.Model {
	m := modelWithContracts("Vault")
	m.AddParticipant("TokenContract")

	info := &extract.ContractInfo{
		Name:       "Vault",
		Kind:       "contract",
		SourceFile: "Vault.sol",
		Functions:  []string{"deposit", "withdraw"},
		Variables: []extract.Variable{
			{Name: "owner", Type: "address"},
			{Name: "shares", Type: "uint256"},
		},
		InheritsFrom: []string{"Ownable"},
	}
	m.Contracts["Vault"] = info
	m.ContractOrder = []string{"Vault"}

	m.UserInteractions = []string{
		"User->>+Vault: deposit(amount: uint256)",
		"Vault-->>-User: return",
	}
	m.Events = [][2]string{{"Vault", "Deposited"}}
	return m
}

func TestRenderPopulatedModel(t *testing.T) {
	out := Render(populatedModel(), false)

	assert.Contains(t, out, `participant User as "External User"`)
	assert.Contains(t, out, `participant Events as "Blockchain Events"`)
	assert.Contains(t, out, `participant TokenContract as "ERC20/ERC721 Tokens"`)

	// The contract lane label carries the important variable and the source
	// file; the unimportant one is omitted.
	assert.Contains(t, out, "owner: address")
	assert.NotContains(t, out, "shares: uint256")
	assert.Contains(t, out, "from Vault.sol")

	assert.Contains(t, out, "Note over User: User Interactions")
	assert.Contains(t, out, "User->>+Vault: deposit(amount: uint256)")
	assert.Contains(t, out, "Note over Vault,Vault: Event: Deposited")
	assert.Contains(t, out, "Note over Vault: Functions: deposit, withdraw")
	assert.Contains(t, out, "Note right of Vault: Inherits from: Ownable")
	assert.Contains(t, out, "Note over User: Diagram Legend")
}

func TestRenderPalettesDifferOnlyInColors(t *testing.T) {
	def := Render(populatedModel(), false)
	light := Render(populatedModel(), true)

	require.NotEqual(t, def, light)

	// Same line count and identical structure outside color literals.
	defLines := strings.Split(def, "\n")
	lightLines := strings.Split(light, "\n")
	require.Equal(t, len(defLines), len(lightLines))

	for i := range defLines {
		if defLines[i] == lightLines[i] {
			continue
		}
		differsInColor := strings.Contains(defLines[i], "#") ||
			strings.Contains(defLines[i], "rgb(")
		assert.True(t, differsInColor, "non-color line differs: %q vs %q", defLines[i], lightLines[i])
	}
}

func TestRenderInteractionSections(t *testing.T) {
	m := populatedModel()
	m.ContractInteractions = map[string][]string{
		"Vault.deposit": {"Vault->>Events: emit Deposited()"},
		"Vault.empty":   {},
	}
	m.InteractionOrder = []string{"Vault.deposit", "Vault.empty"}

	out := Render(m, false)

	assert.Contains(t, out, "Note right of Vault: Processing deposit")
	assert.Contains(t, out, "Vault->>Events: emit Deposited()")
	// Functions with no rendered body produce no processing note.
	assert.NotContains(t, out, "Processing empty")
}

func TestRenderCallEdgesDeduplicated(t *testing.T) {
	m := populatedModel()
	m.AddParticipant("Registry")
	m.Contracts["Registry"] = &extract.ContractInfo{Name: "Registry", Kind: "contract"}
	m.ContractOrder = append(m.ContractOrder, "Registry")

	m.Relationships = []extract.Relationship{
		{Source: "Vault", Target: "Registry", Kind: "calls"},
		{Source: "Vault", Target: "Registry", Kind: "calls"},
		{Source: "Vault", Target: "Ghost", Kind: "calls"},
		{Source: "Vault", Target: "Registry", Kind: "references"},
	}

	out := Render(m, false)

	// The duplicate edge collapses, the edge to an unregistered participant
	// is dropped, and non-call kinds never render as interaction notes.
	assert.Equal(t, 1, strings.Count(out, "Note right of Vault: Interacts with Registry"))
	assert.NotContains(t, out, "Interacts with Ghost")
}

func TestSectionColorFallback(t *testing.T) {
	assert.Equal(t, "rgb(240, 240, 240)", sectionColor("Something Else", false))
	assert.Equal(t, "rgb(250, 250, 250)", sectionColor("Something Else", true))
	assert.Equal(t, "rgb(245, 245, 245)", sectionColor("User Interactions", false))
	assert.Equal(t, "rgb(252, 252, 255)", sectionColor("User Interactions", true))
}
