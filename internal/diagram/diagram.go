// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

// Package diagram renders the intermediate model as Mermaid sequence-diagram
// markup. Rendering is deterministic and never fails: absent sections are
// simply omitted.
package diagram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dotandev/solseq/internal/extract"
	"github.com/dotandev/solseq/internal/heuristic"
)

// Render assembles the full fenced Mermaid block from a populated model. The
// lightColors flag selects between the two fixed palettes and only affects
// color values, never structure.
func Render(m *extract.Model, lightColors bool) string {
	var lines []string

	lines = append(lines,
		"```mermaid",
		"sequenceDiagram",
		"title Smart Contract Interaction Sequence Diagram",
		"autonumber",
		"")

	lines = append(lines, themeConfig(lightColors)...)

	participants := orderParticipants(m)
	lines = append(lines, participantLines(participants, m.Contracts)...)
	lines = append(lines, "")

	if len(m.UserInteractions) > 0 {
		lines = append(lines, sectionTitle("User Interactions", lightColors)...)
		lines = append(lines, m.UserInteractions...)
	}

	if len(m.InteractionOrder) > 0 {
		lines = append(lines, "")
		lines = append(lines, sectionTitle("Contract-to-Contract Interactions", lightColors)...)

		for _, key := range m.InteractionOrder {
			body := m.ContractInteractions[key]
			if len(body) == 0 {
				continue
			}
			parts := strings.SplitN(key, ".", 2)
			if len(parts) != 2 {
				continue
			}
			lines = append(lines, fmt.Sprintf("Note right of %s: Processing %s", parts[0], parts[1]))
			lines = append(lines, body...)
			lines = append(lines, "")
		}
	}

	if len(m.Events) > 0 {
		lines = append(lines, "")
		lines = append(lines, sectionTitle("Event Definitions", lightColors)...)
		for _, pair := range m.Events {
			lines = append(lines, fmt.Sprintf("Note over %s,%s: Event: %s", pair[0], pair[0], pair[1]))
		}
	}

	if len(m.Contracts) > 0 {
		lines = append(lines, "")
		lines = append(lines, sectionTitle("Contract Relationships", lightColors)...)
		lines = append(lines, relationshipNotes(m)...)
	}

	lines = append(lines, legend(lightColors)...)
	lines = append(lines, "```")

	return strings.Join(lines, "\n")
}

func themeConfig(lightColors bool) []string {
	p := themePalette(lightColors)
	return []string{
		"%%{init: {",
		"  'theme': 'base',",
		"  'themeVariables': {",
		fmt.Sprintf("    'primaryColor': '%s',", p.primaryColor),
		fmt.Sprintf("    'primaryTextColor': '%s',", p.primaryTextColor),
		fmt.Sprintf("    'primaryBorderColor': '%s',", p.primaryBorderColor),
		fmt.Sprintf("    'lineColor': '%s',", p.lineColor),
		fmt.Sprintf("    'secondaryColor': '%s',", p.secondaryColor),
		fmt.Sprintf("    'tertiaryColor': '%s'", p.tertiaryColor),
		"  }",
		"}}%%",
		"",
	}
}

// orderParticipants puts User first, Events last, and everything in between
// in lexicographic order, regardless of declaration order in the AST.
func orderParticipants(m *extract.Model) []string {
	var ordered []string

	if m.HasParticipant("User") {
		ordered = append(ordered, "User")
	}

	middle := make([]string, 0, len(m.Participants))
	for name := range m.Participants {
		if name != "User" && name != "Events" {
			middle = append(middle, name)
		}
	}
	sort.Strings(middle)
	ordered = append(ordered, middle...)

	if m.HasParticipant("Events") {
		ordered = append(ordered, "Events")
	}

	return ordered
}

func participantLines(ordered []string, contracts map[string]*extract.ContractInfo) []string {
	var lines []string

	for _, name := range ordered {
		switch name {
		case "User":
			lines = append(lines, `participant User as "External User"`)
		case "Events":
			lines = append(lines, `participant Events as "Blockchain Events"`)
		case "TokenContract":
			lines = append(lines, `participant TokenContract as "ERC20/ERC721 Tokens"`)
		default:
			info, ok := contracts[name]
			if !ok {
				lines = append(lines, "participant "+name)
				continue
			}
			lines = append(lines, fmt.Sprintf("participant %s as %q", name, participantLabel(name, info)))
		}
	}

	return lines
}

// participantLabel builds the composite lane label: name (with kind suffix
// when not a plain contract), up to two important variables, and the source
// file, joined with Mermaid line breaks.
func participantLabel(name string, info *extract.ContractInfo) string {
	parts := []string{name}
	if info.Kind != "contract" {
		parts[0] = fmt.Sprintf("%s (%s)", name, info.Kind)
	}

	var keyVars []string
	for _, v := range info.Variables {
		if !heuristic.IsImportantVariable(v.Name) {
			continue
		}
		keyVars = append(keyVars, fmt.Sprintf("%s: %s", v.Name, v.Type))
		if len(keyVars) == 2 {
			break
		}
	}
	if len(keyVars) > 0 {
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(keyVars, ", ")))
	}

	if info.SourceFile != "" {
		parts = append(parts, "from "+info.SourceFile)
	}

	return strings.Join(parts, "<br/>")
}

func sectionTitle(title string, lightColors bool) []string {
	return []string{
		"rect " + sectionColor(title, lightColors),
		"Note over User: " + title,
		"end",
		"",
	}
}

// relationshipNotes emits the relationships section in fixed order: function
// summaries, inheritance, non-default contract kinds, then deduplicated
// "calls" edges between registered participants.
func relationshipNotes(m *extract.Model) []string {
	var lines []string

	for _, name := range m.ContractOrder {
		info := m.Contracts[name]
		if len(info.Functions) > 0 {
			lines = append(lines, fmt.Sprintf("Note over %s: Functions: %s", name, strings.Join(info.Functions, ", ")))
		}
	}

	lines = append(lines, "")

	for _, name := range m.ContractOrder {
		info := m.Contracts[name]
		if len(info.InheritsFrom) > 0 {
			lines = append(lines, fmt.Sprintf("Note right of %s: Inherits from: %s", name, strings.Join(info.InheritsFrom, ", ")))
		}
	}

	lines = append(lines, "")

	for _, name := range m.ContractOrder {
		info := m.Contracts[name]
		if info.Kind != "contract" {
			lines = append(lines, fmt.Sprintf("Note right of %s: Type: %s", name, info.Kind))
		}
	}

	if len(m.Relationships) > 0 {
		lines = append(lines, "")
		seen := make(map[string]struct{})

		for _, rel := range m.Relationships {
			if rel.Kind != "calls" || !m.HasParticipant(rel.Source) || !m.HasParticipant(rel.Target) {
				continue
			}
			key := rel.Source + "->" + rel.Target
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			lines = append(lines, fmt.Sprintf("Note right of %s: Interacts with %s", rel.Source, rel.Target))
		}
	}

	return lines
}

func legend(lightColors bool) []string {
	return []string{
		"",
		"%%{init: { 'sequence': { 'showSequenceNumbers': true } }}%%",
		"",
		"rect " + legendColor(lightColors),
		"Note over User: Diagram Legend",
		"end",
		"",
		"Note left of User: User→Contract: Public/External function calls",
		"Note left of User: User←Contract: Function returns",
		"Note left of User: Contract→Contract: Internal interactions",
		"Note left of User: Contract→Events: Emitted events",
		"Note left of User: Colored sections indicate different interaction types",
	}
}
