// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

// Package heuristic infers semantic roles from identifier names. The solc AST
// frequently omits resolved type information for identifiers used as call
// arguments, so these matchers approximate it from naming conventions. Rule
// order is load-bearing: the first match wins, and reordering changes output.
package heuristic

import "strings"

// functionPurposes maps well-known function name fragments to a human
// description, checked in table order.
var functionPurposes = []struct {
	keyword     string
	description string
}{
	{"constructor", "Contract initialization"},
	{"transfer", "Transfer tokens or ETH"},
	{"approve", "Approve token spending"},
	{"mint", "Create new tokens"},
	{"burn", "Destroy tokens"},
	{"deposit", "Deposit funds"},
	{"withdraw", "Withdraw funds"},
	{"claim", "Claim rewards or tokens"},
	{"stake", "Stake tokens"},
	{"unstake", "Unstake tokens"},
	{"vote", "Cast vote"},
	{"execute", "Execute operation"},
	{"deploy", "Deploy new contract instance"},
	{"predictAddress", "Calculate deterministic address"},
	{"airdrop", "Distribute tokens to addresses"},
	{"airdropToAddresses", "Send ETH to multiple addresses"},
	{"airdropToKeyIds", "Send ETH to wallets identified by public keys"},
}

// FunctionPurpose returns a description of a function based on its name, and
// whether any table entry matched.
func FunctionPurpose(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, entry := range functionPurposes {
		if strings.Contains(lower, strings.ToLower(entry.keyword)) {
			return entry.description, true
		}
	}
	return "", false
}

var importantPrefixes = []string{
	"owner", "admin", "token", "deployer", "implementation", "registry", "factory",
}

// IsImportantVariable reports whether a state variable is prominent enough to
// show in a participant label.
func IsImportantVariable(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range importantPrefixes {
		if strings.Contains(lower, prefix) {
			return true
		}
	}
	return false
}

// GuessTypeFromName infers a plausible type for an identifier from its name.
// Rules are checked in this exact order; the first match wins.
func GuessTypeFromName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(name, "is") || strings.HasPrefix(name, "has"):
		return "bool"
	case strings.Contains(lower, "amount") || strings.Contains(lower, "value") || strings.Contains(lower, "balance"):
		return "uint256"
	case strings.Contains(lower, "address") || strings.HasSuffix(name, "Addr"):
		return "address"
	case strings.Contains(lower, "id"):
		return "bytes32"
	case strings.Contains(lower, "key"):
		return "bytes"
	default:
		return "any"
	}
}

// LiteralType maps a literal node's declared kind to a type name.
func LiteralType(kind string) string {
	switch kind {
	case "number":
		return "uint256"
	case "string":
		return "string"
	case "bool":
		return "bool"
	default:
		return "any"
	}
}
