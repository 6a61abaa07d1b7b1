// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"log/slog"

	"github.com/dotandev/solseq/internal/logger"
	"github.com/dotandev/solseq/internal/updater"
	"github.com/spf13/cobra"
)

// Global flag variables
var (
	LightColorsFlag bool
	OutputFlag      string
	VerboseFlag     bool
	NoCacheFlag     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "solseq",
	Short: "Generate Mermaid sequence diagrams from Solidity ASTs",
	Long: `Solseq turns Solidity contracts into Mermaid sequence diagrams that show
how external users, contracts, and blockchain events interact.

It reads the AST JSON produced by solc (flat or --combined-json ast form),
or compiles .sol files directly when solc is installed.

Key features:
  - Sequence diagrams of public and external function flows
  - Event emissions, loops, and conditional branches
  - Inheritance and contract relationship notes
  - Light and default color themes
  - Diagram cache so unchanged sources render instantly

Examples:
  solseq generate ast.json                   Diagram from AST JSON
  solseq generate --source Token.sol         Compile and diagram a contract
  solseq generate ast.json -o diagram.md     Write to a file
  solseq generate --source Token.sol --watch Regenerate on change
  solseq serve --port 8080                   Run the JSON-RPC daemon

Get started with 'solseq generate --help'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if VerboseFlag {
			logger.SetLevel(slog.LevelDebug)
		}

		// Check for updates asynchronously (non-blocking)
		checkForUpdatesAsync()

		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// checkForUpdatesAsync runs the update check in a goroutine to not block CLI startup
func checkForUpdatesAsync() {
	go func() {
		checker := updater.NewChecker(Version)
		checker.CheckForUpdates()
	}()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(
		&LightColorsFlag,
		"light-colors",
		false,
		"Use the lighter diagram color theme",
	)

	rootCmd.PersistentFlags().StringVarP(
		&OutputFlag,
		"output",
		"o",
		"",
		"Write the diagram to a file instead of stdout",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&VerboseFlag,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().BoolVar(
		&NoCacheFlag,
		"no-cache",
		false,
		"Skip the diagram cache for this run",
	)
}
