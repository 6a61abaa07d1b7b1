// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version will be set by the main package
	Version = "dev"
	// CommitSHA will be set by the main package
	CommitSHA = "unknown"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of solseq",
	Long:  `Display the current version of the solseq CLI tool.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("solseq version %s (%s)\n", Version, CommitSHA)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
