// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/solseq/internal/cache"
	"github.com/dotandev/solseq/internal/config"
	"github.com/spf13/cobra"
)

var cacheListLimit int

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the diagram cache",
	Long: `Manage the local cache of generated diagrams.

Diagrams are keyed by the content hash of the AST they were produced from,
so unchanged sources never pay for extraction and rendering twice.

Cache location: ~/.solseq/cache (configurable via SOLSEQ_CACHE_PATH)

Available subcommands:
  list   - Show recent cache entries
  stats  - View entry count and disk usage
  clear  - Delete all cached diagrams`,
	Example: `  # Show recent entries
  solseq cache list

  # Check cache usage
  solseq cache stats

  # Clear all cached diagrams
  solseq cache clear`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent cache entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCacheStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(cacheListLimit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("Cache is empty.")
			return nil
		}

		for _, e := range entries {
			source := e.SourcePath
			if source == "" {
				source = "(stdin)"
			}
			fmt.Printf("%s  %-7s  %8s  %s  %s\n",
				e.ASTHash[:12], e.Palette, formatBytes(e.Size),
				e.CreatedAt.Format("2006-01-02 15:04"), source)
		}
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display cache statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := cache.Open(cfg.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()

		count, bytes, err := store.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("Cache directory: %s\n", cfg.CachePath)
		fmt.Printf("Diagrams cached: %d\n", count)
		fmt.Printf("Total size: %s\n", formatBytes(bytes))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached diagrams",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCacheStore()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Clear()
		if err != nil {
			return err
		}

		fmt.Printf("Removed %d cached diagram(s).\n", n)
		return nil
	},
}

func openCacheStore() (*cache.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cache.Open(cfg.CachePath)
}

// formatBytes renders a byte count in human-readable form
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

func init() {
	cacheListCmd.Flags().IntVarP(&cacheListLimit, "limit", "n", 20, "Maximum entries to show")

	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
