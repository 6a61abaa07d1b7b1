// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dotandev/solseq/internal/cache"
	"github.com/dotandev/solseq/internal/config"
	"github.com/dotandev/solseq/internal/generate"
	"github.com/dotandev/solseq/internal/logger"
	"github.com/dotandev/solseq/internal/solc"
	"github.com/dotandev/solseq/internal/watch"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	generateSourceFlags []string
	generateWatchFlag   bool
	generateIntervalMs  int
)

var generateCmd = &cobra.Command{
	Use:   "generate [ast.json]",
	Short: "Generate a Mermaid sequence diagram",
	Long: `Generate a Mermaid sequence diagram from a Solidity AST.

The input is either an AST JSON file produced by solc (flat or
--combined-json ast form), or one or more .sol files passed with --source,
which are compiled with the local solc binary and merged into a single
diagram.`,
	Example: `  # From a pre-compiled AST
  solseq generate ast.json

  # Compile sources directly (requires solc >= 0.8.0 on PATH)
  solseq generate --source Token.sol --source Vault.sol

  # Light theme, written to a file
  solseq generate ast.json --light-colors -o diagram.md

  # Regenerate whenever a source changes
  solseq generate --source Token.sol --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && len(generateSourceFlags) == 0 {
			return fmt.Errorf("provide an AST file argument or at least one --source file")
		}
		if len(args) > 0 && len(generateSourceFlags) > 0 {
			return fmt.Errorf("an AST file and --source are mutually exclusive")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		genCfg := generate.Config{
			LightColors: LightColorsFlag || cfg.LightColors,
			OutputFile:  OutputFlag,
		}
		if genCfg.OutputFile == "" {
			genCfg.OutputFile = cfg.OutputFile
		}

		ctx := cmd.Context()

		if generateWatchFlag {
			if len(generateSourceFlags) == 0 {
				return fmt.Errorf("--watch requires --source files")
			}
			return runWatch(ctx, cfg, genCfg)
		}

		var out string
		if len(generateSourceFlags) > 0 {
			out, err = generateFromSources(ctx, cfg, genCfg)
		} else {
			out, err = generateFromASTFile(ctx, cfg, genCfg, args[0])
		}
		if err != nil {
			return err
		}

		return emit(out, genCfg)
	},
}

// generateFromASTFile renders a diagram for an on-disk AST, consulting the
// cache unless disabled.
func generateFromASTFile(ctx context.Context, cfg *config.Config, genCfg generate.Config, astPath string) (string, error) {
	raw, err := os.ReadFile(astPath)
	if err != nil {
		return "", fmt.Errorf("failed to read AST file: %w", err)
	}

	store := openCache(cfg)
	if store != nil {
		defer store.Close()

		hash := cache.HashAST(raw)
		if cached, ok, err := store.Get(hash, genCfg.LightColors); err == nil && ok {
			logger.Logger.Debug("cache hit", "hash", hash[:12])
			return cached, nil
		}

		out, err := generate.FromAST(ctx, raw, generate.Config{LightColors: genCfg.LightColors})
		if err != nil {
			return "", err
		}
		if err := store.Put(hash, genCfg.LightColors, astPath, out); err != nil {
			logger.Logger.Warn("failed to cache diagram", "error", err)
		}
		return out, nil
	}

	return generate.FromAST(ctx, raw, generate.Config{LightColors: genCfg.LightColors})
}

// generateFromSources compiles the --source files and renders the merged AST,
// consulting the cache keyed by the combined document.
func generateFromSources(ctx context.Context, cfg *config.Config, genCfg generate.Config) (string, error) {
	runner, err := solc.NewRunner(cfg.SolcPath)
	if err != nil {
		return "", err
	}
	if err := runner.CheckVersion(ctx); err != nil {
		return "", err
	}

	combined := make(map[string]any)
	for _, path := range generateSourceFlags {
		doc, err := runner.CompileAST(ctx, path)
		if err != nil {
			return "", err
		}
		solc.MergeAST(combined, doc)
	}

	store := openCache(cfg)
	if store != nil {
		defer store.Close()

		raw, err := generate.MarshalCombined(combined)
		if err != nil {
			return "", err
		}
		hash := cache.HashAST(raw)
		if cached, ok, err := store.Get(hash, genCfg.LightColors); err == nil && ok {
			logger.Logger.Debug("cache hit", "hash", hash[:12])
			return cached, nil
		}

		out, err := generate.FromValue(ctx, combined, generate.Config{LightColors: genCfg.LightColors})
		if err != nil {
			return "", err
		}
		if err := store.Put(hash, genCfg.LightColors, strings.Join(generateSourceFlags, ","), out); err != nil {
			logger.Logger.Warn("failed to cache diagram", "error", err)
		}
		return out, nil
	}

	return generate.FromValue(ctx, combined, generate.Config{LightColors: genCfg.LightColors})
}

// runWatch regenerates the diagram whenever a watched source changes.
// Watch runs cache-free since the sources are changing anyway.
func runWatch(ctx context.Context, cfg *config.Config, genCfg generate.Config) error {
	runner, err := solc.NewRunner(cfg.SolcPath)
	if err != nil {
		return err
	}
	if err := runner.CheckVersion(ctx); err != nil {
		return err
	}

	regenerate := func(ctx context.Context) error {
		out, err := generate.FromSources(ctx, runner, generateSourceFlags, generate.Config{LightColors: genCfg.LightColors})
		if err != nil {
			return err
		}
		return emit(out, genCfg)
	}

	// Render once up front so the watcher starts from a good state.
	if err := regenerate(ctx); err != nil {
		return err
	}

	interval := time.Duration(generateIntervalMs) * time.Millisecond
	watcher := watch.NewWatcher(interval)

	fmt.Fprintf(os.Stderr, "Watching %d file(s) for changes. Press Ctrl-C to stop.\n", len(generateSourceFlags))
	err = watcher.Watch(ctx, generateSourceFlags, regenerate)
	if err == context.Canceled {
		return nil
	}
	return err
}

// openCache returns an open cache store or nil when caching is disabled or
// unavailable. Cache failures never fail a generation run.
func openCache(cfg *config.Config) *cache.Store {
	if NoCacheFlag || cfg.NoCache {
		return nil
	}
	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		logger.Logger.Warn("diagram cache unavailable", "error", err)
		return nil
	}
	return store
}

// emit writes the diagram to the output file or stdout. When stdout is a
// terminal a short colored summary is printed after file output.
func emit(out string, genCfg generate.Config) error {
	if genCfg.OutputFile == "" {
		fmt.Println(out)
		return nil
	}

	if err := os.WriteFile(genCfg.OutputFile, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if isatty.IsTerminal(os.Stdout.Fd()) {
		green := color.New(color.FgGreen, color.Bold)
		green.Printf("✓ Diagram written to %s", genCfg.OutputFile)
		fmt.Printf(" (%d lines)\n", strings.Count(out, "\n")+1)
	} else {
		fmt.Printf("Diagram written to %s\n", genCfg.OutputFile)
	}
	return nil
}

func init() {
	generateCmd.Flags().StringArrayVarP(
		&generateSourceFlags,
		"source",
		"s",
		nil,
		"Solidity source file to compile (repeatable)",
	)
	generateCmd.Flags().BoolVarP(
		&generateWatchFlag,
		"watch",
		"w",
		false,
		"Watch --source files and regenerate on change",
	)
	generateCmd.Flags().IntVar(
		&generateIntervalMs,
		"interval",
		1000,
		"Watch poll interval in milliseconds",
	)

	rootCmd.AddCommand(generateCmd)
}
