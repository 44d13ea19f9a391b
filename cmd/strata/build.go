package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/strata-lang/strata/internal/cli/config"
	"github.com/strata-lang/strata/internal/compiler"
	"github.com/strata-lang/strata/internal/compiler/diag"
)

var (
	buildJSON    bool
	buildVerbose bool
	buildDumpAST bool
)

func init() {
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "Output diagnostics in JSON format")
	buildCmd.Flags().BoolVar(&buildVerbose, "verbose", false, "Show detailed build output")
	buildCmd.Flags().BoolVar(&buildDumpAST, "dump-ast", false, "Dump the parsed AST and exit")
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile Strata source to PHP",
	Long:  "Compile all .sta files in the configured source directory and emit PHP plus build metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		paths, err := findSources(cfg)
		if err != nil {
			return err
		}

		if buildVerbose {
			fmt.Printf("Found %d .sta file(s)\n", len(paths))
		}

		result, err := compiler.Compile(paths)
		if err != nil {
			return err
		}

		if buildDumpAST {
			for _, file := range result.Files {
				fmt.Printf("=== %s ===\n", file.Path)
				spew.Dump(file.Program)
			}
			return nil
		}

		if result.Diagnostics.HasErrors() {
			reportDiagnostics(result.Diagnostics)
			return fmt.Errorf("compilation failed")
		}

		if err := cfg.EnsureOutputDir(); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		for name, content := range result.Output.Files {
			path := filepath.Join(cfg.Build.OutputDir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			if buildVerbose {
				fmt.Printf("  Generated %s\n", path)
			}
		}

		metadataPath := filepath.Join(cfg.Build.OutputDir, "strata_metadata.json")
		if err := os.WriteFile(metadataPath, result.Output.Metadata, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", metadataPath, err)
		}

		elapsed := time.Since(startTime)
		fmt.Printf("\nBuild successful in %.2fs\n", elapsed.Seconds())
		fmt.Printf("  Output: %s\n", cfg.Build.OutputDir)

		return nil
	},
}

// findSources globs the configured source directory for .sta files.
func findSources(cfg *config.Config) ([]string, error) {
	if _, err := os.Stat(cfg.Build.SourceDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s/ directory not found - are you in a Strata project?", cfg.Build.SourceDir)
	}

	paths, err := filepath.Glob(filepath.Join(cfg.Build.SourceDir, "*.sta"))
	if err != nil {
		return nil, fmt.Errorf("failed to find .sta files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .sta files found in %s/", cfg.Build.SourceDir)
	}
	return paths, nil
}

// reportDiagnostics prints diagnostics in the selected format.
func reportDiagnostics(diags *diag.List) {
	if buildJSON {
		output := struct {
			Success     bool             `json:"success"`
			Diagnostics []diag.Diagnostic `json:"diagnostics"`
		}{
			Success:     false,
			Diagnostics: diags.All(),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		encoder.Encode(output)
		return
	}

	diag.RenderTerminal(os.Stderr, diags)
}
