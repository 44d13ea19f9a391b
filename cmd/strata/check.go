package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strata-lang/strata/internal/cli/config"
	"github.com/strata-lang/strata/internal/compiler"
)

var checkJSON bool

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output diagnostics in JSON format")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate Strata source without emitting PHP",
	Long:  "Run the lex, parse, declaration, and binding phases and report all diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		paths, err := findSources(cfg)
		if err != nil {
			return err
		}

		result, err := compiler.Compile(paths)
		if err != nil {
			return err
		}

		if result.Diagnostics.HasErrors() {
			buildJSON = checkJSON
			reportDiagnostics(result.Diagnostics)
			return fmt.Errorf("check failed")
		}

		fmt.Printf("Checked %d file(s): %d attribute(s), %d annotation(s), no errors\n",
			len(result.Files), result.Registry.Len(), len(result.Bound.Uses))
		return nil
	},
}
