// Package compiler wires the compilation phases into a single pipeline:
// lex, parse, declare, bind, and emit. The CLI commands all drive this
// pipeline and differ only in what they do with the result.
package compiler

import (
	"fmt"
	"os"
	"sort"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/binder"
	"github.com/strata-lang/strata/internal/compiler/codegen"
	"github.com/strata-lang/strata/internal/compiler/diag"
	"github.com/strata-lang/strata/internal/compiler/lexer"
	"github.com/strata-lang/strata/internal/compiler/parser"
	"github.com/strata-lang/strata/internal/compiler/registry"
)

// Result holds everything a compilation produced. Output is nil when any
// phase reported errors.
type Result struct {
	Files       []codegen.SourceFile
	Registry    *registry.Registry
	Bound       *binder.Result
	Output      *codegen.Output
	Diagnostics *diag.List
}

// Compile runs the full pipeline over the given source files. Paths are
// sorted so multi-file builds are deterministic regardless of argument order.
// IO failures return an error; source-level problems are reported through
// Result.Diagnostics.
func Compile(paths []string) (*Result, error) {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	result := &Result{
		Registry:    registry.New(),
		Diagnostics: diag.NewList(),
	}

	// Phase 1: lex and parse every file.
	for _, path := range sorted {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		program := parseFile(string(source), path, result.Diagnostics)
		result.Files = append(result.Files, codegen.SourceFile{Path: path, Program: program})
	}

	// Phase 2: declaration pass across all files, then freeze.
	for _, file := range result.Files {
		for _, decl := range file.Program.Declarations {
			if attr, ok := decl.(*ast.AttributeDeclNode); ok {
				result.Registry.Declare(attr, result.Diagnostics)
			}
		}
	}
	result.Registry.Freeze()

	// Phase 3: bind annotations.
	programs := make([]*ast.Program, 0, len(result.Files))
	for _, file := range result.Files {
		programs = append(programs, file.Program)
	}
	result.Bound = binder.New(result.Registry).BindAll(programs, result.Diagnostics)

	if result.Diagnostics.HasErrors() {
		return result, nil
	}

	// Phase 4: emit.
	output, err := codegen.Generate(result.Files, result.Registry, result.Bound)
	if err != nil {
		result.Diagnostics.Error(diag.PhaseEmit, diag.ErrEmitFailed, ast.SourceLocation{}, "%v", err)
		return result, nil
	}
	result.Output = output

	return result, nil
}

// parseFile lexes and parses one source file, converting lexer and parser
// errors into diagnostics.
func parseFile(source, path string, diags *diag.List) *ast.Program {
	tokens, lexErrors := lexer.New(source, path).ScanTokens()
	for _, lexErr := range lexErrors {
		diags.Error(diag.PhaseLex, "", ast.SourceLocation{
			File:   lexErr.File,
			Line:   lexErr.Line,
			Column: lexErr.Column,
		}, "%s", lexErr.Message)
	}

	program, parseErrors := parser.New(tokens, source).Parse()
	for _, parseErr := range parseErrors {
		diags.Error(diag.PhaseParse, "", parseErr.Location, "%s", parseErr.Message)
	}

	return program
}
