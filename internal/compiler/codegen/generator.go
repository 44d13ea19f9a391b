// Package codegen emits PHP source and build metadata from a bound program.
// Emission is deterministic: the same inputs always produce byte-identical
// output, including the bootstrap block ordering.
package codegen

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/binder"
	"github.com/strata-lang/strata/internal/compiler/registry"
)

// SourceFile pairs a parsed program with its source path.
type SourceFile struct {
	Path    string
	Program *ast.Program
}

// Output is the result of code generation.
type Output struct {
	// Files maps output file names to PHP source. One file per input source
	// plus the shared runtime support file.
	Files map[string]string
	// Metadata is the canonical JSON build metadata consumed by tooling.
	Metadata []byte
}

// Generator emits PHP source for one output file.
type Generator struct {
	buf    strings.Builder
	indent int
}

// NewGenerator creates a generator with an empty buffer.
func NewGenerator() *Generator {
	return &Generator{}
}

// writeLine writes an indented line followed by a newline.
func (g *Generator) writeLine(format string, args ...interface{}) {
	g.buf.WriteString(strings.Repeat("    ", g.indent))
	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}

// blankLine writes an empty line.
func (g *Generator) blankLine() {
	g.buf.WriteString("\n")
}

// String returns the generated source.
func (g *Generator) String() string {
	return g.buf.String()
}

// Generate emits PHP for every source file, the shared runtime file, and the
// build metadata. Files must be ordered by path; the bound result must come
// from the same programs.
func Generate(files []SourceFile, reg *registry.Registry, bound *binder.Result) (*Output, error) {
	sorted := make([]SourceFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	usesByElement := indexUses(bound)

	output := &Output{Files: map[string]string{}}

	for _, file := range sorted {
		g := NewGenerator()
		g.writeLine("<?php")
		g.blankLine()
		g.writeLine("declare(strict_types=1);")

		for _, decl := range file.Program.Declarations {
			g.blankLine()
			if err := g.emitDeclaration(decl, reg, usesByElement); err != nil {
				return nil, fmt.Errorf("%s: %w", file.Path, err)
			}
		}

		output.Files[phpFileName(file.Path)] = g.String()
	}

	runtime := NewGenerator()
	runtime.emitRuntimeSupport(bound)
	output.Files["strata_runtime.php"] = runtime.String()

	metadata, err := buildMetadata(sorted, reg, bound)
	if err != nil {
		return nil, err
	}
	output.Metadata = metadata

	return output, nil
}

// emitDeclaration dispatches on the top-level declaration kind.
func (g *Generator) emitDeclaration(decl ast.DeclNode, reg *registry.Registry, uses map[ast.Element][]*binder.AnnotationUse) error {
	switch d := decl.(type) {
	case *ast.AttributeDeclNode:
		return g.emitAttributeClass(d, reg, uses)
	case *ast.ClassNode:
		return g.emitClass(d, uses)
	case *ast.FunctionNode:
		return g.emitFunction(d, uses)
	case *ast.ConstantNode:
		return g.emitTopLevelConstant(d, uses)
	default:
		return fmt.Errorf("unsupported declaration %T", decl)
	}
}

// indexUses groups bound annotation uses by their decorated element.
func indexUses(bound *binder.Result) map[ast.Element][]*binder.AnnotationUse {
	index := make(map[ast.Element][]*binder.AnnotationUse)
	for _, use := range bound.Uses {
		index[use.Element] = append(index[use.Element], use)
	}
	return index
}

// phpFileName maps a source path to its output file name.
func phpFileName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".php"
}
