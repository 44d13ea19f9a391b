package codegen

import (
	"fmt"
	"strings"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/binder"
	"github.com/strata-lang/strata/internal/compiler/registry"
)

// hostTargetFlag maps a target kind to the host's native attribute flag.
func hostTargetFlag(kind ast.TargetKind) string {
	switch kind {
	case ast.TargetClass:
		return "Attribute::TARGET_CLASS"
	case ast.TargetMethod:
		return "Attribute::TARGET_METHOD"
	case ast.TargetProperty:
		return "Attribute::TARGET_PROPERTY"
	case ast.TargetParameter:
		return "Attribute::TARGET_PARAMETER"
	case ast.TargetFunction:
		return "Attribute::TARGET_FUNCTION"
	case ast.TargetConstant:
		return "Attribute::TARGET_CLASS_CONSTANT"
	default:
		return ""
	}
}

// targetBitmask renders the OR of the declaration's target flags. Attributes
// are repeatable by default, so IS_REPEATABLE is always included.
func targetBitmask(targets []ast.TargetKind) string {
	flags := make([]string, 0, len(targets)+1)
	for _, kind := range targets {
		flags = append(flags, hostTargetFlag(kind))
	}
	flags = append(flags, "Attribute::IS_REPEATABLE")
	return strings.Join(flags, " | ")
}

// emitAttributeClass emits the PHP attribute class for a native declaration.
// Foreign declarations reference a host attribute that already exists, so
// they produce no output.
func (g *Generator) emitAttributeClass(node *ast.AttributeDeclNode, reg *registry.Registry, uses map[ast.Element][]*binder.AnnotationUse) error {
	decl, ok := reg.Lookup(node.Name)
	if !ok {
		return fmt.Errorf("attribute %s missing from registry", node.Name)
	}
	if decl.Origin == registry.OriginForeign {
		return nil
	}

	g.emitAnnotationLines(uses[node])
	g.writeLine("#[Attribute(%s)]", targetBitmask(decl.Targets))
	g.writeLine("final class %s", decl.Name)
	g.writeLine("{")
	g.indent++

	if len(decl.Params) == 0 {
		g.writeLine("public function __construct()")
		g.writeLine("{")
		g.writeLine("}")
	} else {
		g.writeLine("public function __construct(")
		g.indent++
		for i, param := range decl.Params {
			line := fmt.Sprintf("public %s $%s", phpType(param.Type), param.Name)
			if param.HasDefault {
				line += " = " + phpValue(param.Default)
			}
			if i < len(decl.Params)-1 {
				line += ","
			}
			g.writeLine(line)
		}
		g.indent--
		g.writeLine(") {")
		g.writeLine("}")
	}

	if decl.Attach != nil {
		g.blankLine()
		g.writeLine("public function attach(%s $%s): void", decl.Attach.ContextType, decl.Attach.ContextParam)
		g.writeLine("{")
		g.emitBody(decl.Attach.Body)
		g.writeLine("}")
	}

	g.indent--
	g.writeLine("}")
	return nil
}

// emitAnnotationLines renders bound annotations as host attribute lines, one
// per annotation, with the complete named argument list.
func (g *Generator) emitAnnotationLines(uses []*binder.AnnotationUse) {
	for _, use := range uses {
		g.writeLine("#[%s(%s)]", use.Attribute.Name, annotationArgs(use))
	}
}

// annotationArgs renders the full argument list of a bound annotation as
// named arguments in declaration parameter order.
func annotationArgs(use *binder.AnnotationUse) string {
	parts := make([]string, 0, len(use.Args))
	for _, arg := range use.Args {
		parts = append(parts, fmt.Sprintf("%s: %s", arg.Name, phpValue(arg.Value)))
	}
	return strings.Join(parts, ", ")
}

// emitBody writes a host-passthrough body indented one level deeper.
func (g *Generator) emitBody(body string) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return
	}
	g.indent++
	for _, line := range strings.Split(trimmed, "\n") {
		g.writeLine(strings.TrimSpace(line))
	}
	g.indent--
}
