package codegen

import (
	"github.com/strata-lang/strata/internal/compiler/binder"
)

// emitRuntimeSupport emits the shared runtime file: the attach context
// classes and the bootstrap function that fires attach hooks at program
// startup. Hook order is fixed: elements in source order, annotations on
// each element top to bottom.
func (g *Generator) emitRuntimeSupport(bound *binder.Result) {
	g.writeLine("<?php")
	g.blankLine()
	g.writeLine("declare(strict_types=1);")
	g.blankLine()

	g.emitContextClass("MethodContext", "the decorated method or function")
	g.blankLine()
	g.emitContextClass("ValueContext", "the decorated property, parameter, or constant")
	g.blankLine()
	g.emitContextClass("InstanceContext", "the decorated class")
	g.blankLine()

	g.writeLine("function __strata_bootstrap(): void")
	g.writeLine("{")
	g.indent++

	emitted := false
	for _, use := range bound.Uses {
		if use.Attribute.Attach == nil {
			continue
		}
		emitted = true
		g.writeLine("(new %s(%s))->attach(new %s(%s));",
			use.Attribute.Name,
			annotationArgs(use),
			use.Attribute.Attach.ContextType,
			phpString(use.Element.ElementName()))
	}
	if !emitted {
		g.writeLine("// no attach hooks declared")
	}

	g.indent--
	g.writeLine("}")
	g.blankLine()
	g.writeLine("__strata_bootstrap();")
}

// emitContextClass emits one attach context class holding the qualified name
// of the decorated element.
func (g *Generator) emitContextClass(name, doc string) {
	g.writeLine("/** Passed to attach hooks for %s. */", doc)
	g.writeLine("final class %s", name)
	g.writeLine("{")
	g.indent++
	g.writeLine("public function __construct(")
	g.indent++
	g.writeLine("public readonly string $element")
	g.indent--
	g.writeLine(") {")
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}

// BootstrapEntryCount returns how many attach calls the bootstrap block will
// contain for a bound result.
func BootstrapEntryCount(bound *binder.Result) int {
	count := 0
	for _, use := range bound.Uses {
		if use.Attribute.Attach != nil {
			count++
		}
	}
	return count
}
