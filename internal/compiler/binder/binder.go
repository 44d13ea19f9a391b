// Package binder resolves annotations against the attribute declaration
// registry. Binding produces, for every annotation, the complete ordered
// argument list with explicit arguments and defaulted arguments merged, so
// downstream consumers never re-derive defaults.
package binder

import (
	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/diag"
	"github.com/strata-lang/strata/internal/compiler/eval"
	"github.com/strata-lang/strata/internal/compiler/registry"
	"github.com/strata-lang/strata/internal/compiler/types"
)

// Argument is a single resolved annotation argument.
type Argument struct {
	Name     string
	Value    interface{} // evaluated constant
	Explicit bool        // false when filled from the parameter default
	Loc      ast.SourceLocation
}

// AnnotationUse is one bound annotation on one program element.
type AnnotationUse struct {
	Attribute *registry.Declaration
	Element   ast.Element
	Args      []Argument // declaration parameter order, defaults included
	Loc       ast.SourceLocation
}

// Arg looks up a bound argument by parameter name.
func (u *AnnotationUse) Arg(name string) (Argument, bool) {
	for _, arg := range u.Args {
		if arg.Name == name {
			return arg, true
		}
	}
	return Argument{}, false
}

// Result holds the outcome of binding a program.
type Result struct {
	// Uses lists every bound annotation in bootstrap order: elements in
	// source order, annotations on each element top to bottom.
	Uses []*AnnotationUse
}

// Binder binds annotations against a frozen registry.
type Binder struct {
	registry *registry.Registry
}

// New creates a binder. The registry must already be frozen; binding against
// a mutable registry would let later declarations change earlier bindings.
func New(reg *registry.Registry) *Binder {
	if !reg.Frozen() {
		panic("binder: registry must be frozen before binding")
	}
	return &Binder{registry: reg}
}

// Bind resolves every annotation in the program. All diagnostics for the
// program are reported in one batch; an annotation that fails to bind is
// omitted from the result.
func (b *Binder) Bind(program *ast.Program, diags *diag.List) *Result {
	result := &Result{Uses: []*AnnotationUse{}}

	for _, element := range CollectElements(program) {
		for _, annotation := range element.Uses() {
			use := b.bindAnnotation(annotation, element, diags)
			if use != nil {
				result.Uses = append(result.Uses, use)
			}
		}
	}

	return result
}

// BindAll binds a multi-file compilation. Programs must be ordered by file
// path so the combined bootstrap order is deterministic.
func (b *Binder) BindAll(programs []*ast.Program, diags *diag.List) *Result {
	result := &Result{Uses: []*AnnotationUse{}}

	for _, element := range CollectAll(programs) {
		for _, annotation := range element.Uses() {
			use := b.bindAnnotation(annotation, element, diags)
			if use != nil {
				result.Uses = append(result.Uses, use)
			}
		}
	}

	return result
}

// bindAnnotation resolves a single annotation against its declaration.
func (b *Binder) bindAnnotation(annotation *ast.AnnotationNode, element ast.Element, diags *diag.List) *AnnotationUse {
	decl, ok := b.registry.Lookup(annotation.Name)
	if !ok {
		diags.Error(diag.PhaseBind, diag.ErrUnknownAttribute, annotation.Loc,
			"Unknown attribute @%s", annotation.Name)
		return nil
	}

	if !decl.AllowsTarget(element.Kind()) {
		diags.Error(diag.PhaseBind, diag.ErrTargetNotAllowed, annotation.Loc,
			"Attribute @%s may not be placed on %s %s; allowed targets: %s",
			decl.Name, element.Kind(), element.ElementName(), formatTargets(decl.Targets))
		return nil
	}

	explicit, argsOK := b.resolveArguments(annotation, decl, diags)

	use := &AnnotationUse{
		Attribute: decl,
		Element:   element,
		Args:      make([]Argument, 0, len(decl.Params)),
		Loc:       annotation.Loc,
	}

	// Build the full argument list in declaration parameter order.
	complete := true
	for _, param := range decl.Params {
		if arg, given := explicit[param.Name]; given {
			use.Args = append(use.Args, arg)
			continue
		}
		if param.HasDefault {
			use.Args = append(use.Args, Argument{
				Name:     param.Name,
				Value:    param.Default,
				Explicit: false,
				Loc:      annotation.Loc,
			})
			continue
		}
		diags.Error(diag.PhaseBind, diag.ErrMissingRequiredParameter, annotation.Loc,
			"Annotation @%s is missing required parameter %s", decl.Name, param.Name)
		complete = false
	}

	if !argsOK || !complete {
		return nil
	}
	return use
}

// resolveArguments evaluates and type-checks the explicit arguments of an
// annotation. Every argument error is reported; the bool result is false
// when any argument failed.
func (b *Binder) resolveArguments(annotation *ast.AnnotationNode, decl *registry.Declaration, diags *diag.List) (map[string]Argument, bool) {
	explicit := make(map[string]Argument, len(annotation.Args))
	ok := true

	for i, arg := range annotation.Args {
		if arg.Name == "" {
			diags.Error(diag.PhaseBind, diag.ErrPositionalArgumentNotAllowed, arg.Loc,
				"Annotation @%s: positional argument at position %d; all arguments must be named",
				decl.Name, i+1)
			ok = false
			continue
		}

		param, known := decl.Param(arg.Name)
		if !known {
			diags.Error(diag.PhaseBind, diag.ErrUnknownParameter, arg.Loc,
				"Annotation @%s has no parameter named %s", decl.Name, arg.Name)
			ok = false
			continue
		}

		if _, dup := explicit[arg.Name]; dup {
			diags.Error(diag.PhaseBind, diag.ErrDuplicateArgument, arg.Loc,
				"Annotation @%s passes parameter %s more than once", decl.Name, arg.Name)
			ok = false
			continue
		}

		value, err := eval.Constant(arg.Value)
		if err != nil {
			diags.Error(diag.PhaseBind, diag.ErrTypeMismatch, arg.Loc,
				"Annotation @%s argument %s: %v", decl.Name, arg.Name, err)
			ok = false
			continue
		}

		argType, err := types.Infer(arg.Value)
		if err != nil {
			diags.Error(diag.PhaseBind, diag.ErrTypeMismatch, arg.Loc,
				"Annotation @%s argument %s: %v", decl.Name, arg.Name, err)
			ok = false
			continue
		}

		if !param.Type.IsAssignableFrom(argType) {
			diags.Error(diag.PhaseBind, diag.ErrTypeMismatch, arg.Loc,
				"Annotation @%s argument %s has type %s, expected %s",
				decl.Name, arg.Name, argType, param.Type)
			ok = false
			continue
		}

		explicit[arg.Name] = Argument{
			Name:     arg.Name,
			Value:    widen(value, param.Type),
			Explicit: true,
			Loc:      arg.Loc,
		}
	}

	return explicit, ok
}

// widen converts Int values bound to Float parameters.
func widen(value interface{}, target types.Type) interface{} {
	prim, ok := target.(*types.PrimitiveType)
	if ok && prim.Name == "Float" {
		if i, isInt := value.(int64); isInt {
			return float64(i)
		}
	}
	return value
}

func formatTargets(targets []ast.TargetKind) string {
	if len(targets) == 0 {
		return "(none)"
	}
	s := targets[0].String()
	for _, t := range targets[1:] {
		s += ", " + t.String()
	}
	return s
}
