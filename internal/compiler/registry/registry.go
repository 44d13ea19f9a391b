// Package registry implements the attribute declaration registry. The
// declaration pass feeds every attribute declaration from every source file
// into a Registry, which validates the declarations and then freezes into a
// read-only lookup table for the binding pass.
package registry

import (
	"fmt"
	"sort"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/diag"
	"github.com/strata-lang/strata/internal/compiler/eval"
	"github.com/strata-lang/strata/internal/compiler/types"
)

// Origin distinguishes attributes declared in source from host-native imports.
type Origin string

const (
	OriginNative  Origin = "native"
	OriginForeign Origin = "foreign"
)

// Parameter is a validated attribute parameter.
type Parameter struct {
	Name       string
	Type       types.Type
	HasDefault bool
	Default    interface{} // evaluated constant, valid when HasDefault
}

// Required reports whether an annotation must supply this parameter.
func (p *Parameter) Required() bool {
	return !p.HasDefault
}

// Declaration is a validated attribute declaration.
type Declaration struct {
	Name    string
	Origin  Origin
	Params  []*Parameter
	Targets []ast.TargetKind
	Attach  *AttachDescriptor
	Loc     ast.SourceLocation

	paramIndex map[string]*Parameter
	targetSet  map[ast.TargetKind]bool
}

// Param looks up a parameter by name.
func (d *Declaration) Param(name string) (*Parameter, bool) {
	p, ok := d.paramIndex[name]
	return p, ok
}

// AllowsTarget reports whether the declaration permits the given target kind.
func (d *Declaration) AllowsTarget(kind ast.TargetKind) bool {
	return d.targetSet[kind]
}

// SingleTarget returns the sole target kind when the declaration has exactly
// one target.
func (d *Declaration) SingleTarget() (ast.TargetKind, bool) {
	if len(d.Targets) != 1 {
		return 0, false
	}
	return d.Targets[0], true
}

// Registry holds all attribute declarations for a compilation.
type Registry struct {
	declarations map[string]*Declaration
	order        []string
	frozen       bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		declarations: make(map[string]*Declaration),
		order:        []string{},
	}
}

// Declare validates an attribute declaration node and records it. Validation
// failures are reported to diags; a declaration with a duplicate name is
// dropped entirely (first wins), while other failures record the declaration
// with the offending piece omitted so later passes can still bind against it.
func (r *Registry) Declare(node *ast.AttributeDeclNode, diags *diag.List) {
	if r.frozen {
		panic("registry: Declare called after Freeze")
	}

	if _, exists := r.declarations[node.Name]; exists {
		diags.Error(diag.PhaseDeclare, diag.ErrDuplicateName, node.Loc,
			"Attribute %s is already declared", node.Name)
		return
	}

	decl := &Declaration{
		Name:       node.Name,
		Origin:     OriginNative,
		Params:     []*Parameter{},
		Targets:    node.Targets,
		Loc:        node.Loc,
		paramIndex: make(map[string]*Parameter),
		targetSet:  make(map[ast.TargetKind]bool),
	}
	if node.Foreign {
		decl.Origin = OriginForeign
	}

	if len(node.Targets) == 0 {
		diags.Error(diag.PhaseDeclare, diag.ErrEmptyTargetSet, node.Loc,
			"Attribute %s declares no targets; at least one target kind is required", node.Name)
	}
	for _, kind := range node.Targets {
		decl.targetSet[kind] = true
	}

	for _, paramNode := range node.Params {
		param := r.declareParameter(node.Name, paramNode, diags)
		if param == nil {
			continue
		}
		if _, dup := decl.paramIndex[param.Name]; dup {
			diags.Error(diag.PhaseDeclare, diag.ErrDuplicateName, paramNode.Loc,
				"Attribute %s declares parameter %s more than once", node.Name, param.Name)
			continue
		}
		decl.Params = append(decl.Params, param)
		decl.paramIndex[param.Name] = param
	}

	if node.Attach != nil {
		if len(node.Targets) > 1 {
			diags.Error(diag.PhaseDeclare, diag.ErrAttachOnMultiTarget, node.Attach.Loc,
				"Attribute %s targets multiple kinds and may not declare an attach hook", node.Name)
		} else if len(node.Targets) == 1 {
			decl.Attach = ResolveAttachDescriptor(node.Name, node.Targets[0], node.Attach, diags)
		}
	}

	r.declarations[node.Name] = decl
	r.order = append(r.order, node.Name)
}

// declareParameter validates a single parameter node.
func (r *Registry) declareParameter(attrName string, node *ast.ParameterNode, diags *diag.List) *Parameter {
	paramType, err := types.FromASTNode(node.Type)
	if err != nil {
		diags.Error(diag.PhaseDeclare, diag.ErrInvalidParameterType, node.Loc,
			"Parameter %s of attribute %s has an invalid type: %v", node.Name, attrName, err)
		return nil
	}

	param := &Parameter{
		Name: node.Name,
		Type: paramType,
	}

	if node.Default != nil {
		value, err := eval.Constant(node.Default)
		if err != nil {
			diags.Error(diag.PhaseDeclare, diag.ErrInvalidDefaultValue, node.Loc,
				"Default value for parameter %s of attribute %s: %v", node.Name, attrName, err)
			return param
		}
		defaultType, err := types.Infer(node.Default)
		if err != nil {
			diags.Error(diag.PhaseDeclare, diag.ErrInvalidDefaultValue, node.Loc,
				"Default value for parameter %s of attribute %s: %v", node.Name, attrName, err)
			return param
		}
		if !paramType.IsAssignableFrom(defaultType) {
			diags.Error(diag.PhaseDeclare, diag.ErrInvalidDefaultValue, node.Loc,
				"Default value for parameter %s of attribute %s has type %s, expected %s",
				node.Name, attrName, defaultType, paramType)
			return param
		}
		param.HasDefault = true
		param.Default = normalizeValue(value, paramType)
	}

	return param
}

// normalizeValue widens Int values assigned to Float parameters so the stored
// constant matches the declared type.
func normalizeValue(value interface{}, target types.Type) interface{} {
	prim, ok := target.(*types.PrimitiveType)
	if ok && prim.Name == "Float" {
		if i, isInt := value.(int64); isInt {
			return float64(i)
		}
	}
	return value
}

// Lookup finds a declaration by attribute name.
func (r *Registry) Lookup(name string) (*Declaration, bool) {
	decl, ok := r.declarations[name]
	return decl, ok
}

// Freeze marks the registry read-only. Declarations after freezing panic;
// the declaration pass must complete before binding starts.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Declarations returns all declarations sorted by name for deterministic
// iteration.
func (r *Registry) Declarations() []*Declaration {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)

	decls := make([]*Declaration, 0, len(names))
	for _, name := range names {
		decls = append(decls, r.declarations[name])
	}
	return decls
}

// Len returns the number of registered declarations.
func (r *Registry) Len() int {
	return len(r.declarations)
}

// String summarizes the registry for debug output.
func (r *Registry) String() string {
	return fmt.Sprintf("Registry(%d declarations, frozen=%v)", len(r.declarations), r.frozen)
}
