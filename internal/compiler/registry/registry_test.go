package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/diag"
	"github.com/strata-lang/strata/internal/compiler/lexer"
	"github.com/strata-lang/strata/internal/compiler/parser"
)

// declare parses source and feeds every attribute declaration into a fresh
// registry, returning it with the collected diagnostics.
func declare(t *testing.T, source string) (*Registry, *diag.List) {
	t.Helper()

	tokens, lexErrors := lexer.New(source, "test.sta").ScanTokens()
	require.Empty(t, lexErrors)

	program, parseErrors := parser.New(tokens, source).Parse()
	require.False(t, parseErrors.HasErrors(), "parse errors: %v", parseErrors)

	reg := New()
	diags := diag.NewList()
	for _, decl := range program.Declarations {
		if attr, ok := decl.(*ast.AttributeDeclNode); ok {
			reg.Declare(attr, diags)
		}
	}
	return reg, diags
}

func codesOf(diags *diag.List) []string {
	codes := []string{}
	for _, d := range diags.All() {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestDeclare_Valid(t *testing.T) {
	reg, diags := declare(t, `attribute Route(path: String, method: String = "GET") targets Method`)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Summary())

	decl, ok := reg.Lookup("Route")
	require.True(t, ok)
	assert.Equal(t, OriginNative, decl.Origin)

	require.Len(t, decl.Params, 2)
	path, ok := decl.Param("path")
	require.True(t, ok)
	assert.True(t, path.Required())

	method, ok := decl.Param("method")
	require.True(t, ok)
	assert.False(t, method.Required())
	assert.Equal(t, "GET", method.Default)

	assert.True(t, decl.AllowsTarget(ast.TargetMethod))
	assert.False(t, decl.AllowsTarget(ast.TargetClass))

	kind, single := decl.SingleTarget()
	assert.True(t, single)
	assert.Equal(t, ast.TargetMethod, kind)
}

func TestDeclare_DuplicateName(t *testing.T) {
	reg, diags := declare(t, `attribute Log targets Method
attribute Log targets Class`)

	assert.Contains(t, codesOf(diags), diag.ErrDuplicateName)

	// First declaration wins
	decl, ok := reg.Lookup("Log")
	require.True(t, ok)
	assert.Equal(t, []ast.TargetKind{ast.TargetMethod}, decl.Targets)
	assert.Equal(t, 1, reg.Len())
}

func TestDeclare_EmptyTargetSetViaParseError(t *testing.T) {
	// The grammar requires a targets clause, so an empty set can only arise
	// from a node built programmatically (e.g. future tooling).
	reg := New()
	diags := diag.NewList()
	reg.Declare(&ast.AttributeDeclNode{Name: "Bare"}, diags)

	assert.Contains(t, codesOf(diags), diag.ErrEmptyTargetSet)
}

func TestDeclare_AttachOnMultiTarget(t *testing.T) {
	_, diags := declare(t, `attribute Audit targets Class, Method {
  attach(ctx: MethodContext) { audit(ctx) }
}`)

	assert.Contains(t, codesOf(diags), diag.ErrAttachOnMultiTarget)
}

func TestDeclare_ForeignOrigin(t *testing.T) {
	reg, diags := declare(t, `foreign attribute Override targets Method`)
	require.False(t, diags.HasErrors())

	decl, ok := reg.Lookup("Override")
	require.True(t, ok)
	assert.Equal(t, OriginForeign, decl.Origin)
	assert.Nil(t, decl.Attach)
}

func TestDeclare_DefaultTypeMismatch(t *testing.T) {
	_, diags := declare(t, `attribute Retry(attempts: Int = "three") targets Method`)
	assert.Contains(t, codesOf(diags), diag.ErrInvalidDefaultValue)
}

func TestDeclare_IntDefaultWidensToFloat(t *testing.T) {
	reg, diags := declare(t, `attribute Throttle(rate: Float = 10) targets Method`)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Summary())

	decl, _ := reg.Lookup("Throttle")
	rate, _ := decl.Param("rate")
	assert.Equal(t, float64(10), rate.Default)
}

func TestDeclare_InvalidParameterType(t *testing.T) {
	_, diags := declare(t, `attribute Bad(x: Widget) targets Class`)
	assert.Contains(t, codesOf(diags), diag.ErrInvalidParameterType)
}

func TestFreeze(t *testing.T) {
	reg, _ := declare(t, `attribute Log targets Method`)
	assert.False(t, reg.Frozen())

	reg.Freeze()
	assert.True(t, reg.Frozen())

	assert.Panics(t, func() {
		reg.Declare(&ast.AttributeDeclNode{Name: "Late", Targets: []ast.TargetKind{ast.TargetClass}}, diag.NewList())
	})
}

func TestDeclarations_SortedByName(t *testing.T) {
	reg, _ := declare(t, `attribute Zeta targets Class
attribute Alpha targets Class
attribute Mid targets Class`)

	decls := reg.Declarations()
	require.Len(t, decls, 3)
	assert.Equal(t, "Alpha", decls[0].Name)
	assert.Equal(t, "Mid", decls[1].Name)
	assert.Equal(t, "Zeta", decls[2].Name)
}

func TestResolveAttachDescriptor(t *testing.T) {
	tests := []struct {
		name   string
		source string
		valid  bool
	}{
		{
			"method target with method context",
			`attribute A targets Method {
  attach(ctx: MethodContext): Void { x() }
}`,
			true,
		},
		{
			"function target with method context",
			`attribute A targets Function {
  attach(ctx: MethodContext) { x() }
}`,
			true,
		},
		{
			"property target with value context",
			`attribute A targets Property {
  attach(ctx: ValueContext) { x() }
}`,
			true,
		},
		{
			"class target with instance context",
			`attribute A targets Class {
  attach(ctx: InstanceContext) { x() }
}`,
			true,
		},
		{
			"wrong context type",
			`attribute A targets Method {
  attach(ctx: InstanceContext) { x() }
}`,
			false,
		},
		{
			"zero parameters",
			`attribute A targets Method {
  attach() { x() }
}`,
			false,
		},
		{
			"two parameters",
			`attribute A targets Method {
  attach(ctx: MethodContext, extra: Int) { x() }
}`,
			false,
		},
		{
			"non-void return",
			`attribute A targets Method {
  attach(ctx: MethodContext): Int { x() }
}`,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, diags := declare(t, tt.source)
			decl, ok := reg.Lookup("A")
			require.True(t, ok)

			if tt.valid {
				assert.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Summary())
				assert.NotNil(t, decl.Attach)
			} else {
				assert.Contains(t, codesOf(diags), diag.ErrAttachSignatureMismatch)
				assert.Nil(t, decl.Attach)
			}
		})
	}
}

func TestContextTypeForTarget(t *testing.T) {
	assert.Equal(t, "MethodContext", ContextTypeForTarget(ast.TargetMethod))
	assert.Equal(t, "MethodContext", ContextTypeForTarget(ast.TargetFunction))
	assert.Equal(t, "ValueContext", ContextTypeForTarget(ast.TargetProperty))
	assert.Equal(t, "ValueContext", ContextTypeForTarget(ast.TargetParameter))
	assert.Equal(t, "ValueContext", ContextTypeForTarget(ast.TargetConstant))
	assert.Equal(t, "InstanceContext", ContextTypeForTarget(ast.TargetClass))
}
