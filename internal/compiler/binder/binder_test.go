package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/diag"
	"github.com/strata-lang/strata/internal/compiler/lexer"
	"github.com/strata-lang/strata/internal/compiler/parser"
	"github.com/strata-lang/strata/internal/compiler/registry"
)

// bind parses source, declares all attributes, freezes the registry, and
// binds the program, returning the result with the collected diagnostics.
func bind(t *testing.T, source string) (*Result, *diag.List) {
	t.Helper()

	tokens, lexErrors := lexer.New(source, "test.sta").ScanTokens()
	require.Empty(t, lexErrors)

	program, parseErrors := parser.New(tokens, source).Parse()
	require.False(t, parseErrors.HasErrors(), "parse errors: %v", parseErrors)

	reg := registry.New()
	diags := diag.NewList()
	for _, decl := range program.Declarations {
		if attr, ok := decl.(*ast.AttributeDeclNode); ok {
			reg.Declare(attr, diags)
		}
	}
	reg.Freeze()

	result := New(reg).Bind(program, diags)
	return result, diags
}

func codesOf(diags *diag.List) []string {
	codes := []string{}
	for _, d := range diags.All() {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestBind_DefaultsMergedIntoArguments(t *testing.T) {
	source := `attribute Route(path: String, method: String = "GET") targets Method

class UserController {
  @Route(path: "/users")
  fn index() {
    list_users()
  }
}`
	result, diags := bind(t, source)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Summary())
	require.Len(t, result.Uses, 1)

	use := result.Uses[0]
	assert.Equal(t, "Route", use.Attribute.Name)
	assert.Equal(t, "UserController.index", use.Element.ElementName())

	// Full argument list in declaration order, defaults included
	require.Len(t, use.Args, 2)

	path, ok := use.Arg("path")
	require.True(t, ok)
	assert.Equal(t, "/users", path.Value)
	assert.True(t, path.Explicit)

	method, ok := use.Arg("method")
	require.True(t, ok)
	assert.Equal(t, "GET", method.Value)
	assert.False(t, method.Explicit)
}

func TestBind_UnknownAttribute(t *testing.T) {
	source := `class C {
  @Nope()
  fn m() { x() }
}`
	result, diags := bind(t, source)
	assert.Contains(t, codesOf(diags), diag.ErrUnknownAttribute)
	assert.Empty(t, result.Uses)
}

func TestBind_PositionalArgumentNotAllowed(t *testing.T) {
	source := `attribute Route(path: String) targets Method

class C {
  @Route("/users")
  fn m() { x() }
}`
	_, diags := bind(t, source)
	assert.Contains(t, codesOf(diags), diag.ErrPositionalArgumentNotAllowed)
}

func TestBind_UnknownParameter(t *testing.T) {
	source := `attribute Route(path: String) targets Method

class C {
  @Route(path: "/a", verb: "GET")
  fn m() { x() }
}`
	_, diags := bind(t, source)
	assert.Contains(t, codesOf(diags), diag.ErrUnknownParameter)
}

func TestBind_MissingRequiredParameter(t *testing.T) {
	source := `attribute Route(path: String, method: String = "GET") targets Method

class C {
  @Route(method: "POST")
  fn m() { x() }
}`
	_, diags := bind(t, source)
	assert.Contains(t, codesOf(diags), diag.ErrMissingRequiredParameter)
}

func TestBind_TypeMismatch(t *testing.T) {
	source := `attribute Retry(attempts: Int) targets Method

class C {
  @Retry(attempts: "three")
  fn m() { x() }
}`
	_, diags := bind(t, source)
	assert.Contains(t, codesOf(diags), diag.ErrTypeMismatch)
}

func TestBind_IntArgumentWidensToFloat(t *testing.T) {
	source := `attribute Throttle(rate: Float) targets Method

class C {
  @Throttle(rate: 10)
  fn m() { x() }
}`
	result, diags := bind(t, source)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Summary())

	rate, _ := result.Uses[0].Arg("rate")
	assert.Equal(t, float64(10), rate.Value)
}

func TestBind_DuplicateArgument(t *testing.T) {
	source := `attribute Route(path: String) targets Method

class C {
  @Route(path: "/a", path: "/b")
  fn m() { x() }
}`
	_, diags := bind(t, source)
	assert.Contains(t, codesOf(diags), diag.ErrDuplicateArgument)
}

func TestBind_TargetNotAllowed(t *testing.T) {
	source := `attribute Entity(table: String) targets Class

class C {
  @Entity(table: "users")
  fn m() { x() }
}`
	_, diags := bind(t, source)
	assert.Contains(t, codesOf(diags), diag.ErrTargetNotAllowed)
}

func TestBind_RepeatableByDefault(t *testing.T) {
	source := `attribute Tag(name: String) targets Class

@Tag(name: "a")
@Tag(name: "b")
class C {
}`
	result, diags := bind(t, source)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Summary())
	require.Len(t, result.Uses, 2)

	// Source order preserved: top annotation first
	first, _ := result.Uses[0].Arg("name")
	second, _ := result.Uses[1].Arg("name")
	assert.Equal(t, "a", first.Value)
	assert.Equal(t, "b", second.Value)
}

func TestBind_AttributeDeclarationIsClassElement(t *testing.T) {
	source := `attribute Doc(text: String) targets Class

@Doc(text: "routing attribute")
attribute Route(path: String) targets Method`
	result, diags := bind(t, source)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Summary())
	require.Len(t, result.Uses, 1)

	use := result.Uses[0]
	assert.Equal(t, "Doc", use.Attribute.Name)
	assert.Equal(t, "Route", use.Element.ElementName())
	assert.Equal(t, ast.TargetClass, use.Element.Kind())
}

func TestBind_ParameterAnnotations(t *testing.T) {
	source := `attribute Inject(name: String) targets Parameter

class C {
  fn handle(@Inject(name: "db") repo: String) { x() }
}`
	result, diags := bind(t, source)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Summary())
	require.Len(t, result.Uses, 1)
	assert.Equal(t, "C.handle#repo", result.Uses[0].Element.ElementName())
}

func TestBind_BootstrapOrder(t *testing.T) {
	source := `attribute Log(tag: String) targets Class, Method, Function, Parameter

@Log(tag: "class")
class C {
  @Log(tag: "m1")
  fn first(@Log(tag: "p1") a: Int) { x() }

  @Log(tag: "m2")
  fn second() { x() }
}

@Log(tag: "fn")
fn top(@Log(tag: "p2") b: Int) { x() }`
	result, diags := bind(t, source)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Summary())

	order := []string{}
	for _, use := range result.Uses {
		tag, _ := use.Arg("tag")
		order = append(order, tag.Value.(string))
	}

	// Elements in source order, method before its parameters
	assert.Equal(t, []string{"class", "m1", "p1", "m2", "fn", "p2"}, order)
}

func TestBind_BatchReporting(t *testing.T) {
	source := `attribute Route(path: String) targets Method

class C {
  @Route(verb: "GET")
  fn a() { x() }

  @Missing()
  fn b() { x() }
}`
	_, diags := bind(t, source)

	// Both annotations report their own diagnostics in one pass
	codes := codesOf(diags)
	assert.Contains(t, codes, diag.ErrUnknownParameter)
	assert.Contains(t, codes, diag.ErrMissingRequiredParameter)
	assert.Contains(t, codes, diag.ErrUnknownAttribute)
}

func TestBind_PanicsOnUnfrozenRegistry(t *testing.T) {
	assert.Panics(t, func() {
		New(registry.New())
	})
}
