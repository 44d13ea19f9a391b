package codegen

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/binder"
	"github.com/strata-lang/strata/internal/compiler/diag"
	"github.com/strata-lang/strata/internal/compiler/lexer"
	"github.com/strata-lang/strata/internal/compiler/parser"
	"github.com/strata-lang/strata/internal/compiler/registry"
)

// generate compiles source through the full front end and emits PHP.
func generate(t *testing.T, source string) *Output {
	t.Helper()

	tokens, lexErrors := lexer.New(source, "app.sta").ScanTokens()
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

	bound := binder.New(reg).Bind(program, diags)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Summary())

	files := []SourceFile{{Path: "app.sta", Program: program}}
	output, err := Generate(files, reg, bound)
	require.NoError(t, err)
	return output
}

func TestGenerate_AttributeClassWithBitmask(t *testing.T) {
	output := generate(t, `attribute Route(path: String, method: String = "GET") targets Method`)

	php := output.Files["app.php"]
	assert.Contains(t, php, "#[Attribute(Attribute::TARGET_METHOD | Attribute::IS_REPEATABLE)]")
	assert.Contains(t, php, "final class Route")
	assert.Contains(t, php, "public string $path")
	assert.Contains(t, php, "public string $method = 'GET'")
}

func TestGenerate_MultiTargetBitmask(t *testing.T) {
	output := generate(t, `attribute Deprecated(reason: String = "") targets Class, Method, Property`)

	php := output.Files["app.php"]
	assert.Contains(t, php,
		"#[Attribute(Attribute::TARGET_CLASS | Attribute::TARGET_METHOD | Attribute::TARGET_PROPERTY | Attribute::IS_REPEATABLE)]")
}

func TestGenerate_ConstantTargetMapsToClassConstant(t *testing.T) {
	output := generate(t, `attribute Config(key: String) targets Constant`)

	php := output.Files["app.php"]
	assert.Contains(t, php, "Attribute::TARGET_CLASS_CONSTANT")
}

func TestGenerate_ForeignAttributeNotEmitted(t *testing.T) {
	output := generate(t, `foreign attribute Override targets Method`)

	php := output.Files["app.php"]
	assert.NotContains(t, php, "class Override")
}

func TestGenerate_AttachMethodEmitted(t *testing.T) {
	source := `attribute Route(path: String) targets Method {
  attach(ctx: MethodContext): Void {
    register_route(ctx)
  }
}`
	output := generate(t, source)

	php := output.Files["app.php"]
	assert.Contains(t, php, "public function attach(MethodContext $ctx): void")
	assert.Contains(t, php, "register_route(ctx)")
}

func TestGenerate_AnnotationsRenderFullArgumentList(t *testing.T) {
	source := `attribute Route(path: String, method: String = "GET") targets Method

class UserController {
  @Route(path: "/users")
  fn index() { list_users() }
}`
	output := generate(t, source)

	php := output.Files["app.php"]
	// Defaults are materialized so the host sees the complete binding
	assert.Contains(t, php, "#[Route(path: '/users', method: 'GET')]")
	assert.Contains(t, php, "public function index()")
}

func TestGenerate_RepeatedAnnotationsInSourceOrder(t *testing.T) {
	source := `attribute Tag(name: String) targets Class

@Tag(name: "a")
@Tag(name: "b")
class C {
}`
	output := generate(t, source)

	php := output.Files["app.php"]
	first := strings.Index(php, "#[Tag(name: 'a')]")
	second := strings.Index(php, "#[Tag(name: 'b')]")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestGenerate_ParameterAnnotationsInline(t *testing.T) {
	source := `attribute Inject(name: String) targets Parameter

class C {
  fn handle(@Inject(name: "db") repo: String) { x() }
}`
	output := generate(t, source)

	php := output.Files["app.php"]
	assert.Contains(t, php, "public function handle(#[Inject(name: 'db')] string $repo)")
}

func TestGenerate_BootstrapOrder(t *testing.T) {
	source := `attribute Log(tag: String) targets Method {
  attach(ctx: MethodContext) { log(ctx) }
}

class C {
  @Log(tag: "first")
  fn a() { x() }

  @Log(tag: "second")
  fn b() { x() }
}`
	output := generate(t, source)

	runtime := output.Files["strata_runtime.php"]
	first := strings.Index(runtime, "(new Log(tag: 'first'))->attach(new MethodContext('C.a'));")
	second := strings.Index(runtime, "(new Log(tag: 'second'))->attach(new MethodContext('C.b'));")
	require.NotEqual(t, -1, first, "runtime output:\n%s", runtime)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestGenerate_BootstrapOnlyForAttachAttributes(t *testing.T) {
	source := `attribute Plain(v: Int) targets Class

@Plain(v: 1)
class C {
}`
	output := generate(t, source)

	runtime := output.Files["strata_runtime.php"]
	assert.NotContains(t, runtime, "new Plain")
	assert.Contains(t, runtime, "// no attach hooks declared")
}

func TestGenerate_Deterministic(t *testing.T) {
	source := `attribute Route(path: String) targets Method {
  attach(ctx: MethodContext) { register(ctx) }
}

class C {
  @Route(path: "/a")
  fn a() { x() }
}`
	first := generate(t, source)
	second := generate(t, source)

	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, string(first.Metadata), string(second.Metadata))
}

func TestGenerate_ValueRendering(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"string", "it's", `'it\'s'`},
		{"int", int64(42), "42"},
		{"integral float keeps decimal", float64(10), "10.0"},
		{"fractional float", float64(2.5), "2.5"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"null", nil, "null"},
		{"array", []interface{}{int64(1), "a"}, "[1, 'a']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, phpValue(tt.value))
		})
	}
}

func TestGenerate_MetadataRoundTrip(t *testing.T) {
	source := `attribute Route(path: String, method: String = "GET") targets Method {
  attach(ctx: MethodContext) { register(ctx) }
}

class C {
  @Route(path: "/users")
  fn index() { x() }
}`
	output := generate(t, source)

	var meta struct {
		SchemaVersion int    `json:"schema_version"`
		BuildID       string `json:"build_id"`
		Declarations  []struct {
			Name    string   `json:"name"`
			Targets []string `json:"targets"`
		} `json:"declarations"`
		Uses []struct {
			Attribute string `json:"attribute"`
			Element   string `json:"element"`
			Args      []struct {
				Name     string      `json:"name"`
				Value    interface{} `json:"value"`
				Explicit bool        `json:"explicit"`
			} `json:"args"`
		} `json:"uses"`
		Bootstrap []struct {
			Attribute string `json:"attribute"`
			Element   string `json:"element"`
			Context   string `json:"context"`
		} `json:"bootstrap"`
	}
	require.NoError(t, json.Unmarshal(output.Metadata, &meta))

	assert.Equal(t, 1, meta.SchemaVersion)
	assert.NotEmpty(t, meta.BuildID)

	require.Len(t, meta.Declarations, 1)
	assert.Equal(t, "Route", meta.Declarations[0].Name)
	assert.Equal(t, []string{"Method"}, meta.Declarations[0].Targets)

	require.Len(t, meta.Uses, 1)
	assert.Equal(t, "C.index", meta.Uses[0].Element)
	require.Len(t, meta.Uses[0].Args, 2)
	assert.Equal(t, "path", meta.Uses[0].Args[0].Name)
	assert.True(t, meta.Uses[0].Args[0].Explicit)
	assert.Equal(t, "method", meta.Uses[0].Args[1].Name)
	assert.False(t, meta.Uses[0].Args[1].Explicit)

	require.Len(t, meta.Bootstrap, 1)
	assert.Equal(t, "MethodContext", meta.Bootstrap[0].Context)
}
