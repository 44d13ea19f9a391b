package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/binder"
	"github.com/strata-lang/strata/internal/compiler/codegen"
	"github.com/strata-lang/strata/internal/compiler/diag"
	"github.com/strata-lang/strata/internal/compiler/lexer"
	"github.com/strata-lang/strata/internal/compiler/parser"
	"github.com/strata-lang/strata/internal/compiler/registry"
)

// TestEmitRegisterRoundTrip compiles a program, emits build metadata, loads
// it back through the runtime registry, and checks that every reconstructed
// instance carries exactly the argument map the binder produced.
func TestEmitRegisterRoundTrip(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	source := `attribute Route(path: String, method: String = "GET") targets Method

attribute Retry(attempts: Int, delays: Array<Int> = [1, 2]) targets Method

class UserController {
  @Route(path: "/users")
  @Retry(attempts: 3)
  fn index() { x() }

  @Route(path: "/users", method: "PUT")
  fn update() { x() }
}`

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
	require.False(t, diags.HasErrors(), "diagnostics: %s", diags.Summary())

	output, err := codegen.Generate([]codegen.SourceFile{{Path: "app.sta", Program: program}}, reg, bound)
	require.NoError(t, err)
	require.NoError(t, RegisterMetadata(output.Metadata))

	// Every bound use must come back with an equal argument map
	for _, use := range bound.Uses {
		found := false
		for instance := range AttributesNamed(use.Element.ElementName(), use.Attribute.Name) {
			matches := len(instance.Fields) == len(use.Args)
			for _, arg := range use.Args {
				if v, ok := instance.Fields[arg.Name]; !ok || !assert.ObjectsAreEqual(arg.Value, v) {
					matches = false
				}
			}
			if matches {
				found = true
			}
		}
		assert.True(t, found, "no instance matches bound arguments for @%s on %s",
			use.Attribute.Name, use.Element.ElementName())
	}

	// Defaulted array argument survives the trip with Int elements intact
	var retry Instance
	for instance := range AttributesNamed("UserController.index", "Retry") {
		retry = instance
	}
	delays, ok := retry.Field("delays")
	require.True(t, ok)
	assert.Equal(t, []interface{}{int64(1), int64(2)}, delays)
}
