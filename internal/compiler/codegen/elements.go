package codegen

import (
	"fmt"
	"strings"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/binder"
)

// emitClass emits a PHP class with its annotated members.
func (g *Generator) emitClass(node *ast.ClassNode, uses map[ast.Element][]*binder.AnnotationUse) error {
	g.emitAnnotationLines(uses[node])
	g.writeLine("class %s", node.Name)
	g.writeLine("{")
	g.indent++

	for i, member := range node.Members {
		if i > 0 {
			g.blankLine()
		}
		switch m := member.(type) {
		case *ast.ConstantNode:
			g.emitAnnotationLines(uses[m])
			g.writeLine("public const %s = %s;", m.Name, constantValue(m))
		case *ast.PropertyNode:
			g.emitAnnotationLines(uses[m])
			g.emitProperty(m)
		case *ast.MethodNode:
			g.emitAnnotationLines(uses[m])
			g.writeLine("public function %s(%s)", m.Name, callableParams(m.Params, uses))
			g.writeLine("{")
			g.emitBody(m.Body)
			g.writeLine("}")
		default:
			return fmt.Errorf("unsupported class member %T", member)
		}
	}

	g.indent--
	g.writeLine("}")
	return nil
}

// emitProperty emits a typed class property with its optional initializer.
func (g *Generator) emitProperty(node *ast.PropertyNode) {
	line := fmt.Sprintf("public %s $%s", astType(node.Type), node.Name)
	if node.Default != nil {
		line += " = " + exprValue(node.Default)
	}
	g.writeLine(line + ";")
}

// emitFunction emits a top-level PHP function.
func (g *Generator) emitFunction(node *ast.FunctionNode, uses map[ast.Element][]*binder.AnnotationUse) error {
	g.emitAnnotationLines(uses[node])
	g.writeLine("function %s(%s)", node.Name, callableParams(node.Params, uses))
	g.writeLine("{")
	g.emitBody(node.Body)
	g.writeLine("}")
	return nil
}

// emitTopLevelConstant emits a top-level const statement. Attributes on
// top-level constants reach the host only through the bootstrap metadata,
// since the host has no inline attribute syntax for them.
func (g *Generator) emitTopLevelConstant(node *ast.ConstantNode, uses map[ast.Element][]*binder.AnnotationUse) error {
	g.emitAnnotationLines(uses[node])
	g.writeLine("const %s = %s;", node.Name, constantValue(node))
	return nil
}

// callableParams renders a parameter list, with parameter annotations inlined
// before each parameter.
func callableParams(params []*ast.ParamNode, uses map[ast.Element][]*binder.AnnotationUse) string {
	parts := make([]string, 0, len(params))
	for _, param := range params {
		var sb strings.Builder
		for _, use := range uses[param] {
			sb.WriteString(fmt.Sprintf("#[%s(%s)] ", use.Attribute.Name, annotationArgs(use)))
		}
		sb.WriteString(fmt.Sprintf("%s $%s", astType(param.Type), param.Name))
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, ", ")
}

// astType maps a source type node to its PHP type declaration.
func astType(t *ast.TypeNode) string {
	if t == nil {
		return "mixed"
	}
	if t.Kind == ast.TypeArray {
		return "array"
	}
	switch t.Name {
	case "String":
		return "string"
	case "Int":
		return "int"
	case "Float":
		return "float"
	case "Bool":
		return "bool"
	case "Void":
		return "void"
	default:
		return t.Name
	}
}

// constantValue renders a constant initializer.
func constantValue(node *ast.ConstantNode) string {
	return exprValue(node.Value)
}

// exprValue renders a constant expression. Expressions reaching codegen have
// already been validated by the binder or declaration pass.
func exprValue(expr ast.ExprNode) string {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return phpValue(e.Value)
	case *ast.UnaryExpr:
		return e.Operator + exprValue(e.Operand)
	case *ast.ArrayLiteralExpr:
		parts := make([]string, 0, len(e.Elements))
		for _, element := range e.Elements {
			parts = append(parts, exprValue(element))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.NullCoalesceExpr:
		return exprValue(e.Left) + " ?? " + exprValue(e.Right)
	default:
		return "null"
	}
}
