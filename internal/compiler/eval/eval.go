// Package eval evaluates the restricted constant expressions allowed in
// annotation arguments, parameter defaults, and constant initializers.
// Results use a small set of Go values: string, int64, float64, bool, nil,
// and []interface{} for arrays.
package eval

import (
	"fmt"

	"github.com/strata-lang/strata/internal/compiler/ast"
)

// Constant evaluates a constant expression to its value.
func Constant(expr ast.ExprNode) (interface{}, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return e.Value, nil

	case *ast.UnaryExpr:
		operand, err := Constant(e.Operand)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case "-":
			switch v := operand.(type) {
			case int64:
				return -v, nil
			case float64:
				return -v, nil
			default:
				return nil, fmt.Errorf("unary '-' requires a numeric operand, got %T", operand)
			}
		case "!":
			v, ok := operand.(bool)
			if !ok {
				return nil, fmt.Errorf("unary '!' requires a Bool operand, got %T", operand)
			}
			return !v, nil
		default:
			return nil, fmt.Errorf("unknown unary operator %s", e.Operator)
		}

	case *ast.ArrayLiteralExpr:
		values := make([]interface{}, 0, len(e.Elements))
		for _, element := range e.Elements {
			v, err := Constant(element)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil

	case *ast.NullCoalesceExpr:
		left, err := Constant(e.Left)
		if err != nil {
			return nil, err
		}
		if left != nil {
			return left, nil
		}
		return Constant(e.Right)

	case *ast.IdentifierExpr:
		return nil, fmt.Errorf("identifier %s is not a constant expression", e.Name)

	default:
		return nil, fmt.Errorf("expression is not constant")
	}
}
