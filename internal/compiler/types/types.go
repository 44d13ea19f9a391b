// Package types implements the type system used to check attribute parameter
// declarations against annotation argument expressions. Attribute parameters
// are limited to primitives and arrays of primitives, so the system is
// deliberately small; the general expression type checker is a separate
// collaborator outside this subsystem.
package types

import (
	"fmt"

	"github.com/strata-lang/strata/internal/compiler/ast"
)

// Common type name constants to avoid string repetition.
const (
	typeString = "String"
	typeInt    = "Int"
	typeFloat  = "Float"
	typeBool   = "Bool"
)

// Type represents a type in the attribute parameter type system.
type Type interface {
	// String returns the human-readable representation of the type
	String() string

	// IsAssignableFrom checks if a value of type other can be assigned to this type
	IsAssignableFrom(other Type) bool

	// Equals checks if two types are exactly equal
	Equals(other Type) bool
}

// PrimitiveType represents a built-in primitive type (String, Int, Float, Bool)
type PrimitiveType struct {
	Name string
}

// NewPrimitiveType creates a new primitive type.
func NewPrimitiveType(name string) *PrimitiveType {
	return &PrimitiveType{Name: name}
}

func (p *PrimitiveType) String() string {
	return p.Name
}

// IsAssignableFrom checks if a value of type other can be assigned to this primitive type.
func (p *PrimitiveType) IsAssignableFrom(other Type) bool {
	otherPrim, ok := other.(*PrimitiveType)
	if !ok {
		return false
	}

	if p.Name == otherPrim.Name {
		return true
	}

	// Numeric widening - Int can assign to Float
	if p.Name == typeFloat && otherPrim.Name == typeInt {
		return true
	}

	return false
}

// Equals checks if two primitive types are exactly equal.
func (p *PrimitiveType) Equals(other Type) bool {
	otherPrim, ok := other.(*PrimitiveType)
	if !ok {
		return false
	}
	return p.Name == otherPrim.Name
}

// ArrayType represents an array type (Array<T>)
type ArrayType struct {
	ElementType Type
}

// NewArrayType creates a new array type with the specified element type.
func NewArrayType(elementType Type) *ArrayType {
	return &ArrayType{ElementType: elementType}
}

func (a *ArrayType) String() string {
	return fmt.Sprintf("Array<%s>", a.ElementType.String())
}

// IsAssignableFrom checks if a value of type other can be assigned to this array type.
// An empty array literal produces an Array<Never> element type which assigns to any array.
func (a *ArrayType) IsAssignableFrom(other Type) bool {
	otherArray, ok := other.(*ArrayType)
	if !ok {
		return false
	}

	if _, empty := otherArray.ElementType.(*NeverType); empty {
		return true
	}

	return a.ElementType.IsAssignableFrom(otherArray.ElementType)
}

// Equals checks if two array types are exactly equal.
func (a *ArrayType) Equals(other Type) bool {
	otherArray, ok := other.(*ArrayType)
	if !ok {
		return false
	}
	return a.ElementType.Equals(otherArray.ElementType)
}

// NeverType is the element type of an empty array literal; it is assignable
// to every type and equal to none.
type NeverType struct{}

func (n *NeverType) String() string { return "Never" }

// IsAssignableFrom always fails; nothing assigns into Never.
func (n *NeverType) IsAssignableFrom(other Type) bool { return false }

// Equals checks against another NeverType.
func (n *NeverType) Equals(other Type) bool {
	_, ok := other.(*NeverType)
	return ok
}

// FromASTNode converts an AST TypeNode into a Type.
func FromASTNode(node *ast.TypeNode) (Type, error) {
	if node == nil {
		return nil, fmt.Errorf("nil type node")
	}

	switch node.Kind {
	case ast.TypePrimitive:
		switch node.Name {
		case typeString, typeInt, typeFloat, typeBool:
			return NewPrimitiveType(node.Name), nil
		default:
			return nil, fmt.Errorf("unknown type: %s", node.Name)
		}

	case ast.TypeArray:
		if node.ElementType == nil {
			return nil, fmt.Errorf("array type missing element type")
		}
		elemType, err := FromASTNode(node.ElementType)
		if err != nil {
			return nil, fmt.Errorf("invalid array element type: %w", err)
		}
		return NewArrayType(elemType), nil

	default:
		return nil, fmt.Errorf("unknown type kind: %d", node.Kind)
	}
}

// Infer determines the type of a constant expression.
func Infer(expr ast.ExprNode) (Type, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		switch e.Value.(type) {
		case string:
			return NewPrimitiveType(typeString), nil
		case int64:
			return NewPrimitiveType(typeInt), nil
		case float64:
			return NewPrimitiveType(typeFloat), nil
		case bool:
			return NewPrimitiveType(typeBool), nil
		case nil:
			return &NeverType{}, nil
		default:
			return nil, fmt.Errorf("unsupported literal value %v", e.Value)
		}

	case *ast.UnaryExpr:
		operandType, err := Infer(e.Operand)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case "-":
			prim, ok := operandType.(*PrimitiveType)
			if !ok || (prim.Name != typeInt && prim.Name != typeFloat) {
				return nil, fmt.Errorf("unary '-' requires Int or Float, got %s", operandType)
			}
			return operandType, nil
		case "!":
			prim, ok := operandType.(*PrimitiveType)
			if !ok || prim.Name != typeBool {
				return nil, fmt.Errorf("unary '!' requires Bool, got %s", operandType)
			}
			return operandType, nil
		default:
			return nil, fmt.Errorf("unknown unary operator %s", e.Operator)
		}

	case *ast.ArrayLiteralExpr:
		if len(e.Elements) == 0 {
			return NewArrayType(&NeverType{}), nil
		}
		elemType, err := Infer(e.Elements[0])
		if err != nil {
			return nil, err
		}
		for _, element := range e.Elements[1:] {
			t, err := Infer(element)
			if err != nil {
				return nil, err
			}
			if !elemType.IsAssignableFrom(t) {
				if t.IsAssignableFrom(elemType) {
					elemType = t
					continue
				}
				return nil, fmt.Errorf("mixed array element types: %s and %s", elemType, t)
			}
		}
		return NewArrayType(elemType), nil

	case *ast.NullCoalesceExpr:
		leftType, err := Infer(e.Left)
		if err != nil {
			return nil, err
		}
		if _, isNull := leftType.(*NeverType); isNull {
			return Infer(e.Right)
		}
		return leftType, nil

	case *ast.IdentifierExpr:
		return nil, fmt.Errorf("identifier %s is not a constant expression", e.Name)

	default:
		return nil, fmt.Errorf("unsupported expression")
	}
}
