// Package ast defines the Abstract Syntax Tree (AST) node types for the Strata language.
// It provides structures for attribute declarations, annotated program elements
// (classes, methods, properties, parameters, functions, constants), and the constant
// expressions allowed in annotation arguments and parameter defaults.
package ast

import "github.com/strata-lang/strata/internal/compiler/lexer"

// SourceLocation tracks the position of an AST node in source code
type SourceLocation struct {
	File   string
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// Node is the base interface for all AST nodes
type Node interface {
	Location() SourceLocation
	node()
}

// TargetKind is the category of program element an attribute may decorate.
// This is a closed enumeration; the code generator maps each kind to the
// host's native target flag.
type TargetKind int

const (
	// TargetClass marks class declarations
	TargetClass TargetKind = iota
	// TargetMethod marks methods of a class
	TargetMethod
	// TargetProperty marks class properties
	TargetProperty
	// TargetParameter marks method and function parameters
	TargetParameter
	// TargetFunction marks top-level functions
	TargetFunction
	// TargetConstant marks class and top-level constants
	TargetConstant
)

// String returns the source-level name of the target kind
func (k TargetKind) String() string {
	switch k {
	case TargetClass:
		return "Class"
	case TargetMethod:
		return "Method"
	case TargetProperty:
		return "Property"
	case TargetParameter:
		return "Parameter"
	case TargetFunction:
		return "Function"
	case TargetConstant:
		return "Constant"
	default:
		return "unknown"
	}
}

// TargetKindFromName resolves a source-level target name to its kind
func TargetKindFromName(name string) (TargetKind, bool) {
	switch name {
	case "Class":
		return TargetClass, true
	case "Method":
		return TargetMethod, true
	case "Property":
		return TargetProperty, true
	case "Parameter":
		return TargetParameter, true
	case "Function":
		return TargetFunction, true
	case "Constant":
		return TargetConstant, true
	default:
		return 0, false
	}
}

// Program is the root node of the AST
type Program struct {
	Declarations []DeclNode
}

func (p *Program) node() {}

// Location returns the source location of the program node in the AST.
func (p *Program) Location() SourceLocation {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Location()
	}
	return SourceLocation{Line: 1, Column: 1}
}

// DeclNode is the interface for all top-level declarations
type DeclNode interface {
	Node
	declNode()
}

// Element is implemented by every AST node an annotation can decorate.
// An attribute declaration is itself an Element: attributes placed on it
// are validated as Class-equivalent metadata.
type Element interface {
	Node
	// Kind returns the target kind of the decorated element
	Kind() TargetKind
	// ElementName returns the qualified name of the element
	// (e.g. "UserController.index", "UserController.index#repo")
	ElementName() string
	// Uses returns the annotations applied to the element, in source order
	Uses() []*AnnotationNode
}

// AttributeDeclNode represents an attribute declaration.
// Foreign declarations import a host-native attribute: they carry an
// externally supplied target set and may never declare an attach hook.
type AttributeDeclNode struct {
	Name        string
	Foreign     bool
	Params      []*ParameterNode
	Targets     []TargetKind
	Attach      *AttachHookNode   // nil when the declaration has no attach hook
	Annotations []*AnnotationNode // metadata applied to the attribute itself
	Loc         SourceLocation
}

func (a *AttributeDeclNode) node()     {}
func (a *AttributeDeclNode) declNode() {}

// Location returns the source location of the declaration.
func (a *AttributeDeclNode) Location() SourceLocation { return a.Loc }

// Kind treats an annotated attribute declaration as Class-equivalent metadata.
func (a *AttributeDeclNode) Kind() TargetKind { return TargetClass }

// ElementName returns the attribute name.
func (a *AttributeDeclNode) ElementName() string { return a.Name }

// Uses returns the annotations applied to the attribute declaration.
func (a *AttributeDeclNode) Uses() []*AnnotationNode { return a.Annotations }

// ParameterNode represents a declared attribute parameter
type ParameterNode struct {
	Name    string
	Type    *TypeNode
	Default ExprNode // nil when the parameter is required
	Loc     SourceLocation
}

func (p *ParameterNode) node() {}

// Location returns the source location of the parameter.
func (p *ParameterNode) Location() SourceLocation { return p.Loc }

// Required reports whether the parameter has no default value
func (p *ParameterNode) Required() bool { return p.Default == nil }

// AttachHookNode represents the optional attach lifecycle hook declared in an
// attribute body. The body is host passthrough code captured verbatim.
type AttachHookNode struct {
	Params     []*ParameterNode // as declared; exactly one is valid
	ReturnType string           // "" or "Void" is valid, anything else is rejected
	Body       string
	Loc        SourceLocation
}

func (a *AttachHookNode) node() {}

// Location returns the source location of the attach hook.
func (a *AttachHookNode) Location() SourceLocation { return a.Loc }

// AnnotationNode represents a single annotation use site (@Name(arg: value))
type AnnotationNode struct {
	Name string
	Args []*ArgumentNode
	Loc  SourceLocation
}

func (a *AnnotationNode) node() {}

// Location returns the source location of the annotation.
func (a *AnnotationNode) Location() SourceLocation { return a.Loc }

// ArgumentNode represents a single annotation argument binding.
// Name is empty for positional arguments, which the binder rejects.
type ArgumentNode struct {
	Name  string
	Value ExprNode
	Loc   SourceLocation
}

func (a *ArgumentNode) node() {}

// Location returns the source location of the argument.
func (a *ArgumentNode) Location() SourceLocation { return a.Loc }

// TypeKind represents the kind of type
type TypeKind int

const (
	// TypePrimitive represents primitive types (String, Int, Float, Bool)
	TypePrimitive TypeKind = iota
	// TypeArray represents array types (Array<T>)
	TypeArray
)

// TypeNode represents a type specification
type TypeNode struct {
	Kind        TypeKind
	Name        string    // For primitives
	ElementType *TypeNode // For Array<T>
	Loc         SourceLocation
}

func (t *TypeNode) node() {}

// Location returns the source location of the type node.
func (t *TypeNode) Location() SourceLocation { return t.Loc }

// String returns the source-level representation of the type
func (t *TypeNode) String() string {
	if t.Kind == TypeArray {
		return "Array<" + t.ElementType.String() + ">"
	}
	return t.Name
}

// ClassNode represents a class declaration
type ClassNode struct {
	Name        string
	Annotations []*AnnotationNode
	Members     []MemberNode // methods, properties, constants in source order
	Loc         SourceLocation
}

func (c *ClassNode) node()     {}
func (c *ClassNode) declNode() {}

// Location returns the source location of the class.
func (c *ClassNode) Location() SourceLocation { return c.Loc }

// Kind returns the Class target kind.
func (c *ClassNode) Kind() TargetKind { return TargetClass }

// ElementName returns the class name.
func (c *ClassNode) ElementName() string { return c.Name }

// Uses returns the annotations applied to the class.
func (c *ClassNode) Uses() []*AnnotationNode { return c.Annotations }

// MemberNode is the interface for class members
type MemberNode interface {
	Node
	memberNode()
}

// MethodNode represents a method declaration inside a class
type MethodNode struct {
	Name        string
	ClassName   string
	Annotations []*AnnotationNode
	Params      []*ParamNode
	Body        string // host passthrough body
	Loc         SourceLocation
}

func (m *MethodNode) node()       {}
func (m *MethodNode) memberNode() {}

// Location returns the source location of the method.
func (m *MethodNode) Location() SourceLocation { return m.Loc }

// Kind returns the Method target kind.
func (m *MethodNode) Kind() TargetKind { return TargetMethod }

// ElementName returns the qualified method name.
func (m *MethodNode) ElementName() string { return m.ClassName + "." + m.Name }

// Uses returns the annotations applied to the method.
func (m *MethodNode) Uses() []*AnnotationNode { return m.Annotations }

// FunctionNode represents a top-level function declaration
type FunctionNode struct {
	Name        string
	Annotations []*AnnotationNode
	Params      []*ParamNode
	Body        string // host passthrough body
	Loc         SourceLocation
}

func (f *FunctionNode) node()     {}
func (f *FunctionNode) declNode() {}

// Location returns the source location of the function.
func (f *FunctionNode) Location() SourceLocation { return f.Loc }

// Kind returns the Function target kind.
func (f *FunctionNode) Kind() TargetKind { return TargetFunction }

// ElementName returns the function name.
func (f *FunctionNode) ElementName() string { return f.Name }

// Uses returns the annotations applied to the function.
func (f *FunctionNode) Uses() []*AnnotationNode { return f.Annotations }

// ParamNode represents a method or function parameter, itself a valid
// annotation target
type ParamNode struct {
	Name        string
	Owner       string // qualified name of the owning method/function
	Type        *TypeNode
	Annotations []*AnnotationNode
	Loc         SourceLocation
}

func (p *ParamNode) node() {}

// Location returns the source location of the parameter.
func (p *ParamNode) Location() SourceLocation { return p.Loc }

// Kind returns the Parameter target kind.
func (p *ParamNode) Kind() TargetKind { return TargetParameter }

// ElementName returns the qualified parameter name.
func (p *ParamNode) ElementName() string { return p.Owner + "#" + p.Name }

// Uses returns the annotations applied to the parameter.
func (p *ParamNode) Uses() []*AnnotationNode { return p.Annotations }

// PropertyNode represents a class property declaration
type PropertyNode struct {
	Name        string
	ClassName   string
	Type        *TypeNode
	Default     ExprNode // nil when the property has no initializer
	Annotations []*AnnotationNode
	Loc         SourceLocation
}

func (p *PropertyNode) node()       {}
func (p *PropertyNode) memberNode() {}

// Location returns the source location of the property.
func (p *PropertyNode) Location() SourceLocation { return p.Loc }

// Kind returns the Property target kind.
func (p *PropertyNode) Kind() TargetKind { return TargetProperty }

// ElementName returns the qualified property name.
func (p *PropertyNode) ElementName() string { return p.ClassName + "." + p.Name }

// Uses returns the annotations applied to the property.
func (p *PropertyNode) Uses() []*AnnotationNode { return p.Annotations }

// ConstantNode represents a class or top-level constant declaration
type ConstantNode struct {
	Name        string
	ClassName   string // empty for top-level constants
	Type        *TypeNode
	Value       ExprNode
	Annotations []*AnnotationNode
	Loc         SourceLocation
}

func (c *ConstantNode) node()       {}
func (c *ConstantNode) declNode()   {}
func (c *ConstantNode) memberNode() {}

// Location returns the source location of the constant.
func (c *ConstantNode) Location() SourceLocation { return c.Loc }

// Kind returns the Constant target kind.
func (c *ConstantNode) Kind() TargetKind { return TargetConstant }

// ElementName returns the qualified constant name.
func (c *ConstantNode) ElementName() string {
	if c.ClassName != "" {
		return c.ClassName + "." + c.Name
	}
	return c.Name
}

// Uses returns the annotations applied to the constant.
func (c *ConstantNode) Uses() []*AnnotationNode { return c.Annotations }

// ExprNode is the interface for all expression nodes
type ExprNode interface {
	Node
	exprNode()
}

// TokenLocation creates a SourceLocation from a lexer token
func TokenLocation(token lexer.Token) SourceLocation {
	return SourceLocation{
		File:   token.File,
		Line:   token.Line,
		Column: token.Column,
	}
}
