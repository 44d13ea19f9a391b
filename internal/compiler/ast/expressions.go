package ast

// Annotation arguments and parameter defaults are restricted to the constant
// expression subset below. General expression evaluation lives outside the
// attribute subsystem.

// LiteralExpr represents a literal value (string, int, float, bool, null)
type LiteralExpr struct {
	Value interface{} // string, int64, float64, bool, or nil
	Loc   SourceLocation
}

func (l *LiteralExpr) node()     {}
func (l *LiteralExpr) exprNode() {}

func (l *LiteralExpr) Location() SourceLocation {
	return l.Loc
}

// IdentifierExpr represents a bare identifier. The constant evaluator
// rejects identifiers; the parser keeps them so the binder can report a
// precise location.
type IdentifierExpr struct {
	Name string
	Loc  SourceLocation
}

func (i *IdentifierExpr) node()     {}
func (i *IdentifierExpr) exprNode() {}

func (i *IdentifierExpr) Location() SourceLocation {
	return i.Loc
}

// UnaryExpr represents a unary operation (-x, !x)
type UnaryExpr struct {
	Operator string // "-" or "!"
	Operand  ExprNode
	Loc      SourceLocation
}

func (u *UnaryExpr) node()     {}
func (u *UnaryExpr) exprNode() {}

func (u *UnaryExpr) Location() SourceLocation {
	return u.Loc
}

// ArrayLiteralExpr represents an array literal [1, 2, 3]
type ArrayLiteralExpr struct {
	Elements []ExprNode
	Loc      SourceLocation
}

func (a *ArrayLiteralExpr) node()     {}
func (a *ArrayLiteralExpr) exprNode() {}

func (a *ArrayLiteralExpr) Location() SourceLocation {
	return a.Loc
}

// NullCoalesceExpr represents the null coalescing operator (??)
type NullCoalesceExpr struct {
	Left  ExprNode
	Right ExprNode
	Loc   SourceLocation
}

func (n *NullCoalesceExpr) node()     {}
func (n *NullCoalesceExpr) exprNode() {}

func (n *NullCoalesceExpr) Location() SourceLocation {
	return n.Loc
}
