package parser

import (
	"fmt"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/lexer"
)

// parseExpression parses a constant expression. Annotation arguments,
// parameter defaults, and constant initializers all use this restricted
// grammar: literals, unary operators, array literals, and null coalescing.
func (p *Parser) parseExpression() ast.ExprNode {
	return p.parseNullCoalesce()
}

// parseNullCoalesce parses left ?? right (right-associative)
func (p *Parser) parseNullCoalesce() ast.ExprNode {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	if p.match(lexer.TOKEN_QUESTION_QUESTION) {
		loc := ast.TokenLocation(p.previous())
		p.skipNewlines()
		right := p.parseNullCoalesce()
		if right == nil {
			return nil
		}
		return &ast.NullCoalesceExpr{Left: left, Right: right, Loc: loc}
	}

	return left
}

// parseUnary parses unary minus and logical not
func (p *Parser) parseUnary() ast.ExprNode {
	if p.check(lexer.TOKEN_MINUS) || p.check(lexer.TOKEN_BANG) {
		opToken := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{
			Operator: opToken.Lexeme,
			Operand:  operand,
			Loc:      ast.TokenLocation(opToken),
		}
	}

	return p.parsePrimary()
}

// parsePrimary parses literals, identifiers, and array literals
func (p *Parser) parsePrimary() ast.ExprNode {
	token := p.peek()

	switch token.Type {
	case lexer.TOKEN_STRING_LITERAL, lexer.TOKEN_INT_LITERAL, lexer.TOKEN_FLOAT_LITERAL:
		p.advance()
		return &ast.LiteralExpr{Value: token.Literal, Loc: ast.TokenLocation(token)}

	case lexer.TOKEN_TRUE:
		p.advance()
		return &ast.LiteralExpr{Value: true, Loc: ast.TokenLocation(token)}

	case lexer.TOKEN_FALSE:
		p.advance()
		return &ast.LiteralExpr{Value: false, Loc: ast.TokenLocation(token)}

	case lexer.TOKEN_NULL:
		p.advance()
		return &ast.LiteralExpr{Value: nil, Loc: ast.TokenLocation(token)}

	case lexer.TOKEN_IDENTIFIER:
		p.advance()
		return &ast.IdentifierExpr{Name: token.Lexeme, Loc: ast.TokenLocation(token)}

	case lexer.TOKEN_LBRACKET:
		return p.parseArrayLiteral()

	default:
		p.addError(ParseError{
			Message:  fmt.Sprintf("Expected expression, got %s", token.Type),
			Location: ast.TokenLocation(token),
		})
		return nil
	}
}

// parseArrayLiteral parses [expr, expr, ...]
func (p *Parser) parseArrayLiteral() ast.ExprNode {
	openToken := p.advance() // consume '['

	elements := []ast.ExprNode{}

	p.skipNewlines()
	if p.match(lexer.TOKEN_RBRACKET) {
		return &ast.ArrayLiteralExpr{Elements: elements, Loc: ast.TokenLocation(openToken)}
	}

	for {
		p.skipNewlines()
		element := p.parseExpression()
		if element == nil {
			return nil
		}
		elements = append(elements, element)

		p.skipNewlines()
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if _, ok := p.consume(lexer.TOKEN_RBRACKET, "Expected ']' after array elements"); !ok {
		return nil
	}

	return &ast.ArrayLiteralExpr{Elements: elements, Loc: ast.TokenLocation(openToken)}
}
