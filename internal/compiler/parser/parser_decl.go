package parser

import (
	"fmt"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/lexer"
)

// parseClass parses a class declaration with its members:
//
//	class UserController {
//	  @Route(path: "/users")
//	  fn index() { ... }
//	  prop id: Int
//	  const VERSION: String = "1.0"
//	}
func (p *Parser) parseClass(annotations []*ast.AnnotationNode) *ast.ClassNode {
	startToken := p.advance() // consume 'class'

	nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected class name")
	if !ok {
		p.synchronize()
		return nil
	}

	class := &ast.ClassNode{
		Name:        nameToken.Lexeme,
		Annotations: annotations,
		Members:     []ast.MemberNode{},
		Loc:         ast.TokenLocation(startToken),
	}

	if _, ok := p.consume(lexer.TOKEN_LBRACE, "Expected '{' after class name"); !ok {
		p.synchronize()
		return nil
	}

	for {
		p.skipNewlines()
		if p.match(lexer.TOKEN_RBRACE) {
			return class
		}
		if p.isAtEnd() {
			p.addError(ParseError{
				Message:  fmt.Sprintf("Unterminated class body for %s", class.Name),
				Location: ast.TokenLocation(p.peek()),
			})
			return class
		}

		memberAnnotations := p.parseAnnotations()
		p.skipNewlines()

		switch {
		case p.check(lexer.TOKEN_FN):
			if method := p.parseMethod(memberAnnotations, class.Name); method != nil {
				class.Members = append(class.Members, method)
			}
		case p.check(lexer.TOKEN_PROP):
			if prop := p.parseProperty(memberAnnotations, class.Name); prop != nil {
				class.Members = append(class.Members, prop)
			}
		case p.check(lexer.TOKEN_CONST):
			if constant := p.parseConstant(memberAnnotations, class.Name); constant != nil {
				class.Members = append(class.Members, constant)
			}
		default:
			p.addError(ParseError{
				Message:  fmt.Sprintf("Unexpected token in class body: %s. Expected 'fn', 'prop', or 'const'.", p.peek().Lexeme),
				Location: ast.TokenLocation(p.peek()),
			})
			p.synchronize()
		}
	}
}

// parseMethod parses a method declaration inside a class
func (p *Parser) parseMethod(annotations []*ast.AnnotationNode, className string) *ast.MethodNode {
	startToken := p.advance() // consume 'fn'

	nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected method name")
	if !ok {
		p.synchronize()
		return nil
	}

	method := &ast.MethodNode{
		Name:        nameToken.Lexeme,
		ClassName:   className,
		Annotations: annotations,
		Loc:         ast.TokenLocation(startToken),
	}

	params, ok := p.parseCallableParams(method.ElementName())
	if !ok {
		p.synchronize()
		return nil
	}
	method.Params = params

	p.skipNewlines()
	body, ok := p.captureBlock()
	if !ok {
		p.synchronize()
		return nil
	}
	method.Body = body

	return method
}

// parseFunction parses a top-level function declaration
func (p *Parser) parseFunction(annotations []*ast.AnnotationNode) *ast.FunctionNode {
	startToken := p.advance() // consume 'fn'

	nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected function name")
	if !ok {
		p.synchronize()
		return nil
	}

	fn := &ast.FunctionNode{
		Name:        nameToken.Lexeme,
		Annotations: annotations,
		Loc:         ast.TokenLocation(startToken),
	}

	params, ok := p.parseCallableParams(fn.Name)
	if !ok {
		p.synchronize()
		return nil
	}
	fn.Params = params

	p.skipNewlines()
	body, ok := p.captureBlock()
	if !ok {
		p.synchronize()
		return nil
	}
	fn.Body = body

	return fn
}

// parseCallableParams parses a method/function parameter list. Each parameter
// may carry its own annotations:
//
//	fn index(@Inject(name: "db") repo: String, limit: Int)
func (p *Parser) parseCallableParams(owner string) ([]*ast.ParamNode, bool) {
	if _, ok := p.consume(lexer.TOKEN_LPAREN, "Expected '(' after name"); !ok {
		return nil, false
	}

	params := []*ast.ParamNode{}

	p.skipNewlines()
	if p.match(lexer.TOKEN_RPAREN) {
		return params, true
	}

	for {
		p.skipNewlines()
		paramAnnotations := p.parseAnnotations()
		p.skipNewlines()

		nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected parameter name")
		if !ok {
			return nil, false
		}

		if _, ok := p.consume(lexer.TOKEN_COLON, "Expected ':' after parameter name"); !ok {
			return nil, false
		}

		typeNode := p.parseType()
		if typeNode == nil {
			return nil, false
		}

		params = append(params, &ast.ParamNode{
			Name:        nameToken.Lexeme,
			Owner:       owner,
			Type:        typeNode,
			Annotations: paramAnnotations,
			Loc:         ast.TokenLocation(nameToken),
		})

		p.skipNewlines()
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	_, ok := p.consume(lexer.TOKEN_RPAREN, "Expected ')' after parameters")
	return params, ok
}

// parseProperty parses a class property declaration
func (p *Parser) parseProperty(annotations []*ast.AnnotationNode, className string) *ast.PropertyNode {
	startToken := p.advance() // consume 'prop'

	nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected property name")
	if !ok {
		p.synchronize()
		return nil
	}

	if _, ok := p.consume(lexer.TOKEN_COLON, "Expected ':' after property name"); !ok {
		p.synchronize()
		return nil
	}

	typeNode := p.parseType()
	if typeNode == nil {
		p.synchronize()
		return nil
	}

	prop := &ast.PropertyNode{
		Name:        nameToken.Lexeme,
		ClassName:   className,
		Type:        typeNode,
		Annotations: annotations,
		Loc:         ast.TokenLocation(startToken),
	}

	if p.match(lexer.TOKEN_EQUAL) {
		p.skipNewlines()
		prop.Default = p.parseExpression()
	}

	return prop
}

// parseConstant parses a class-level or top-level constant declaration
func (p *Parser) parseConstant(annotations []*ast.AnnotationNode, className string) *ast.ConstantNode {
	startToken := p.advance() // consume 'const'

	nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected constant name")
	if !ok {
		p.synchronize()
		return nil
	}

	if _, ok := p.consume(lexer.TOKEN_COLON, "Expected ':' after constant name"); !ok {
		p.synchronize()
		return nil
	}

	typeNode := p.parseType()
	if typeNode == nil {
		p.synchronize()
		return nil
	}

	if _, ok := p.consume(lexer.TOKEN_EQUAL, "Expected '=' in constant declaration"); !ok {
		p.synchronize()
		return nil
	}

	p.skipNewlines()
	value := p.parseExpression()
	if value == nil {
		p.synchronize()
		return nil
	}

	return &ast.ConstantNode{
		Name:        nameToken.Lexeme,
		ClassName:   className,
		Type:        typeNode,
		Value:       value,
		Annotations: annotations,
		Loc:         ast.TokenLocation(startToken),
	}
}
