package parser

import (
	"fmt"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/lexer"
)

// parseAttributeDecl parses an attribute declaration:
//
//	attribute Route(path: String, method: String = "GET") targets Method { ... }
//	foreign attribute Override targets Method
//
// Foreign declarations import a host-native attribute and may not have a body.
func (p *Parser) parseAttributeDecl(annotations []*ast.AnnotationNode) *ast.AttributeDeclNode {
	foreign := p.match(lexer.TOKEN_FOREIGN)

	startToken, ok := p.consume(lexer.TOKEN_ATTRIBUTE, "Expected 'attribute' keyword")
	if !ok {
		p.synchronize()
		return nil
	}

	nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected attribute name")
	if !ok {
		p.synchronize()
		return nil
	}

	decl := &ast.AttributeDeclNode{
		Name:        nameToken.Lexeme,
		Foreign:     foreign,
		Params:      []*ast.ParameterNode{},
		Targets:     []ast.TargetKind{},
		Annotations: annotations,
		Loc:         ast.TokenLocation(startToken),
	}

	if p.match(lexer.TOKEN_LPAREN) {
		decl.Params = p.parseParameterList()
		if _, ok := p.consume(lexer.TOKEN_RPAREN, "Expected ')' after attribute parameters"); !ok {
			p.synchronize()
			return nil
		}
	}

	if _, ok := p.consume(lexer.TOKEN_TARGETS, "Expected 'targets' clause in attribute declaration"); !ok {
		p.synchronize()
		return nil
	}
	decl.Targets = p.parseTargetList()

	p.skipNewlines()
	if p.check(lexer.TOKEN_LBRACE) {
		if foreign {
			p.addError(ParseError{
				Message:  fmt.Sprintf("Foreign attribute %s may not declare a body", decl.Name),
				Location: ast.TokenLocation(p.peek()),
			})
			p.synchronize()
			return nil
		}
		p.advance() // consume '{'
		decl.Attach = p.parseAttributeBody(decl.Name)
	}

	return decl
}

// parseParameterList parses a comma-separated parameter list:
// name: Type, name: Type = default
func (p *Parser) parseParameterList() []*ast.ParameterNode {
	params := []*ast.ParameterNode{}

	p.skipNewlines()
	if p.check(lexer.TOKEN_RPAREN) {
		return params
	}

	for {
		p.skipNewlines()
		nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected parameter name")
		if !ok {
			return params
		}

		if _, ok := p.consume(lexer.TOKEN_COLON, "Expected ':' after parameter name"); !ok {
			return params
		}

		typeNode := p.parseType()
		if typeNode == nil {
			return params
		}

		param := &ast.ParameterNode{
			Name: nameToken.Lexeme,
			Type: typeNode,
			Loc:  ast.TokenLocation(nameToken),
		}

		if p.match(lexer.TOKEN_EQUAL) {
			p.skipNewlines()
			param.Default = p.parseExpression()
		}

		params = append(params, param)

		p.skipNewlines()
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	return params
}

// parseTargetList parses the comma-separated target kinds after 'targets'
func (p *Parser) parseTargetList() []ast.TargetKind {
	targets := []ast.TargetKind{}

	for {
		nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected target kind after 'targets'")
		if !ok {
			return targets
		}

		kind, known := ast.TargetKindFromName(nameToken.Lexeme)
		if !known {
			p.addError(ParseError{
				Message:  fmt.Sprintf("Unknown target kind: %s. Valid kinds are Class, Method, Property, Parameter, Function, Constant.", nameToken.Lexeme),
				Location: ast.TokenLocation(nameToken),
			})
		} else {
			targets = append(targets, kind)
		}

		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	return targets
}

// parseAttributeBody parses the contents of an attribute declaration body.
// The only member currently allowed is the attach lifecycle hook; the opening
// brace has already been consumed.
func (p *Parser) parseAttributeBody(attrName string) *ast.AttachHookNode {
	var attach *ast.AttachHookNode

	for {
		p.skipNewlines()
		if p.match(lexer.TOKEN_RBRACE) {
			return attach
		}
		if p.isAtEnd() {
			p.addError(ParseError{
				Message:  fmt.Sprintf("Unterminated body for attribute %s", attrName),
				Location: ast.TokenLocation(p.peek()),
			})
			return attach
		}

		if p.check(lexer.TOKEN_ATTACH) {
			hook := p.parseAttachHook()
			if hook == nil {
				p.synchronize()
				continue
			}
			if attach != nil {
				p.addError(ParseError{
					Message:  fmt.Sprintf("Attribute %s declares more than one attach hook", attrName),
					Location: hook.Loc,
				})
				continue
			}
			attach = hook
			continue
		}

		p.addError(ParseError{
			Message:  fmt.Sprintf("Unexpected token in attribute body: %s. Only an attach hook is allowed.", p.peek().Lexeme),
			Location: ast.TokenLocation(p.peek()),
		})
		p.synchronize()
	}
}

// parseAttachHook parses an attach lifecycle hook:
//
//	attach(ctx: MethodContext): Void { ... }
//
// Zero parameters, extra parameters, and non-void returns are parsed here and
// rejected later by the attach descriptor resolver so the error carries the
// declaration-level diagnostic code.
func (p *Parser) parseAttachHook() *ast.AttachHookNode {
	startToken := p.advance() // consume 'attach'

	if _, ok := p.consume(lexer.TOKEN_LPAREN, "Expected '(' after 'attach'"); !ok {
		return nil
	}

	hook := &ast.AttachHookNode{
		Params: p.parseParameterList(),
		Loc:    ast.TokenLocation(startToken),
	}

	if _, ok := p.consume(lexer.TOKEN_RPAREN, "Expected ')' after attach parameters"); !ok {
		return nil
	}

	if p.match(lexer.TOKEN_COLON) {
		returnToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected return type after ':'")
		if !ok {
			return nil
		}
		hook.ReturnType = returnToken.Lexeme
	}

	p.skipNewlines()
	body, ok := p.captureBlock()
	if !ok {
		return nil
	}
	hook.Body = body

	return hook
}

// parseType parses a type specification: a primitive name or Array<T>
func (p *Parser) parseType() *ast.TypeNode {
	nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected type name")
	if !ok {
		return nil
	}

	node := &ast.TypeNode{
		Kind: ast.TypePrimitive,
		Name: nameToken.Lexeme,
		Loc:  ast.TokenLocation(nameToken),
	}

	if nameToken.Lexeme == "Array" {
		if _, ok := p.consume(lexer.TOKEN_LESS, "Expected '<' after 'Array'"); !ok {
			return nil
		}
		element := p.parseType()
		if element == nil {
			return nil
		}
		if _, ok := p.consume(lexer.TOKEN_GREATER, "Expected '>' after array element type"); !ok {
			return nil
		}
		node.Kind = ast.TypeArray
		node.Name = ""
		node.ElementType = element
	}

	return node
}
