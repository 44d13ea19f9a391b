// Package parser transforms Strata token streams into an AST. It is a
// recursive descent parser with panic-mode recovery so a single malformed
// declaration does not hide errors in the rest of the file.
package parser

import (
	"fmt"

	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/lexer"
)

// Parser transforms token streams into an Abstract Syntax Tree
type Parser struct {
	tokens    []lexer.Token
	current   int
	errors    ParseErrorList
	panicMode bool
	source    []rune // Original source text for capturing passthrough bodies
}

// New creates a new Parser from a token stream and its originating source.
// The source is required to capture host passthrough bodies verbatim.
func New(tokens []lexer.Token, source string) *Parser {
	return &Parser{
		tokens:    tokens,
		current:   0,
		errors:    ParseErrorList{},
		panicMode: false,
		source:    []rune(source),
	}
}

// Parse parses the token stream and returns the AST and any errors
func (p *Parser) Parse() (*ast.Program, ParseErrorList) {
	program := p.parseProgram()
	return program, p.errors
}

// parseProgram parses the top-level program
func (p *Parser) parseProgram() *ast.Program {
	declarations := []ast.DeclNode{}

	for !p.isAtEnd() {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}

		annotations := p.parseAnnotations()
		p.skipNewlines()

		switch {
		case p.check(lexer.TOKEN_ATTRIBUTE), p.check(lexer.TOKEN_FOREIGN):
			if decl := p.parseAttributeDecl(annotations); decl != nil {
				declarations = append(declarations, decl)
			}
		case p.check(lexer.TOKEN_CLASS):
			if class := p.parseClass(annotations); class != nil {
				declarations = append(declarations, class)
			}
		case p.check(lexer.TOKEN_FN):
			if fn := p.parseFunction(annotations); fn != nil {
				declarations = append(declarations, fn)
			}
		case p.check(lexer.TOKEN_CONST):
			if constant := p.parseConstant(annotations, ""); constant != nil {
				declarations = append(declarations, constant)
			}
		case p.isAtEnd():
			if len(annotations) > 0 {
				p.addError(ParseError{
					Message:  "Annotations must precede a declaration",
					Location: annotations[0].Loc,
				})
			}
		default:
			p.addError(ParseError{
				Message:  fmt.Sprintf("Unexpected token: %s. Expected a declaration.", p.peek().Lexeme),
				Location: ast.TokenLocation(p.peek()),
			})
			p.synchronize()
		}
	}

	return &ast.Program{Declarations: declarations}
}

// parseAnnotations parses zero or more leading @Name(...) annotations
func (p *Parser) parseAnnotations() []*ast.AnnotationNode {
	annotations := []*ast.AnnotationNode{}

	for {
		p.skipNewlines()
		if !p.check(lexer.TOKEN_AT) {
			break
		}
		atToken := p.advance()

		nameToken, ok := p.consume(lexer.TOKEN_IDENTIFIER, "Expected attribute name after '@'")
		if !ok {
			p.synchronize()
			return annotations
		}

		annotation := &ast.AnnotationNode{
			Name: nameToken.Lexeme,
			Args: []*ast.ArgumentNode{},
			Loc:  ast.TokenLocation(atToken),
		}

		if p.match(lexer.TOKEN_LPAREN) {
			annotation.Args = p.parseArguments()
			p.consume(lexer.TOKEN_RPAREN, "Expected ')' after annotation arguments")
		}

		annotations = append(annotations, annotation)
	}

	return annotations
}

// parseArguments parses a comma-separated annotation argument list.
// Named arguments have the form "name: expr"; a bare expression is kept as
// a positional argument so the binder can reject it with a proper diagnostic.
func (p *Parser) parseArguments() []*ast.ArgumentNode {
	args := []*ast.ArgumentNode{}

	p.skipNewlines()
	if p.check(lexer.TOKEN_RPAREN) {
		return args
	}

	for {
		p.skipNewlines()
		argToken := p.peek()

		name := ""
		if p.check(lexer.TOKEN_IDENTIFIER) && p.peekNext().Type == lexer.TOKEN_COLON {
			name = p.advance().Lexeme
			p.advance() // consume ':'
			p.skipNewlines()
		}

		value := p.parseExpression()
		if value == nil {
			return args
		}

		args = append(args, &ast.ArgumentNode{
			Name:  name,
			Value: value,
			Loc:   ast.TokenLocation(argToken),
		})

		p.skipNewlines()
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	return args
}

// Helper methods for token manipulation

// isAtEnd checks if we're at the end of the token stream
func (p *Parser) isAtEnd() bool {
	if p.current >= len(p.tokens) {
		return true
	}
	return p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// peek returns the current token without consuming it
func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // Return EOF
	}
	return p.tokens[p.current]
}

// peekNext returns the token after the current one without consuming it
func (p *Parser) peekNext() lexer.Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

// previous returns the previous token
func (p *Parser) previous() lexer.Token {
	if p.current > 0 {
		return p.tokens[p.current-1]
	}
	return p.tokens[0]
}

// advance consumes and returns the current token
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check checks if the current token is of the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// match checks if the current token matches any of the given types
// If it matches, consumes the token and returns true
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// consume consumes a token of the given type or adds an error
func (p *Parser) consume(tokenType lexer.TokenType, message string) (lexer.Token, bool) {
	if p.check(tokenType) {
		return p.advance(), true
	}

	p.addError(ParseError{
		Message:  message,
		Location: ast.TokenLocation(p.peek()),
	})
	return lexer.Token{}, false
}

// skipNewlines skips any newline tokens
func (p *Parser) skipNewlines() {
	for p.match(lexer.TOKEN_NEWLINE) {
		// Keep skipping
	}
}

// addError adds a parse error to the error list
func (p *Parser) addError(err ParseError) {
	p.errors = append(p.errors, err)
	p.panicMode = true
}

// synchronize implements panic mode error recovery
// Skips tokens until we reach a synchronization point
func (p *Parser) synchronize() {
	p.panicMode = false
	p.advance()

	for !p.isAtEnd() {
		// Newlines are natural synchronization points
		if p.previous().Type == lexer.TOKEN_NEWLINE {
			return
		}

		// Start of new constructs are synchronization points
		switch p.peek().Type {
		case lexer.TOKEN_ATTRIBUTE, lexer.TOKEN_FOREIGN, lexer.TOKEN_CLASS,
			lexer.TOKEN_FN, lexer.TOKEN_CONST, lexer.TOKEN_AT:
			return
		}

		p.advance()
	}
}

// captureBlock consumes a balanced { ... } block and returns the body text
// between the braces verbatim. The opening brace must be the current token.
func (p *Parser) captureBlock() (string, bool) {
	open, ok := p.consume(lexer.TOKEN_LBRACE, "Expected '{'")
	if !ok {
		return "", false
	}

	depth := 1
	var closing lexer.Token
	for !p.isAtEnd() {
		tok := p.advance()
		if tok.Type == lexer.TOKEN_LBRACE {
			depth++
		} else if tok.Type == lexer.TOKEN_RBRACE {
			depth--
			if depth == 0 {
				closing = tok
				break
			}
		}
	}

	if depth != 0 {
		p.addError(ParseError{
			Message:  "Unterminated block",
			Location: ast.TokenLocation(open),
		})
		return "", false
	}

	return string(p.source[open.End:closing.Start]), true
}
