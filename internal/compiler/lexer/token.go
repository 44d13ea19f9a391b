package lexer

import "fmt"

// TokenType represents the type of token in the Strata language
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR
	TOKEN_COMMENT
	TOKEN_NEWLINE

	// Keywords - Declarations
	TOKEN_ATTRIBUTE
	TOKEN_FOREIGN
	TOKEN_TARGETS
	TOKEN_ATTACH
	TOKEN_CLASS
	TOKEN_FN
	TOKEN_PROP
	TOKEN_CONST

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_INT_LITERAL
	TOKEN_FLOAT_LITERAL
	TOKEN_STRING_LITERAL
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NULL

	// Operators
	TOKEN_AT                // @
	TOKEN_COLON             // :
	TOKEN_COMMA             // ,
	TOKEN_EQUAL             // =
	TOKEN_MINUS             // -
	TOKEN_BANG              // !
	TOKEN_QUESTION_QUESTION // ??
	TOKEN_DOT               // .
	TOKEN_PLUS              // +
	TOKEN_STAR              // *
	TOKEN_SLASH             // /
	TOKEN_PERCENT           // %
	TOKEN_SEMICOLON         // ;

	// Delimiters
	TOKEN_LBRACE   // {
	TOKEN_RBRACE   // }
	TOKEN_LPAREN   // (
	TOKEN_RPAREN   // )
	TOKEN_LBRACKET // [
	TOKEN_RBRACKET // ]
	TOKEN_LESS     // <
	TOKEN_GREATER  // >
)

// Token represents a single lexical token
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // For literals (numbers, strings, etc.)
	Line    int
	Column  int
	File    string // Source file path
	Start   int    // Rune offset in source where token starts
	End     int    // Rune offset in source where token ends (exclusive)
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_ERROR:
		return "ERROR"
	case TOKEN_COMMENT:
		return "COMMENT"
	case TOKEN_NEWLINE:
		return "NEWLINE"
	case TOKEN_ATTRIBUTE:
		return "ATTRIBUTE"
	case TOKEN_FOREIGN:
		return "FOREIGN"
	case TOKEN_TARGETS:
		return "TARGETS"
	case TOKEN_ATTACH:
		return "ATTACH"
	case TOKEN_CLASS:
		return "CLASS"
	case TOKEN_FN:
		return "FN"
	case TOKEN_PROP:
		return "PROP"
	case TOKEN_CONST:
		return "CONST"
	case TOKEN_IDENTIFIER:
		return "IDENTIFIER"
	case TOKEN_INT_LITERAL:
		return "INT_LITERAL"
	case TOKEN_FLOAT_LITERAL:
		return "FLOAT_LITERAL"
	case TOKEN_STRING_LITERAL:
		return "STRING_LITERAL"
	case TOKEN_TRUE:
		return "TRUE"
	case TOKEN_FALSE:
		return "FALSE"
	case TOKEN_NULL:
		return "NULL"
	case TOKEN_AT:
		return "AT"
	case TOKEN_COLON:
		return "COLON"
	case TOKEN_COMMA:
		return "COMMA"
	case TOKEN_EQUAL:
		return "EQUAL"
	case TOKEN_MINUS:
		return "MINUS"
	case TOKEN_BANG:
		return "BANG"
	case TOKEN_QUESTION_QUESTION:
		return "QUESTION_QUESTION"
	case TOKEN_DOT:
		return "DOT"
	case TOKEN_PLUS:
		return "PLUS"
	case TOKEN_STAR:
		return "STAR"
	case TOKEN_SLASH:
		return "SLASH"
	case TOKEN_PERCENT:
		return "PERCENT"
	case TOKEN_SEMICOLON:
		return "SEMICOLON"
	case TOKEN_LBRACE:
		return "LBRACE"
	case TOKEN_RBRACE:
		return "RBRACE"
	case TOKEN_LPAREN:
		return "LPAREN"
	case TOKEN_RPAREN:
		return "RPAREN"
	case TOKEN_LBRACKET:
		return "LBRACKET"
	case TOKEN_RBRACKET:
		return "RBRACKET"
	case TOKEN_LESS:
		return "LESS"
	case TOKEN_GREATER:
		return "GREATER"
	default:
		return "UNKNOWN"
	}
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s(%v) [%d:%d]", t.Type, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s(%s) [%d:%d]", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError represents a lexical analysis error
type LexError struct {
	Message string
	Line    int
	Column  int
	File    string
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}
