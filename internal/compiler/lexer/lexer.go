package lexer

import (
	"strconv"
	"strings"
	"unicode"
)

// Lexer tokenizes Strata source code
type Lexer struct {
	source      []rune     // Source code as runes for Unicode support
	start       int        // Start position of current token
	current     int        // Current position in source
	line        int        // Current line number
	column      int        // Current column number
	startColumn int        // Column where current token started
	file        string     // Source file path
	tokens      []Token    // Collected tokens
	errors      []LexError // Collected errors
}

// New creates a new Lexer for the given source code
func New(source, file string) *Lexer {
	return &Lexer{
		source:      []rune(source),
		start:       0,
		current:     0,
		line:        1,
		column:      1,
		startColumn: 1,
		file:        file,
		tokens:      make([]Token, 0, len(source)/10),
		errors:      make([]LexError, 0),
	}
}

// ScanTokens scans all tokens from the source and returns them with any errors
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startColumn = l.column
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Lexeme: "",
		Line:   l.line,
		Column: l.column,
		File:   l.file,
		Start:  l.current,
		End:    l.current,
	})

	return l.tokens, l.errors
}

// scanToken scans a single token
func (l *Lexer) scanToken() {
	r := l.advance()

	switch r {
	case '(':
		l.addToken(TOKEN_LPAREN, nil)
	case ')':
		l.addToken(TOKEN_RPAREN, nil)
	case '{':
		l.addToken(TOKEN_LBRACE, nil)
	case '}':
		l.addToken(TOKEN_RBRACE, nil)
	case '[':
		l.addToken(TOKEN_LBRACKET, nil)
	case ']':
		l.addToken(TOKEN_RBRACKET, nil)
	case '<':
		l.addToken(TOKEN_LESS, nil)
	case '>':
		l.addToken(TOKEN_GREATER, nil)
	case ',':
		l.addToken(TOKEN_COMMA, nil)
	case ':':
		l.addToken(TOKEN_COLON, nil)
	case '@':
		l.addToken(TOKEN_AT, nil)
	case '=':
		l.addToken(TOKEN_EQUAL, nil)
	case '-':
		l.addToken(TOKEN_MINUS, nil)
	case '!':
		l.addToken(TOKEN_BANG, nil)
	case '+':
		l.addToken(TOKEN_PLUS, nil)
	case '*':
		l.addToken(TOKEN_STAR, nil)
	case '/':
		l.addToken(TOKEN_SLASH, nil)
	case '%':
		l.addToken(TOKEN_PERCENT, nil)
	case ';':
		l.addToken(TOKEN_SEMICOLON, nil)
	case '.':
		// Check if it's the decimal point of a float without a leading digit
		if l.isDigit(l.peek()) {
			l.current--
			l.column--
			l.scanNumber()
		} else {
			l.addToken(TOKEN_DOT, nil)
		}
	case '?':
		if l.match('?') {
			l.addToken(TOKEN_QUESTION_QUESTION, nil)
		} else {
			l.addError("Unexpected character: ?")
		}

	// Comments
	case '#':
		l.scanComment()

	// String literals
	case '"':
		l.scanString()

	// Whitespace
	case ' ', '\r', '\t':
		break

	case '\n':
		l.addToken(TOKEN_NEWLINE, nil)
		l.line++
		l.column = 1

	default:
		if l.isDigit(r) {
			l.scanNumber()
		} else if l.isAlpha(r) {
			l.scanIdentifier()
		} else {
			l.addError("Unexpected character: " + string(r))
		}
	}
}

// scanComment scans a single-line comment starting with #
func (l *Lexer) scanComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// scanString scans a string literal, handling escape sequences
func (l *Lexer) scanString() {
	startLine := l.line
	var builder strings.Builder

	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
			l.column = 0
		}

		if l.peek() == '\\' {
			l.advance() // consume backslash
			if l.isAtEnd() {
				l.addError("Unterminated string")
				return
			}

			escaped := l.advance()
			switch escaped {
			case 'n':
				builder.WriteRune('\n')
			case 't':
				builder.WriteRune('\t')
			case 'r':
				builder.WriteRune('\r')
			case '\\':
				builder.WriteRune('\\')
			case '"':
				builder.WriteRune('"')
			default:
				// Invalid escape sequence, but include it
				builder.WriteRune('\\')
				builder.WriteRune(escaped)
			}
		} else {
			builder.WriteRune(l.advance())
		}
	}

	if l.isAtEnd() {
		l.addError("Unterminated string starting at line " + strconv.Itoa(startLine))
		return
	}

	// Consume closing quote
	l.advance()

	l.addToken(TOKEN_STRING_LITERAL, builder.String())
}

// scanNumber scans an integer or float literal
func (l *Lexer) scanNumber() {
	for l.isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	// Check for decimal point
	isFloat := false
	if l.peek() == '.' && l.isDigit(l.peekNext()) {
		isFloat = true
		l.advance() // consume '.'

		for l.isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	// Check for scientific notation
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance() // consume 'e' or 'E'

		if l.peek() == '+' || l.peek() == '-' {
			l.advance() // consume sign
		}

		if !l.isDigit(l.peek()) {
			l.addError("Invalid scientific notation")
			return
		}

		for l.isDigit(l.peek()) {
			l.advance()
		}
	}

	// Get the lexeme and remove underscores
	lexeme := string(l.source[l.start:l.current])
	cleanLexeme := strings.ReplaceAll(lexeme, "_", "")

	if isFloat {
		value, err := strconv.ParseFloat(cleanLexeme, 64)
		if err != nil {
			l.addError("Invalid float literal: " + err.Error())
			return
		}
		l.addToken(TOKEN_FLOAT_LITERAL, value)
	} else {
		value, err := strconv.ParseInt(cleanLexeme, 10, 64)
		if err != nil {
			l.addError("Invalid integer literal: " + err.Error())
			return
		}
		l.addToken(TOKEN_INT_LITERAL, value)
	}
}

// scanIdentifier scans an identifier or keyword
func (l *Lexer) scanIdentifier() {
	for l.isAlphaNumeric(l.peek()) {
		l.advance()
	}

	lexeme := string(l.source[l.start:l.current])

	tokenType, isKeyword := lookupKeyword(lexeme)
	if isKeyword {
		l.addToken(tokenType, nil)
		return
	}

	l.addToken(TOKEN_IDENTIFIER, lexeme)
}

// Helper methods

// isAtEnd checks if we've reached the end of the source
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance consumes and returns the current character
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	r := l.source[l.current]
	l.current++
	l.column++
	return r
}

// match checks if the current character matches the expected character
// If it matches, consumes it and returns true
func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	if l.source[l.current] != expected {
		return false
	}
	l.current++
	l.column++
	return true
}

// peek returns the current character without consuming it
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// peekNext returns the next character without consuming it
func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// isDigit checks if a rune is a digit
func (l *Lexer) isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isAlpha checks if a rune is alphabetic or underscore
func (l *Lexer) isAlpha(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isAlphaNumeric checks if a rune is alphanumeric or underscore
func (l *Lexer) isAlphaNumeric(r rune) bool {
	return l.isAlpha(r) || l.isDigit(r)
}

// addToken adds a token to the token list
func (l *Lexer) addToken(tokenType TokenType, literal interface{}) {
	lexeme := string(l.source[l.start:l.current])
	l.tokens = append(l.tokens, Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    l.line,
		Column:  l.startColumn,
		File:    l.file,
		Start:   l.start,
		End:     l.current,
	})
}

// addError adds an error to the error list
func (l *Lexer) addError(message string) {
	l.errors = append(l.errors, LexError{
		Message: message,
		Line:    l.line,
		Column:  l.column,
		File:    l.file,
	})
}
