package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanTokens_AttributeDeclaration(t *testing.T) {
	source := `attribute Route(path: String) targets Method`

	tokens, errors := New(source, "test.sta").ScanTokens()
	require.Empty(t, errors)

	expected := []TokenType{
		TOKEN_ATTRIBUTE, TOKEN_IDENTIFIER, TOKEN_LPAREN, TOKEN_IDENTIFIER,
		TOKEN_COLON, TOKEN_IDENTIFIER, TOKEN_RPAREN, TOKEN_TARGETS,
		TOKEN_IDENTIFIER, TOKEN_EOF,
	}

	require.Len(t, tokens, len(expected))
	for i, tokenType := range expected {
		assert.Equal(t, tokenType, tokens[i].Type, "token %d", i)
	}
}

func TestScanTokens_Annotation(t *testing.T) {
	source := `@Route(path: "/users", method: "GET")`

	tokens, errors := New(source, "test.sta").ScanTokens()
	require.Empty(t, errors)

	assert.Equal(t, TOKEN_AT, tokens[0].Type)
	assert.Equal(t, TOKEN_IDENTIFIER, tokens[1].Type)
	assert.Equal(t, "Route", tokens[1].Literal)

	var strings []interface{}
	for _, tok := range tokens {
		if tok.Type == TOKEN_STRING_LITERAL {
			strings = append(strings, tok.Literal)
		}
	}
	assert.Equal(t, []interface{}{"/users", "GET"}, strings)
}

func TestScanTokens_Keywords(t *testing.T) {
	tests := []struct {
		source   string
		expected TokenType
	}{
		{"attribute", TOKEN_ATTRIBUTE},
		{"foreign", TOKEN_FOREIGN},
		{"targets", TOKEN_TARGETS},
		{"attach", TOKEN_ATTACH},
		{"class", TOKEN_CLASS},
		{"fn", TOKEN_FN},
		{"prop", TOKEN_PROP},
		{"const", TOKEN_CONST},
		{"true", TOKEN_TRUE},
		{"false", TOKEN_FALSE},
		{"null", TOKEN_NULL},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tokens, errors := New(tt.source, "test.sta").ScanTokens()
			require.Empty(t, errors)
			require.Len(t, tokens, 2) // keyword + EOF
			assert.Equal(t, tt.expected, tokens[0].Type)
		})
	}
}

func TestScanTokens_Numbers(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected interface{}
	}{
		{"integer", "42", int64(42)},
		{"integer with underscores", "1_000_000", int64(1000000)},
		{"float", "3.14", float64(3.14)},
		{"scientific notation", "1.5e3", float64(1500)},
		{"negative exponent", "2e-2", float64(0.02)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errors := New(tt.source, "test.sta").ScanTokens()
			require.Empty(t, errors)
			assert.Equal(t, tt.expected, tokens[0].Literal)
		})
	}
}

func TestScanTokens_StringEscapes(t *testing.T) {
	source := `"line1\nline2\ttab"`

	tokens, errors := New(source, "test.sta").ScanTokens()
	require.Empty(t, errors)
	assert.Equal(t, "line1\nline2\ttab", tokens[0].Literal)
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	source := `"never closed`

	_, errors := New(source, "test.sta").ScanTokens()
	require.Len(t, errors, 1)
	assert.Contains(t, errors[0].Message, "Unterminated string")
}

func TestScanTokens_Comments(t *testing.T) {
	source := "# a comment\nattribute"

	tokens, errors := New(source, "test.sta").ScanTokens()
	require.Empty(t, errors)

	// Comment is discarded; newline survives
	assert.Equal(t, TOKEN_NEWLINE, tokens[0].Type)
	assert.Equal(t, TOKEN_ATTRIBUTE, tokens[1].Type)
}

func TestScanTokens_LineAndColumnTracking(t *testing.T) {
	source := "class Foo\nclass Bar"

	tokens, errors := New(source, "test.sta").ScanTokens()
	require.Empty(t, errors)

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)
	assert.Equal(t, 1, tokens[1].Line)
	assert.Equal(t, 7, tokens[1].Column)

	// The newline token reports its own line, not the line it opens
	assert.Equal(t, TOKEN_NEWLINE, tokens[2].Type)
	assert.Equal(t, 1, tokens[2].Line)
	assert.Equal(t, 10, tokens[2].Column)

	// Tokens after the newline are on line 2, columns 1-indexed
	assert.Equal(t, 2, tokens[3].Line)
	assert.Equal(t, 1, tokens[3].Column)
}

func TestScanTokens_OffsetsSliceSource(t *testing.T) {
	source := `attribute Log targets Method`

	tokens, errors := New(source, "test.sta").ScanTokens()
	require.Empty(t, errors)

	runes := []rune(source)
	for _, tok := range tokens[:len(tokens)-1] {
		assert.Equal(t, tok.Lexeme, string(runes[tok.Start:tok.End]))
	}
}

func TestScanTokens_UnexpectedCharacter(t *testing.T) {
	_, errors := New("class ^ Foo", "test.sta").ScanTokens()
	require.Len(t, errors, 1)
	assert.Contains(t, errors[0].Message, "Unexpected character")
}
