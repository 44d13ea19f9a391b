package lexer

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"attribute": TOKEN_ATTRIBUTE,
	"foreign":   TOKEN_FOREIGN,
	"targets":   TOKEN_TARGETS,
	"attach":    TOKEN_ATTACH,
	"class":     TOKEN_CLASS,
	"fn":        TOKEN_FN,
	"prop":      TOKEN_PROP,
	"const":     TOKEN_CONST,
	"true":      TOKEN_TRUE,
	"false":     TOKEN_FALSE,
	"null":      TOKEN_NULL,
}

// lookupKeyword checks if an identifier is a keyword
// Returns the keyword token type and true if it is a keyword
func lookupKeyword(identifier string) (TokenType, bool) {
	tokenType, isKeyword := keywords[identifier]
	return tokenType, isKeyword
}
