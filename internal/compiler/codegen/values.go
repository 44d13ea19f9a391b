package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/strata-lang/strata/internal/compiler/types"
)

// phpValue renders an evaluated constant as a PHP expression.
func phpValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return phpString(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return phpFloat(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, element := range v {
			parts = append(parts, phpValue(element))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("/* unsupported %T */ null", value)
	}
}

// phpString renders a single-quoted PHP string literal.
func phpString(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "'" + escaped + "'"
}

// phpFloat renders a float literal, keeping a decimal point so PHP does not
// reinterpret integral values as int.
func phpFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// phpType maps a parameter type to its PHP type declaration.
func phpType(t types.Type) string {
	switch typed := t.(type) {
	case *types.PrimitiveType:
		switch typed.Name {
		case "String":
			return "string"
		case "Int":
			return "int"
		case "Float":
			return "float"
		case "Bool":
			return "bool"
		}
	case *types.ArrayType:
		return "array"
	}
	return "mixed"
}
