package diag

// Diagnostic codes grouped by compilation phase.
//
// ATR1xx - attribute declaration errors
// ATR2xx - annotation binding and validation errors
// ATR3xx - attach descriptor errors
// ATR4xx - code generation errors
const (
	// Declaration errors (ATR1xx)
	ErrDuplicateName        = "ATR101"
	ErrEmptyTargetSet       = "ATR102"
	ErrAttachOnMultiTarget  = "ATR103"
	ErrInvalidParameterType = "ATR104"
	ErrInvalidDefaultValue  = "ATR105"

	// Binding errors (ATR2xx)
	ErrUnknownAttribute             = "ATR201"
	ErrPositionalArgumentNotAllowed = "ATR202"
	ErrUnknownParameter             = "ATR203"
	ErrMissingRequiredParameter     = "ATR204"
	ErrTypeMismatch                 = "ATR205"
	ErrTargetNotAllowed             = "ATR206"
	ErrDuplicateArgument            = "ATR207"

	// Attach descriptor errors (ATR3xx)
	ErrAttachSignatureMismatch = "ATR301"

	// Code generation errors (ATR4xx)
	ErrEmitFailed = "ATR401"
)

// codeDescriptions maps diagnostic codes to their short descriptions,
// used when rendering diagnostics without a specific message.
var codeDescriptions = map[string]string{
	ErrDuplicateName:        "Attribute name already declared",
	ErrEmptyTargetSet:       "Attribute declares no targets",
	ErrAttachOnMultiTarget:  "Attach hook on multi-target attribute",
	ErrInvalidParameterType: "Invalid attribute parameter type",
	ErrInvalidDefaultValue:  "Invalid parameter default value",

	ErrUnknownAttribute:             "Unknown attribute",
	ErrPositionalArgumentNotAllowed: "Positional arguments are not allowed",
	ErrUnknownParameter:             "Unknown attribute parameter",
	ErrMissingRequiredParameter:     "Missing required attribute parameter",
	ErrTypeMismatch:                 "Argument type mismatch",
	ErrTargetNotAllowed:             "Attribute not allowed on this target",
	ErrDuplicateArgument:            "Duplicate named argument",

	ErrAttachSignatureMismatch: "Invalid attach hook signature",

	ErrEmitFailed: "Code generation failed",
}

// DescribeCode returns the short description for a diagnostic code.
func DescribeCode(code string) string {
	if desc, ok := codeDescriptions[code]; ok {
		return desc
	}
	return "Unknown diagnostic code"
}
