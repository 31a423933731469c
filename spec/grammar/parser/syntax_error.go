package parser

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

var (
	// lexical errors
	synErrInvalidToken      = newSyntaxError("invalid token")
	synErrInvalidEscSeq     = newSyntaxError("invalid escape sequence; a string can escape only \" and \\")
	synErrIncompletedEscSeq = newSyntaxError("incompleted escape sequence; unexpected end of string following a backslash")
	synErrEmptyString       = newSyntaxError("a string must include at least one character")

	// syntax errors
	synErrNoRuleName          = newSyntaxError("a rule name is missing")
	synErrNoArrow             = newSyntaxError("the arrow -> must follow a rule name and its type")
	synErrUnexpectedToken     = newSyntaxError("unexpected token; a child must be an identifier or a string")
	synErrRoleWithNoSymbol    = newSyntaxError("a role marker must be immediately followed by an identifier or a string")
	synErrListWithNoColon     = newSyntaxError("[] in a child must be immediately followed by a colon")
	synErrTerminalAsKey       = newSyntaxError("a string cannot be used as a key")
	synErrYAMLNoRuleName      = newSyntaxError("a rule needs a name")
	synErrYAMLInvalidType     = newSyntaxError("a type must be [] or an identifier")
	synErrYAMLMultiChildren   = newSyntaxError("a child string must hold exactly one child")
	synErrYAMLNotAList        = newSyntaxError("a YAML grammar must be a sequence of rules")
	synErrYAMLUnknownField    = newSyntaxError("unknown field; a rule has only name, type and children")
	synErrYAMLInvalidChildren = newSyntaxError("children must be a sequence of strings")
)
