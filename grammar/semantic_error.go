package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	ErrNoRules              = newSemanticError("a grammar needs at least one rule")
	ErrInvalidName          = newSemanticError("invalid rule name")
	ErrUnknownName          = newSemanticError("unknown name")
	ErrDirectRecursion      = newSemanticError("direct recursion not allowed")
	ErrCycleDetected        = newSemanticError("cycle detected")
	ErrDuplicateKey         = newSemanticError("duplicate name")
	ErrNestedRole           = newSemanticError("a role marker cannot be nested in a modifier")
	ErrMisplacedRoot        = newSemanticError("root child in object rule")
	ErrMisplacedList        = newSemanticError("list child in non-list rule")
	ErrMisplacedNamedChild  = newSemanticError("named child in rule without node type")
	ErrMultipleRootChildren = newSemanticError("more than one root child")
	ErrMultipleListChildren = newSemanticError("more than one list child")
	ErrShapeConflict        = newSemanticError("shape conflict")

	ErrReduceReduceConflict = newSemanticError("reduce/reduce conflict")
	ErrShiftReduceConflict  = newSemanticError("shift/reduce conflict")
)
