package grammar

import (
	"errors"
	"fmt"
)

// ErrNotText is returned by WriteText for grammars whose symbols the text
// format cannot spell.
var ErrNotText = errors.New("grammar cannot be written as text")

// ValidationError reports a structural problem found while building a grammar
// or a parser for it.
type ValidationError struct {
	// Production is the offending production, if any.
	Production *Production
	Message    string
}

func (e *ValidationError) Error() string {
	if e.Production != nil {
		return fmt.Sprintf("invalid grammar: %s: %s", e.Production, e.Message)
	}
	return "invalid grammar: " + e.Message
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidProduction returns a ValidationError naming p.
func InvalidProduction(p Production, format string, args ...any) *ValidationError {
	return &ValidationError{Production: &p, Message: fmt.Sprintf(format, args...)}
}

// SyntaxError is returned by ParseText for malformed grammar text.
// When the text is well formed but describes an invalid grammar, Err holds
// the underlying *ValidationError and Line the line it was traced to.
type SyntaxError struct {
	Name    string
	Line    int
	Message string
	Err     error
}

func (e *SyntaxError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Line, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
