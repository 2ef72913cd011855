package relaxcg

import (
	"errors"
	"fmt"
)

// Kind is a stable error category. Branch on Kind, not on messages.
type Kind string

const (
	// KindSyntax marks a malformed rule or set; the loader skips it.
	KindSyntax Kind = "Syntax"
	// KindSemantic marks a well-formed but meaningless rule, such as a
	// reference to an undeclared set or a barrier on a fixed position.
	KindSemantic Kind = "Semantic"
	// KindPrecondition marks input violating the tagger's contract.
	// These errors abort the run.
	KindPrecondition Kind = "Precondition"
	// KindIO marks a grammar or configuration file that cannot be read.
	KindIO Kind = "IO"
	// KindConfig marks invalid solver or tagger configuration.
	KindConfig Kind = "Config"
)

// Error is the package's structured error type.
// File and Line are set for errors found while loading a grammar.
type Error struct {
	Kind    Kind
	File    string
	Line    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// errManySenses is reported when sense-based rules meet an analysis that
// still carries several senses.
const errManySenses = "conditions on the sense field are used in the constraint grammar, " +
	"but analysis %s<%s> of %q has %d senses; sense annotation must duplicate analyses per sense"
