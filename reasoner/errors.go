package reasoner

import (
	"errors"
	"fmt"

	"github.com/nodeadmin/chebi-parser/ontology"
)

// ErrorKind classifies a reasoner error for CLI exit-code mapping
// (spec.md §7).
type ErrorKind int

const (
	KindOntologyLoad ErrorKind = iota
	KindUnsupportedConstruct
	KindUnknownConcept
	KindInternalInvariantViolation
)

// Error is the reasoner's typed error. It wraps an underlying cause
// where one exists so callers can still use errors.Is/errors.As against
// it.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// ExitCode returns the process exit code spec.md §6 mandates for e's kind.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindOntologyLoad:
		return 2
	case KindUnsupportedConstruct:
		return 3
	case KindUnknownConcept:
		return 4
	case KindInternalInvariantViolation:
		return 1
	default:
		return 1
	}
}

func ontologyLoadErr(cause error) *Error {
	return &Error{Kind: KindOntologyLoad, Message: "failed to load ontology", Cause: cause}
}

// WrapOntologyLoad tags cause as a load-time failure so CLI callers can
// map it to the correct exit code (spec.md §6), distinguishing an
// EL-incompatible construct (exit 3) from any other load failure — bad
// path, malformed XML/OBO, unknown format (exit 2).
func WrapOntologyLoad(cause error) error {
	if cause == nil {
		return nil
	}
	var unsupported *ontology.UnsupportedConstructError
	if errors.As(cause, &unsupported) {
		return unsupportedConstructErr(cause)
	}
	return ontologyLoadErr(cause)
}

func unsupportedConstructErr(cause error) *Error {
	return &Error{Kind: KindUnsupportedConstruct, Message: "ontology uses a construct outside EL", Cause: cause}
}

func unknownConceptErr(name string) *Error {
	return &Error{Kind: KindUnknownConcept, Message: fmt.Sprintf("unknown concept %q", name)}
}

func invariantErr(message string) *Error {
	return &Error{Kind: KindInternalInvariantViolation, Message: message}
}
