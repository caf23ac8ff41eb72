package asr

import (
	"errors"
	"fmt"

	"github.com/gofortran/asr/diag"
)

// Kind classifies the sentinel error families of spec section 7. Callers
// distinguish them with errors.Is against the package-level Err* values,
// never by inspecting Kind directly.
type Kind int

const (
	KindLexicalName Kind = iota
	KindDuplicateSymbol
	KindUnresolvedSymbol
	KindTypeShape
	KindArityMismatch
	KindIntentViolation
	KindDependencyDrift
	KindCyclicImport
	KindTemplateMisuse
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindLexicalName:
		return "LexicalName"
	case KindDuplicateSymbol:
		return "DuplicateSymbol"
	case KindUnresolvedSymbol:
		return "UnresolvedSymbol"
	case KindTypeShape:
		return "TypeShape"
	case KindArityMismatch:
		return "ArityMismatch"
	case KindIntentViolation:
		return "IntentViolation"
	case KindDependencyDrift:
		return "DependencyDrift"
	case KindCyclicImport:
		return "CyclicImport"
	case KindTemplateMisuse:
		return "TemplateMisuse"
	case KindInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// nopos is used where a SemanticError is raised from a context that has no
// associated source location yet (e.g. a type-constructor invariant check
// performed before any AST node is attached).
var nopos diag.Location

// sentinel is the comparable value errors.Is matches against; it carries
// only the Kind so that two sentinels of the same kind compare equal.
type sentinel struct{ kind Kind }

func (s *sentinel) Error() string { return s.kind.String() }

var (
	ErrLexicalName      = &sentinel{KindLexicalName}
	ErrDuplicateSymbol  = &sentinel{KindDuplicateSymbol}
	ErrUnresolvedSymbol = &sentinel{KindUnresolvedSymbol}
	ErrTypeShape        = &sentinel{KindTypeShape}
	ErrArityMismatch    = &sentinel{KindArityMismatch}
	ErrIntentViolation  = &sentinel{KindIntentViolation}
	ErrDependencyDrift  = &sentinel{KindDependencyDrift}
	ErrCyclicImport     = &sentinel{KindCyclicImport}
	ErrTemplateMisuse   = &sentinel{KindTemplateMisuse}
	ErrInternal         = &sentinel{KindInternal}
)

// SemanticError pairs one of the sentinel kinds above with the diagnostic
// that should be surfaced to the user. Resolver and Verifier code builds
// these with newError and returns them as plain Go errors — never panics —
// so unwinding out of arbitrarily deep recursion is ordinary error
// propagation along every return path.
type SemanticError struct {
	kind *sentinel
	diag.Diagnostic
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind.kind, e.Diagnostic.Message)
}

func (e *SemanticError) Unwrap() error { return e.kind }

// newError builds a SemanticError of the given kind with a formatted
// message and optional labels.
func newError(kind *sentinel, loc diag.Location, format string, args ...any) *SemanticError {
	return &SemanticError{
		kind: kind,
		Diagnostic: diag.Diagnostic{
			Message: fmt.Sprintf(format, args...),
			Level:   diag.LevelError,
			Labels:  []diag.Label{{Location: loc}},
		},
	}
}

// Is reports whether err's chain contains a SemanticError of the given
// sentinel kind, or the sentinel itself. It exists so callers can write
// errors.Is(err, asr.ErrDuplicateSymbol) without type-asserting.
func Is(err error, kind *sentinel) bool {
	return errors.Is(err, kind)
}

// ErrKind names the sentinel type for packages outside asr (the resolver,
// chiefly) that need to carry one of the Err* values through their own
// function signatures without being able to spell the unexported
// underlying type.
type ErrKind = *sentinel

// NewSemanticError is the resolver-facing counterpart of the package's own
// newError: it lets code outside asr raise one of the Err* sentinel kinds
// as a properly formed, diagnostic-carrying SemanticError.
func NewSemanticError(kind ErrKind, loc diag.Location, format string, args ...any) *SemanticError {
	return newError(kind, loc, format, args...)
}
