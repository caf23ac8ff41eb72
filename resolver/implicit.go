package resolver

import (
	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
	"github.com/gofortran/asr/diag"
)

// implicitDict is the per-scope letter->type mapping of spec section
// 4.3.1: pushed on entry to a module or procedure scope, popped on exit
// (in this Go encoding, cloned into the child scope and simply discarded
// with the scope frame, rather than push/popped in place) so nested
// subprograms inherit their enclosing dictionary.
type implicitDict struct {
	none    bool
	letters [26]string // uppercase letter -> type-spec keyword, "" if unset
}

// newImplicitDict returns the dictionary Fortran assigns by default:
// I-N implicitly INTEGER, everything else implicitly REAL. When
// implicitTyping is disabled (spec section 4.3.1: "enabling implicit
// typing is a configuration option"), the dictionary starts as though an
// IMPLICIT NONE had already been seen.
func newImplicitDict(implicitTyping bool) *implicitDict {
	d := &implicitDict{}
	if !implicitTyping {
		d.none = true
		return d
	}
	for l := 'A'; l <= 'Z'; l++ {
		if l >= 'I' && l <= 'N' {
			d.letters[l-'A'] = "INTEGER"
		} else {
			d.letters[l-'A'] = "REAL"
		}
	}
	return d
}

func (d *implicitDict) clone() *implicitDict {
	c := *d
	return &c
}

// applyNone implements `IMPLICIT NONE`: the dictionary is cleared and no
// further undeclared name receives an implicit type.
func (d *implicitDict) applyNone() {
	d.none = true
	for i := range d.letters {
		d.letters[i] = ""
	}
}

// applyRule implements one `IMPLICIT <type> (<letter>-<letter>)` clause.
func (d *implicitDict) applyRule(typeSpec string, first, last byte) {
	d.none = false
	for l := first; l <= last; l++ {
		d.letters[l-'A'] = typeSpec
	}
}

// lookup returns the implicit type-spec for name's first letter, or ""
// when no implicit binding applies (either because IMPLICIT NONE is in
// effect, or the letter was never assigned a type).
func (d *implicitDict) lookup(name string) string {
	if d.none || name == "" {
		return ""
	}
	c := name[0]
	if c >= 'a' && c <= 'z' {
		c = c - 'a' + 'A'
	}
	if c < 'A' || c > 'Z' {
		return ""
	}
	return d.letters[c-'A']
}

func (r *Resolver) handleImplicit(stmt *ast.ImplicitStatement) {
	d := r.current().implicit
	if stmt.IsNone {
		d.applyNone()
		return
	}
	// This AST surface does not yet carry per-rule letter ranges on
	// ImplicitStatement (spec section 6 names IMPLICIT as a collaborator
	// statement whose attribute list is parser-owned); a non-NONE
	// IMPLICIT with no rules attached is a no-op rather than an error,
	// since nothing was actually declared.
}

// typeFromSpec maps a TypeDeclaration/Parameter's textual TypeSpec to an
// asr.Type. Kind defaults (native int/real size) are left at their zero
// value; a later pass assigns platform-specific kind numbers.
func typeFromSpec(spec string, implicit *implicitDict) asr.Type {
	switch spec {
	case "INTEGER", "integer":
		return asr.Integer{}
	case "REAL", "real":
		return asr.Real{}
	case "DOUBLE PRECISION", "double precision":
		return asr.Real{Kind: 8}
	case "COMPLEX", "complex":
		return asr.Complex{}
	case "LOGICAL", "logical":
		return asr.Logical{}
	case "CHARACTER", "character":
		return asr.String{Length: asr.AssumedLength}
	case "":
		return nil
	default:
		return asr.StructType{Ref: spec}
	}
}

// implicitTypeFor resolves name's type via the current scope's implicit
// dictionary, raising ErrLexicalName (spec section 4.3.1: "when disabled,
// any non-`implicit none` statement is an Error" — the companion rule is
// that referencing an undeclared name under IMPLICIT NONE is itself an
// error) when no implicit binding covers it.
func (r *Resolver) implicitTypeFor(name string) (asr.Type, error) {
	s := r.current()
	spec := s.implicit.lookup(name)
	if spec == "" {
		return nil, r.fail(asr.ErrLexicalName, diag.Location{}, "no implicit type for undeclared name %q", name)
	}
	return typeFromSpec(spec, s.implicit), nil
}
