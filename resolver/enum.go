package resolver

import (
	"strconv"

	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
	"github.com/gofortran/asr/token"
)

// handleEnum implements an ENUM, BIND(C) ... END ENUM block: each
// ENUMERATOR takes its declared value, or the previous member's value
// plus one (0 for the first), and is additionally bound into the
// enclosing scope as a PARAMETER-storage Variable so ordinary name
// resolution sees it like any other named constant. The Enum symbol
// itself records the full value/known-ness sequence so the Verifier can
// independently recompute Kind rather than trust it (spec section 4.2).
func (r *Resolver) handleEnum(n *ast.EnumStmt) error {
	s := r.current()
	table := r.store.NewTable(s.table)

	name := n.Name
	if name == "" {
		name = syntheticEnumName(table.Counter)
	}
	en := asr.NewEnum(name, table, n)
	en.UnderlyingType = asr.Integer{}
	table.SetOwner(en)

	next := int64(0)
	for _, m := range n.Enumerators {
		val, known := next, true
		if m.Value != nil {
			val, known = foldEnumValue(m.Value)
		}
		en.Members = append(en.Members, m.Name)
		en.Values = append(en.Values, val)
		en.ValuesKnown = append(en.ValuesKnown, known)
		if known {
			next = val + 1
		}

		v := asr.NewVariable(m.Name, s.table, en.UnderlyingType, n)
		v.Storage = asr.StorageParameter
		v.Value = val
		if err := s.table.Define(m.Name, v); err != nil {
			return err
		}
	}
	en.Kind = asr.ClassifyEnumKind(en.Values, en.ValuesKnown)

	return s.table.Define(name, en)
}

// syntheticEnumName names an anonymous ENUM block, the common form in
// practice: Fortran enumerators are visible as plain named constants in
// the enclosing scope regardless of whether the block itself is named, so
// the block's own binding exists only so the Enum symbol has a table
// entry at all.
func syntheticEnumName(tableCounter uint64) string {
	return "enum$" + strconv.FormatUint(tableCounter, 10)
}

// foldEnumValue evaluates the small constant-expression grammar an
// ENUMERATOR value is allowed to use: a bare integer literal, or a
// unary-minus of one. Anything else is not a compile-time integer
// constant this resolver can fold, and is reported as such (EnumNonInteger)
// rather than guessed at.
func foldEnumValue(e ast.Expression) (int64, bool) {
	switch v := e.(type) {
	case *ast.IntegerLiteral:
		return v.Value, true
	case *ast.UnaryExpr:
		if v.Op != token.Minus {
			return 0, false
		}
		lit, ok := v.Operand.(*ast.IntegerLiteral)
		if !ok {
			return 0, false
		}
		return -lit.Value, true
	default:
		return 0, false
	}
}
