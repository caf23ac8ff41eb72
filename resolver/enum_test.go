package resolver

import (
	"testing"

	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
	"github.com/gofortran/asr/token"
)

func TestEnumStatementAssignsImpliedValues(t *testing.T) {
	r, sink := newResolver()
	prog := &ast.Program{Units: []ast.ProgramUnit{
		&ast.ProgramBlock{
			Name: "main",
			Body: []ast.Statement{
				&ast.EnumStmt{
					Enumerators: []ast.Enumerator{
						{Name: "red"},
						{Name: "green"},
						{Name: "blue"},
					},
				},
			},
		},
	}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v (diagnostics: %v)", err, sink.Diagnostics())
	}
	progSym := unit.Items[0].(*asr.Program)

	var en *asr.Enum
	for _, sym := range progSym.Table.Symbols() {
		if e, ok := sym.(*asr.Enum); ok {
			en = e
		}
	}
	if en == nil {
		t.Fatal("expected an Enum symbol to be defined")
	}
	if want := []int64{0, 1, 2}; !int64SliceEqual(en.Values, want) {
		t.Errorf("expected implied values %v, got %v", want, en.Values)
	}
	if en.Kind != asr.EnumConsecutiveFromZero {
		t.Errorf("expected EnumConsecutiveFromZero, got %v", en.Kind)
	}

	for _, name := range []string{"red", "green", "blue"} {
		sym, ok := progSym.Table.GetLocal(name)
		if !ok {
			t.Fatalf("expected enumerator %q to be bound as a constant", name)
		}
		v, ok := sym.(*asr.Variable)
		if !ok {
			t.Fatalf("expected %q to resolve to *asr.Variable, got %T", name, sym)
		}
		if v.Storage != asr.StorageParameter {
			t.Errorf("expected %q to have StorageParameter, got %v", name, v.Storage)
		}
	}
}

func TestEnumStatementDetectsDuplicateValues(t *testing.T) {
	r, sink := newResolver()
	prog := &ast.Program{Units: []ast.ProgramUnit{
		&ast.ProgramBlock{
			Name: "main",
			Body: []ast.Statement{
				&ast.EnumStmt{
					Enumerators: []ast.Enumerator{
						{Name: "a", Value: &ast.IntegerLiteral{Value: 5}},
						{Name: "b", Value: &ast.IntegerLiteral{Value: 5}},
					},
				},
			},
		},
	}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v (diagnostics: %v)", err, sink.Diagnostics())
	}
	progSym := unit.Items[0].(*asr.Program)

	var en *asr.Enum
	for _, sym := range progSym.Table.Symbols() {
		if e, ok := sym.(*asr.Enum); ok {
			en = e
		}
	}
	if en == nil {
		t.Fatal("expected an Enum symbol to be defined")
	}
	if en.Kind != asr.EnumNotUnique {
		t.Errorf("expected EnumNotUnique, got %v", en.Kind)
	}
}

func TestEnumStatementNegativeExplicitValueContinuesSequence(t *testing.T) {
	r, sink := newResolver()
	prog := &ast.Program{Units: []ast.ProgramUnit{
		&ast.ProgramBlock{
			Name: "main",
			Body: []ast.Statement{
				&ast.EnumStmt{
					Enumerators: []ast.Enumerator{
						{Name: "low", Value: &ast.UnaryExpr{Op: token.Minus, Operand: &ast.IntegerLiteral{Value: 1}}},
						{Name: "zero"},
					},
				},
			},
		},
	}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v (diagnostics: %v)", err, sink.Diagnostics())
	}
	progSym := unit.Items[0].(*asr.Program)

	var en *asr.Enum
	for _, sym := range progSym.Table.Symbols() {
		if e, ok := sym.(*asr.Enum); ok {
			en = e
		}
	}
	if en == nil {
		t.Fatal("expected an Enum symbol to be defined")
	}
	if want := []int64{-1, 0}; !int64SliceEqual(en.Values, want) {
		t.Errorf("expected values %v, got %v", want, en.Values)
	}
	if en.Kind != asr.EnumUnique {
		t.Errorf("expected EnumUnique (0 present, -1 is not part of 0..n-1), got %v", en.Kind)
	}
}

func int64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
