package asr

import (
	"errors"
	"testing"
)

func TestNewArrayRejectsNestedArray(t *testing.T) {
	inner, err := NewArray(Integer{}, []Dim{{}}, PhysicalDescriptor)
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewArray(inner, []Dim{{}}, PhysicalDescriptor)
	if !errors.Is(err, ErrTypeShape) {
		t.Fatalf("expected ErrTypeShape for nested array, got %v", err)
	}
}

func TestNewArrayRejectsAllocatableElement(t *testing.T) {
	alloc, err := NewAllocatable(Integer{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewArray(alloc, []Dim{{}}, PhysicalDescriptor)
	if !errors.Is(err, ErrTypeShape) {
		t.Fatalf("expected ErrTypeShape for array-of-allocatable, got %v", err)
	}
}

func TestNewArrayRejectsZeroRank(t *testing.T) {
	_, err := NewArray(Integer{}, nil, PhysicalDescriptor)
	if !errors.Is(err, ErrTypeShape) {
		t.Fatalf("expected ErrTypeShape for rank-0 array, got %v", err)
	}
}

func TestPointerAllocatableNeverNest(t *testing.T) {
	ptr, err := NewPointer(Integer{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewPointer(ptr); !errors.Is(err, ErrTypeShape) {
		t.Fatalf("expected ErrTypeShape for pointer-to-pointer, got %v", err)
	}
	alloc, err := NewAllocatable(Integer{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewPointer(alloc); !errors.Is(err, ErrTypeShape) {
		t.Fatalf("expected ErrTypeShape for pointer-to-allocatable, got %v", err)
	}
	if _, err := NewAllocatable(ptr); !errors.Is(err, ErrTypeShape) {
		t.Fatalf("expected ErrTypeShape for allocatable-of-pointer, got %v", err)
	}
}

func TestFunctionTypeArity(t *testing.T) {
	ft := FunctionType{ArgTypes: []Type{Integer{}, Real{}}, ReturnType: Integer{}}
	fn := &Function{
		base:      base{name: "f"},
		Args:      []*Variable{{base: base{name: "a"}}, {base: base{name: "b"}}},
		Signature: ft,
	}
	if len(fn.Signature.ArgTypes) != len(fn.Args) {
		t.Fatalf("signature arity %d != args len %d", len(fn.Signature.ArgTypes), len(fn.Args))
	}
}
