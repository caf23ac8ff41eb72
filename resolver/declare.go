package resolver

import (
	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
	"github.com/gofortran/asr/diag"
	"github.com/gofortran/asr/token"
)

// handleTypeDeclaration defines one Variable per entity in decl,
// following the teacher's own handleTypeDeclaration: an existing symbol
// (e.g. a dummy argument already defined from the parameter list) gets
// its type filled in rather than rejected as a duplicate, since a
// type-declaration statement for a dummy argument is the normal way its
// type becomes concrete.
func (r *Resolver) handleTypeDeclaration(decl *ast.TypeDeclaration) error {
	s := r.current()
	isParameter := hasAttr(decl.Attributes, token.PARAMETER)
	isAllocatable := hasAttr(decl.Attributes, token.ALLOCATABLE)
	isPointer := hasAttr(decl.Attributes, token.POINTER)
	access := AccessFromAttrs(decl.Attributes)

	baseType := typeFromSpec(decl.TypeSpec, s.implicit)

	for _, entity := range decl.Entities {
		typ := baseType
		if entity.ArraySpec != nil {
			dims := make([]asr.Dim, len(entity.ArraySpec.Bounds))
			for i, b := range entity.ArraySpec.Bounds {
				dims[i] = asr.Dim{Lower: exprPlaceholder(b.Lower), Upper: exprPlaceholder(b.Upper)}
			}
			arr, err := asr.NewArray(typ, dims, asr.PhysicalDescriptor)
			if err != nil {
				return r.fail(asr.ErrTypeShape, diag.Location{}, "%s: %v", entity.Name, err)
			}
			typ = arr
		}
		if isPointer {
			ptr, err := asr.NewPointer(typ)
			if err != nil {
				return r.fail(asr.ErrTypeShape, diag.Location{}, "%s: %v", entity.Name, err)
			}
			typ = ptr
		} else if isAllocatable {
			alloc, err := asr.NewAllocatable(typ)
			if err != nil {
				return r.fail(asr.ErrTypeShape, diag.Location{}, "%s: %v", entity.Name, err)
			}
			typ = alloc
		}

		if existing, ok := s.table.GetLocal(entity.Name); ok {
			if v, ok := existing.(*asr.Variable); ok {
				v.Type = typ
				v.Storage = storageFromAttrs(decl.Attributes, isParameter)
				v.Access = access
				continue
			}
		}

		v := asr.NewVariable(entity.Name, s.table, typ, decl)
		v.Storage = storageFromAttrs(decl.Attributes, isParameter)
		v.Access = access
		if err := s.table.Define(entity.Name, v); err != nil {
			return err
		}
	}
	return nil
}

// exprPlaceholder carries an ast.Expression array-bound through into
// asr.Dim's untyped Lower/Upper fields; full constant evaluation is a
// later pass (spec section 1's Non-goals: "constant folding beyond what
// declaration resolution requires").
func exprPlaceholder(e ast.Expression) any {
	if e == nil {
		return nil
	}
	return e
}

func hasAttr(attrs []token.Token, want token.Token) bool {
	for _, a := range attrs {
		if a == want {
			return true
		}
	}
	return false
}

func storageFromAttrs(attrs []token.Token, isParameter bool) asr.Storage {
	if isParameter {
		return asr.StorageParameter
	}
	if hasAttr(attrs, token.SAVE) {
		return asr.StorageSave
	}
	return asr.StorageDefault
}

// AccessFromAttrs derives a symbol's visibility from its attribute list;
// PRIVATE is the only attribute this minimal attribute set can carry that
// affects access (a bare declaration defaults to PUBLIC, spec section 3).
func AccessFromAttrs(attrs []token.Token) asr.Access {
	if hasAttr(attrs, token.PRIVATE) {
		return asr.AccessPrivate
	}
	return asr.AccessPublic
}
