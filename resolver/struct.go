package resolver

import (
	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
	"github.com/gofortran/asr/diag"
)

// handleDerivedType implements spec section 4.3.4: a Struct's parent is
// looked up in the enclosing scope at definition time (not flattened),
// members are declared in order, and type-bound procedures are queued to
// be emitted as StructMethodDeclaration symbols once the Struct body is
// closed.
func (r *Resolver) handleDerivedType(n *ast.DerivedTypeStmt) error {
	s := r.current()
	table := r.store.NewTable(s.table)
	st := asr.NewStruct(n.Name, table, n)
	st.Abstract = n.Abstract
	table.SetOwner(st)

	if n.Extends != "" {
		parentSym, foundTable, ok := s.table.ResolveTable(n.Extends)
		if !ok {
			return r.fail(asr.ErrUnresolvedSymbol, diag.Location{}, "type %q extends unresolved type %q", n.Name, n.Extends)
		}
		parentStruct, ok := parentSym.(*asr.Struct)
		if !ok {
			return r.fail(asr.ErrTypeShape, diag.Location{}, "type %q extends %q, which is not a derived type", n.Name, n.Extends)
		}
		st.Parent = parentStruct
		s.deps.AddReference(s.table, parentStruct, foundTable)
	}

	members := make([]string, 0, len(n.Components))
	for _, comp := range n.Components {
		typ := typeFromSpec(comp.TypeSpec, s.implicit)
		v := asr.NewVariable(comp.Name, table, typ, n)
		if err := table.Define(comp.Name, v); err != nil {
			return err
		}
		members = append(members, comp.Name)
	}
	st.Members = members

	if err := s.table.Define(n.Name, st); err != nil {
		return err
	}

	return r.emitStructMethods(st, table, n.Bindings)
}

// emitStructMethods implements the second half of spec section 4.3.4:
// bindings are resolved against the enclosing scope (where the bound
// procedures were declared) and inserted into the Struct's own table.
// Deferred bindings are only legal when the Struct is abstract; a
// non-deferred binding's procedure must exist and its pass-object
// parameter must name a formal actually present on that procedure (the
// type-compatibility half of the check belongs to the Verifier, which
// only requires the self-argument name to exist, not its exact type.)
func (r *Resolver) emitStructMethods(st *asr.Struct, table *asr.SymbolTable, bindings []ast.TypeBoundProcedure) error {
	enclosing := r.current().table
	for _, b := range bindings {
		if b.Deferred {
			if !st.Abstract {
				return r.fail(asr.ErrTemplateMisuse, diag.Location{}, "type %q declares deferred binding %q but is not abstract", st.Name(), b.Name)
			}
			method := asr.NewStructMethodDeclaration(b.Name, table, nil, b.ProcName, b.PassArg, true, b.NoPass)
			if err := table.Define(b.Name, method); err != nil {
				return err
			}
			continue
		}
		procSym, ok := enclosing.Resolve(b.ProcName)
		if !ok {
			return r.fail(asr.ErrUnresolvedSymbol, diag.Location{}, "type %q binding %q references unresolved procedure %q", st.Name(), b.Name, b.ProcName)
		}
		proc, ok := procSym.(*asr.Function)
		if !ok {
			return r.fail(asr.ErrTypeShape, diag.Location{}, "type %q binding %q does not name a procedure", st.Name(), b.Name)
		}
		selfArg := b.PassArg
		if selfArg == "" && !b.NoPass && len(proc.Args) > 0 {
			selfArg = proc.Args[0].Name()
		}
		method := asr.NewStructMethodDeclaration(b.Name, table, proc, b.ProcName, selfArg, false, b.NoPass)
		if err := table.Define(b.Name, method); err != nil {
			return err
		}
	}
	return nil
}
