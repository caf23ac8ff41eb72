package resolver

import (
	"strings"

	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
)

// canonicalOperator implements spec section 4.3.5's "a user-defined `.op.`
// name is canonicalised to `~~op~~`"; intrinsic operator tags are stored
// under their literal symbol.
func canonicalOperator(op string) string {
	if strings.HasPrefix(op, ".") && strings.HasSuffix(op, ".") && len(op) > 2 {
		return "~~" + strings.ToLower(op[1:len(op)-1]) + "~~"
	}
	return op
}

// handleInterface feeds an INTERFACE block's procedure names into the
// current scope's generic/operator/assignment accumulators (spec section
// 4.3.5); the GenericProcedure/CustomOperator symbols themselves are only
// emitted at scope finalization, once every procedure in the scope is
// known.
func (r *Resolver) handleInterface(n *ast.InterfaceStmt) {
	s := r.current()
	switch {
	case n.IsAssignment:
		s.operators["="] = appendUnique(s.operators["="], n.ProcNames)
	case n.Operator != "":
		key := canonicalOperator(n.Operator)
		s.operators[key] = appendUnique(s.operators[key], n.ProcNames)
	case n.GenericName != "":
		s.generics[n.GenericName] = appendUnique(s.generics[n.GenericName], n.ProcNames)
	default:
		// A plain (non-generic) interface body only declares the
		// signatures of external procedures; those are structural-phase
		// declarations handled elsewhere and this accumulator step does
		// not apply.
	}
}

func appendUnique(dst []string, names []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, d := range dst {
		seen[d] = true
	}
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			dst = append(dst, n)
		}
	}
	return dst
}

// finalizeGenerics implements the emission half of spec section 4.3.2 and
// 4.3.5: every accumulated name -> candidate-list pair becomes a
// GenericProcedure or CustomOperator symbol in the scope's table. When the
// generic name collides with one of its own constituent procedures, the
// constituent is renamed with a reserved suffix before the generic symbol
// takes the plain name.
func (r *Resolver) finalizeGenerics(s *scope) {
	for name, candidates := range s.generics {
		if _, exists := s.table.GetLocal(name); exists {
			r.renameColliding(s.table, name)
		}
		gp := asr.NewGenericProcedure(name, s.table)
		gp.Procedures = resolveProcedureCandidates(s.table, candidates)
		s.table.DefineShadowing(name, gp)
	}
	for name, candidates := range s.operators {
		op := asr.NewCustomOperator(name, s.table)
		op.Procedures = resolveProcedureCandidates(s.table, candidates)
		s.table.DefineShadowing(name, op)
	}
}

// renameColliding implements spec section 4.3.2's reserved-suffix rule:
// a procedure whose name would be shadowed by the generic aggregate about
// to take its place is renamed to `name@generic` and re-inserted, so both
// remain reachable.
func (r *Resolver) renameColliding(table *asr.SymbolTable, name string) {
	existing, ok := table.GetLocal(name)
	if !ok {
		return
	}
	mangled := name + "@generic"
	table.DefineShadowing(mangled, existing)
}

func resolveProcedureCandidates(table *asr.SymbolTable, names []string) []*asr.Function {
	var out []*asr.Function
	for _, n := range names {
		sym, ok := table.Resolve(n)
		if !ok {
			continue
		}
		if fn, ok := asr.GetPastExternal(sym).(*asr.Function); ok {
			out = append(out, fn)
		}
	}
	return out
}

// mergeGenericProcedure implements spec section 4.3.3's "union of
// constituent procedures" rule for `use`-time aggregate merging: dst is
// updated in place with src's candidates that are not already present, by
// function identity.
func mergeGenericProcedure(dst *asr.GenericProcedure, src *asr.GenericProcedure) []*asr.Function {
	added := make([]*asr.Function, 0)
	seen := make(map[*asr.Function]bool, len(dst.Procedures))
	for _, p := range dst.Procedures {
		seen[p] = true
	}
	for _, p := range src.Procedures {
		if !seen[p] {
			seen[p] = true
			dst.Procedures = append(dst.Procedures, p)
			added = append(added, p)
		}
	}
	return added
}
