package resolver

import (
	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
	"github.com/gofortran/asr/diag"
)

// importJob is one entry of the FIFO worklist spec section 4.3.3
// describes for generic/operator-aggregate merging: importing a generic
// may require recursively importing procedures it references that are
// not yet present locally.
type importJob struct {
	moduleTable *asr.SymbolTable
	moduleName  string
	name        string
}

// handleUse implements spec section 4.3.3 in full: plain `use M` imports
// every public symbol as an ExternalSymbol; `only:` restricts the import
// list; renames bind under a local name; generic/operator aggregates
// merge as a union, worked to a fixed point; shadowing an existing local
// name emits a warning and replaces the binding.
func (r *Resolver) handleUse(n *ast.UseStatement) error {
	mod, err := r.loadModule(n.ModuleName)
	if err != nil {
		return err
	}
	s := r.current()

	rename := make(map[string]string, len(n.Renames))
	for _, rn := range n.Renames {
		rename[rn.Original] = rn.Local
	}

	var worklist []importJob
	if len(n.Only) > 0 {
		for _, name := range n.Only {
			worklist = append(worklist, importJob{mod.Table, mod.Name(), name})
		}
	} else {
		for _, name := range mod.Table.Names() {
			worklist = append(worklist, importJob{mod.Table, mod.Name(), name})
		}
	}

	seen := make(map[string]bool)
	for len(worklist) > 0 {
		job := worklist[0]
		worklist = worklist[1:]
		if seen[job.moduleName+"."+job.name] {
			continue
		}
		seen[job.moduleName+"."+job.name] = true

		sym, ok := job.moduleTable.GetLocal(job.name)
		if !ok {
			if len(n.Only) > 0 {
				return r.fail(asr.ErrUnresolvedSymbol, diag.Location{}, "module %q has no public symbol %q", n.ModuleName, job.name)
			}
			continue
		}

		localName := job.name
		if to, ok := rename[job.name]; ok {
			localName = to
		}

		more, err := r.importSymbol(s, job, sym, localName)
		if err != nil {
			return err
		}
		worklist = append(worklist, more...)
	}
	return nil
}

// importSymbol inserts one symbol from job's module into scope s under
// localName, returning any additional worklist entries a generic/operator
// merge required (spec section 4.3.3: "the import may need to recursively
// import additional procedures referenced by the imported aggregate").
func (r *Resolver) importSymbol(s *scope, job importJob, sym asr.Symbol, localName string) ([]importJob, error) {
	switch src := sym.(type) {
	case *asr.GenericProcedure:
		if existing, ok := s.table.GetLocal(localName); ok {
			if dst, ok := existing.(*asr.GenericProcedure); ok {
				added := mergeGenericProcedure(dst, src)
				var more []importJob
				for _, fn := range added {
					more = append(more, importJob{job.moduleTable, job.moduleName, fn.Name()})
				}
				return more, nil
			}
		}
		gp := asr.NewGenericProcedure(localName, s.table)
		gp.Procedures = append(gp.Procedures, src.Procedures...)
		s.table.DefineShadowing(localName, gp)
		return nil, nil

	case *asr.CustomOperator:
		if existing, ok := s.table.GetLocal(localName); ok {
			if dst, ok := existing.(*asr.CustomOperator); ok {
				seen := make(map[*asr.Function]bool, len(dst.Procedures))
				for _, p := range dst.Procedures {
					seen[p] = true
				}
				for _, p := range src.Procedures {
					if !seen[p] {
						dst.Procedures = append(dst.Procedures, p)
					}
				}
				return nil, nil
			}
		}
		op := asr.NewCustomOperator(localName, s.table)
		op.Procedures = append(op.Procedures, src.Procedures...)
		s.table.DefineShadowing(localName, op)
		return nil, nil

	default:
		target := asr.GetPastExternal(sym)
		ext := asr.NewExternalSymbol(localName, s.table, target, job.moduleName, job.name, []string{job.moduleName})
		if _, exists := s.table.GetLocal(localName); exists {
			r.sink.AddWarning(
				"import of "+localName+" from module "+job.moduleName+" shadows an existing binding",
				diag.Label{Text: "shadowed by use " + job.moduleName})
		}
		s.table.DefineShadowing(localName, ext)
		s.deps.AddReference(s.table, ext, job.moduleTable)
		return nil, nil
	}
}

// loadModule resolves n.ModuleName against the process-wide module cache,
// consulting the ModuleLoader collaborator only on a cache miss (spec
// section 5: "a second request for the same module while the first is in
// flight is answered from an in-process cache").
func (r *Resolver) loadModule(name string) (*asr.Module, error) {
	if mod, ok := r.cache[name]; ok {
		return mod, nil
	}
	if r.loader == nil {
		return nil, r.fail(asr.ErrUnresolvedSymbol, diag.Location{}, "module %q is not loaded and no module loader is configured", name)
	}
	mod, ok := r.loader.LoadModule(name)
	if !ok {
		return nil, r.fail(asr.ErrUnresolvedSymbol, diag.Location{}, "module %q could not be loaded", name)
	}
	r.cache[name] = mod
	return mod, nil
}
