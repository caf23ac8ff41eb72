package resolver

import (
	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
)

// entryDecl is one ENTRY statement found in a procedure body, collected
// up front so its formal list can be folded into the master function
// before the body phase runs (spec section 4.3.6).
type entryDecl struct {
	name   string
	params []ast.Parameter
}

// collectEntries scans body for ENTRY statements without descending into
// nested procedures (this AST surface has no nested-procedure statement
// node, so a flat scan is exact).
func (r *Resolver) collectEntries(body []ast.Statement) ([]entryDecl, error) {
	var entries []entryDecl
	for _, stmt := range body {
		if es, ok := stmt.(*ast.EntryStmt); ok {
			entries = append(entries, entryDecl{name: es.Name, params: es.Parameters})
		}
	}
	return entries, nil
}

// rewriteEntries implements spec section 4.3.6: for a procedure S with
// entries E1..En, emit one template-stub Function per entry name plus one
// master Function whose formals are the union of every entry's (and S's
// own) formals, prefixed with an integer discriminator argument.
// Per-entry argument positions are recorded on masterArgIndex so a later
// body-phase pass can emit the right discriminator value at each call
// site addressing S or one of its entries.
func (r *Resolver) rewriteEntries(main *asr.Function, entries []entryDecl, parentTable *asr.SymbolTable) error {
	discriminatorName := "entry__lcompilers"

	union := make([]string, 0, len(main.Args)+len(entries)*2)
	unionSeen := make(map[string]bool)
	argIndex := make(map[string][]int) // entry point name -> 1-based formal indices into the master

	addFormal := func(entryName, formalName string) {
		if !unionSeen[formalName] {
			unionSeen[formalName] = true
			union = append(union, formalName)
		}
		for i, u := range union {
			if u == formalName {
				argIndex[entryName] = append(argIndex[entryName], i+1)
				break
			}
		}
	}

	for _, a := range main.Args {
		addFormal(main.Name(), a.Name())
	}
	for _, e := range entries {
		for _, p := range e.params {
			addFormal(e.name, p.Name)
		}
	}

	masterTable := r.store.NewTable(parentTable)
	masterName := main.Name() + "_main__lcompilers"
	master := asr.NewFunction(masterName, masterTable, nil)
	masterTable.SetOwner(master)

	disc := asr.NewVariable(discriminatorName, masterTable, asr.Integer{}, nil)
	if err := masterTable.Define(discriminatorName, disc); err != nil {
		return err
	}
	masterArgs := []*asr.Variable{disc}
	masterArgTypes := []asr.Type{asr.Integer{}}
	for _, name := range union {
		v := asr.NewVariable(name, masterTable, nil, nil)
		if err := masterTable.Define(name, v); err != nil {
			return err
		}
		masterArgs = append(masterArgs, v)
		masterArgTypes = append(masterArgTypes, nil)
	}
	master.Args = masterArgs
	master.Signature = asr.FunctionType{ArgTypes: masterArgTypes}
	if err := parentTable.Define(masterName, master); err != nil {
		return err
	}

	for _, e := range entries {
		stubTable := r.store.NewTable(parentTable)
		stub := asr.NewFunction(e.name, stubTable, nil)
		stub.Flags = stub.Flags.With(asr.FlagInterface, true)
		stubTable.SetOwner(stub)
		var stubArgs []*asr.Variable
		var stubArgTypes []asr.Type
		for _, p := range e.params {
			v := asr.NewVariable(p.Name, stubTable, typeFromSpec(p.Type, r.current().implicit), nil)
			if err := stubTable.Define(p.Name, v); err != nil {
				return err
			}
			stubArgs = append(stubArgs, v)
			stubArgTypes = append(stubArgTypes, v.Type)
		}
		stub.Args = stubArgs
		stub.Signature = asr.FunctionType{ArgTypes: stubArgTypes}
		if err := parentTable.Define(e.name, stub); err != nil {
			return err
		}
	}

	main.EntryArgIndex = argIndex
	return nil
}
