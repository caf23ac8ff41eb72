package resolver

import (
	"testing"

	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
	"github.com/gofortran/asr/config"
	"github.com/gofortran/asr/diag"
)

func newResolver() (*Resolver, *diag.Sink) {
	sink := &diag.Sink{}
	return New(config.Default(), sink, nil), sink
}

func TestResolveProgramBlockDeclaresVariables(t *testing.T) {
	r, sink := newResolver()
	prog := &ast.Program{Units: []ast.ProgramUnit{
		&ast.ProgramBlock{
			Name: "main",
			Body: []ast.Statement{
				&ast.TypeDeclaration{
					TypeSpec: "INTEGER",
					Entities: []ast.DeclEntity{{Name: "i"}, {Name: "j"}},
				},
			},
		},
	}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v (diagnostics: %v)", err, sink.Diagnostics())
	}
	if len(unit.Items) != 1 {
		t.Fatalf("expected 1 top-level item, got %d", len(unit.Items))
	}
	progSym, ok := unit.Items[0].(*asr.Program)
	if !ok {
		t.Fatalf("expected *asr.Program, got %T", unit.Items[0])
	}
	for _, name := range []string{"i", "j"} {
		sym, ok := progSym.Table.GetLocal(name)
		if !ok {
			t.Fatalf("variable %q not declared", name)
		}
		v, ok := sym.(*asr.Variable)
		if !ok {
			t.Fatalf("%q: expected *asr.Variable, got %T", name, sym)
		}
		if _, ok := v.Type.(asr.Integer); !ok {
			t.Errorf("%q: expected Integer type, got %T", name, v.Type)
		}
	}
}

func TestResolveFunctionBuildsSignatureAndReturnVar(t *testing.T) {
	r, _ := newResolver()
	fn := &ast.Function{
		Name:       "add",
		ResultType: "INTEGER",
		Parameters: []ast.Parameter{
			{Name: "a", Type: "INTEGER", Intent: ast.IntentIn},
			{Name: "b", Type: "INTEGER", Intent: ast.IntentIn},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{fn}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym := unit.Items[0].(*asr.Function)
	if len(sym.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(sym.Args))
	}
	if sym.ReturnVar == nil {
		t.Fatal("expected a synthesized return variable")
	}
	if sym.ReturnVar.Name() != "add" {
		t.Errorf("expected return variable named %q, got %q", "add", sym.ReturnVar.Name())
	}
	if sym.ReturnVar.Intent != asr.IntentReturnVar {
		t.Errorf("expected IntentReturnVar on the return variable, got %v", sym.ReturnVar.Intent)
	}
	if _, ok := sym.Signature.ReturnType.(asr.Integer); !ok {
		t.Errorf("expected Integer return type, got %T", sym.Signature.ReturnType)
	}
}

func TestResolveFunctionWithExplicitResultVariable(t *testing.T) {
	r, _ := newResolver()
	fn := &ast.Function{
		Name:           "norm",
		ResultType:     "REAL",
		ResultVariable: "res",
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{fn}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym := unit.Items[0].(*asr.Function)
	if sym.ReturnVar.Name() != "res" {
		t.Errorf("expected result variable named %q, got %q", "res", sym.ReturnVar.Name())
	}
}

func TestImplicitNoneRejectsUntypedDummyUnlessDeclared(t *testing.T) {
	r, _ := newResolver()
	sub := &ast.Subroutine{
		Name:       "work",
		Parameters: []ast.Parameter{{Name: "x"}},
		Body: []ast.Statement{
			&ast.ImplicitStatement{IsNone: true},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{sub}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym := unit.Items[0].(*asr.Function)
	// A dummy argument with no TypeSpec of its own is left untyped at
	// parameter-binding time; it only acquires a type from a later
	// TypeDeclaration statement (handleTypeDeclaration fills in an
	// already-defined symbol's Type in place). x never gets one here.
	if sym.Args[0].Type != nil {
		t.Errorf("expected untyped dummy x before any declaration, got %T", sym.Args[0].Type)
	}
}

func TestModuleGenericProcedureAggregatesConstituents(t *testing.T) {
	r, _ := newResolver()
	mod := &ast.Module{
		Name: "mathops",
		Body: []ast.Statement{
			&ast.InterfaceStmt{GenericName: "addup", ProcNames: []string{"add_int", "add_real"}},
		},
		Contains: []ast.ProgramUnit{
			&ast.Function{Name: "add_int", ResultType: "INTEGER", Parameters: []ast.Parameter{{Name: "a", Type: "INTEGER"}, {Name: "b", Type: "INTEGER"}}},
			&ast.Function{Name: "add_real", ResultType: "REAL", Parameters: []ast.Parameter{{Name: "a", Type: "REAL"}, {Name: "b", Type: "REAL"}}},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{mod}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	modSym := unit.Items[0].(*asr.Module)
	gpSym, ok := modSym.Table.GetLocal("addup")
	if !ok {
		t.Fatal("generic procedure addup was not emitted")
	}
	gp, ok := gpSym.(*asr.GenericProcedure)
	if !ok {
		t.Fatalf("expected *asr.GenericProcedure, got %T", gpSym)
	}
	if len(gp.Procedures) != 2 {
		t.Fatalf("expected 2 constituent procedures, got %d", len(gp.Procedures))
	}
}

type fakeLoader struct {
	modules map[string]*asr.Module
}

func (f *fakeLoader) LoadModule(name string) (*asr.Module, bool) {
	m, ok := f.modules[name]
	return m, ok
}

func buildProviderModule(t *testing.T) *asr.Module {
	t.Helper()
	store := asr.NewStore()
	table := store.NewTable(nil)
	mod := asr.NewModule("provider", table, nil)
	table.SetOwner(mod)

	fnTable := store.NewTable(table)
	fn := asr.NewFunction("helper", fnTable, nil)
	fnTable.SetOwner(fn)
	fn.Signature = asr.FunctionType{ArgTypes: nil, ReturnType: asr.Integer{}}
	if err := table.Define("helper", fn); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return mod
}

func TestUseStatementImportsExternalSymbol(t *testing.T) {
	provider := buildProviderModule(t)
	sink := &diag.Sink{}
	r := New(config.Default(), sink, &fakeLoader{modules: map[string]*asr.Module{"provider": provider}})

	sub := &ast.Subroutine{
		Name: "consumer",
		Body: []ast.Statement{
			&ast.UseStatement{ModuleName: "provider"},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{sub}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v (diagnostics: %v)", err, sink.Diagnostics())
	}
	fn := unit.Items[0].(*asr.Function)
	sym, ok := fn.Table.GetLocal("helper")
	if !ok {
		t.Fatal("expected helper to be imported from provider")
	}
	ext, ok := sym.(*asr.ExternalSymbol)
	if !ok {
		t.Fatalf("expected *asr.ExternalSymbol, got %T", sym)
	}
	if ext.ModuleName != "provider" {
		t.Errorf("expected origin module %q, got %q", "provider", ext.ModuleName)
	}
}

func TestUseOnlyRejectsMissingName(t *testing.T) {
	provider := buildProviderModule(t)
	sink := &diag.Sink{}
	r := New(config.Default(), sink, &fakeLoader{modules: map[string]*asr.Module{"provider": provider}})

	sub := &ast.Subroutine{
		Name: "consumer",
		Body: []ast.Statement{
			&ast.UseStatement{ModuleName: "provider", Only: []string{"nosuchname"}},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{sub}}

	if _, err := r.ResolveProgram(prog); err == nil {
		t.Fatal("expected an error for an only: clause naming a nonexistent symbol")
	}
}

func TestUseRenameBindsUnderLocalName(t *testing.T) {
	provider := buildProviderModule(t)
	sink := &diag.Sink{}
	r := New(config.Default(), sink, &fakeLoader{modules: map[string]*asr.Module{"provider": provider}})

	sub := &ast.Subroutine{
		Name: "consumer",
		Body: []ast.Statement{
			&ast.UseStatement{
				ModuleName: "provider",
				Only:       []string{"helper"},
				Renames:    []ast.UseRename{{Local: "myhelper", Original: "helper"}},
			},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{sub}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := unit.Items[0].(*asr.Function)
	if _, ok := fn.Table.GetLocal("myhelper"); !ok {
		t.Fatal("expected helper to be bound under its renamed local name")
	}
	if _, ok := fn.Table.GetLocal("helper"); ok {
		t.Fatal("did not expect the original name to also be bound")
	}
}

func TestDerivedTypeInheritsParentMembers(t *testing.T) {
	r, _ := newResolver()
	mod := &ast.Module{
		Name: "shapes",
		Body: []ast.Statement{
			&ast.DerivedTypeStmt{
				Name:       "base_shape",
				Components: []ast.DeclEntity{{Name: "area", TypeSpec: "REAL"}},
			},
			&ast.DerivedTypeStmt{
				Name:       "circle",
				Extends:    "base_shape",
				Components: []ast.DeclEntity{{Name: "radius", TypeSpec: "REAL"}},
			},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{mod}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	modSym := unit.Items[0].(*asr.Module)
	circleSym, ok := modSym.Table.GetLocal("circle")
	if !ok {
		t.Fatal("circle type not declared")
	}
	circle := circleSym.(*asr.Struct)
	if circle.Parent == nil || circle.Parent.Name() != "base_shape" {
		t.Fatalf("expected circle to extend base_shape, got %+v", circle.Parent)
	}
	if len(circle.Members) != 1 || circle.Members[0] != "radius" {
		t.Errorf("expected circle's own Members to list only radius, got %v", circle.Members)
	}
}

func TestDerivedTypeRejectsUnresolvedParent(t *testing.T) {
	r, _ := newResolver()
	mod := &ast.Module{
		Name: "shapes",
		Body: []ast.Statement{
			&ast.DerivedTypeStmt{Name: "circle", Extends: "no_such_type"},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{mod}}

	if _, err := r.ResolveProgram(prog); err == nil {
		t.Fatal("expected an error extending an unresolved type")
	}
}

func TestDeferredBindingRequiresAbstractType(t *testing.T) {
	r, _ := newResolver()
	mod := &ast.Module{
		Name: "shapes",
		Body: []ast.Statement{
			&ast.DerivedTypeStmt{
				Name: "shape",
				Bindings: []ast.TypeBoundProcedure{
					{Name: "area", ProcName: "area_impl", Deferred: true},
				},
			},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{mod}}

	if _, err := r.ResolveProgram(prog); err == nil {
		t.Fatal("expected an error for a deferred binding on a non-abstract type")
	}
}

func TestEntryStatementsRewriteIntoMasterAndStubs(t *testing.T) {
	r, _ := newResolver()
	sub := &ast.Subroutine{
		Name:       "primary",
		Parameters: []ast.Parameter{{Name: "x", Type: "INTEGER"}},
		Body: []ast.Statement{
			&ast.EntryStmt{Name: "secondary", Parameters: []ast.Parameter{{Name: "y", Type: "REAL"}}},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{sub}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	main := unit.Items[0].(*asr.Function)
	if len(main.EntryArgIndex) == 0 {
		t.Fatal("expected EntryArgIndex to be populated")
	}
	if _, ok := main.EntryArgIndex["secondary"]; !ok {
		t.Error("expected an argument-index entry for the entry point secondary")
	}
	root := unit.Table
	if _, ok := root.GetLocal("primary_main__lcompilers"); !ok {
		t.Error("expected a rewritten master function in the enclosing scope")
	}
	stubSym, ok := root.GetLocal("secondary")
	if !ok {
		t.Fatal("expected a template-stub function named after the entry point")
	}
	stub := stubSym.(*asr.Function)
	if len(stub.Args) != 1 || stub.Args[0].Name() != "y" {
		t.Errorf("expected entry stub to carry its own formal list, got %v", stub.Args)
	}
}

func TestTemplateInstantiationProducesFreshCopy(t *testing.T) {
	r, _ := newResolver()
	mod := &ast.Module{
		Name: "containers",
		Body: []ast.Statement{
			&ast.TemplateStmt{
				Name:       "stack_t",
				Parameters: []string{"elem_t"},
				Body: []ast.Statement{
					&ast.TypeDeclaration{
						TypeSpec: "INTEGER",
						Entities: []ast.DeclEntity{{Name: "capacity"}},
					},
				},
			},
			&ast.TypeDeclaration{
				TypeSpec: "INTEGER",
				Entities: []ast.DeclEntity{{Name: "item_count"}},
			},
			&ast.InstantiateStmt{TemplateName: "stack_t", LocalName: "int_stack", Args: []string{"item_count"}},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{mod}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	modSym := unit.Items[0].(*asr.Module)
	instSym, ok := modSym.Table.GetLocal("int_stack")
	if !ok {
		t.Fatal("expected int_stack instance to be defined")
	}
	inst := instSym.(*asr.Module)
	if _, ok := inst.Table.GetLocal("capacity"); !ok {
		t.Error("expected the instance to carry a fresh copy of the template body's declarations")
	}
}

func TestTemplateInstantiationRejectsArityMismatch(t *testing.T) {
	r, _ := newResolver()
	mod := &ast.Module{
		Name: "containers",
		Body: []ast.Statement{
			&ast.TemplateStmt{Name: "stack_t", Parameters: []string{"elem_t"}},
			&ast.InstantiateStmt{TemplateName: "stack_t", LocalName: "bad_stack", Args: []string{}},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{mod}}

	if _, err := r.ResolveProgram(prog); err == nil {
		t.Fatal("expected an arity-mismatch error")
	}
}

func TestSubmoduleSeesParentModulePublicSymbols(t *testing.T) {
	r, _ := newResolver()
	rootTable := r.store.NewTable(nil)
	tu := asr.NewTranslationUnit(rootTable)
	rootTable.SetOwner(tu)
	r.pushScope(rootTable, tu, false)
	defer r.popScope()

	parentMod := &ast.Module{
		Name: "geometry",
		Body: []ast.Statement{
			&ast.TypeDeclaration{TypeSpec: "REAL", Entities: []ast.DeclEntity{{Name: "pi"}}},
		},
	}
	if _, err := r.resolveModule(parentMod); err != nil {
		t.Fatalf("unexpected error resolving parent module: %v", err)
	}

	sub := &ast.Module{
		Name: "geometry_impl",
		Body: []ast.Statement{
			&ast.TypeDeclaration{TypeSpec: "REAL", Entities: []ast.DeclEntity{{Name: "tau"}}},
		},
	}
	subMod, err := r.ResolveSubmodule(sub, "geometry")
	if err != nil {
		t.Fatalf("unexpected error resolving submodule: %v", err)
	}
	if _, ok := subMod.Table.GetLocal("tau"); !ok {
		t.Error("expected submodule's own declaration tau to be defined locally")
	}
	if _, ok := subMod.Table.Resolve("pi"); !ok {
		t.Error("expected submodule to see the parent module's public symbol pi through virtual-parent scoping")
	}
}

func TestContinueOnErrorDropsFailingUnitInstead(t *testing.T) {
	opts := config.Default()
	opts.ContinueOnError = true
	sink := &diag.Sink{}
	r := New(opts, sink, nil)

	mod := &ast.Module{
		Name: "shapes",
		Body: []ast.Statement{
			&ast.DerivedTypeStmt{Name: "circle", Extends: "no_such_type"},
		},
	}
	prog := &ast.Program{Units: []ast.ProgramUnit{mod}}

	unit, err := r.ResolveProgram(prog)
	if err != nil {
		t.Fatalf("continue-on-error should not propagate the error, got %v", err)
	}
	if len(unit.Items) != 0 {
		t.Errorf("expected the failing module to be dropped, got %d items", len(unit.Items))
	}
	if !sink.HasError() {
		t.Error("expected the diagnostic to still be recorded")
	}
}
