// Package resolver implements the Declaration Resolver: a mutating visitor
// over the syntactic tree that builds the ASR's symbol tables and symbol
// nodes in dependency order, following the two-phase (structural, then
// body) binding discipline described by the teacher's own
// DeclarationCollector, generalized to the full name-resolution surface
// (use imports, generic/operator overload aggregation, type-bound
// procedures, entry rewriting, templates) the collector never reached.
package resolver

import (
	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
	"github.com/gofortran/asr/config"
	"github.com/gofortran/asr/diag"
)

// phase tracks the state machine of spec section 4.3.10 for a single
// procedure-like scope. STRUCT_PHASE and BODY_PHASE are the only
// re-entrant states: a nested procedure pushes a fresh Resolver scope
// frame and runs its own instance of this machine.
type phase int

const (
	phaseBegin phase = iota
	phaseStruct
	phaseBody
	phaseFinalizeGenerics
	phaseEmit
	phaseEnd
	phaseDropped
)

// ModuleLoader is the module-loader collaborator of spec section 6: given
// a canonical module name, it returns the loaded Module ASR node, or ok
// == false if no such module exists. Implementations must be idempotent
// and are expected to cache their own results.
type ModuleLoader interface {
	LoadModule(name string) (*asr.Module, bool)
}

// scope is one frame of the Resolver's scope stack: the symbol table being
// populated, the implicit-typing dictionary in effect, and the
// accumulators that are only resolved at scope finalization (spec section
// 4.3.2, 4.3.5).
type scope struct {
	table     *asr.SymbolTable
	owner     asr.Symbol
	implicit  *implicitDict
	deps      *asr.DependencyTracker
	phase     phase
	generics  map[string][]string   // generic name -> candidate procedure names, in first-occurrence order
	operators map[string][]string   // canonical operator name -> candidate procedure names
	deferred  []func() error        // self-referential declarations re-visited after the structural phase
	virtual   *asr.SymbolTable       // submodule virtual-parent scope (spec section 4.3.8), nil otherwise
}

// Resolver walks a parsed translation unit and emits ASR, recording
// diagnostics into sink and consulting loader for `use` targets not yet
// resident in the current process.
type Resolver struct {
	opts   *config.CompilerOptions
	sink   *diag.Sink
	loader ModuleLoader
	store  *asr.Store

	scopes []*scope
	cache  map[string]*asr.Module // module name -> loaded Module, serializes repeat use
}

// New constructs a Resolver. opts must not be nil; pass config.Default()
// when the caller has no configuration file of its own.
func New(opts *config.CompilerOptions, sink *diag.Sink, loader ModuleLoader) *Resolver {
	return &Resolver{
		opts:   opts,
		sink:   sink,
		loader: loader,
		store:  asr.NewStore(),
		cache:  make(map[string]*asr.Module),
	}
}

func (r *Resolver) current() *scope { return r.scopes[len(r.scopes)-1] }

func (r *Resolver) pushScope(table *asr.SymbolTable, owner asr.Symbol, inheritImplicit bool) *scope {
	var implicit *implicitDict
	if inheritImplicit && len(r.scopes) > 0 {
		implicit = r.current().implicit.clone()
	} else {
		implicit = newImplicitDict(r.opts.ImplicitTyping)
	}
	s := &scope{
		table:     table,
		owner:     owner,
		implicit:  implicit,
		deps:      asr.NewDependencyTracker(),
		phase:     phaseBegin,
		generics:  make(map[string][]string),
		operators: make(map[string][]string),
	}
	r.scopes = append(r.scopes, s)
	return s
}

func (r *Resolver) popScope() *scope {
	s := r.current()
	r.scopes = r.scopes[:len(r.scopes)-1]
	return s
}

func (r *Resolver) fail(kind asr.ErrKind, loc diag.Location, format string, args ...any) error {
	err := asr.NewSemanticError(kind, loc, format, args...)
	r.sink.AddError(err.Error(), diag.Label{Location: loc, Text: err.Error()})
	return err
}

// abortOrContinue implements spec section 4.3.10: on continue-on-error the
// diagnostic is recorded and the caller drops the partial entity instead
// of inserting a placeholder; otherwise the error propagates to unwind the
// walk to the nearest scope boundary.
func (r *Resolver) abortOrContinue(err error) error {
	if err == nil {
		return nil
	}
	if r.opts.ContinueOnError {
		return nil
	}
	return err
}

// ResolveProgram walks the top-level items of prog in source order (spec
// section 5: "within a translation unit the Resolver visits top-level
// items in source order") and returns the completed TranslationUnit.
func (r *Resolver) ResolveProgram(prog *ast.Program) (*asr.TranslationUnit, error) {
	rootTable := r.store.NewTable(nil)
	unit := asr.NewTranslationUnit(rootTable)
	rootTable.SetOwner(unit)

	r.pushScope(rootTable, unit, false)
	defer r.popScope()

	var items []asr.Symbol
	for _, u := range prog.Units {
		sym, err := r.resolveUnit(u)
		if err != nil {
			return nil, err
		}
		if sym != nil {
			items = append(items, sym)
		}
	}
	unit.Items = items
	return unit, nil
}

func (r *Resolver) resolveUnit(u ast.ProgramUnit) (asr.Symbol, error) {
	switch n := u.(type) {
	case *ast.Module:
		return r.resolveModule(n)
	case *ast.ProgramBlock:
		return r.resolveProgramBlock(n)
	case *ast.Subroutine:
		return r.resolveSubroutine(n, r.current().table)
	case *ast.Function:
		return r.resolveFunction(n, r.current().table)
	case *ast.BlockData:
		return r.resolveBlockData(n)
	}
	return nil, nil
}

func (r *Resolver) resolveProgramBlock(n *ast.ProgramBlock) (asr.Symbol, error) {
	parentTable := r.current().table
	table := r.store.NewTable(parentTable)
	prog := asr.NewProgram(n.Name, table, n)
	table.SetOwner(prog)

	s := r.pushScope(table, prog, true)
	s.phase = phaseStruct
	if err := r.walkBody(n.Body); err != nil {
		r.popScope()
		return nil, r.abortOrContinue(err)
	}
	r.finalizeGenerics(s)
	s.phase = phaseEmit
	prog.Body = stmtsToNodes(n.Body)
	prog.Dependencies = s.deps.Finalize()
	r.popScope()

	if err := parentTable.Define(n.Name, prog); err != nil {
		return nil, r.abortOrContinue(err)
	}
	return prog, nil
}

func (r *Resolver) resolveBlockData(n *ast.BlockData) (asr.Symbol, error) {
	parentTable := r.current().table
	table := r.store.NewTable(parentTable)
	blk := asr.NewBlock(n.Name, table, nil)
	table.SetOwner(blk)

	s := r.pushScope(table, blk, true)
	s.phase = phaseStruct
	err := r.walkBody(n.Body)
	r.popScope()
	if err != nil {
		return nil, r.abortOrContinue(err)
	}
	if n.Name != "" {
		if err := parentTable.Define(n.Name, blk); err != nil {
			return nil, r.abortOrContinue(err)
		}
	}
	return blk, nil
}

// resolveModule implements the Module case of spec section 4.3: a
// structural phase (use, declarations, interfaces, derived types), a body
// phase (initializers, array bounds), generic/operator finalization, then
// CONTAINS procedures, each getting its own nested scope. ParentModule,
// when n was parsed as a submodule, is threaded through by the caller
// (the AST surface this resolver consumes does not yet distinguish
// MODULE from SUBMODULE headers; submodule support hangs off ResolveSubmodule).
func (r *Resolver) resolveModule(n *ast.Module) (asr.Symbol, error) {
	return r.resolveModuleWithParent(n, "")
}

func (r *Resolver) resolveModuleWithParent(n *ast.Module, parentModule string) (asr.Symbol, error) {
	rootTable := r.current().table

	// A submodule's table is parented on its ancestor module's table
	// rather than on rootTable directly, so SymbolTable.Resolve walks
	// straight through to every public symbol of the parent without an
	// explicit `use` (spec section 4.3.8's virtual-parent visibility).
	var virtualParent *asr.SymbolTable
	tableParent := rootTable
	if parentModule != "" {
		if parentMod, ok := rootTable.Resolve(parentModule); ok {
			if pm, ok := parentMod.(*asr.Module); ok {
				virtualParent = pm.Table
				tableParent = pm.Table
			}
		}
	}

	table := r.store.NewTable(tableParent)
	mod := asr.NewModule(n.Name, table, n)
	mod.ParentModule = parentModule
	table.SetOwner(mod)

	s := r.pushScope(table, mod, false)
	s.virtual = virtualParent
	s.phase = phaseStruct
	if err := r.walkBody(n.Body); err != nil {
		r.popScope()
		return nil, r.abortOrContinue(err)
	}

	s.phase = phaseBody
	for _, d := range s.deferred {
		if err := d(); err != nil {
			r.popScope()
			return nil, r.abortOrContinue(err)
		}
	}

	// CONTAINS procedures are resolved before the generic/operator
	// accumulators are finalized: a generic name's candidate list
	// ordinarily names module procedures declared in this very CONTAINS
	// section, and finalizeGenerics can only look them up once they
	// exist in the table (spec section 4.3.5: "emitted once every local
	// procedure is known").
	s.phase = phaseEmit
	for _, proc := range n.Contains {
		switch p := proc.(type) {
		case *ast.Subroutine:
			fn, err := r.resolveSubroutine(p, table)
			if err != nil {
				r.popScope()
				return nil, r.abortOrContinue(err)
			}
			if fn != nil && fn.(*asr.Function).Flags.HasAny(asr.FlagModuleProcedure) {
				mod.HasSubmodules = true
			}
		case *ast.Function:
			if _, err := r.resolveFunction(p, table); err != nil {
				r.popScope()
				return nil, r.abortOrContinue(err)
			}
		}
	}

	s.phase = phaseFinalizeGenerics
	r.finalizeGenerics(s)

	mod.Body = stmtsToNodes(n.Body)
	mod.Dependencies = s.deps.Finalize()
	r.popScope()

	if err := rootTable.Define(n.Name, mod); err != nil {
		return nil, r.abortOrContinue(err)
	}
	return mod, nil
}

// ResolveSubmodule resolves n as a submodule of parentModule (spec section
// 4.3.8): the submodule's scope uses the parent module's table as a
// virtual parent so every public symbol of the parent is visible without
// an explicit `use`.
func (r *Resolver) ResolveSubmodule(n *ast.Module, parentModule string) (*asr.Module, error) {
	sym, err := r.resolveModuleWithParent(n, parentModule)
	if err != nil {
		return nil, err
	}
	return sym.(*asr.Module), nil
}

func (r *Resolver) resolveSubroutine(n *ast.Subroutine, parentTable *asr.SymbolTable) (asr.Symbol, error) {
	return r.resolveProcedure(n.Name, n.Parameters, "", "", n.Body, n, parentTable)
}

func (r *Resolver) resolveFunction(n *ast.Function, parentTable *asr.SymbolTable) (asr.Symbol, error) {
	return r.resolveProcedure(n.Name, n.Parameters, n.ResultType, n.ResultVariable, n.Body, n, parentTable)
}

// resolveProcedure builds a Function symbol for either a SUBROUTINE or a
// FUNCTION (resultType == "" for the former), running the full state
// machine of spec section 4.3.10 and the ENTRY-rewrite pass of 4.3.6
// before the scope is finalized.
func (r *Resolver) resolveProcedure(name string, params []ast.Parameter, resultType, resultVar string, body []ast.Statement, decl ast.Node, parentTable *asr.SymbolTable) (asr.Symbol, error) {
	table := r.store.NewTable(parentTable)
	fn := asr.NewFunction(name, table, decl)
	table.SetOwner(fn)

	s := r.pushScope(table, fn, true)
	s.phase = phaseStruct

	args := make([]*asr.Variable, 0, len(params))
	argTypes := make([]asr.Type, 0, len(params))
	for _, p := range params {
		v, typ, err := r.declareParameter(table, p)
		if err != nil {
			r.popScope()
			return nil, r.abortOrContinue(err)
		}
		args = append(args, v)
		argTypes = append(argTypes, typ)
	}
	fn.Args = args

	var returnVar *asr.Variable
	var retType asr.Type
	if resultType != "" {
		retType = typeFromSpec(resultType, s.implicit)
		varName := resultVar
		if varName == "" {
			varName = name
		}
		returnVar = asr.NewVariable(varName, table, retType, decl)
		returnVar.Intent = asr.IntentReturnVar
		if err := table.Define(varName, returnVar); err != nil {
			r.popScope()
			return nil, r.abortOrContinue(err)
		}
	}
	fn.ReturnVar = returnVar
	fn.Signature = asr.FunctionType{ArgTypes: argTypes, ReturnType: retType}

	entries, err := r.collectEntries(body)
	if err != nil {
		r.popScope()
		return nil, r.abortOrContinue(err)
	}

	if err := r.walkBody(body); err != nil {
		r.popScope()
		return nil, r.abortOrContinue(err)
	}

	s.phase = phaseBody
	for _, d := range s.deferred {
		if err := d(); err != nil {
			r.popScope()
			return nil, r.abortOrContinue(err)
		}
	}

	s.phase = phaseFinalizeGenerics
	r.finalizeGenerics(s)

	s.phase = phaseEmit
	fn.Body = stmtsToNodes(body)
	fn.Dependencies = s.deps.Finalize()
	r.popScope()

	if len(entries) > 0 {
		if err := r.rewriteEntries(fn, entries, parentTable); err != nil {
			return nil, r.abortOrContinue(err)
		}
	}

	if err := parentTable.Define(name, fn); err != nil {
		return nil, r.abortOrContinue(err)
	}
	return fn, nil
}

func (r *Resolver) declareParameter(table *asr.SymbolTable, p ast.Parameter) (*asr.Variable, asr.Type, error) {
	typ := typeFromSpec(p.Type, r.current().implicit)
	v := asr.NewVariable(p.Name, table, typ, nil)
	switch p.Intent {
	case ast.IntentIn:
		v.Intent = asr.IntentIn
	case ast.IntentOut:
		v.Intent = asr.IntentOut
	case ast.IntentInOut:
		v.Intent = asr.IntentInOut
	default:
		v.Intent = asr.IntentInOut
	}
	if err := table.Define(p.Name, v); err != nil {
		return nil, nil, err
	}
	return v, typ, nil
}

// walkBody runs the structural-then-body handling for one list of
// statements within the current scope. Self-referential declarations are
// queued onto scope.deferred rather than resolved inline (spec section
// 4.3.2).
func (r *Resolver) walkBody(body []ast.Statement) error {
	s := r.current()
	for _, stmt := range body {
		switch st := stmt.(type) {
		case *ast.UseStatement:
			if err := r.handleUse(st); err != nil {
				return err
			}
		case *ast.ImplicitStatement:
			r.handleImplicit(st)
		case *ast.TypeDeclaration:
			if err := r.handleTypeDeclaration(st); err != nil {
				return err
			}
		case *ast.DerivedTypeStmt:
			if err := r.handleDerivedType(st); err != nil {
				return err
			}
		case *ast.InterfaceStmt:
			r.handleInterface(st)
		case *ast.TemplateStmt:
			if err := r.handleTemplate(st); err != nil {
				return err
			}
		case *ast.RequirementStmt:
			if err := r.handleRequirement(st); err != nil {
				return err
			}
		case *ast.InstantiateStmt:
			if err := r.handleInstantiate(st); err != nil {
				return err
			}
		case *ast.EnumStmt:
			if err := r.handleEnum(st); err != nil {
				return err
			}
		case *ast.EntryStmt:
			// handled up front by collectEntries; skipped here so the
			// structural phase does not double-declare its formals.
		default:
			r.trackExpressionDeps(stmt)
		}
	}
	_ = s
	return nil
}

// trackExpressionDeps walks any expression-bearing statement this minimal
// AST surface can carry and records dependencies for names it references,
// implementing spec section 4.3.9's per-reference bookkeeping for the
// body phase.
func (r *Resolver) trackExpressionDeps(n ast.Node) {
	ast.Inspect(n, func(node ast.Node) bool {
		id, ok := node.(*ast.Identifier)
		if !ok {
			return true
		}
		r.recordNameReference(id.Value)
		return true
	})
}

func (r *Resolver) recordNameReference(name string) {
	s := r.current()
	sym, foundTable, ok := s.table.ResolveTable(name)
	if !ok {
		return
	}
	ownerTable := s.table
	targetTable := foundTable
	if ext, ok := sym.(*asr.ExternalSymbol); ok {
		targetTable = ext.Parent
	}
	s.deps.AddReference(ownerTable, sym, targetTable)
}

// stmtsToNodes widens a statement list to the Node-typed slice the ASR
// stores on Program/Module/Function.Body: []Statement is not itself
// assignable to []Node in Go even though Statement embeds Node.
func stmtsToNodes(stmts []ast.Statement) []ast.Node {
	nodes := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = s
	}
	return nodes
}
