package asr

import "github.com/gofortran/asr/ast"

// Symbol is the tagged variant of spec section 3's "Symbol Nodes" table.
// Every concrete type below implements it; the source's inheritance of a
// symbol_t base with down_cast is purely an encoding of this sum, so a Go
// type switch over Symbol is the idiomatic replacement.
type Symbol interface {
	symbolNode()
	// Name returns the symbol's binding name, lowercase-canonical. The
	// TranslationUnit root returns "".
	Name() string
	// DeclNode returns the syntactic-tree node this symbol was resolved
	// from, for diagnostics; nil for symbols synthesized by the resolver
	// itself (entry-statement masters, template instantiations).
	DeclNode() ast.Node
}

// base is embedded by every concrete Symbol to share the name/decl-node
// bookkeeping, mirroring the teacher's unexported Symbol struct with
// accessor methods rather than public fields.
type base struct {
	name     string
	declNode ast.Node
}

func (b base) Name() string      { return b.name }
func (b base) DeclNode() ast.Node { return b.declNode }

// TranslationUnit is the ASR root: its own table holds every top-level
// Program/Module/Function, and Items preserves their source order (spec
// section 9: "within a translation unit the Resolver visits top-level
// items in source order").
type TranslationUnit struct {
	base
	Table *SymbolTable
	Items []Symbol
}

func (*TranslationUnit) symbolNode() {}

// NewTranslationUnit constructs the ASR root owning table.
func NewTranslationUnit(table *SymbolTable) *TranslationUnit {
	return &TranslationUnit{Table: table}
}

// Program is a PROGRAM unit: the single entry point of a compilation
// (there is at most one per TranslationUnit in a conforming program, but
// the ASR does not itself enforce that — a later pass does).
type Program struct {
	base
	Table        *SymbolTable
	Body         []ast.Node
	Dependencies []string
}

func (*Program) symbolNode() {}

// NewProgram constructs a Program symbol bound to table, recording decl
// for diagnostics.
func NewProgram(name string, table *SymbolTable, decl ast.Node) *Program {
	return &Program{base: base{name: name, declNode: decl}, Table: table}
}

// Module holds exported declarations shared across program units. A
// submodule sets ParentModule to its parent's name and HasSubmodules is
// set on a Module once any of its Functions carries FlagModuleProcedure.
type Module struct {
	base
	Table         *SymbolTable
	Body          []ast.Node
	ParentModule  string
	HasSubmodules bool
	Dependencies  []string
}

func (*Module) symbolNode() {}

// NewModule constructs a Module symbol bound to table.
func NewModule(name string, table *SymbolTable, decl ast.Node) *Module {
	return &Module{base: base{name: name, declNode: decl}, Table: table}
}

// Function is a FUNCTION or SUBROUTINE: own table because its dummy
// arguments and locals live in their own scope. ReturnVar is nil for a
// subroutine. Signature is kept in sync with Args/ReturnVar by the
// resolver; the Verifier's "function-signature arity" check re-derives it.
type Function struct {
	base
	Table        *SymbolTable
	Args         []*Variable
	Body         []ast.Node
	ReturnVar    *Variable
	Signature    FunctionType
	Dependencies []string
	Flags        Flags
	ABI          ABI
	Access       Access

	// EntryArgIndex maps an ENTRY name (including the procedure's own
	// name) to the 1-based positions its formals occupy in the rewritten
	// master function's argument list (spec section 4.3.6). Empty for a
	// procedure with no ENTRY statements.
	EntryArgIndex map[string][]int
}

func (*Function) symbolNode() {}

// NewFunction constructs a Function symbol bound to table. Signature,
// Args and ReturnVar are left to the caller since the resolver builds
// them incrementally as it walks the dummy-argument list.
func NewFunction(name string, table *SymbolTable, decl ast.Node) *Function {
	return &Function{base: base{name: name, declNode: decl}, Table: table}
}

// Variable is a declared name that is not itself a scope owner: a local,
// a dummy argument, a module-level datum, or a function's result
// variable. TypeDecl, when non-nil, is the Struct this Variable's type
// ultimately names (set once the referenced Struct is resolved — see the
// deferred-struct-declaration mechanism in resolver).
type Variable struct {
	base
	Parent       *SymbolTable
	Type         Type
	Initializer  ast.Node
	Value        any // constant-folded value, only for Storage == StorageParameter
	Intent       Intent
	Storage      Storage
	Access       Access
	Presence     Presence
	Dependencies []string
	TypeDecl     *Struct
}

func (*Variable) symbolNode() {}

// NewVariable constructs a Variable symbol of the given type, owned by
// parent's table.
func NewVariable(name string, parent *SymbolTable, typ Type, decl ast.Node) *Variable {
	return &Variable{base: base{name: name, declNode: decl}, Parent: parent, Type: typ}
}

// Struct is a derived type. Members preserves declaration order (needed
// for default structure-constructor argument order); Parent is the single
// base type when this Struct extends another.
type Struct struct {
	base
	Table        *SymbolTable
	Members      []string
	Parent       *Struct
	Dependencies []string
	Alignment    int // 0 means unspecified
	Abstract     bool
}

func (*Struct) symbolNode() {}

// NewStruct constructs a Struct symbol bound to table.
func NewStruct(name string, table *SymbolTable, decl ast.Node) *Struct {
	return &Struct{base: base{name: name, declNode: decl}, Table: table}
}

// Enum is an enumeration: UnderlyingType is always an Integer, Members
// preserves declaration order, Values holds each member's resolved
// integer value in that same order (ValuesKnown marks which of them were
// actual compile-time integer constants, as opposed to an expression the
// resolver could not fold), and Kind records how those values relate to
// 0..n-1 (the Verifier recomputes this from Values/ValuesKnown via
// ClassifyEnumKind and compares it against the stored Kind).
type Enum struct {
	base
	Table          *SymbolTable
	UnderlyingType Integer
	Members        []string
	Values         []int64
	ValuesKnown    []bool
	Kind           EnumKind
}

func (*Enum) symbolNode() {}

// NewEnum constructs an Enum symbol bound to table.
func NewEnum(name string, table *SymbolTable, decl ast.Node) *Enum {
	return &Enum{base: base{name: name, declNode: decl}, Table: table}
}

// Union is a Fortran SEQUENCE/UNION aggregate: unlike Struct its members
// overlap in storage, but the ASR only needs their names.
type Union struct {
	base
	Table   *SymbolTable
	Members []string
}

func (*Union) symbolNode() {}

// NewUnion constructs a Union symbol bound to table.
func NewUnion(name string, table *SymbolTable, decl ast.Node) *Union {
	return &Union{base: base{name: name, declNode: decl}, Table: table}
}

// GenericProcedure is an overload set assembled at scope finalization from
// same-named procedures (spec section 4.3.2); Procedures is the stable,
// first-occurrence-ordered candidate list.
type GenericProcedure struct {
	base
	Parent     *SymbolTable
	Procedures []*Function
	Access     Access
}

func (*GenericProcedure) symbolNode() {}

// NewGenericProcedure constructs an empty overload set; the resolver
// appends candidates to Procedures as it discovers them.
func NewGenericProcedure(name string, parent *SymbolTable) *GenericProcedure {
	return &GenericProcedure{base: base{name: name}, Parent: parent}
}

// CustomOperator is the operator-overload analogue of GenericProcedure.
// Name already carries the canonical form: a reserved prefix for an
// intrinsic-operator tag ("+", "==", ...) or "~~op~~" for a user-defined
// `.op.` name (spec section 4.3.5).
type CustomOperator struct {
	base
	Parent     *SymbolTable
	Procedures []*Function
	Access     Access
}

func (*CustomOperator) symbolNode() {}

// NewCustomOperator constructs an empty operator-overload set.
func NewCustomOperator(name string, parent *SymbolTable) *CustomOperator {
	return &CustomOperator{base: base{name: name}, Parent: parent}
}

// StructMethodDeclaration binds a procedure name inside a Struct's own
// table to the Function implementing it. SelfArgument, when non-empty,
// names the pass-object dummy argument; Deferred is only legal when the
// owning Struct is Abstract.
type StructMethodDeclaration struct {
	base
	Parent       *SymbolTable
	Procedure    *Function
	ProcName     string
	SelfArgument string
	Deferred     bool
	NoPass       bool
}

func (*StructMethodDeclaration) symbolNode() {}

// NewStructMethodDeclaration binds localName, inside parent's table, to
// procName's implementation (proc may be nil when deferred is true).
func NewStructMethodDeclaration(localName string, parent *SymbolTable, proc *Function, procName, selfArg string, deferred, noPass bool) *StructMethodDeclaration {
	return &StructMethodDeclaration{
		base:         base{name: localName},
		Parent:       parent,
		Procedure:    proc,
		ProcName:     procName,
		SelfArgument: selfArg,
		Deferred:     deferred,
		NoPass:       noPass,
	}
}

// ExternalSymbol is the re-export indirection of spec section 3: a local
// name that stands in for a symbol owned by another table. Per the
// "at most one hop" invariant, External is never itself an
// *ExternalSymbol — enforced at construction by NewExternalSymbol, not
// merely checked later by the Verifier.
type ExternalSymbol struct {
	base
	Parent       *SymbolTable
	External     Symbol
	ModuleName   string
	OriginalName string
	ScopePath    []string
}

func (*ExternalSymbol) symbolNode() {}

// NewExternalSymbol constructs an ExternalSymbol, unwrapping target one
// hop if it is itself external (spec section 4.3.3: "ExternalSymbol
// objects whose target is itself external are unwrapped to the real
// target before insertion").
func NewExternalSymbol(localName string, parent *SymbolTable, target Symbol, moduleName, originalName string, scopePath []string) *ExternalSymbol {
	if ext, ok := target.(*ExternalSymbol); ok {
		target = ext.External
		if moduleName == "" {
			moduleName = ext.ModuleName
		}
	}
	return &ExternalSymbol{
		base:         base{name: localName},
		Parent:       parent,
		External:     target,
		ModuleName:   moduleName,
		OriginalName: originalName,
		ScopePath:    scopePath,
	}
}

// GetPastExternal follows sym through at most one ExternalSymbol hop and
// returns the underlying, never-external symbol. Non-external symbols are
// returned unchanged.
func GetPastExternal(sym Symbol) Symbol {
	if ext, ok := sym.(*ExternalSymbol); ok {
		return ext.External
	}
	return sym
}

// Block is a lexical block (IF/DO/WHERE body, or a bare BLOCK construct)
// that owns its own table because block-scoped variables (Fortran 2008+)
// must not leak into the enclosing scope.
type Block struct {
	base
	Table *SymbolTable
	Body  []ast.Node
}

func (*Block) symbolNode() {}

// NewBlock constructs a Block symbol bound to table.
func NewBlock(name string, table *SymbolTable, body []ast.Node) *Block {
	return &Block{base: base{name: name}, Table: table, Body: body}
}

// AssociateBlock is an ASSOCIATE construct: like Block but its table is
// pre-populated with the associate-names before Body is walked.
type AssociateBlock struct {
	base
	Table *SymbolTable
	Body  []ast.Node
}

func (*AssociateBlock) symbolNode() {}

// NewAssociateBlock constructs an AssociateBlock symbol bound to table.
func NewAssociateBlock(name string, table *SymbolTable, body []ast.Node) *AssociateBlock {
	return &AssociateBlock{base: base{name: name}, Table: table, Body: body}
}

// Template declares named type/function parameters and a body of symbols
// that may reference them (spec section 4.3.7); Requirements lists the
// require-instantiation clauses a satisfying instantiation must meet.
type Template struct {
	base
	Table        *SymbolTable
	Parameters   []string
	Requirements []string
}

func (*Template) symbolNode() {}

// NewTemplate constructs a Template symbol bound to table.
func NewTemplate(name string, table *SymbolTable, decl ast.Node) *Template {
	return &Template{base: base{name: name, declNode: decl}, Table: table}
}

// Requirement is a named contract a Template instantiation argument must
// satisfy (an intrinsic-operator or function-signature restriction).
type Requirement struct {
	base
	Table      *SymbolTable
	Parameters []string
}

func (*Requirement) symbolNode() {}

// NewRequirement constructs a Requirement symbol bound to table.
func NewRequirement(name string, table *SymbolTable, decl ast.Node) *Requirement {
	return &Requirement{base: base{name: name, declNode: decl}, Table: table}
}
