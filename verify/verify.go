// Package verify implements the ASR Verifier: a read-only, post-order walk
// over a TranslationUnit that re-checks every structural invariant spec
// section 4.2 names before any later pass is allowed to touch the tree.
package verify

import (
	"fmt"

	"github.com/gofortran/asr"
	"github.com/gofortran/asr/ast"
	"github.com/gofortran/asr/diag"
)

// Mode selects how strictly ExternalSymbol references are checked.
type Mode int

const (
	// PreLink allows ExternalSymbols whose target module has not been
	// loaded yet; external-coherence checks are skipped for them.
	PreLink Mode = iota
	// PostLink requires every reference, including every ExternalSymbol,
	// to resolve.
	PostLink
)

// Verifier walks a TranslationUnit and raises the first violation it
// finds as an error return (never a panic), matching spec section 4.2:
// "On the first Error the Verifier aborts the walk via an unwind."
type Verifier struct {
	mode Mode
	sink *diag.Sink
	seen map[uint64]bool
}

// New constructs a Verifier in the given mode, recording diagnostics into
// sink. checkExternal corresponds to spec section 6's exposed boolean
// option of the same name; PostLink implies checkExternal == true.
func New(mode Mode, sink *diag.Sink) *Verifier {
	return &Verifier{mode: mode, sink: sink, seen: make(map[uint64]bool)}
}

// Verify runs every check against unit, returning nil if it found no
// Error-level violation (warnings, if any were recorded into sink, do not
// fail verification). The caller reports success only when the returned
// error is nil and sink.HasError() is false, matching the "success or a
// diagnostic list of Errors" contract of spec section 6.
func (v *Verifier) Verify(unit *asr.TranslationUnit) error {
	if unit.Table == nil {
		return v.fail(diag.Location{}, "translation unit has no symbol table")
	}
	return v.verifyTable(unit.Table, nil, unit)
}

func (v *Verifier) fail(loc diag.Location, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	v.sink.AddError(msg, diag.Label{Location: loc, Text: msg})
	return fmt.Errorf("%w: %s", asr.ErrInternal, msg)
}

// verifyTable checks scope integrity for table (spec section 4.2 "Scope
// integrity") then recurses into every symbol it owns, post-order: the
// owned symbol's own subtree is checked before the symbol itself is
// compared against its dependency list.
func (v *Verifier) verifyTable(table *asr.SymbolTable, parent *asr.SymbolTable, owner asr.Symbol) error {
	if table.Parent != parent {
		return v.fail(diag.Location{}, "table %d parent mismatch", table.Counter)
	}
	if v.seen[table.Counter] {
		return v.fail(diag.Location{}, "table counter %d reused", table.Counter)
	}
	v.seen[table.Counter] = true

	if table.AsrOwner != owner {
		return v.fail(diag.Location{}, "table %d asr_owner does not round-trip to %v", table.Counter, owner)
	}

	for _, sym := range table.Symbols() {
		if err := v.verifySymbol(table, sym); err != nil {
			return err
		}
	}
	return nil
}

func (v *Verifier) verifySymbol(parent *asr.SymbolTable, sym asr.Symbol) error {
	switch s := sym.(type) {
	case *asr.Module:
		if err := v.verifyTable(s.Table, s.Table.Parent, s); err != nil {
			return err
		}
		return v.verifyDependencies(parent, s.Name(), s.Dependencies, s.Table, s.Body)

	case *asr.Program:
		if err := v.verifyTable(s.Table, s.Table.Parent, s); err != nil {
			return err
		}
		return v.verifyDependencies(parent, s.Name(), s.Dependencies, s.Table, s.Body)

	case *asr.Function:
		if err := v.verifyTable(s.Table, s.Table.Parent, s); err != nil {
			return err
		}
		if err := v.verifyFunctionSignature(s); err != nil {
			return err
		}
		return v.verifyDependencies(parent, s.Name(), s.Dependencies, s.Table, s.Body)

	case *asr.Struct:
		if err := v.verifyTable(s.Table, s.Table.Parent, s); err != nil {
			return err
		}
		if err := v.verifyStruct(parent, s); err != nil {
			return err
		}
		return v.verifyDependencies(parent, s.Name(), s.Dependencies, nil, nil)

	case *asr.Variable:
		if err := v.verifyVariable(parent, s); err != nil {
			return err
		}
		return v.verifyDependencies(parent, s.Name(), s.Dependencies, nil, nil)

	case *asr.ExternalSymbol:
		return v.verifyExternalSymbol(parent, s)

	case *asr.StructMethodDeclaration:
		return v.verifyStructMethod(s)

	case *asr.Block:
		return v.verifyTable(s.Table, s.Table.Parent, s)

	case *asr.AssociateBlock:
		return v.verifyTable(s.Table, s.Table.Parent, s)

	case *asr.Enum:
		if err := v.verifyTable(s.Table, s.Table.Parent, s); err != nil {
			return err
		}
		return v.verifyEnum(s)

	case *asr.Template:
		return v.verifyTable(s.Table, s.Table.Parent, s)

	case *asr.Requirement:
		return v.verifyTable(s.Table, s.Table.Parent, s)
	}
	return nil
}

// verifyFunctionSignature checks spec section 4.2's "Function-signature
// arity": FunctionType.arg_types.len == Function.args.len.
func (v *Verifier) verifyFunctionSignature(fn *asr.Function) error {
	if len(fn.Signature.ArgTypes) != len(fn.Args) {
		return v.fail(diag.Location{}, "%w: function %q has %d argument types but %d formal arguments",
			asr.ErrArityMismatch, fn.Name(), len(fn.Signature.ArgTypes), len(fn.Args))
	}
	return nil
}

// verifyStruct checks the parent-extends chain resolves and, when set,
// that Alignment is a positive power of two (spec section 4.2).
func (v *Verifier) verifyStruct(parent *asr.SymbolTable, s *asr.Struct) error {
	if s.Alignment != 0 && !isPowerOfTwo(s.Alignment) {
		return v.fail(diag.Location{}, "%w: struct %q alignment %d is not a positive power of two",
			asr.ErrTypeShape, s.Name(), s.Alignment)
	}
	if s.Parent != nil {
		if _, ok := parent.Resolve(s.Parent.Name()); !ok {
			return v.fail(diag.Location{}, "%w: struct %q extends unresolved parent %q",
				asr.ErrUnresolvedSymbol, s.Name(), s.Parent.Name())
		}
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// verifyVariable checks the String/Array/Pointer/Allocatable invariants
// of spec section 3 (constructed types already enforce nesting rules at
// construction time in package asr; here the Verifier re-derives the
// policy-level rules that depend on context, such as C-binding scalar
// length and pointer-to-array deferred shape) plus the assignment rules
// of spec section 4.2.
func (v *Verifier) verifyVariable(parent *asr.SymbolTable, vr *asr.Variable) error {
	if ptr, ok := vr.Type.(asr.Pointer); ok {
		if arr, ok := ptr.Elem.(asr.Array); ok {
			for _, d := range arr.Dims {
				if d.Lower != nil || d.Upper != nil {
					return v.fail(diag.Location{}, "%w: pointer-to-array variable %q must have deferred shape",
						asr.ErrTypeShape, vr.Name())
				}
			}
		}
	}
	if alloc, ok := vr.Type.(asr.Allocatable); ok {
		if arr, ok := alloc.Elem.(asr.Array); ok {
			for _, d := range arr.Dims {
				if d.Lower != nil || d.Upper != nil {
					return v.fail(diag.Location{}, "%w: allocatable array variable %q must have every dimension length absent",
						asr.ErrTypeShape, vr.Name())
				}
			}
		}
	}
	if str, ok := vr.Type.(asr.String); ok && str.Length == asr.ImplicitLength {
		return v.fail(diag.Location{}, "%w: variable %q has ImplicitLength string type outside a cast expression",
			asr.ErrTypeShape, vr.Name())
	}
	return nil
}

// verifyExternalSymbol checks spec section 4.2's "ExternalSymbol
// coherence": target is non-external, original_name/module_name match,
// and FindScoped round-trips to the same symbol object.
func (v *Verifier) verifyExternalSymbol(parent *asr.SymbolTable, ext *asr.ExternalSymbol) error {
	if _, ok := ext.External.(*asr.ExternalSymbol); ok {
		return v.fail(diag.Location{}, "%w: external symbol %q points at another external symbol",
			asr.ErrInternal, ext.Name())
	}
	if ext.External.Name() != ext.OriginalName {
		return v.fail(diag.Location{}, "%w: external symbol %q original_name %q does not match target name %q",
			asr.ErrInternal, ext.Name(), ext.OriginalName, ext.External.Name())
	}
	if v.mode == PostLink {
		got, ok := asr.FindScoped(parent, ext.OriginalName, ext.ScopePath)
		if !ok || got != ext.External {
			return v.fail(diag.Location{}, "%w: external symbol %q does not round-trip via FindScoped",
				asr.ErrUnresolvedSymbol, ext.Name())
		}
	}
	return nil
}

// verifyStructMethod checks spec section 4.2's "Struct method pass-arg":
// when a method declares a self-argument, that name must appear among the
// procedure's own formals.
func (v *Verifier) verifyStructMethod(m *asr.StructMethodDeclaration) error {
	if m.Deferred {
		return nil
	}
	if m.SelfArgument == "" {
		return nil
	}
	if m.Procedure == nil {
		return v.fail(diag.Location{}, "%w: struct method %q is not deferred but has no bound procedure",
			asr.ErrInternal, m.Name())
	}
	for _, arg := range m.Procedure.Args {
		if arg.Name() == m.SelfArgument {
			return nil
		}
	}
	return v.fail(diag.Location{}, "%w: struct method %q declares self-argument %q not present among %q's formals",
		asr.ErrInternal, m.Name(), m.SelfArgument, m.Procedure.Name())
}

// verifyEnum recomputes the EnumKind classification from the Enum's
// resolved member values and requires it equal the stored Kind (spec
// section 4.2: "Enum classifications must match the observed value
// distribution").
func (v *Verifier) verifyEnum(e *asr.Enum) error {
	if len(e.Members) == 0 {
		return v.fail(diag.Location{}, "%w: enum %q declares no members", asr.ErrInternal, e.Name())
	}
	if len(e.Values) != len(e.Members) || len(e.ValuesKnown) != len(e.Members) {
		return v.fail(diag.Location{}, "%w: enum %q has %d members but %d values and %d known-flags",
			asr.ErrInternal, e.Name(), len(e.Members), len(e.Values), len(e.ValuesKnown))
	}
	want := asr.ClassifyEnumKind(e.Values, e.ValuesKnown)
	if e.Kind != want {
		return v.fail(diag.Location{}, "%w: enum %q stored kind %s does not match %s recomputed from its member values",
			asr.ErrTypeShape, e.Name(), e.Kind, want)
	}
	return nil
}

// verifyDependencies checks spec section 4.2's "Dependency equality":
// every stored name must resolve in the entity's parent table (not its
// own, per spec section 4.2's parenthetical), the list must contain no
// duplicates, and — when ownTable/body are available, i.e. the entity is
// a Module/Program/Function with a recorded statement body — the stored
// list must equal what an independent walk of that body produces right
// now. This last check is what actually catches drift: a later pass that
// mutates an expression without updating Dependencies changes the
// recomputed set but leaves stored untouched, and the two no longer
// agree. parentTable is nil for the translation unit's top-level items,
// which have no enclosing scope to resolve against.
func (v *Verifier) verifyDependencies(parentTable *asr.SymbolTable, name string, stored []string, ownTable *asr.SymbolTable, body []ast.Node) error {
	if asr.HasDuplicates(stored) {
		return v.fail(diag.Location{}, "%w: %q dependency list contains duplicates", asr.ErrDependencyDrift, name)
	}
	if parentTable != nil {
		for _, dep := range stored {
			if _, ok := parentTable.Resolve(dep); ok {
				continue
			}
			if v.mode == PreLink {
				// A module-of-origin name from an as-yet-unloaded module is
				// acceptable before post-link resolution.
				continue
			}
			return v.fail(diag.Location{}, "%w: %q depends on %q which does not resolve in its parent table",
				asr.ErrDependencyDrift, name, dep)
		}
	}
	// body == nil (as opposed to a present-but-empty slice) marks a stub
	// this module never parsed itself — a wire-decoded modcache stub, or a
	// hand-built test fixture standing in for one — which carries a
	// Dependencies list but no statement tree to recompute it from. Only
	// an entity this run actually resolved from source gets the stricter
	// independent recompute.
	if ownTable != nil && body != nil {
		recomputed := recomputeDependencies(ownTable, body)
		if !asr.DependenciesEqual(stored, recomputed) {
			return v.fail(diag.Location{}, "%w: %q stored dependencies %v do not match %v recomputed from its body",
				asr.ErrDependencyDrift, name, stored, recomputed)
		}
	}
	return nil
}

// recomputeDependencies independently re-derives an entity's dependency
// list by walking its stored body, mirroring exactly how the resolver
// itself attributes a dependency while first building it: a USE
// statement contributes the used module's own name (resolver.handleUse),
// a TYPE ... EXTENDS contributes the parent type's name
// (resolver.handleDerivedType), and any other statement contributes the
// names of whichever Identifiers it references, cross-table only
// (resolver.recordNameReference). Statement kinds the resolver dispatches
// to a structural handler instead of the expression-dependency scan
// (TypeDeclaration, ImplicitStatement, InterfaceStmt, TemplateStmt,
// RequirementStmt, InstantiateStmt, EntryStmt, EnumStmt) contribute
// nothing here either, so this recompute never flags a dependency the resolver itself
// never tracks as drift — only a genuine mismatch between what was
// stored and what the body says now.
func recomputeDependencies(ownTable *asr.SymbolTable, body []ast.Node) []string {
	tracker := asr.NewDependencyTracker()
	for _, n := range body {
		switch st := n.(type) {
		case *ast.UseStatement:
			tracker.Add(st.ModuleName)

		case *ast.DerivedTypeStmt:
			if st.Extends == "" {
				continue
			}
			sym, foundTable, ok := ownTable.ResolveTable(st.Extends)
			if !ok {
				continue
			}
			if parent, ok := sym.(*asr.Struct); ok {
				tracker.AddReference(ownTable, parent, foundTable)
			}

		case *ast.ImplicitStatement, *ast.TypeDeclaration, *ast.InterfaceStmt,
			*ast.TemplateStmt, *ast.RequirementStmt, *ast.InstantiateStmt, *ast.EntryStmt,
			*ast.EnumStmt:
			// handled by a structural resolver pass, not the expression scan.

		default:
			ast.Inspect(n, func(node ast.Node) bool {
				id, ok := node.(*ast.Identifier)
				if !ok {
					return true
				}
				sym, foundTable, ok := ownTable.ResolveTable(id.Value)
				if !ok {
					return true
				}
				targetTable := foundTable
				if ext, ok := sym.(*asr.ExternalSymbol); ok {
					targetTable = ext.Parent
				}
				tracker.AddReference(ownTable, sym, targetTable)
				return true
			})
		}
	}
	return tracker.Finalize()
}
