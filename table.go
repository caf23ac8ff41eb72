package asr

import (
	"strings"
)

// SymbolTable is a named scope: name -> Symbol, plus the Counter/Parent/
// AsrOwner triple spec section 3 requires. All keys are lowercase
// canonical; ValidateName and the lowercasing happen once, at insertion
// and lookup time, never left to callers.
type SymbolTable struct {
	Counter  uint64
	Parent   *SymbolTable
	AsrOwner Symbol

	symbols map[string]Symbol
	order   []string
}

// SetOwner binds the table to the ASR node that owns it, completing the
// two-step construction NewTable starts. Per spec's invariant
// "owner.symtab == T <=> T.asr_owner == owner", the caller is responsible
// for also storing T on owner; SetOwner only does the table's half.
func (t *SymbolTable) SetOwner(owner Symbol) {
	t.AsrOwner = owner
}

// ValidateName rejects empty names and anything outside ASCII
// alphanumerics plus underscore, per spec section 4.1.
func ValidateName(name string) error {
	if name == "" {
		return newError(ErrLexicalName, nopos, "empty identifier")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return newError(ErrLexicalName, nopos, "identifier %q contains invalid character %q", name, r)
		}
	}
	return nil
}

func canon(name string) string { return strings.ToLower(name) }

// GetLocal looks up name only in this table, not its ancestors.
func (t *SymbolTable) GetLocal(name string) (Symbol, bool) {
	sym, ok := t.symbols[canon(name)]
	return sym, ok
}

// Resolve walks the Parent chain starting at t and returns the nearest
// binding of name, per the Resolve-symbol operation of spec section 4.1.
func (t *SymbolTable) Resolve(name string) (Symbol, bool) {
	key := canon(name)
	for cur := t; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[key]; ok {
			return sym, true
		}
	}
	return nil, false
}

// ResolveTable behaves like Resolve but also returns the table in the
// Parent chain that actually holds the binding, so a caller attributing a
// reference (is this name local to the referencing scope, or inherited
// from an enclosing one?) does not have to re-walk the chain a second
// time to find out.
func (t *SymbolTable) ResolveTable(name string) (Symbol, *SymbolTable, bool) {
	key := canon(name)
	for cur := t; cur != nil; cur = cur.Parent {
		if sym, ok := cur.symbols[key]; ok {
			return sym, cur, true
		}
	}
	return nil, nil, false
}

// Define inserts sym under name, failing with ErrDuplicateSymbol if the
// name is already bound in this table. Use DefineShadowing during
// module-import shadowing, where overwrite is the documented behavior.
func (t *SymbolTable) Define(name string, sym Symbol) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	key := canon(name)
	if t.symbols == nil {
		t.symbols = make(map[string]Symbol)
	}
	if _, exists := t.symbols[key]; exists {
		return newError(ErrDuplicateSymbol, nopos, "symbol %q already defined in this scope", name)
	}
	t.symbols[key] = sym
	t.order = append(t.order, key)
	return nil
}

// DefineShadowing inserts sym under name unconditionally, replacing any
// existing binding. The caller (resolver) is responsible for emitting the
// shadow warning spec section 4.3.3 requires before calling this.
func (t *SymbolTable) DefineShadowing(name string, sym Symbol) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	key := canon(name)
	if t.symbols == nil {
		t.symbols = make(map[string]Symbol)
	}
	if _, exists := t.symbols[key]; !exists {
		t.order = append(t.order, key)
	}
	t.symbols[key] = sym
	return nil
}

// Names returns every bound name in this table, in stable first-insertion
// order — spec section 3: "iteration order must be stable within a run so
// that diagnostics and dependency lists are deterministic".
func (t *SymbolTable) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Symbols returns every bound Symbol in the same stable order as Names.
func (t *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.symbols[name])
	}
	return out
}

// FindScoped performs the multi-hop lookup ExternalSymbol coherence
// checking relies on: starting at t, descend through scopePath (each
// element the name of a nested Module/Struct/Enum/Union/Function symbol
// whose own table is the next hop) and return originalName's binding in
// the final table.
func FindScoped(t *SymbolTable, originalName string, scopePath []string) (Symbol, bool) {
	cur := t
	for _, step := range scopePath {
		sym, ok := cur.GetLocal(step)
		if !ok {
			return nil, false
		}
		next, ok := ownTableOf(sym)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur.GetLocal(originalName)
}

// ownTableOf returns the table a symbol owns, if it owns one at all.
func ownTableOf(sym Symbol) (*SymbolTable, bool) {
	switch s := sym.(type) {
	case *TranslationUnit:
		return s.Table, true
	case *Program:
		return s.Table, true
	case *Module:
		return s.Table, true
	case *Function:
		return s.Table, true
	case *Struct:
		return s.Table, true
	case *Enum:
		return s.Table, true
	case *Union:
		return s.Table, true
	case *Block:
		return s.Table, true
	case *AssociateBlock:
		return s.Table, true
	case *Template:
		return s.Table, true
	case *Requirement:
		return s.Table, true
	default:
		return nil, false
	}
}

// InScope implements the "symtab_in_scope" predicate positively (spec
// section 9, Open Question 1): it walks up from current along Parent,
// stopping at the table whose Counter matches target's Counter, and
// requires that table's local binding for name be pointer-identical to
// sym. Any call whose target table is not found on this chain is, by
// construction, a cross-scope reference and must be recorded as a
// dependency — this function is the single place that decides that.
func InScope(current, target *SymbolTable, name string, sym Symbol) bool {
	for cur := current; cur != nil; cur = cur.Parent {
		if cur.Counter != target.Counter {
			continue
		}
		got, ok := cur.GetLocal(name)
		return ok && got == sym
	}
	return false
}
