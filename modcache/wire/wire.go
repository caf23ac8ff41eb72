// Package wire implements modcache's on-disk module blob format: a
// compact tag/varint/length-delimited encoding of a module's exported
// symbol names and kinds plus its dependency list, sufficient to answer
// a later `use` without re-parsing source. It is not a full ASR
// round-trip format — a decoded module's symbols are stubs carrying only
// what a consumer of `use M` needs to bind a name.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/gofortran/asr"
)

// Kind tags which concrete Symbol type a wire entry stands for.
type Kind int32

const (
	KindUnknown Kind = iota
	KindFunction
	KindVariable
	KindStruct
	KindGenericProcedure
	KindCustomOperator
	KindEnum
	KindUnion
)

const (
	fieldSymbolEntry     protowire.Number = 1
	fieldDependency      protowire.Number = 2
	symbolEntryFieldName protowire.Number = 1
	symbolEntryFieldKind protowire.Number = 2
)

func kindOf(sym asr.Symbol) Kind {
	switch sym.(type) {
	case *asr.Function:
		return KindFunction
	case *asr.Variable:
		return KindVariable
	case *asr.Struct:
		return KindStruct
	case *asr.GenericProcedure:
		return KindGenericProcedure
	case *asr.CustomOperator:
		return KindCustomOperator
	case *asr.Enum:
		return KindEnum
	case *asr.Union:
		return KindUnion
	default:
		return KindUnknown
	}
}

// isPublic reports whether sym should survive into the wire blob; a
// PRIVATE symbol is never visible to a plain `use` and would only bloat
// the cache entry.
func isPublic(sym asr.Symbol) bool {
	switch s := sym.(type) {
	case *asr.Function:
		return s.Access != asr.AccessPrivate
	case *asr.Variable:
		return s.Access != asr.AccessPrivate
	case *asr.GenericProcedure:
		return s.Access != asr.AccessPrivate
	case *asr.CustomOperator:
		return s.Access != asr.AccessPrivate
	default:
		return true
	}
}

// EncodeModule serializes mod's public symbol names/kinds and its
// dependency list.
func EncodeModule(mod *asr.Module) []byte {
	var b []byte
	for _, name := range mod.Table.Names() {
		sym, ok := mod.Table.GetLocal(name)
		if !ok || !isPublic(sym) {
			continue
		}
		var entry []byte
		entry = protowire.AppendTag(entry, symbolEntryFieldName, protowire.BytesType)
		entry = protowire.AppendString(entry, name)
		entry = protowire.AppendTag(entry, symbolEntryFieldKind, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(kindOf(sym)))

		b = protowire.AppendTag(b, fieldSymbolEntry, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	for _, dep := range mod.Dependencies {
		b = protowire.AppendTag(b, fieldDependency, protowire.BytesType)
		b = protowire.AppendString(b, dep)
	}
	return b
}

// stubEntry is one decoded (name, kind) pair, ordered as it appeared in
// the blob so DecodeModule can rebuild Names() in the same order.
type stubEntry struct {
	name string
	kind Kind
}

// DecodeModule parses data back into a Module named name, populated with
// stub symbols for every encoded entry (a bare Function with no body, a
// bare Variable with no type, and so on) — enough for `use` resolution
// to bind against, not a working procedure body.
func DecodeModule(name string, data []byte) (*asr.Module, error) {
	store := asr.NewStore()
	table := store.NewTable(nil)
	mod := asr.NewModule(name, table, nil)
	table.SetOwner(mod)

	var entries []stubEntry
	var deps []string

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("wire: malformed tag in module %q", name)
		}
		data = data[n:]

		switch num {
		case fieldSymbolEntry:
			raw, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("wire: malformed symbol entry in module %q", name)
			}
			data = data[n:]
			entry, err := decodeSymbolEntry(raw)
			if err != nil {
				return nil, fmt.Errorf("wire: module %q: %w", name, err)
			}
			entries = append(entries, entry)

		case fieldDependency:
			depName, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("wire: malformed dependency in module %q", name)
			}
			data = data[n:]
			deps = append(deps, depName)

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("wire: malformed field in module %q", name)
			}
			data = data[n:]
		}
	}

	for _, e := range entries {
		sym := stubSymbol(e, table)
		if sym == nil {
			continue
		}
		if err := table.Define(e.name, sym); err != nil {
			return nil, fmt.Errorf("wire: module %q: %w", name, err)
		}
	}
	mod.Dependencies = deps
	return mod, nil
}

func decodeSymbolEntry(data []byte) (stubEntry, error) {
	var e stubEntry
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return e, fmt.Errorf("malformed symbol entry tag")
		}
		data = data[n:]
		switch num {
		case symbolEntryFieldName:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return e, fmt.Errorf("malformed symbol entry name")
			}
			data = data[n:]
			e.name = s
		case symbolEntryFieldKind:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return e, fmt.Errorf("malformed symbol entry kind")
			}
			data = data[n:]
			e.kind = Kind(v)
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return e, fmt.Errorf("malformed symbol entry field")
			}
			data = data[n:]
		}
	}
	return e, nil
}

func stubSymbol(e stubEntry, table *asr.SymbolTable) asr.Symbol {
	switch e.kind {
	case KindFunction:
		return asr.NewFunction(e.name, table, nil)
	case KindVariable:
		return asr.NewVariable(e.name, table, nil, nil)
	case KindStruct:
		return asr.NewStruct(e.name, table, nil)
	case KindGenericProcedure:
		return asr.NewGenericProcedure(e.name, table)
	case KindCustomOperator:
		return asr.NewCustomOperator(e.name, table)
	case KindEnum:
		return asr.NewEnum(e.name, table, nil)
	case KindUnion:
		return asr.NewUnion(e.name, table, nil)
	default:
		return nil
	}
}
