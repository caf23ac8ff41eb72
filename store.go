// Package asr implements the Abstract Semantic Representation: the typed,
// symbolic tree produced by the declaration resolver and certified by the
// verifier. It models the symbol-table arena, the tagged symbol and type
// variants, and the bookkeeping (dependency lists, flags) that later passes
// rely on.
package asr

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// counter issues process-unique SymbolTable IDs. Per spec this must be
// unique across the whole process, including when several compilation
// units run concurrently in the same driver, so it is a single global
// atomic rather than per-Store state.
var counter uint64

func nextCounter() uint64 {
	return atomic.AddUint64(&counter, 1)
}

// Store is the arena: it owns every SymbolTable and every Symbol produced
// while resolving one translation unit. Nodes are kept alive for the
// lifetime of the compilation unit; the arena is freed as a whole when the
// Store is dropped, there is no per-node deallocation.
type Store struct {
	SessionID uuid.UUID

	tables []*SymbolTable
}

// NewStore creates an empty arena tagged with a fresh session identifier.
// The session ID is surfaced to diagnostics ("which compilation unit
// produced this tree") and used as the cache-key namespace passed to the
// remote module loader.
func NewStore() *Store {
	return &Store{SessionID: uuid.New()}
}

// NewTable allocates a fresh, empty table as a child of parent (nil for the
// translation-unit's own table) with a monotone counter. The owner field is
// deliberately left unset: callers construct the owning ASR node first,
// bind it via SetOwner, then proceed. This two-step dance exists because
// owner and table construct each other (an owner value that embeds its own
// table, and a table whose AsrOwner points back at the owner) and Go has no
// way to tie the knot in one literal.
func (s *Store) NewTable(parent *SymbolTable) *SymbolTable {
	t := &SymbolTable{
		Counter: nextCounter(),
		Parent:  parent,
		symbols: make(map[string]Symbol),
	}
	s.tables = append(s.tables, t)
	return t
}

// Tables returns every table allocated from this arena, in allocation
// order. Used by the verifier to walk the full reachable set independent
// of tree structure (so it can also catch orphaned tables, if any existed).
func (s *Store) Tables() []*SymbolTable {
	return s.tables
}
