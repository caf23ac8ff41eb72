package asr

// DependencyTracker accumulates the running dependency list for one
// Function, Module, Struct, or Variable while the resolver walks its body
// (spec section 4.3.9). It is not itself a Symbol field; the resolver
// holds one per entity currently being resolved and copies Finalize's
// result into the entity's Dependencies slice when the entity closes.
type DependencyTracker struct {
	seen  map[string]bool
	names []string
}

// NewDependencyTracker returns an empty tracker.
func NewDependencyTracker() *DependencyTracker {
	return &DependencyTracker{seen: make(map[string]bool)}
}

// Add records a dependency on name, a no-op if name was already recorded
// (first-occurrence order is preserved, per spec: "the list is
// deduplicated while preserving first-occurrence order").
func (d *DependencyTracker) Add(name string) {
	if name == "" || d.seen[name] {
		return
	}
	d.seen[name] = true
	d.names = append(d.names, name)
}

// AddReference records a reference crossing resolved against the owning
// table ownerTable: same-table references are not dependencies at all
// (spec: "references to symbols in the same table are not added"), an
// ExternalSymbol contributes its origin module's name rather than its own
// local name (spec: "references to ExternalSymbol propagate the name of
// the origin module"), and anything else contributes the referenced
// symbol's own name.
func (d *DependencyTracker) AddReference(ownerTable *SymbolTable, target Symbol, targetTable *SymbolTable) {
	if targetTable != nil && targetTable.Counter == ownerTable.Counter {
		return
	}
	if ext, ok := target.(*ExternalSymbol); ok {
		d.Add(ext.ModuleName)
		return
	}
	d.Add(target.Name())
}

// Finalize returns the accumulated dependency list. The tracker's
// internal dedup set already guarantees no duplicates; callers should
// treat the returned slice as owned by the caller (a fresh copy).
func (d *DependencyTracker) Finalize() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// DependencySet builds the lookup set spec section 4.2's "Dependency
// equality" check and spec section 8's property test both need: a set
// view of a dependency list for order-independent comparison.
func DependencySet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// DependenciesEqual reports whether two dependency lists contain the same
// set of names, ignoring order and ignoring duplicates (dependency lists
// should never contain duplicates, but the comparison itself does not
// assume that, so it errs on the robust side).
func DependenciesEqual(a, b []string) bool {
	setA, setB := DependencySet(a), DependencySet(b)
	if len(setA) != len(setB) {
		return false
	}
	for n := range setA {
		if !setB[n] {
			return false
		}
	}
	return true
}

// HasDuplicates reports whether names contains the same entry more than
// once.
func HasDuplicates(names []string) bool {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return true
		}
		seen[n] = true
	}
	return false
}
