package asr

import "testing"

func TestDependencyTrackerDedupsPreservingOrder(t *testing.T) {
	dt := NewDependencyTracker()
	dt.Add("foo")
	dt.Add("bar")
	dt.Add("foo")
	dt.Add("baz")

	got := dt.Finalize()
	want := []string{"foo", "bar", "baz"}
	if len(got) != len(want) {
		t.Fatalf("Finalize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Finalize() = %v, want %v", got, want)
		}
	}
}

func TestDependencyTrackerAddReferenceSameTableIgnored(t *testing.T) {
	store := NewStore()
	table := store.NewTable(nil)
	sibling := &Variable{base: base{name: "y"}}

	dt := NewDependencyTracker()
	dt.AddReference(table, sibling, table)
	if len(dt.Finalize()) != 0 {
		t.Fatalf("expected same-table reference to be ignored, got %v", dt.Finalize())
	}
}

func TestDependencyTrackerAddReferenceExternalUsesOriginModule(t *testing.T) {
	store := NewStore()
	owner := store.NewTable(nil)
	other := store.NewTable(nil)

	target := &Function{base: base{name: "foo"}}
	ext := NewExternalSymbol("foo", owner, target, "origin_mod", "foo", nil)

	dt := NewDependencyTracker()
	dt.AddReference(owner, ext, other)

	got := dt.Finalize()
	if len(got) != 1 || got[0] != "origin_mod" {
		t.Fatalf("expected dependency on origin module name, got %v", got)
	}
}

func TestDependenciesEqualIgnoresOrder(t *testing.T) {
	if !DependenciesEqual([]string{"a", "b", "c"}, []string{"c", "a", "b"}) {
		t.Fatalf("expected equal sets regardless of order")
	}
	if DependenciesEqual([]string{"a", "b"}, []string{"a", "c"}) {
		t.Fatalf("expected unequal sets to compare unequal")
	}
}

func TestHasDuplicates(t *testing.T) {
	if !HasDuplicates([]string{"a", "b", "a"}) {
		t.Fatalf("expected duplicates to be detected")
	}
	if HasDuplicates([]string{"a", "b", "c"}) {
		t.Fatalf("expected no duplicates to be detected")
	}
}
