package asr

import (
	"errors"
	"testing"
)

func TestStoreNewTableCountersAreUnique(t *testing.T) {
	store := NewStore()
	root := store.NewTable(nil)
	child1 := store.NewTable(root)
	child2 := store.NewTable(root)

	if child1.Counter == child2.Counter {
		t.Fatalf("expected distinct counters, got %d == %d", child1.Counter, child2.Counter)
	}
	if child1.Parent != root || child2.Parent != root {
		t.Fatalf("expected both children to have root as parent")
	}
}

func TestSymbolTableDefineDuplicate(t *testing.T) {
	store := NewStore()
	table := store.NewTable(nil)

	v := &Variable{base: base{name: "x"}}
	if err := table.Define("x", v); err != nil {
		t.Fatalf("first Define failed: %v", err)
	}
	err := table.Define("x", v)
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("expected ErrDuplicateSymbol, got %v", err)
	}
}

func TestSymbolTableDefineIsCaseInsensitive(t *testing.T) {
	store := NewStore()
	table := store.NewTable(nil)

	if err := table.Define("Foo", &Variable{base: base{name: "Foo"}}); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if _, ok := table.GetLocal("FOO"); !ok {
		t.Fatalf("expected case-insensitive lookup to find symbol")
	}
	err := table.Define("foo", &Variable{base: base{name: "foo"}})
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("expected case-insensitive duplicate detection, got %v", err)
	}
}

func TestSymbolTableResolveWalksParentChain(t *testing.T) {
	store := NewStore()
	root := store.NewTable(nil)
	child := store.NewTable(root)

	outer := &Variable{base: base{name: "outer"}}
	if err := root.Define("outer", outer); err != nil {
		t.Fatal(err)
	}

	got, ok := child.Resolve("outer")
	if !ok || got != outer {
		t.Fatalf("expected to resolve 'outer' through parent chain")
	}
	if _, ok := child.GetLocal("outer"); ok {
		t.Fatalf("GetLocal must not search ancestors")
	}
}

func TestSymbolTableNamesStableOrder(t *testing.T) {
	store := NewStore()
	table := store.NewTable(nil)
	for _, n := range []string{"c", "a", "b"} {
		if err := table.Define(n, &Variable{base: base{name: n}}); err != nil {
			t.Fatal(err)
		}
	}
	got := table.Names()
	want := []string{"c", "a", "b"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("Names() = %v, want insertion order %v", got, want)
		}
	}
}

func TestValidateNameRejectsInvalidIdentifiers(t *testing.T) {
	cases := []struct {
		name    string
		wantErr bool
	}{
		{"foo", false},
		{"foo_bar", false},
		{"foo123", false},
		{"", true},
		{"foo-bar", true},
		{"foo.bar", true},
	}
	for _, c := range cases {
		err := ValidateName(c.name)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", c.name, err, c.wantErr)
		}
		if err != nil && !errors.Is(err, ErrLexicalName) {
			t.Errorf("ValidateName(%q) error kind = %v, want ErrLexicalName", c.name, err)
		}
	}
}

func TestExternalSymbolUnwrapsOneHop(t *testing.T) {
	store := NewStore()
	modTable := store.NewTable(nil)
	real := &Function{base: base{name: "foo"}}
	if err := modTable.Define("foo", real); err != nil {
		t.Fatal(err)
	}

	progTable := store.NewTable(nil)
	firstHop := NewExternalSymbol("foo", progTable, real, "m", "foo", nil)

	otherTable := store.NewTable(nil)
	secondHop := NewExternalSymbol("foo", otherTable, firstHop, "", "foo", nil)

	if secondHop.External != real {
		t.Fatalf("expected second-hop ExternalSymbol to unwrap directly to the real target")
	}
	if secondHop.ModuleName != "m" {
		t.Fatalf("expected unwrapped ExternalSymbol to inherit origin module name, got %q", secondHop.ModuleName)
	}
	if GetPastExternal(secondHop) != real {
		t.Fatalf("GetPastExternal should reach the real target")
	}
}

func TestFindScoped(t *testing.T) {
	store := NewStore()
	root := store.NewTable(nil)

	modTable := store.NewTable(root)
	mod := &Module{base: base{name: "m"}, Table: modTable}
	modTable.SetOwner(mod)
	if err := root.Define("m", mod); err != nil {
		t.Fatal(err)
	}

	fn := &Function{base: base{name: "foo"}}
	if err := modTable.Define("foo", fn); err != nil {
		t.Fatal(err)
	}

	got, ok := FindScoped(root, "foo", []string{"m"})
	if !ok || got != fn {
		t.Fatalf("FindScoped did not resolve through module scope path")
	}
}

func TestInScope(t *testing.T) {
	store := NewStore()
	root := store.NewTable(nil)
	fn := &Variable{base: base{name: "x"}}
	if err := root.Define("x", fn); err != nil {
		t.Fatal(err)
	}
	child := store.NewTable(root)

	if !InScope(child, root, "x", fn) {
		t.Fatalf("expected InScope to find x via ancestor chain")
	}
	other := store.NewTable(nil)
	if InScope(other, root, "x", fn) {
		t.Fatalf("expected InScope to fail for an unrelated table")
	}
}
