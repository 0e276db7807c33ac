package config

import "testing"

func TestVariableMemoization(t *testing.T) {
	v := NewVariable("${value}")

	if _, ok := v.Value(); ok {
		t.Fatal("expected no cached value before SetValue")
	}

	v.SetValue("resolved")
	got, ok := v.Value()
	if !ok || got != "resolved" {
		t.Errorf("Value() = %q, %v; want resolved, true", got, ok)
	}

	// The empty string is a valid cached value, distinct from "unset".
	v.SetValue("")
	got, ok = v.Value()
	if !ok || got != "" {
		t.Errorf("Value() = %q, %v; want empty string, true", got, ok)
	}

	v.Reset()
	if _, ok := v.Value(); ok {
		t.Error("expected no cached value after Reset")
	}
	if v.Expr != "${value}" {
		t.Errorf("Reset changed Expr to %q", v.Expr)
	}
}

func TestVariableClone(t *testing.T) {
	v := NewVariable("expr")
	v.SetValue("cached")

	clone := v.Clone()
	clone.SetValue("changed")

	if got, _ := v.Value(); got != "cached" {
		t.Errorf("original value = %q, want cached", got)
	}
	if got, _ := clone.Value(); got != "changed" {
		t.Errorf("clone value = %q, want changed", got)
	}
}

func TestMultiVariableClone(t *testing.T) {
	mv := NewMultiVariable("cmd", "echo one", "echo two")
	mv.Values[0].SetValue("one")

	clone := mv.Clone()
	clone.Values[0].SetValue("other")

	if got, _ := mv.Values[0].Value(); got != "one" {
		t.Errorf("original value = %q, want one", got)
	}
	if len(clone.Values) != 2 {
		t.Fatalf("clone has %d values, want 2", len(clone.Values))
	}
}

func TestConfigurationReset(t *testing.T) {
	cfg := New()
	cfg.Variables = append(cfg.Variables, NewNamedVariable("name", "expr"))
	cfg.Variables[0].SetValue("cached")

	tree := NewTree("tree")
	tree.Path.SetValue("/repos/tree")
	tree.Branch.SetValue("main")
	tree.Variables = append(tree.Variables, NewNamedVariable("tv", "x"))
	tree.Variables[0].SetValue("cached")
	cfg.Trees = append(cfg.Trees, tree)

	cfg.Reset()

	if _, ok := cfg.Variables[0].Value(); ok {
		t.Error("config variable still cached after Reset")
	}
	if _, ok := tree.Variables[0].Value(); ok {
		t.Error("tree variable still cached after Reset")
	}
	if _, ok := tree.Branch.Value(); ok {
		t.Error("tree branch still cached after Reset")
	}
	// Paths are resolved once at load time and must survive resets.
	if got, ok := tree.Path.Value(); !ok || got != "/repos/tree" {
		t.Errorf("tree path = %q, %v after Reset; want /repos/tree, true", got, ok)
	}
}

func TestApplicationContextArena(t *testing.T) {
	root := New()
	app := NewApplicationContext(root)

	if app.RootId() != root.ID {
		t.Errorf("RootId() = %v, root.ID = %v", app.RootId(), root.ID)
	}
	if app.Get(0) != root {
		t.Error("zero handle should resolve to the root")
	}

	child := New()
	id := app.AddGraft(root.ID, child)
	if id.IsNone() {
		t.Fatal("AddGraft returned the none handle")
	}
	if child.Parent != root.ID {
		t.Errorf("child.Parent = %v, want %v", child.Parent, root.ID)
	}
	if app.Get(id) != child {
		t.Error("Get(id) did not return the grafted child")
	}
	if app.Len() != 2 {
		t.Errorf("Len() = %d, want 2", app.Len())
	}
}
