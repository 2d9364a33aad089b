package registry

import (
	"reflect"
	"testing"

	"github.com/go-drift/animatronic/pkg/style"
)

func TestRegistry_ApplyAndUnregister(t *testing.T) {
	r := New()
	var got style.Map
	r.Register("box", "node-1", func(p style.Map) { got = p }, nil)

	if !r.Apply("box", style.Map{"left": "1px"}) {
		t.Fatal("Apply on registered component returned false")
	}
	if got["left"] != "1px" {
		t.Errorf("patch = %v", got)
	}

	r.Unregister("box")
	r.Unregister("box")
	got = nil
	if r.Apply("box", style.Map{"left": "2px"}) {
		t.Error("Apply after Unregister returned true")
	}
	if got != nil {
		t.Error("update ran after Unregister")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := New()
	r.Register("a", 1, nil, nil)
	r.Register("a", 2, nil, nil)
	e, ok := r.Lookup("a")
	if !ok || e.Node != 2 || e.Name != "a" {
		t.Errorf("Lookup = %+v, %v", e, ok)
	}
	if _, ok := r.Lookup("b"); ok {
		t.Error("Lookup of unknown name succeeded")
	}
	if !r.Has("a") || r.Has("b") || r.Len() != 1 {
		t.Error("Has/Len disagree with registrations")
	}
	if !r.Apply("a", nil) {
		t.Error("Apply with nil update should still report the entry")
	}
}

func TestRegistry_NodesIsSnapshot(t *testing.T) {
	r := New()
	r.Register("a", "x", nil, nil)
	r.Register("b", "y", nil, nil)
	nodes := r.Nodes()
	if !reflect.DeepEqual(nodes, map[string]any{"a": "x", "b": "y"}) {
		t.Errorf("Nodes = %v", nodes)
	}
	nodes["c"] = "z"
	if r.Has("c") {
		t.Error("mutating the snapshot changed the registry")
	}
}

func TestRegistry_ResetAllInNameOrder(t *testing.T) {
	r := New()
	var order []string
	for _, name := range []string{"c", "a", "b"} {
		r.Register(name, nil, nil, func() { order = append(order, name) })
	}
	r.Register("noreset", nil, nil, nil)
	r.ResetAll()
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("reset order = %v", order)
	}
}

func TestRegistry_IndependentInstances(t *testing.T) {
	a, b := New(), New()
	a.Register("box", nil, nil, nil)
	if b.Has("box") {
		t.Error("registries share state")
	}
}
