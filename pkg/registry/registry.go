// Package registry is the table of components an orchestrator animates.
//
// Components register under a name with their node handle and two
// callbacks: update applies a style patch, reset removes every style the
// engine applied. Entries may disappear at any time (a component unmounting
// mid-animation); Apply then reports false and the caller skips the
// mutation.
package registry

import (
	"maps"
	"slices"

	"github.com/go-drift/animatronic/pkg/style"
)

// Entry is one registered component.
type Entry struct {
	Name   string
	Node   any
	Update func(patch style.Map)
	Reset  func()
}

// Registry maps component names to entries. It is owned by a single
// orchestrator and, like it, is not safe for concurrent use.
type Registry struct {
	entries map[string]*Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds or replaces the component called name. Nil callbacks are
// treated as no-ops.
func (r *Registry) Register(name string, node any, update func(style.Map), reset func()) {
	r.entries[name] = &Entry{Name: name, Node: node, Update: update, Reset: reset}
}

// Unregister removes name. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	delete(r.entries, name)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.entries))
}

// Nodes returns a snapshot of name to node for every registered component.
func (r *Registry) Nodes() map[string]any {
	nodes := make(map[string]any, len(r.entries))
	for name, e := range r.entries {
		nodes[name] = e.Node
	}
	return nodes
}

// Apply passes patch to the update callback of name. It returns false if
// name is not registered.
func (r *Registry) Apply(name string, patch style.Map) bool {
	e, ok := r.entries[name]
	if !ok {
		return false
	}
	if e.Update != nil {
		e.Update(patch)
	}
	return true
}

// ResetAll calls every reset callback in name order.
func (r *Registry) ResetAll() {
	for _, name := range r.Names() {
		e, ok := r.entries[name]
		if ok && e.Reset != nil {
			e.Reset()
		}
	}
}
