// Package stage holds the in-memory components the CLI animates. Each
// component is a style map that registry updates merge into and resets
// restore.
package stage

import (
	"maps"
	"slices"

	"github.com/go-drift/animatronic/pkg/registry"
	"github.com/go-drift/animatronic/pkg/sequence"
	"github.com/go-drift/animatronic/pkg/style"
)

// Component is one animated element.
type Component struct {
	Name    string
	Initial style.Map
	Styles  style.Map
	Updates int
}

// Stage is a set of components keyed by name.
type Stage struct {
	components map[string]*Component
	// OnUpdate, if set, is called after every applied patch.
	OnUpdate func(c *Component, patch style.Map)
}

// New creates a stage with the given initial styles.
func New(initial map[string]style.Map) *Stage {
	s := &Stage{components: make(map[string]*Component, len(initial))}
	for name, styles := range initial {
		s.Add(name, styles)
	}
	return s
}

// Add creates or replaces a component.
func (s *Stage) Add(name string, initial style.Map) {
	if initial == nil {
		initial = style.Map{}
	}
	s.components[name] = &Component{Name: name, Initial: initial.Clone(), Styles: initial.Clone()}
}

// Ensure adds an empty component for every name in names not yet on stage.
func (s *Stage) Ensure(names ...string) {
	for _, name := range names {
		if _, ok := s.components[name]; !ok {
			s.Add(name, nil)
		}
	}
}

// Names returns the component names in sorted order.
func (s *Stage) Names() []string {
	return slices.Sorted(maps.Keys(s.components))
}

// Component returns the component called name, or nil.
func (s *Stage) Component(name string) *Component {
	return s.components[name]
}

// Register registers every component with r. The node handle is the
// *Component itself.
func (s *Stage) Register(r *registry.Registry) {
	for _, name := range s.Names() {
		c := s.components[name]
		r.Register(name, c,
			func(patch style.Map) {
				maps.Copy(c.Styles, patch)
				c.Updates++
				if s.OnUpdate != nil {
					s.OnUpdate(c, patch)
				}
			},
			func() {
				c.Styles = c.Initial.Clone()
			})
	}
}

// ComponentsIn returns the sorted, de-duplicated component names referenced
// by seq.
func ComponentsIn(seq sequence.Sequence) []string {
	seen := make(map[string]bool)
	for _, phase := range seq {
		for name := range phase {
			seen[name] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
