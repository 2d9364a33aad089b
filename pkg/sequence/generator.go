package sequence

import (
	"sort"

	animerrors "github.com/go-drift/animatronic/pkg/errors"
)

// DefaultName is the animation name used when Play is called without one
// and the name a flat sequence is registered under.
const DefaultName = "default"

// Generator resolves the sequence for an animation name. nodes maps every
// registered component name to its node handle at the time of the call.
type Generator interface {
	Resolve(name string, nodes map[string]any) (Sequence, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(name string, nodes map[string]any) (Sequence, error)

// Resolve calls f.
func (f GeneratorFunc) Resolve(name string, nodes map[string]any) (Sequence, error) {
	return f(name, nodes)
}

// Static returns a generator that plays seq under DefaultName.
func Static(seq Sequence) Generator {
	return Dynamic(func(map[string]any) (Sequence, error) { return seq, nil })
}

// Dynamic returns a generator that calls fn with the registered nodes on
// every Play of DefaultName, so phases can depend on live measurements.
func Dynamic(fn func(nodes map[string]any) (Sequence, error)) Generator {
	return GeneratorFunc(func(name string, nodes map[string]any) (Sequence, error) {
		if name != "" && name != DefaultName {
			return nil, unknownAnimation(name)
		}
		return fn(nodes)
	})
}

// Named maps animation names to generators. Each entry is resolved as its
// generator's DefaultName.
type Named map[string]Generator

// Resolve looks up name (DefaultName when empty) and resolves its generator.
func (n Named) Resolve(name string, nodes map[string]any) (Sequence, error) {
	if name == "" {
		name = DefaultName
	}
	g, ok := n[name]
	if !ok {
		return nil, unknownAnimation(name)
	}
	return g.Resolve(DefaultName, nodes)
}

// Names returns the animation names of n in sorted order.
func (n Named) Names() []string {
	names := make([]string, 0, len(n))
	for name := range n {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unknownAnimation(name string) error {
	err := animerrors.New("sequence.Generator.Resolve", animerrors.KindUnknownAnimation,
		"no animation named %q", name)
	err.Animation = name
	return err
}
