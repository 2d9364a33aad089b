package sequence

import (
	"slices"
	"sort"
	"time"

	animerrors "github.com/go-drift/animatronic/pkg/errors"
)

// Track is the ordered list of declarations one component runs in a phase.
// Declarations of a track run back to back.
type Track []Declaration

// Phase maps component names to the tracks they run concurrently.
type Phase map[string]Track

// Components returns the component names of p in sorted order. Tracks are
// started in this order.
func (p Phase) Components() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the total number of declarations in p.
func (p Phase) Count() int {
	n := 0
	for _, track := range p {
		n += len(track)
	}
	return n
}

// Sequence is an ordered list of phases.
type Sequence []Phase

// Validate checks every declaration of s. known reports whether a component
// name is registered; pass nil to skip the check. An empty sequence is an
// error.
func (s Sequence) Validate(known func(name string) bool) error {
	const op = "sequence.Sequence.Validate"
	if len(s) == 0 {
		return animerrors.New(op, animerrors.KindEmptySequence, "sequence resolved to zero phases")
	}
	for i, phase := range s {
		for _, name := range phase.Components() {
			if known != nil && !known(name) {
				err := animerrors.New(op, animerrors.KindUnknownComponent,
					"no component registered as %q", name)
				err.Phase = i
				err.Component = name
				return err
			}
			for _, decl := range phase[name] {
				if err := decl.Validate(); err != nil {
					ae := animerrors.Wrap(op, animerrors.KindUnknown, err)
					ae.Phase = i
					ae.Component = name
					return ae
				}
			}
		}
	}
	return nil
}

// Reverse returns s played backwards. Phase order and the order of every
// track are reversed, From and To are swapped, and each delay d becomes
// max+min-d over the delays of its phase, so the component that started
// last starts first. Reversing twice yields the original delays.
func Reverse(s Sequence) Sequence {
	out := make(Sequence, 0, len(s))
	for _, phase := range slices.Backward(s) {
		lo, hi := delayRange(phase)
		rp := make(Phase, len(phase))
		for name, track := range phase {
			rt := make(Track, 0, len(track))
			for _, decl := range slices.Backward(track) {
				decl.From, decl.To = decl.To, decl.From
				decl.Delay = hi + lo - decl.Delay
				rt = append(rt, decl)
			}
			rp[name] = rt
		}
		out = append(out, rp)
	}
	return out
}

func delayRange(p Phase) (lo, hi time.Duration) {
	first := true
	for _, track := range p {
		for _, decl := range track {
			if first || decl.Delay < lo {
				lo = decl.Delay
			}
			if first || decl.Delay > hi {
				hi = decl.Delay
			}
			first = false
		}
	}
	return lo, hi
}
