package sequence

import (
	"errors"
	"testing"
	"time"

	animerrors "github.com/go-drift/animatronic/pkg/errors"
)

func TestStatic(t *testing.T) {
	seq := Sequence{{"box": {Timed(nil, nil, time.Millisecond)}}}
	gen := Static(seq)
	for _, name := range []string{"", DefaultName} {
		got, err := gen.Resolve(name, nil)
		if err != nil || len(got) != 1 {
			t.Errorf("Resolve(%q) = %v, %v", name, got, err)
		}
	}
	_, err := gen.Resolve("intro", nil)
	if !errors.Is(err, animerrors.ErrUnknownAnimation) {
		t.Errorf("named lookup on flat sequence: %v", err)
	}
}

func TestDynamic_ReceivesNodes(t *testing.T) {
	var seen map[string]any
	gen := Dynamic(func(nodes map[string]any) (Sequence, error) {
		seen = nodes
		return Sequence{}, nil
	})
	if _, err := gen.Resolve("", map[string]any{"box": 7}); err != nil {
		t.Fatal(err)
	}
	if seen["box"] != 7 {
		t.Errorf("nodes = %v", seen)
	}
}

func TestNamed(t *testing.T) {
	calls := 0
	named := Named{
		"intro": Static(Sequence{{}}),
		"outro": Dynamic(func(map[string]any) (Sequence, error) {
			calls++
			return Sequence{{}, {}}, nil
		}),
	}
	seq, err := named.Resolve("outro", nil)
	if err != nil || len(seq) != 2 {
		t.Fatalf("outro = %v, %v", seq, err)
	}
	named.Resolve("outro", nil)
	if calls != 2 {
		t.Errorf("dynamic entry resolved %d times, want once per call", calls)
	}
	_, err = named.Resolve("", nil)
	var ae *animerrors.AnimationError
	if !errors.As(err, &ae) || ae.Kind != animerrors.KindUnknownAnimation || ae.Animation != DefaultName {
		t.Errorf("default lookup = %v", err)
	}
	if got := named.Names(); len(got) != 2 || got[0] != "intro" {
		t.Errorf("Names = %v", got)
	}
}
