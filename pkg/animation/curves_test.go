package animation_test

import (
	"math"
	"testing"

	"github.com/go-drift/animatronic/pkg/animation"
)

func TestCurves_Endpoints(t *testing.T) {
	for _, name := range animation.CurveNames() {
		curve, err := animation.ParseCurve(name)
		if err != nil {
			t.Fatalf("ParseCurve(%q): %v", name, err)
		}
		if got := curve(0); math.Abs(got) > 1e-6 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := curve(1); got != 1 {
			t.Errorf("%s(1) = %v, want exactly 1", name, got)
		}
	}
}

func TestCubicBezier_Monotonic(t *testing.T) {
	curve := animation.CubicBezier(0.25, 0.1, 0.25, 1.0)
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := curve(float64(i) / 100)
		if v < prev-1e-9 {
			t.Fatalf("curve decreased at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestParseCurve(t *testing.T) {
	c, err := animation.ParseCurve("")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c(0.5)-animation.StandardCurve(0.5)) > 1e-12 {
		t.Error("empty name should resolve to the standard curve")
	}

	c, err = animation.ParseCurve(" Cubic-Bezier(0, 0, 1, 1) ")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c(0.3)-0.3) > 1e-3 {
		t.Errorf("linear bezier(0.3) = %v", c(0.3))
	}

	for _, bad := range []string{"wobble", "cubic-bezier(1, 2)", "cubic-bezier(a, 0, 1, 1)"} {
		if _, err := animation.ParseCurve(bad); err == nil {
			t.Errorf("ParseCurve(%q) succeeded", bad)
		}
	}
}

func TestCurveNames_Sorted(t *testing.T) {
	names := animation.CurveNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
