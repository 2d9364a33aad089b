package animation

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Curve maps linear progress in [0, 1] to eased progress.
//
// Standard curves: [LinearCurve], [Ease], [EaseIn], [EaseOut], [EaseInOut].
// Use [CubicBezier] to create custom curves matching CSS cubic-bezier(), or
// [FromTween] to adapt a Penner easing from github.com/tanema/gween/ease.
//
// See ExampleCubicBezier for custom curve usage.
type Curve func(float64) float64

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// StandardCurve is the Material "standard" curve used when a time based
// declaration does not name an easing.
var StandardCurve = CubicBezier(0.4, 0.0, 0.2, 1.0)

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Use for elements exiting the screen.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Use for elements entering the screen.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly with acceleration in the middle.
// Use for elements that stay on screen but change state.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Fallback to bisection to guarantee a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

// FromTween adapts a gween easing function to a Curve.
func FromTween(fn ease.TweenFunc) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var namedCurves = map[string]Curve{
	"linear":         LinearCurve,
	"standard":       StandardCurve,
	"ease":           Ease,
	"ease-in":        EaseIn,
	"ease-out":       EaseOut,
	"ease-in-out":    EaseInOut,
	"in-quad":        FromTween(ease.InQuad),
	"out-quad":       FromTween(ease.OutQuad),
	"in-out-quad":    FromTween(ease.InOutQuad),
	"in-cubic":       FromTween(ease.InCubic),
	"out-cubic":      FromTween(ease.OutCubic),
	"in-out-cubic":   FromTween(ease.InOutCubic),
	"in-sine":        FromTween(ease.InSine),
	"out-sine":       FromTween(ease.OutSine),
	"in-out-sine":    FromTween(ease.InOutSine),
	"in-expo":        FromTween(ease.InExpo),
	"out-expo":       FromTween(ease.OutExpo),
	"in-out-expo":    FromTween(ease.InOutExpo),
	"in-back":        FromTween(ease.InBack),
	"out-back":       FromTween(ease.OutBack),
	"in-out-back":    FromTween(ease.InOutBack),
	"out-bounce":     FromTween(ease.OutBounce),
	"out-elastic":    FromTween(ease.OutElastic),
	"in-out-elastic": FromTween(ease.InOutElastic),
}

// CurveNames returns the sorted names accepted by ParseCurve, excluding
// the cubic-bezier() form.
func CurveNames() []string {
	return slices.Sorted(maps.Keys(namedCurves))
}

// ParseCurve resolves a curve by name ("ease-out", "out-bounce") or from a
// CSS "cubic-bezier(x1, y1, x2, y2)" expression. The empty string resolves
// to StandardCurve.
func ParseCurve(name string) (Curve, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return StandardCurve, nil
	}
	if c, ok := namedCurves[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "cubic-bezier(") && strings.HasSuffix(name, ")") {
		args := strings.Split(name[len("cubic-bezier("):len(name)-1], ",")
		if len(args) != 4 {
			return nil, fmt.Errorf("cubic-bezier needs 4 arguments, got %d", len(args))
		}
		var p [4]float64
		for i, a := range args {
			v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
			if err != nil {
				return nil, fmt.Errorf("cubic-bezier argument %d: %w", i+1, err)
			}
			p[i] = v
		}
		return CubicBezier(p[0], p[1], p[2], p[3]), nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
