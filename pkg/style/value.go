package style

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Map is a set of style properties keyed by name. Values are strings or
// numbers (any Go integer or float type).
type Map map[string]any

// Keys returns the property names in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Value is a parsed style value. The set of implementations is closed.
type Value interface {
	isValue()
}

// Number is a unitless numeric value such as an opacity or a z-index.
type Number struct {
	Value float64
}

// Unit is a numeric value with a trailing unit ("12px", "90deg", "50%").
type Unit struct {
	Value float64
	Unit  string
}

// Color is an sRGB colour with a separate alpha channel in [0, 1].
type Color struct {
	colorful.Color
	Alpha float64
}

// Keyword is a non-numeric literal such as "solid", "auto" or "none".
// Keywords never interpolate.
type Keyword struct {
	Text string
}

// Layout controls how a Composite renders its children.
type Layout int

const (
	// LayoutFunctions renders "name1(child1) name2(child2)".
	LayoutFunctions Layout = iota
	// LayoutSpaced renders children separated by spaces.
	LayoutSpaced
	// LayoutList renders children separated by ", ".
	LayoutList
	// LayoutSpacing holds top, right, bottom, left and renders the shortest
	// CSS shorthand for them.
	LayoutSpacing
)

// Composite is an ordered group of values. Names holds the function names
// for LayoutFunctions and is empty otherwise. Prefix is a leading keyword
// (box-shadow "inset").
type Composite struct {
	Layout   Layout
	Names    []string
	Children []Value
	Prefix   string
}

func (Number) isValue()    {}
func (Unit) isValue()      {}
func (Color) isValue()     {}
func (Keyword) isValue()   {}
func (Composite) isValue() {}

// SameShape reports whether a and b can be interpolated channel by channel.
func SameShape(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		_, ok := b.(Number)
		return ok
	case Unit:
		bv, ok := b.(Unit)
		return ok && av.Unit == bv.Unit
	case Color:
		_, ok := b.(Color)
		return ok
	case Keyword:
		bv, ok := b.(Keyword)
		return ok && av.Text == bv.Text
	case Composite:
		bv, ok := b.(Composite)
		if !ok || av.Layout != bv.Layout || av.Prefix != bv.Prefix ||
			len(av.Children) != len(bv.Children) || len(av.Names) != len(bv.Names) {
			return false
		}
		for i := range av.Names {
			if av.Names[i] != bv.Names[i] {
				return false
			}
		}
		for i := range av.Children {
			if !SameShape(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Interpolate blends from toward to at ratio t. Numbers and units blend
// linearly, colours blend in CIE L*a*b*, composites blend element-wise.
// Values of different shapes return to unchanged.
func Interpolate(from, to Value, t float64) Value {
	if t == 1 || !SameShape(from, to) {
		return to
	}
	if t == 0 {
		return from
	}
	switch fv := from.(type) {
	case Number:
		tv := to.(Number)
		return Number{Value: lerp(fv.Value, tv.Value, t)}
	case Unit:
		tv := to.(Unit)
		return Unit{Value: lerp(fv.Value, tv.Value, t), Unit: fv.Unit}
	case Color:
		tv := to.(Color)
		return Color{
			Color: fv.Color.BlendLab(tv.Color, t).Clamped(),
			Alpha: clamp01(lerp(fv.Alpha, tv.Alpha, t)),
		}
	case Composite:
		tv := to.(Composite)
		children := make([]Value, len(fv.Children))
		for i := range fv.Children {
			children[i] = Interpolate(fv.Children[i], tv.Children[i], t)
		}
		return Composite{Layout: fv.Layout, Names: fv.Names, Children: children, Prefix: fv.Prefix}
	default:
		return to
	}
}

// Stringify renders v back into CSS text. It is the inverse of Parse up to
// number normalisation.
func Stringify(v Value) string {
	switch val := v.(type) {
	case Number:
		return formatNumber(val.Value)
	case Unit:
		return formatNumber(val.Value) + val.Unit
	case Color:
		return formatColor(val)
	case Keyword:
		return val.Text
	case Composite:
		return formatComposite(val)
	default:
		return ""
	}
}

func formatComposite(c Composite) string {
	if c.Layout == LayoutSpacing && len(c.Children) == 4 {
		return formatSpacing(c.Children)
	}
	parts := make([]string, len(c.Children))
	for i, child := range c.Children {
		s := Stringify(child)
		if c.Layout == LayoutFunctions && i < len(c.Names) {
			s = c.Names[i] + "(" + s + ")"
		}
		parts[i] = s
	}
	sep := " "
	if c.Layout == LayoutList {
		sep = ", "
	}
	out := strings.Join(parts, sep)
	if c.Prefix != "" {
		out = c.Prefix + " " + out
	}
	return out
}

func formatSpacing(sides []Value) string {
	top, right, bottom, left := Stringify(sides[0]), Stringify(sides[1]), Stringify(sides[2]), Stringify(sides[3])
	switch {
	case left != right:
		return top + " " + right + " " + bottom + " " + left
	case top != bottom:
		return top + " " + right + " " + bottom
	case top != right:
		return top + " " + right
	default:
		return top
	}
}

func formatColor(c Color) string {
	if c.Alpha >= 1 {
		return c.Clamped().Hex()
	}
	r, g, b := c.Clamped().RGB255()
	return "rgba(" + strconv.Itoa(int(r)) + ", " + strconv.Itoa(int(g)) + ", " +
		strconv.Itoa(int(b)) + ", " + formatNumber(c.Alpha) + ")"
}

// noiseGrid is the resolution below which interpolation noise is dropped.
const noiseGrid = 1e9

// formatNumber prints the shortest decimal that parses back to f after
// snapping it to a 1e-9 grid. Magnitudes of 1e6 and above are printed
// unsnapped; the grid would exceed float64 precision there.
func formatNumber(f float64) string {
	r := f
	if math.Abs(f) < 1e6 {
		r = math.Round(f*noiseGrid) / noiseGrid
	}
	if r == 0 {
		r = 0 // normalise -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
