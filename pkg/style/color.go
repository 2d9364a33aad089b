package style

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor parses hex (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb()/rgba(),
// hsl()/hsla(), "transparent" and CSS named colours.
func ParseColor(s string) (Color, bool) {
	return parseColor(strings.TrimSpace(s))
}

func parseColor(s string) (Color, bool) {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "#"):
		return parseHex(lower)
	case strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba("):
		return parseRGBFunc(lower)
	case strings.HasPrefix(lower, "hsl(") || strings.HasPrefix(lower, "hsla("):
		return parseHSLFunc(lower)
	case lower == "transparent":
		return Color{Alpha: 0}, true
	}
	if named, ok := colornames.Map[lower]; ok {
		c, _ := colorful.MakeColor(named)
		return Color{Color: c, Alpha: 1}, true
	}
	return Color{}, false
}

func parseHex(s string) (Color, bool) {
	alpha := 1.0
	switch len(s) {
	case 5: // #rgba
		a, err := strconv.ParseUint(s[4:5]+s[4:5], 16, 8)
		if err != nil {
			return Color{}, false
		}
		alpha = float64(a) / 255
		s = s[:4]
	case 9: // #rrggbbaa
		a, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return Color{}, false
		}
		alpha = float64(a) / 255
		s = s[:7]
	case 4, 7:
	default:
		return Color{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, false
	}
	return Color{Color: c, Alpha: alpha}, true
}

// colorArgs splits the argument list of a colour function, accepting both
// comma and space/slash separated forms.
func colorArgs(s string) []string {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil
	}
	inner := s[open+1 : len(s)-1]
	inner = strings.NewReplacer(",", " ", "/", " ").Replace(inner)
	return strings.Fields(inner)
}

func parseRGBFunc(s string) (Color, bool) {
	args := colorArgs(s)
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, pct, ok := parseComponent(args[i])
		if !ok {
			return Color{}, false
		}
		if pct {
			ch[i] = v / 100
		} else {
			ch[i] = v / 255
		}
	}
	alpha := 1.0
	if len(args) == 4 {
		a, ok := parseAlpha(args[3])
		if !ok {
			return Color{}, false
		}
		alpha = a
	}
	return Color{Color: colorful.Color{R: clamp01(ch[0]), G: clamp01(ch[1]), B: clamp01(ch[2])}, Alpha: alpha}, true
}

func parseHSLFunc(s string) (Color, bool) {
	args := colorArgs(s)
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return Color{}, false
	}
	sat, spct, ok1 := parseComponent(args[1])
	light, lpct, ok2 := parseComponent(args[2])
	if !ok1 || !ok2 || !spct || !lpct {
		return Color{}, false
	}
	alpha := 1.0
	if len(args) == 4 {
		a, ok := parseAlpha(args[3])
		if !ok {
			return Color{}, false
		}
		alpha = a
	}
	return Color{Color: colorful.Hsl(h, sat/100, light/100).Clamped(), Alpha: alpha}, true
}

func parseComponent(s string) (float64, bool, bool) {
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false, false
	}
	return v, pct, true
}

func parseAlpha(s string) (float64, bool) {
	v, pct, ok := parseComponent(s)
	if !ok {
		return 0, false
	}
	if pct {
		v /= 100
	}
	return clamp01(v), true
}
