package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	animerrors "github.com/go-drift/animatronic/pkg/errors"
)

var (
	numberRE = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)
	unitRE   = regexp.MustCompile(`^([+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?)([a-zA-Z%]+)$`)
	identRE  = regexp.MustCompile(`^-?[a-zA-Z_][a-zA-Z0-9_-]*$`)
)

// spacingProperties expand CSS box shorthands into four values.
var spacingProperties = map[string]bool{
	"padding":       true,
	"margin":        true,
	"borderradius":  true,
	"borderwidth":   true,
	"inset":         true,
	"scrollpadding": true,
	"scrollmargin":  true,
}

// shadowProperties hold comma-separated repeated entries.
var shadowProperties = map[string]bool{
	"boxshadow":  true,
	"textshadow": true,
}

// normalizeProperty maps "box-shadow", "boxShadow" and "box_shadow" to the
// same key.
func normalizeProperty(p string) string {
	p = strings.ToLower(p)
	return strings.NewReplacer("-", "", "_", "").Replace(p)
}

// IsSpacingProperty reports whether property is a four-sided box shorthand.
func IsSpacingProperty(property string) bool {
	return spacingProperties[normalizeProperty(property)]
}

// IsMultiEntryProperty reports whether property takes comma-separated
// repeated entries (box-shadow, text-shadow).
func IsMultiEntryProperty(property string) bool {
	return shadowProperties[normalizeProperty(property)]
}

// Parse converts a raw style value into a Value. The property name is a hint
// that selects spacing and multi-entry parsing; pass "" when unknown.
func Parse(raw any, property string) (Value, error) {
	if f, ok := toFloat(raw); ok {
		return Number{Value: f}, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, parseError(property, "unsupported value type %T", raw)
	}
	v, err := parseString(strings.TrimSpace(s), property)
	if err != nil {
		return nil, parseError(property, "%q: %v", s, err)
	}
	return v, nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// package-level declarations.
func MustParse(raw any, property string) Value {
	v, err := Parse(raw, property)
	if err != nil {
		panic(err)
	}
	return v
}

// ParsePair parses both sides of a from/to declaration and checks that
// multi-entry properties agree on entry count and inset placement.
func ParsePair(property string, from, to any) (Value, Value, error) {
	fv, err := Parse(from, property)
	if err != nil {
		return nil, nil, err
	}
	tv, err := Parse(to, property)
	if err != nil {
		return nil, nil, err
	}
	if !IsMultiEntryProperty(property) {
		return fv, tv, nil
	}
	fl, fok := fv.(Composite)
	tl, tok := tv.(Composite)
	if !fok || !tok {
		return fv, tv, nil
	}
	if len(fl.Children) != len(tl.Children) {
		err := animerrors.New("style.ParsePair", animerrors.KindMultiEntry,
			"%d entries in from but %d in to", len(fl.Children), len(tl.Children))
		err.Property = property
		return nil, nil, err
	}
	for i := range fl.Children {
		fe, _ := fl.Children[i].(Composite)
		te, _ := tl.Children[i].(Composite)
		if fe.Prefix != te.Prefix {
			err := animerrors.New("style.ParsePair", animerrors.KindMultiEntry,
				"inset placement differs at entry %d", i)
			err.Property = property
			return nil, nil, err
		}
	}
	return fv, tv, nil
}

func parseError(property, format string, args ...any) error {
	err := animerrors.New("style.Parse", animerrors.KindParse, format, args...)
	err.Property = property
	return err
}

func parseString(s, property string) (Value, error) {
	if s == "" {
		return nil, fmt.Errorf("empty value")
	}
	if numberRE.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return Number{Value: f}, nil
	}
	if err := checkParens(s); err != nil {
		return nil, err
	}
	key := normalizeProperty(property)
	if shadowProperties[key] {
		return parseShadow(s)
	}
	if spacingProperties[key] {
		return parseSpacing(s)
	}
	if c, ok := parseColor(s); ok {
		return c, nil
	}
	if names, args, ok := splitFunctions(s); ok {
		return buildFunctions(names, args)
	}
	if fields := splitFields(s); len(fields) > 1 {
		children := make([]Value, len(fields))
		for i, f := range fields {
			v, err := parseString(f, "")
			if err != nil {
				return nil, err
			}
			children[i] = v
		}
		return Composite{Layout: LayoutSpaced, Children: children}, nil
	}
	return parseScalar(s)
}

func parseScalar(s string) (Value, error) {
	if m := unitRE.FindStringSubmatch(s); m != nil {
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, err
		}
		return Unit{Value: f, Unit: m[2]}, nil
	}
	if strings.ContainsAny(s, " \t\n,") {
		return nil, fmt.Errorf("unexpected separator in %q", s)
	}
	return Keyword{Text: s}, nil
}

func buildFunctions(names, args []string) (Value, error) {
	children := make([]Value, len(args))
	for i, arg := range args {
		parts := splitTopLevel(arg, ',')
		if len(parts) == 1 {
			v, err := parseString(parts[0], "")
			if err != nil {
				return nil, fmt.Errorf("%s(): %w", names[i], err)
			}
			children[i] = v
			continue
		}
		list := make([]Value, len(parts))
		for j, p := range parts {
			v, err := parseString(p, "")
			if err != nil {
				return nil, fmt.Errorf("%s(): %w", names[i], err)
			}
			list[j] = v
		}
		children[i] = Composite{Layout: LayoutList, Children: list}
	}
	return Composite{Layout: LayoutFunctions, Names: names, Children: children}, nil
}

func parseSpacing(s string) (Value, error) {
	fields := splitFields(s)
	if len(fields) == 0 || len(fields) > 4 {
		return nil, fmt.Errorf("spacing takes 1 to 4 values, got %d", len(fields))
	}
	vals := make([]Value, len(fields))
	for i, f := range fields {
		v, err := parseString(f, "")
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	var top, right, bottom, left Value
	switch len(vals) {
	case 1:
		top, right, bottom, left = vals[0], vals[0], vals[0], vals[0]
	case 2:
		top, right, bottom, left = vals[0], vals[1], vals[0], vals[1]
	case 3:
		top, right, bottom, left = vals[0], vals[1], vals[2], vals[1]
	default:
		top, right, bottom, left = vals[0], vals[1], vals[2], vals[3]
	}
	return Composite{Layout: LayoutSpacing, Children: []Value{top, right, bottom, left}}, nil
}

func parseShadow(s string) (Value, error) {
	if strings.EqualFold(s, "none") {
		return Keyword{Text: "none"}, nil
	}
	entries := splitTopLevel(s, ',')
	list := make([]Value, 0, len(entries))
	for _, entry := range entries {
		var prefix string
		var children []Value
		for _, f := range splitFields(entry) {
			if strings.EqualFold(f, "inset") {
				prefix = "inset"
				continue
			}
			v, err := parseString(f, "")
			if err != nil {
				return nil, err
			}
			children = append(children, v)
		}
		if len(children) == 0 {
			return nil, fmt.Errorf("empty shadow entry")
		}
		list = append(list, Composite{Layout: LayoutSpaced, Children: children, Prefix: prefix})
	}
	return Composite{Layout: LayoutList, Children: list}, nil
}

// splitFunctions splits "a(x) b(y, z)" into names and raw argument strings.
// It reports false if s is not a pure list of function groups.
func splitFunctions(s string) (names, args []string, ok bool) {
	i := 0
	for i < len(s) {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i == len(s) {
			break
		}
		open := strings.IndexByte(s[i:], '(')
		if open <= 0 {
			return nil, nil, false
		}
		name := s[i : i+open]
		if !identRE.MatchString(name) {
			return nil, nil, false
		}
		depth := 0
		end := -1
		for j := i + open; j < len(s); j++ {
			switch s[j] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					end = j
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			return nil, nil, false
		}
		names = append(names, name)
		args = append(args, strings.TrimSpace(s[i+open+1:end]))
		i = end + 1
		if i < len(s) && !isSpace(s[i]) {
			return nil, nil, false
		}
	}
	return names, args, len(names) > 0
}

// splitTopLevel splits s on sep outside of parentheses.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// splitFields splits s on whitespace outside of parentheses.
func splitFields(s string) []string {
	var fields []string
	depth, start := 0, -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case isSpace(c) && depth == 0:
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

func checkParens(s string) error {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("unbalanced parentheses")
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced parentheses")
	}
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ToFloat converts any Go numeric type to float64.
func ToFloat(raw any) (float64, bool) {
	return toFloat(raw)
}
