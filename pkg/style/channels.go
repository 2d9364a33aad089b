package style

// Flatten returns the numeric channels of v in a stable order: one per
// Number or Unit, four (r, g, b, a on a 0-255 scale) per Color, none per
// Keyword, and the concatenation of children for a Composite.
func Flatten(v Value) []float64 {
	return appendChannels(nil, v)
}

func appendChannels(dst []float64, v Value) []float64 {
	switch val := v.(type) {
	case Number:
		return append(dst, val.Value)
	case Unit:
		return append(dst, val.Value)
	case Color:
		return append(dst, val.R*255, val.G*255, val.B*255, val.Alpha*255)
	case Composite:
		for _, child := range val.Children {
			dst = appendChannels(dst, child)
		}
		return dst
	default:
		return dst
	}
}

// Rebuild returns a copy of template with its channels replaced by ch, in
// the order produced by Flatten. Colour channels are clamped.
func Rebuild(template Value, ch []float64) Value {
	v, _ := rebuild(template, ch)
	return v
}

func rebuild(template Value, ch []float64) (Value, []float64) {
	switch val := template.(type) {
	case Number:
		if len(ch) < 1 {
			return val, ch
		}
		return Number{Value: ch[0]}, ch[1:]
	case Unit:
		if len(ch) < 1 {
			return val, ch
		}
		return Unit{Value: ch[0], Unit: val.Unit}, ch[1:]
	case Color:
		if len(ch) < 4 {
			return val, ch
		}
		c := val
		c.R = clamp01(ch[0] / 255)
		c.G = clamp01(ch[1] / 255)
		c.B = clamp01(ch[2] / 255)
		c.Alpha = clamp01(ch[3] / 255)
		return c, ch[4:]
	case Composite:
		children := make([]Value, len(val.Children))
		for i, child := range val.Children {
			children[i], ch = rebuild(child, ch)
		}
		return Composite{Layout: val.Layout, Names: val.Names, Children: children, Prefix: val.Prefix}, ch
	default:
		return template, ch
	}
}
