package sequence

import (
	"time"

	"github.com/go-drift/animatronic/pkg/animation"
	animerrors "github.com/go-drift/animatronic/pkg/errors"
	"github.com/go-drift/animatronic/pkg/style"
)

const decodeOp = "sequence.Decode"

// DecodeDeclaration converts a loosely typed declaration, as produced by a
// YAML, TOML or JSON decoder, into a Declaration. Durations and delays are
// milliseconds. Recognized keys are from, to, delay, duration, easing,
// stiffness and damping.
func DecodeDeclaration(raw map[string]any) (Declaration, error) {
	var d Declaration
	for key := range raw {
		switch key {
		case "from", "to", "delay", "duration", "easing", "stiffness", "damping":
		default:
			return d, animerrors.New(decodeOp, animerrors.KindParse, "unknown field %q", key)
		}
	}

	_, hasDuration := raw["duration"]
	_, hasStiffness := raw["stiffness"]
	_, hasDamping := raw["damping"]
	_, hasEasing := raw["easing"]
	if (hasDuration || hasEasing) && (hasStiffness || hasDamping) {
		return d, animerrors.New(decodeOp, animerrors.KindTimingConflict,
			"duration/easing cannot be combined with stiffness/damping")
	}

	if v, ok := raw["duration"]; ok {
		ms, ok := style.ToFloat(v)
		if !ok || !finite(ms) {
			return d, animerrors.New(decodeOp, animerrors.KindTimingIncomplete,
				"duration must be a number of milliseconds, got %v", v)
		}
		dur := millis(ms)
		d.Duration = &dur
	}
	if v, ok := raw["easing"]; ok {
		name, ok := v.(string)
		if !ok {
			return d, animerrors.New(decodeOp, animerrors.KindParse, "easing must be a string, got %T", v)
		}
		curve, err := animation.ParseCurve(name)
		if err != nil {
			return d, animerrors.Wrap(decodeOp, animerrors.KindParse, err)
		}
		d.Easing = curve
	}
	for _, f := range []struct {
		key string
		dst **float64
	}{{"stiffness", &d.Stiffness}, {"damping", &d.Damping}} {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		n, ok := style.ToFloat(v)
		if !ok {
			return d, animerrors.New(decodeOp, animerrors.KindTimingIncomplete,
				"%s must be a number, got %v", f.key, v)
		}
		*f.dst = &n
	}

	if v, ok := raw["delay"]; ok {
		ms, ok := style.ToFloat(v)
		if !ok || !finite(ms) {
			return d, animerrors.New(decodeOp, animerrors.KindDelay,
				"delay must be a number of milliseconds, got %v", v)
		}
		d.Delay = millis(ms)
	}

	from, hasFrom, err := decodeStyles(raw, "from")
	if err != nil {
		return d, err
	}
	to, hasTo, err := decodeStyles(raw, "to")
	if err != nil {
		return d, err
	}
	if hasFrom != hasTo {
		return d, animerrors.New(decodeOp, animerrors.KindFromTo, "from and to must be declared together")
	}
	d.From, d.To = from, to

	if err := d.Validate(); err != nil {
		return d, err
	}
	return d, nil
}

func decodeStyles(raw map[string]any, key string) (style.Map, bool, error) {
	v, ok := raw[key]
	if !ok {
		return nil, false, nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil, true, animerrors.New(decodeOp, animerrors.KindFromTo,
			"%s must be a map of styles, got %T", key, v)
	}
	return style.Map(m), true, nil
}

// DecodeTrack decodes a single declaration map or a list of them.
func DecodeTrack(raw any) (Track, error) {
	if m, ok := asMap(raw); ok {
		d, err := DecodeDeclaration(m)
		if err != nil {
			return nil, err
		}
		return Track{d}, nil
	}
	items, ok := asList(raw)
	if !ok {
		return nil, animerrors.New(decodeOp, animerrors.KindParse,
			"expected a declaration or a list of declarations, got %T", raw)
	}
	track := make(Track, 0, len(items))
	for _, item := range items {
		m, ok := asMap(item)
		if !ok {
			return nil, animerrors.New(decodeOp, animerrors.KindParse,
				"expected a declaration, got %T", item)
		}
		d, err := DecodeDeclaration(m)
		if err != nil {
			return nil, err
		}
		track = append(track, d)
	}
	return track, nil
}

// DecodePhase decodes a map of component name to track.
func DecodePhase(raw map[string]any) (Phase, error) {
	p := make(Phase, len(raw))
	for name, v := range raw {
		track, err := DecodeTrack(v)
		if err != nil {
			ae := animerrors.Wrap(decodeOp, animerrors.KindParse, err)
			ae.Component = name
			return nil, ae
		}
		p[name] = track
	}
	return p, nil
}

// DecodeSequence decodes an ordered list of phases.
func DecodeSequence(raw []map[string]any) (Sequence, error) {
	seq := make(Sequence, 0, len(raw))
	for i, rp := range raw {
		p, err := DecodePhase(rp)
		if err != nil {
			ae := animerrors.Wrap(decodeOp, animerrors.KindParse, err)
			ae.Phase = i
			return nil, ae
		}
		seq = append(seq, p)
	}
	return seq, nil
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case style.Map:
		return m, true
	default:
		return nil, false
	}
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}
