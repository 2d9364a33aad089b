package testing

import (
	"maps"
	"time"

	"github.com/go-drift/animatronic/pkg/animation"
	"github.com/go-drift/animatronic/pkg/registry"
	"github.com/go-drift/animatronic/pkg/style"
)

// Frame is one style update received by a recorded component.
type Frame struct {
	At        time.Duration
	Component string
	Styles    style.Map
}

// Recorder captures every update applied to the components it registers.
type Recorder struct {
	clock  animation.Clock
	start  time.Time
	frames []Frame
	styles map[string]style.Map
	resets map[string]int
}

// NewRecorder creates a recorder timing updates against clock. Timestamps
// are relative to the moment the recorder is created.
func NewRecorder(clock animation.Clock) *Recorder {
	return &Recorder{
		clock:  clock,
		start:  clock.Now(),
		styles: make(map[string]style.Map),
		resets: make(map[string]int),
	}
}

// Register adds a recording entry to r for every name.
func (rec *Recorder) Register(r *registry.Registry, names ...string) {
	for _, name := range names {
		rec.styles[name] = style.Map{}
		r.Register(name, rec,
			func(patch style.Map) {
				rec.frames = append(rec.frames, Frame{
					At:        rec.clock.Now().Sub(rec.start),
					Component: name,
					Styles:    patch.Clone(),
				})
				maps.Copy(rec.styles[name], patch)
			},
			func() {
				rec.styles[name] = style.Map{}
				rec.resets[name]++
			})
	}
}

// Frames returns every update in the order it was applied.
func (rec *Recorder) Frames() []Frame {
	return rec.frames
}

// FramesFor returns the updates applied to component.
func (rec *Recorder) FramesFor(component string) []Frame {
	var out []Frame
	for _, f := range rec.frames {
		if f.Component == component {
			out = append(out, f)
		}
	}
	return out
}

// Styles returns the merged styles of component.
func (rec *Recorder) Styles(component string) style.Map {
	return rec.styles[component]
}

// Resets returns how many times component was reset.
func (rec *Recorder) Resets(component string) int {
	return rec.resets[component]
}

// Clear forgets the recorded frames and restarts the timestamps. Merged
// styles are kept.
func (rec *Recorder) Clear() {
	rec.frames = nil
	rec.start = rec.clock.Now()
}
