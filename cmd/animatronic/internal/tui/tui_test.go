package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/animatronic/cmd/animatronic/internal/stage"
	"github.com/go-drift/animatronic/pkg/animation"
	"github.com/go-drift/animatronic/pkg/orchestrator"
	"github.com/go-drift/animatronic/pkg/sequence"
	"github.com/go-drift/animatronic/pkg/style"
	animtest "github.com/go-drift/animatronic/pkg/testing"
)

type harness struct {
	model *Model
	clock *animtest.FakeClock
	stage *stage.Stage
	orch  *orchestrator.Orchestrator
}

func newHarness(t *testing.T, named sequence.Named, reload func() (sequence.Named, error)) *harness {
	t.Helper()
	clock := animtest.NewFakeClock()
	loop := animation.NewFrameLoop(clock)
	orch := orchestrator.New(named, orchestrator.Options{Scheduler: loop, Logger: log.New(io.Discard)})
	st := stage.New(map[string]style.Map{"box": {"left": "0px", "width": "8px", "background-color": "#ff0000"}})
	st.Register(orch.Registry())
	m := New(Options{
		Orchestrator:  orch,
		Loop:          loop,
		Stage:         st,
		Names:         named.Names(),
		Initial:       "slide",
		FPS:           60,
		PixelsPerCell: 4,
		Reload:        reload,
	})
	return &harness{model: m, clock: clock, stage: st, orch: orch}
}

func (h *harness) frames(n int) {
	for range n {
		h.clock.Advance(10 * time.Millisecond)
		h.model.Update(FrameMsg(h.clock.Now()))
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func slide() sequence.Named {
	return sequence.Named{
		"slide": sequence.Static(sequence.Sequence{{"box": {sequence.Timed(
			style.Map{"left": "0px"}, style.Map{"left": "40px"}, 50*time.Millisecond)}}}),
		"grow": sequence.Static(sequence.Sequence{{"box": {sequence.Timed(
			style.Map{"width": "8px"}, style.Map{"width": "16px"}, 50*time.Millisecond)}}}),
	}
}

func TestModel_PlayRewindReset(t *testing.T) {
	h := newHarness(t, slide(), nil)
	require.Equal(t, "slide", h.model.Selected())

	h.model.Update(key("p"))
	assert.Equal(t, orchestrator.StateRunning, h.orch.State())
	h.frames(10)
	assert.Equal(t, "40px", h.stage.Component("box").Styles["left"])
	assert.Equal(t, "slide complete", h.model.Status())

	h.model.Update(key("r"))
	h.frames(10)
	assert.Equal(t, "0px", h.stage.Component("box").Styles["left"])

	h.model.Update(key("p"))
	h.frames(2)
	h.model.Update(key("x"))
	assert.Equal(t, orchestrator.StateIdle, h.orch.State())
	assert.Equal(t, "0px", h.stage.Component("box").Styles["left"])
}

func TestModel_StopAndSelect(t *testing.T) {
	h := newHarness(t, slide(), nil)
	h.model.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "grow", h.model.Selected())

	h.model.Update(key("p"))
	h.frames(2)
	h.model.Update(key("s"))
	assert.Equal(t, orchestrator.StateStopped, h.orch.State())
	width := h.stage.Component("box").Styles["width"]
	h.frames(10)
	assert.Equal(t, width, h.stage.Component("box").Styles["width"])
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t, slide(), nil)
	_, cmd := h.model.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_Reload(t *testing.T) {
	reloaded := sequence.Named{
		"slide": sequence.Static(sequence.Sequence{{"box": {sequence.Timed(
			style.Map{"left": "0px"}, style.Map{"left": "80px"}, 20*time.Millisecond)}}}),
	}
	h := newHarness(t, slide(), func() (sequence.Named, error) { return reloaded, nil })
	h.model.Update(FileChangedMsg{})
	assert.Equal(t, "sequence file reloaded", h.model.Status())
	assert.Equal(t, "slide", h.model.Selected())

	h.model.Update(key("p"))
	h.frames(5)
	assert.Equal(t, "80px", h.stage.Component("box").Styles["left"])
}

func TestModel_View(t *testing.T) {
	h := newHarness(t, slide(), nil)
	view := h.model.View()
	assert.Contains(t, view, "box")
	assert.Contains(t, view, "grow")
	assert.Contains(t, view, "idle")

	h.model.Update(key("p"))
	h.frames(10)
	view = h.model.View()
	assert.True(t, strings.Contains(view, "slide complete"), view)
}

func TestRenderBarBounds(t *testing.T) {
	h := newHarness(t, slide(), nil)
	for _, styles := range []style.Map{
		{},
		{"left": "-40px", "width": "0px"},
		{"left": "100000px", "width": "100000px"},
		{"left": 12, "width": "3em", "background-color": "not-a-colour"},
	} {
		assert.NotPanics(t, func() { h.model.renderBar(styles, 20) })
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("phases: []\n"), 0o644))

	changed := make(chan struct{}, 8)
	w, err := Watch(path, log.New(io.Discard), func() { changed <- struct{}{} })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("phases: []\n# edit\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
