// Package tui renders a stage in the terminal and lets the user play,
// rewind, stop and reset its animations.
//
// Components are drawn as coloured bars: their left and width styles (in
// pixels) become a column offset and a bar length, their background-color
// becomes the bar colour. The frame loop is pumped from bubbletea's own
// tick, so every orchestrator call happens on the program goroutine.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/animatronic/cmd/animatronic/internal/stage"
	"github.com/go-drift/animatronic/pkg/animation"
	"github.com/go-drift/animatronic/pkg/orchestrator"
	"github.com/go-drift/animatronic/pkg/sequence"
	"github.com/go-drift/animatronic/pkg/style"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7dcfff"))
	labelStyle  = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("#c0caf5"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9ece6a"))
	trackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b4261"))
)

// FrameMsg asks the model to pump the frame loop.
type FrameMsg time.Time

// FileChangedMsg reports that the sequence file changed on disk.
type FileChangedMsg struct{}

// Options configures a Model.
type Options struct {
	Orchestrator *orchestrator.Orchestrator
	Loop         *animation.FrameLoop
	Stage        *stage.Stage
	// Names are the playable animation names.
	Names []string
	// Initial selects the first animation shown.
	Initial string
	FPS     int
	// PixelsPerCell converts style pixels to terminal columns.
	PixelsPerCell float64
	// Reload, if set, is called on FileChangedMsg to produce a new generator.
	Reload func() (sequence.Named, error)
}

// Model is the bubbletea model of the terminal host.
type Model struct {
	orch     *orchestrator.Orchestrator
	loop     *animation.FrameLoop
	stage    *stage.Stage
	names    []string
	current  int
	interval time.Duration
	cellPx   float64
	reload   func() (sequence.Named, error)

	width  int
	status string
	err    error
}

// New creates a model from opts.
func New(opts Options) *Model {
	m := &Model{
		orch:     opts.Orchestrator,
		loop:     opts.Loop,
		stage:    opts.Stage,
		names:    opts.Names,
		interval: animation.FrameInterval(opts.FPS),
		cellPx:   opts.PixelsPerCell,
		reload:   opts.Reload,
		width:    80,
		status:   "press p to play",
	}
	if m.cellPx <= 0 {
		m.cellPx = 4
	}
	for i, name := range m.names {
		if name == opts.Initial {
			m.current = i
		}
	}
	return m
}

// Selected returns the animation name the next play or rewind uses.
func (m *Model) Selected() string {
	if len(m.names) == 0 {
		return sequence.DefaultName
	}
	return m.names[m.current]
}

// Status returns the status line text.
func (m *Model) Status() string {
	return m.status
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.loop.Pump()
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case FileChangedMsg:
		m.reloadSequences()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.orch.Stop()
			return m, tea.Quit
		case "p", "enter":
			m.play(false)
		case "r":
			m.play(true)
		case "s":
			m.orch.Stop()
			m.status = "stopped"
		case "x":
			m.orch.Reset()
			m.status = "reset"
		case "tab", "n", "down", "j":
			if len(m.names) > 0 {
				m.current = (m.current + 1) % len(m.names)
			}
		case "shift+tab", "up", "k":
			if len(m.names) > 0 {
				m.current = (m.current + len(m.names) - 1) % len(m.names)
			}
		}
	}
	return m, nil
}

func (m *Model) play(reverse bool) {
	name := m.Selected()
	done := func() { m.status = fmt.Sprintf("%s complete", name) }
	var err error
	if reverse {
		err = m.orch.Rewind(name, done)
	} else {
		err = m.orch.Play(name, done)
	}
	m.err = err
	switch {
	case err != nil:
		m.status = "play failed"
	case reverse:
		m.status = fmt.Sprintf("rewinding %s", name)
	default:
		m.status = fmt.Sprintf("playing %s", name)
	}
}

func (m *Model) reloadSequences() {
	if m.reload == nil {
		return
	}
	named, err := m.reload()
	if err != nil {
		m.err = err
		m.status = "reload failed"
		return
	}
	selected := m.Selected()
	m.orch.SetSequenceGenerator(named)
	m.names = named.Names()
	m.current = 0
	for i, name := range m.names {
		if name == selected {
			m.current = i
		}
	}
	m.err = nil
	m.status = "sequence file reloaded"
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("animatronic"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s  phase %d", m.orch.State(), m.orch.Phase())))
	b.WriteString("\n\n")

	for i, name := range m.names {
		marker := "  "
		line := dimStyle.Render(name)
		if i == m.current {
			marker = "> "
			line = activeStyle.Render(name)
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n")

	trackWidth := max(m.width-labelStyle.GetWidth()-2, 10)
	for _, name := range m.stage.Names() {
		c := m.stage.Component(name)
		b.WriteString(labelStyle.Render(name))
		b.WriteString(m.renderBar(c.Styles, trackWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("p play • r rewind • s stop • x reset • tab next • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderBar(styles style.Map, trackWidth int) string {
	offset := clampCells(pixels(styles["left"])/m.cellPx, 0, trackWidth-1)
	length := clampCells(pixels(styles["width"])/m.cellPx, 1, trackWidth-offset)

	bar := lipgloss.NewStyle().Background(lipgloss.Color(barColor(styles["background-color"])))
	return trackStyle.Render(strings.Repeat("·", offset)) +
		bar.Render(strings.Repeat(" ", length)) +
		trackStyle.Render(strings.Repeat("·", trackWidth-offset-length))
}

// pixels returns the numeric part of a length style, or 0.
func pixels(raw any) float64 {
	if raw == nil {
		return 0
	}
	v, err := style.Parse(raw, "")
	if err != nil {
		return 0
	}
	switch val := v.(type) {
	case style.Number:
		return val.Value
	case style.Unit:
		return val.Value
	default:
		return 0
	}
}

func barColor(raw any) string {
	s, ok := raw.(string)
	if !ok {
		return "#7aa2f7"
	}
	c, ok := style.ParseColor(s)
	if !ok {
		return "#7aa2f7"
	}
	return c.Clamped().Hex()
}

func clampCells(v float64, lo, hi int) int {
	n := int(math.Round(v))
	if hi < lo {
		hi = lo
	}
	return min(max(n, lo), hi)
}
