package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-drift/animatronic/cmd/animatronic/internal/config"
	"github.com/go-drift/animatronic/cmd/animatronic/internal/stage"
	"github.com/go-drift/animatronic/pkg/animation"
	"github.com/go-drift/animatronic/pkg/orchestrator"
	"github.com/go-drift/animatronic/pkg/sequence"
	"github.com/go-drift/animatronic/pkg/solver"
	"github.com/go-drift/animatronic/pkg/style"
)

// project is a sequence file loaded onto a stage and wired to an
// orchestrator.
type project struct {
	path  string
	file  *sequence.File
	named sequence.Named
	stage *stage.Stage
	orch  *orchestrator.Orchestrator
	cfg   *config.Resolved
}

// loadNamed reads path and decodes every animation it declares.
func loadNamed(path string) (*sequence.File, sequence.Named, error) {
	file, err := sequence.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	named, err := file.Generator()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, named, nil
}

func newProject(path string, cfg *config.Resolved, logger *log.Logger, sched animation.Scheduler) (*project, error) {
	file, named, err := loadNamed(path)
	if err != nil {
		return nil, err
	}
	p := &project{
		path:  path,
		file:  file,
		named: named,
		stage: stage.New(file.Components),
		cfg:   cfg,
	}
	p.orch = orchestrator.New(named, orchestrator.Options{
		Scheduler:     sched,
		Logger:        logger,
		Lenient:       !cfg.Strict,
		DefaultEasing: cfg.DefaultEasing,
	})
	p.ensureReferenced()
	p.stage.Register(p.orch.Registry())
	logger.Debug("loaded sequence file", "path", path, "animations", len(named), "components", len(p.stage.Names()))
	return p, nil
}

// ensureReferenced adds an empty component for every name an animation
// references but the file does not declare. Strict mode leaves them out so
// playback fails with an unknown component error instead.
func (p *project) ensureReferenced() {
	if p.cfg.Strict {
		return
	}
	for _, name := range p.named.Names() {
		seq, err := p.named.Resolve(name, nil)
		if err != nil {
			continue
		}
		p.stage.Ensure(stage.ComponentsIn(seq)...)
	}
}

// reload re-reads the file and registers any new components. The caller
// hands the result to the orchestrator.
func (p *project) reload() (sequence.Named, error) {
	file, named, err := loadNamed(p.path)
	if err != nil {
		return nil, err
	}
	for _, name := range slices.Sorted(maps.Keys(file.Components)) {
		if p.stage.Component(name) == nil {
			p.stage.Add(name, file.Components[name])
		}
	}
	p.file = file
	p.named = named
	p.ensureReferenced()
	p.stage.Register(p.orch.Registry())
	return named, nil
}

// formatStyles renders styles as sorted key=value pairs.
func formatStyles(styles style.Map) string {
	parts := make([]string, 0, len(styles))
	for _, key := range slices.Sorted(maps.Keys(styles)) {
		parts = append(parts, fmt.Sprintf("%s=%v", key, styles[key]))
	}
	return strings.Join(parts, " ")
}

// estimate returns the nominal running time of seq. Spring declarations
// contribute their predicted settle time, which makes the total
// approximate. ok is false if a spring never settles.
func estimate(seq sequence.Sequence) (total time.Duration, approx, ok bool) {
	for _, phase := range seq {
		var longest time.Duration
		for _, track := range phase {
			var d time.Duration
			for _, decl := range track {
				d += decl.Delay
				switch decl.Mode() {
				case sequence.ModeSpring:
					spring, err := solver.NewSpring(decl.From, decl.To, *decl.Stiffness, *decl.Damping)
					if err != nil {
						return 0, false, false
					}
					settle, settles := spring.EstimateSettle()
					if !settles {
						return 0, false, false
					}
					d += settle
					approx = true
				default:
					if decl.Duration != nil {
						d += *decl.Duration
					}
				}
			}
			longest = max(longest, d)
		}
		total += longest
	}
	return total, approx, true
}
