package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/animatronic/cmd/animatronic/internal/stage"
	"github.com/go-drift/animatronic/pkg/animation"
	"github.com/go-drift/animatronic/pkg/orchestrator"
	"github.com/go-drift/animatronic/pkg/sequence"
	"github.com/go-drift/animatronic/pkg/style"
	animtest "github.com/go-drift/animatronic/pkg/testing"
)

// settleLimit bounds instant playback in virtual time.
const settleLimit = 10 * time.Minute

type playOptions struct {
	reverse bool
	instant bool
	trace   bool
	fps     int
	timeout time.Duration
}

func init() {
	RegisterCommand(newPlayCmd)
	RegisterCommand(newReverseCmd)
}

func newPlayCmd() *cobra.Command {
	var opts playOptions
	cmd := &cobra.Command{
		Use:   "play <file> [name]",
		Short: "Play an animation and print the final styles",
		Long: `Play an animation from a sequence file against in-memory components
and print every component's styles once it completes.

The animation defaults to the file's top level phases. With --instant the
frames are simulated on a virtual clock instead of in real time.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), cmd.OutOrStdout(), args[0], animationName(args), opts)
		},
	}
	addPlayFlags(cmd, &opts)
	cmd.Flags().BoolVarP(&opts.reverse, "reverse", "r", false, "play the animation backwards")
	return cmd
}

func newReverseCmd() *cobra.Command {
	opts := playOptions{reverse: true}
	cmd := &cobra.Command{
		Use:   "reverse <file> [name]",
		Short: "Play an animation backwards",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), cmd.OutOrStdout(), args[0], animationName(args), opts)
		},
	}
	addPlayFlags(cmd, &opts)
	return cmd
}

func addPlayFlags(cmd *cobra.Command, opts *playOptions) {
	cmd.Flags().BoolVar(&opts.instant, "instant", false, "simulate frames on a virtual clock")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "print every style update")
	cmd.Flags().IntVar(&opts.fps, "fps", 0, "frame rate (default from config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "stop the animation after this long (0 waits for completion)")
}

func animationName(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return sequence.DefaultName
}

func runPlay(ctx context.Context, w io.Writer, path, name string, opts playOptions) error {
	cfg := configFromContext(ctx)
	logger := loggerFromContext(ctx)

	fps := cfg.FPS
	if opts.fps > 0 {
		fps = opts.fps
	}

	var (
		sched animation.Scheduler
		fake  *animtest.FakeScheduler
		loop  *animation.FrameLoop
	)
	if opts.instant {
		fake = animtest.NewFakeScheduler()
		fake.FrameDuration = animation.FrameInterval(fps)
		sched = fake
	} else {
		loop = animation.NewFrameLoop(animation.SystemClock{})
		sched = loop
	}

	p, err := newProject(path, cfg, logger, sched)
	if err != nil {
		return err
	}

	start := sched.Now()
	if opts.trace {
		p.stage.OnUpdate = func(c *stage.Component, patch style.Map) {
			fmt.Fprintf(w, "%10s  %s  %s\n", sched.Now().Sub(start).Round(time.Millisecond), c.Name, formatStyles(patch))
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	completed, timedOut := false, false
	onComplete := func() {
		completed = true
		cancel()
	}

	if opts.reverse {
		err = p.orch.Rewind(name, onComplete)
	} else {
		err = p.orch.Play(name, onComplete)
	}
	if err != nil {
		return err
	}

	if opts.instant {
		limit := settleLimit
		if opts.timeout > 0 {
			limit = opts.timeout
		}
		err = fake.Settle(limit)
	} else {
		if opts.timeout > 0 {
			go stopAfter(runCtx, loop, opts.timeout, func() {
				p.orch.Stop()
				timedOut = true
				cancel()
			})
		}
		err = loop.Run(runCtx, fps)
		if completed {
			err = nil
		}
	}
	if timedOut {
		return fmt.Errorf("animation %q stopped after %s", name, opts.timeout)
	}
	if err != nil {
		p.orch.Stop()
		return err
	}
	if p.orch.State() != orchestrator.StateComplete {
		return errors.New("animation did not complete")
	}

	logger.Info("animation complete", "name", name, "reverse", opts.reverse,
		"elapsed", sched.Now().Sub(start).Round(time.Millisecond))

	for _, component := range p.stage.Names() {
		fmt.Fprintf(w, "%s: %s\n", component, formatStyles(p.stage.Component(component).Styles))
	}
	return nil
}

// stopAfter posts stop onto loop once timeout elapses, unless ctx ends
// first. stop runs on the loop's goroutine.
func stopAfter(ctx context.Context, loop *animation.FrameLoop, timeout time.Duration, stop func()) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
		loop.Post(stop)
	}
}
