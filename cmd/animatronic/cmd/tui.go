package cmd

import (
	"io"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/go-drift/animatronic/cmd/animatronic/internal/tui"
	"github.com/go-drift/animatronic/pkg/animation"
	animerrors "github.com/go-drift/animatronic/pkg/errors"
)

func init() {
	RegisterCommand(newTUICmd)
}

func newTUICmd() *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "tui <file> [name]",
		Short: "Preview animations interactively in the terminal",
		Long: `Open an interactive preview of a sequence file. Components are drawn
as bars positioned by their left and width styles and coloured by their
background-color.

Keys: p play, r rewind, s stop, x reset, tab next animation, q quit.
The file is reloaded when it changes on disk unless tui.watch is false.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, args[0], animationName(args), logFile)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the preview runs")
	return cmd
}

func runTUI(cmd *cobra.Command, path, name, logFile string) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	level := loggerFromContext(ctx).GetLevel()

	// The preview owns the terminal, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logger := newLogger(out, level)
	animerrors.SetHandler(animerrors.NewLogHandler(logger))

	loop := animation.NewFrameLoop(animation.SystemClock{})
	p, err := newProject(path, cfg, logger, loop)
	if err != nil {
		return err
	}
	names := p.named.Names()
	if !slices.Contains(names, name) {
		return animerrors.New("cmd.tui", animerrors.KindUnknownAnimation,
			"no animation named %q in %s", name, path)
	}

	model := tui.New(tui.Options{
		Orchestrator:  p.orch,
		Loop:          loop,
		Stage:         p.stage,
		Names:         names,
		Initial:       name,
		FPS:           cfg.FPS,
		PixelsPerCell: cfg.PixelsPerCell,
		Reload:        p.reload,
	})
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	if cfg.Watch {
		w, err := tui.Watch(path, logger, func() { program.Send(tui.FileChangedMsg{}) })
		if err != nil {
			logger.Warn("file watching disabled", "path", path, "err", err)
		} else {
			defer w.Close()
		}
	}

	_, err = program.Run()
	return err
}
