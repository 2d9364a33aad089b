// Package cmd implements the animatronic CLI commands.
//
// The root command resolves configuration and logging once and hands both
// to subcommands (validate, play, reverse, tui) through the command context.
package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-drift/animatronic/cmd/animatronic/internal/config"
	animerrors "github.com/go-drift/animatronic/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Commands registered with the CLI.
var commands []func() *cobra.Command

// RegisterCommand adds a subcommand constructor to the CLI.
func RegisterCommand(fn func() *cobra.Command) {
	commands = append(commands, fn)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "animatronic",
		Short: "Animatronic - phased style animations for named components",
		Long: `Animatronic plays animation sequence files: ordered phases of
per-component style transitions, driven by easing curves or springs.

Use "animatronic <command> --help" for more information about a command.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			level := cfg.LogLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			if cfg.Source != "" {
				logger.Debug("loaded config", "path", cfg.Source)
			}
			animerrors.SetHandler(&animerrors.LogHandler{Logger: logger, Verbose: verbose})

			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("animatronic %s (built %s)\n", Version, BuildTime))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: nearest animatronic.yaml)")

	for _, fn := range commands {
		root.AddCommand(fn())
	}
	return root
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
