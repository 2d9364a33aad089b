package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/animatronic/cmd/animatronic/internal/stage"
)

func init() {
	RegisterCommand(newValidateCmd)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check every animation in a sequence file",
		Long: `Decode a sequence file (YAML, TOML or JSON) and validate every
animation it declares: timing modes, style values, and, in strict mode,
that every animated component is declared under components.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func runValidate(ctx context.Context, w io.Writer, path string) error {
	cfg := configFromContext(ctx)
	logger := loggerFromContext(ctx)

	file, named, err := loadNamed(path)
	if err != nil {
		return err
	}
	st := stage.New(file.Components)
	var known func(string) bool
	if cfg.Strict {
		known = func(name string) bool { return st.Component(name) != nil }
	}

	names := named.Names()
	failed := 0
	for _, name := range names {
		seq, err := named.Resolve(name, nil)
		if err == nil {
			err = seq.Validate(known)
		}
		if err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", name, err)
			continue
		}
		declarations := 0
		for _, phase := range seq {
			declarations += phase.Count()
		}
		length := "does not settle"
		if d, approx, ok := estimate(seq); ok {
			length = d.Round(time.Millisecond).String()
			if approx {
				length = "~" + length
			}
		}
		fmt.Fprintf(w, "ok   %s: %d phases, %d declarations, %s\n", name, len(seq), declarations, length)
	}
	logger.Debug("validated sequence file", "path", path, "animations", len(names), "failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d animations failed validation", failed, len(names))
	}
	return nil
}
