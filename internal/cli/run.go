package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/ndtm"
	"github.com/aretw0/ndtm/internal/presentation/tui"
	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/muesli/termenv"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Path string
	// Input overrides the program's own input line when HasInput is set.
	Input    string
	HasInput bool
	Optimize bool
	JSON     bool
	Headless bool
	Debug    bool
	LogLevel string
	// Style is the glamour style used on terminals; empty means auto.
	Style   string
	Dialect domain.Dialect
}

// Execute loads the program at opts.Path, runs it and writes the report to out.
// When out is a terminal the report is rendered with glamour and followed by a
// colored summary line.
func Execute(ctx context.Context, opts RunOptions, out io.Writer) error {
	logger, err := createLogger(opts.LogLevel, opts.Debug)
	if err != nil {
		return err
	}

	m, err := createMachine(opts, logger)
	if err != nil {
		return err
	}

	r := ndtm.NewRunner(out)
	r.Optimize = opts.Optimize
	r.JSON = opts.JSON
	r.Headless = opts.Headless

	f, isFile := out.(*os.File)
	interactive := isFile && tui.IsTerminal(f) && !opts.JSON && !opts.Headless
	if interactive {
		render, err := tui.NewRenderer(opts.Style, tui.Width(f, 80))
		if err != nil {
			logger.Warn("markdown renderer unavailable", "err", err)
		} else {
			r.Renderer = render
		}
	}

	input := m.Input()
	if opts.HasInput {
		input = opts.Input
	}

	var sig func() os.Signal
	if sc, ok := ctx.(*SignalContext); ok {
		sig = sc.Signal
	}

	rep, err := r.Run(ctx, m, input)
	if err != nil {
		var s os.Signal
		if sig != nil {
			s = sig()
		}
		return handleExecutionError(out, err, s)
	}

	if interactive {
		fmt.Fprintln(out, tui.Summary(termenv.EnvColorProfile(), rep.Outputs))
	}
	return nil
}
