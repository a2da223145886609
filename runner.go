package ndtm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/ndtm/pkg/domain"
)

// Report is the outcome of one run as shown to users.
type Report struct {
	Program   string         `json:"program,omitempty"`
	Input     string         `json:"input"`
	TapeCount int            `json:"tape_count"`
	Optimize  bool           `json:"optimize"`
	Outputs   domain.Outputs `json:"outputs"`
	Stats     Stats          `json:"stats"`
}

// Runner executes a machine and writes a report of its outputs.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Output   io.Writer
	Optimize bool
	// JSON switches the report to a single JSON document.
	JSON bool
	// Headless prints only one line per output, without headings.
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the markdown report before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner writing to w.
func NewRunner(w io.Writer) *Runner {
	return &Runner{Output: w}
}

// Run simulates m on input and writes the report.
func (r *Runner) Run(ctx context.Context, m *Machine, input string) (*Report, error) {
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	rep, err := m.Report(ctx, input, r.Optimize)
	if err != nil {
		return nil, err
	}
	outs := rep.Outputs

	switch {
	case r.JSON:
		enc := json.NewEncoder(r.Output)
		enc.SetIndent("", "  ")
		err = enc.Encode(rep)
	case r.Headless:
		for _, o := range outs {
			if _, err = fmt.Fprintln(r.Output, o); err != nil {
				break
			}
		}
	default:
		text := rep.Markdown()
		if r.Renderer != nil {
			if rendered, rerr := r.Renderer(text); rerr == nil {
				text = rendered
			}
		}
		_, err = fmt.Fprintln(r.Output, strings.TrimSpace(text))
	}
	if err != nil {
		return rep, fmt.Errorf("write report: %w", err)
	}
	return rep, nil
}

// Report runs m on input and wraps the result for display.
func (m *Machine) Report(ctx context.Context, input string, optimize bool) (*Report, error) {
	outs, stats, err := m.RunWithStats(ctx, input, optimize)
	if err != nil {
		return nil, err
	}
	return &Report{
		Program:   m.Name,
		Input:     input,
		TapeCount: m.TapeCount(),
		Optimize:  optimize,
		Outputs:   outs,
		Stats:     stats,
	}, nil
}

// codeSpan wraps s in a code span that survives a table cell: the fence is
// longer than any backtick run in s and pipes are escaped.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + strings.ReplaceAll(s, "|", `\|`) + fence
}

// Markdown renders the report as a markdown document.
func (rep *Report) Markdown() string {
	var sb strings.Builder

	title := "Results"
	if rep.Program != "" {
		title += ": " + rep.Program
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "Input `%s` on %d tape(s)", rep.Input, rep.TapeCount)
	if rep.Optimize {
		sb.WriteString(", optimized")
	}
	sb.WriteString("\n\n")

	if len(rep.Outputs) == 0 {
		sb.WriteString("_No branch reached a terminal state._\n")
	} else {
		sb.WriteString("| # | Result | Tapes | Heads |\n|---|---|---|---|\n")
		for i, o := range rep.Outputs {
			tapes := make([]string, len(o.Tapes))
			for j, t := range o.Tapes {
				tapes[j] = codeSpan(t)
			}
			fmt.Fprintf(&sb, "| %d | %s | %s | %v |\n", i+1, o.Classification.Name(), strings.Join(tapes, " "), o.Heads)
		}
	}

	fmt.Fprintf(&sb, "\n%d step(s), %d fork(s), %d pruned, max depth %d\n",
		rep.Stats.Steps, rep.Stats.Forks, rep.Stats.Pruned, rep.Stats.MaxDepth)
	return sb.String()
}
