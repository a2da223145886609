package runtime

import (
	"context"
	"slices"
	"time"

	"github.com/aretw0/ndtm/pkg/domain"
)

// Stats summarizes one run.
type Stats struct {
	// Steps counts configurations that looked up a transition.
	Steps int `json:"steps"`
	// Forks counts steps that had more than one option.
	Forks int `json:"forks"`
	// Pruned counts configurations skipped because they were already visited.
	Pruned int `json:"pruned"`
	// Halted counts terminal records emitted.
	Halted   int           `json:"halted"`
	MaxDepth int           `json:"max_depth"`
	Elapsed  time.Duration `json:"elapsed"`
}

// task is a pending unit of work. A task with a nil opt is a configuration
// ready to be visited; otherwise opt still has to be applied to the parent's
// tapes and heads. Applying lazily keeps errors and outputs in the order a
// recursive depth-first search would produce them.
type task struct {
	state string
	tapes [][]domain.Symbol
	heads []int
	depth int

	opt *domain.Option
	// own marks the last sibling of a fork, which may take the parent's
	// arrays instead of cloning them.
	own bool
}

// Simulate runs the machine on input and returns one Output per terminal
// branch in depth-first discovery order. With optimize set, configurations
// already visited during this run are not explored again.
//
// Any undefined transition, left move at position 0 or unknown direction
// aborts the whole run; no partial result is returned.
func (e *Engine) Simulate(ctx context.Context, input string, optimize bool) (domain.Outputs, error) {
	outs, _, err := e.SimulateWithStats(ctx, input, optimize)
	return outs, err
}

// SimulateWithStats is Simulate plus run statistics. Stats are returned even
// when the run fails.
func (e *Engine) SimulateWithStats(ctx context.Context, input string, optimize bool) (domain.Outputs, Stats, error) {
	start := time.Now()
	r := &run{
		engine:    e,
		collector: NewCollector(),
	}
	if optimize {
		r.visited = domain.NewConfigurationSet()
	}

	e.logger.Debug("simulation started",
		"input", input,
		"tapes", e.table.Tapes(),
		"optimize", optimize)

	err := r.explore(ctx, e.initialTask(input))
	r.stats.Elapsed = time.Since(start)
	if err != nil {
		e.logger.Debug("simulation aborted", "err", err, "steps", r.stats.Steps)
		return nil, r.stats, err
	}

	e.logger.Debug("simulation finished",
		"outputs", r.collector.Len(),
		"steps", r.stats.Steps,
		"forks", r.stats.Forks,
		"pruned", r.stats.Pruned,
		"max_depth", r.stats.MaxDepth,
		"elapsed", r.stats.Elapsed)
	return r.collector.Outputs(), r.stats, nil
}

func (e *Engine) initialTask(input string) task {
	n := e.table.Tapes()
	t := task{
		state: e.dialect.InitialState,
		tapes: make([][]domain.Symbol, n),
		heads: make([]int, n),
	}
	for i := range t.tapes {
		tape := []domain.Symbol{e.dialect.Initial}
		if i == 0 {
			for _, r := range input {
				tape = append(tape, domain.Symbol(r))
			}
		}
		t.tapes[i] = tape
	}
	return t
}

type run struct {
	engine    *Engine
	collector *Collector
	visited   *domain.ConfigurationSet
	stats     Stats
}

func (r *run) explore(ctx context.Context, initial task) error {
	e := r.engine
	stack := []task{initial}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.opt != nil {
			if err := r.apply(&t); err != nil {
				return err
			}
		}
		if t.depth > r.stats.MaxDepth {
			r.stats.MaxDepth = t.depth
		}

		if r.visited != nil {
			if !r.visited.Add(domain.Snapshot(t.state, t.tapes, t.heads)) {
				r.stats.Pruned++
				if e.hooks.OnPrune != nil {
					e.hooks.OnPrune(ctx, r.event(domain.EventPrune, &t))
				}
				continue
			}
		}

		if class, ok := e.dialect.Classify(t.state); ok {
			snap := domain.Snapshot(t.state, t.tapes, t.heads)
			r.collector.Add(domain.Output{Classification: class, Tapes: snap.Tapes, Heads: snap.Heads})
			r.stats.Halted++
			if e.hooks.OnHalt != nil {
				ev := r.event(domain.EventHalt, &t)
				ev.Classification = class
				e.hooks.OnHalt(ctx, ev)
			}
			continue
		}

		read := make(domain.Symbols, len(t.tapes))
		for i := range t.tapes {
			for len(t.tapes[i]) <= t.heads[i] {
				t.tapes[i] = append(t.tapes[i], e.dialect.Blank)
			}
			read[i] = t.tapes[i][t.heads[i]]
		}

		opts, ok := e.table.Lookup(t.state, read)
		if !ok {
			return &domain.MachineError{Kind: domain.KindUndefinedTransition, State: t.state, Read: read}
		}

		r.stats.Steps++
		if len(opts) > 1 {
			r.stats.Forks++
		}
		if e.hooks.OnStep != nil {
			ev := r.event(domain.EventStep, &t)
			ev.Read = read
			ev.Branches = len(opts)
			e.hooks.OnStep(ctx, ev)
		}

		// Push in reverse so the first option is explored first.
		for i := len(opts) - 1; i >= 0; i-- {
			stack = append(stack, task{
				state: t.state,
				tapes: t.tapes,
				heads: t.heads,
				depth: t.depth + 1,
				opt:   &opts[i],
				own:   i == len(opts)-1,
			})
		}
	}
	return nil
}

// apply performs t.opt on t's tapes: write under every head, then move it.
func (r *run) apply(t *task) error {
	d := r.engine.dialect
	opt := t.opt

	tapes, heads := t.tapes, t.heads
	if !t.own {
		tapes = make([][]domain.Symbol, len(t.tapes))
		for i, tape := range t.tapes {
			tapes[i] = slices.Clone(tape)
		}
		heads = slices.Clone(t.heads)
	}

	for i, m := range opt.Moves {
		tapes[i][heads[i]] = m.Write
		switch m.Dir {
		case domain.Right:
			heads[i]++
			if heads[i] == len(tapes[i]) {
				tapes[i] = append(tapes[i], d.Blank)
			}
		case domain.Left:
			if heads[i] == 0 {
				return &domain.MachineError{Kind: domain.KindTapeOrigin, State: t.state, Tape: i}
			}
			heads[i]--
		case domain.Stay:
		default:
			return &domain.MachineError{Kind: domain.KindUnknownDirection, State: t.state, Tape: i, Marker: rune(m.Dir)}
		}
	}

	t.state = opt.Next
	t.tapes, t.heads = tapes, heads
	t.opt, t.own = nil, false
	return nil
}

func (r *run) event(typ domain.EventType, t *task) *domain.StepEvent {
	return &domain.StepEvent{
		Type:  typ,
		State: t.state,
		Depth: t.depth,
		Heads: slices.Clone(t.heads),
	}
}
