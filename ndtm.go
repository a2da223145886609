package ndtm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/ndtm/internal/compiler"
	"github.com/aretw0/ndtm/internal/runtime"
	"github.com/aretw0/ndtm/pkg/domain"
)

// Version is the library and CLI version.
const Version = "0.3.0"

// Stats summarizes one simulation run.
type Stats = runtime.Stats

// Machine is the high-level entry point of the library.
// It binds a parsed program to an execution engine.
type Machine struct {
	program *compiler.Program
	engine  *runtime.Engine
	dialect domain.Dialect
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithDialect sets the reserved markers used to parse the program.
// It has no effect on FromTable, whose table already carries a dialect.
func WithDialect(d domain.Dialect) Option {
	return func(m *Machine) {
		m.dialect = d
	}
}

// WithName labels the machine in logs.
func WithName(name string) Option {
	return func(m *Machine) {
		m.Name = name
	}
}

// Load reads and parses a program file.
func Load(path string, opts ...Option) (*Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	opts = append([]Option{WithName(strings.TrimSuffix(base, filepath.Ext(base)))}, opts...)
	return Parse(f, opts...)
}

// ParseString parses program text.
func ParseString(text string, opts ...Option) (*Machine, error) {
	return Parse(strings.NewReader(text), opts...)
}

// Parse reads program text from r.
func Parse(r io.Reader, opts ...Option) (*Machine, error) {
	m := newMachine(opts)

	program, err := compiler.NewParser(m.dialect).Parse(r)
	if err != nil {
		m.logger.Debug("program rejected", "err", err)
		return nil, err
	}
	m.bind(program)
	return m, nil
}

// FromTable wraps an already built table, for example one produced by the
// dsl package.
func FromTable(input string, table *domain.Table, opts ...Option) *Machine {
	m := newMachine(opts)
	m.dialect = table.Dialect()
	m.bind(&compiler.Program{Input: input, Table: table})
	return m
}

func newMachine(opts []Option) *Machine {
	m := &Machine{dialect: domain.DefaultDialect()}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if m.Name != "" {
		m.logger = m.logger.With("program", m.Name)
	}
	return m
}

func (m *Machine) bind(p *compiler.Program) {
	m.program = p
	m.engine = runtime.NewEngine(p.Table,
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
	)
}

// Run simulates the program on its own input line.
func (m *Machine) Run(ctx context.Context, optimize bool) (domain.Outputs, error) {
	return m.RunInput(ctx, m.program.Input, optimize)
}

// RunInput simulates the program on a custom input (without the initial symbol).
func (m *Machine) RunInput(ctx context.Context, input string, optimize bool) (domain.Outputs, error) {
	outs, _, err := m.RunWithStats(ctx, input, optimize)
	return outs, err
}

// RunWithStats is RunInput plus run statistics.
func (m *Machine) RunWithStats(ctx context.Context, input string, optimize bool) (domain.Outputs, Stats, error) {
	outs, stats, err := m.engine.SimulateWithStats(ctx, input, optimize)
	if err != nil {
		m.logger.Error("simulation failed", "err", err, "input", input)
		return nil, stats, err
	}
	return outs, stats, nil
}

// Input returns the input line of the program.
func (m *Machine) Input() string {
	return m.program.Input
}

// TapeCount returns the number of tapes.
func (m *Machine) TapeCount() int {
	return m.program.Table.Tapes()
}

// Table returns the transition table.
func (m *Machine) Table() *domain.Table {
	return m.program.Table
}

// Program regenerates the program text in canonical form.
func (m *Machine) Program() string {
	return compiler.Format(m.program)
}
