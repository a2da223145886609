package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	"github.com/aretw0/ndtm"
	"github.com/aretw0/ndtm/internal/presentation/graph"
	"github.com/aretw0/ndtm/internal/validator"
	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/aretw0/ndtm/pkg/observability"
	"github.com/aretw0/ndtm/pkg/ports"
)

var (
	// ErrNoProgram is returned when a request names neither program text nor a stored program.
	ErrNoProgram = errors.New("either program text or a program name is required")
	// ErrInvalidName is returned for program names outside [A-Za-z0-9._-]{1,64}.
	ErrInvalidName = errors.New("invalid program name")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// SimulateRequest selects a program and how to run it.
type SimulateRequest struct {
	// Program is inline program text; it wins over Name.
	Program string `json:"program,omitempty"`
	Name    string `json:"name,omitempty"`
	// Input overrides the program's own input line when set.
	Input    *string `json:"input,omitempty"`
	Optimize bool    `json:"optimize"`
}

// Service resolves programs from text or a store and runs them.
// It is shared by the HTTP and MCP adapters.
type Service struct {
	store   ports.ProgramStore
	metrics *observability.Metrics
	dialect domain.Dialect
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records every run.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithDialect sets the markers used to parse programs.
func WithDialect(d domain.Dialect) Option {
	return func(s *Service) {
		s.dialect = d
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a service over store.
func New(store ports.ProgramStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		dialect: domain.DefaultDialect(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Machine parses program, or the stored program called name.
func (s *Service) Machine(ctx context.Context, name, program string) (*ndtm.Machine, error) {
	opts := []ndtm.Option{ndtm.WithDialect(s.dialect), ndtm.WithLogger(s.logger)}
	if s.metrics != nil {
		opts = append(opts, ndtm.WithLifecycleHooks(s.metrics.Hooks()))
	}

	switch {
	case program != "":
		return ndtm.ParseString(program, opts...)
	case name != "":
		text, err := s.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		return ndtm.ParseString(text, append(opts, ndtm.WithName(name))...)
	}
	return nil, ErrNoProgram
}

// Simulate runs the requested program and reports every terminal branch.
func (s *Service) Simulate(ctx context.Context, req SimulateRequest) (*ndtm.Report, error) {
	m, err := s.Machine(ctx, req.Name, req.Program)
	if err != nil {
		return nil, err
	}

	input := m.Input()
	if req.Input != nil {
		input = *req.Input
	}

	outs, stats, err := m.RunWithStats(ctx, input, req.Optimize)
	if s.metrics != nil {
		s.metrics.ObserveRun(stats.Elapsed.Seconds(), err)
	}
	if err != nil {
		return nil, err
	}

	return &ndtm.Report{
		Program:   m.Name,
		Input:     input,
		TapeCount: m.TapeCount(),
		Optimize:  req.Optimize,
		Outputs:   outs,
		Stats:     stats,
	}, nil
}

// Format returns the canonical text of program.
func (s *Service) Format(program string) (string, error) {
	m, err := ndtm.ParseString(program, ndtm.WithDialect(s.dialect))
	if err != nil {
		return "", err
	}
	return m.Program(), nil
}

// Graph returns a Mermaid diagram of the program.
func (s *Service) Graph(ctx context.Context, name, program string) (string, error) {
	m, err := s.Machine(ctx, name, program)
	if err != nil {
		return "", err
	}
	return graph.GenerateMermaid(m.Table(), nil), nil
}

// Validate reports static problems in the program.
func (s *Service) Validate(ctx context.Context, name, program string) ([]validator.Finding, error) {
	m, err := s.Machine(ctx, name, program)
	if err != nil {
		return nil, err
	}
	return validator.ValidateTable(m.Table()), nil
}

// Save parses program and stores its canonical form under name.
func (s *Service) Save(ctx context.Context, name, program string) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	text, err := s.Format(program)
	if err != nil {
		return "", err
	}
	if err := s.store.Save(ctx, name, text); err != nil {
		return "", fmt.Errorf("failed to save program: %w", err)
	}
	s.logger.Info("program saved", "name", name)
	return text, nil
}

// Load returns the stored program text.
func (s *Service) Load(ctx context.Context, name string) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return s.store.Load(ctx, name)
}

// Delete removes a stored program.
func (s *Service) Delete(ctx context.Context, name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return s.store.Delete(ctx, name)
}

// List returns stored program names.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}
