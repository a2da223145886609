package cli

import (
	"context"
	"slices"

	"github.com/aretw0/ndtm"
	"github.com/aretw0/ndtm/internal/presentation/graph"
	"github.com/aretw0/ndtm/pkg/domain"
)

// Trace runs m on input and records the states the run took a transition
// from and the terminal states it halted in, for highlighting in a diagram.
func Trace(ctx context.Context, m *ndtm.Machine, input string, optimize bool) (*graph.Overlay, error) {
	visited := make(map[string]bool)
	halted := make(map[string]bool)

	hooks := domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			visited[e.State] = true
		},
		OnHalt: func(ctx context.Context, e *domain.StepEvent) {
			halted[e.State] = true
		},
	}

	traced := ndtm.FromTable(input, m.Table(), ndtm.WithLifecycleHooks(hooks))
	if _, err := traced.Run(ctx, optimize); err != nil {
		return nil, err
	}

	return &graph.Overlay{
		Visited: sortedKeys(visited),
		Halted:  sortedKeys(halted),
	}, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
