package domain

import (
	"context"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep  EventType = "step"
	EventPrune EventType = "prune"
	EventHalt  EventType = "halt"
)

// StepEvent describes one configuration visited by the engine.
type StepEvent struct {
	Type  EventType `json:"type"`
	State string    `json:"state"`
	// Depth is the number of moves from the initial configuration.
	Depth int   `json:"depth"`
	Heads []int `json:"heads"`
	// Read is set for steps that looked up a transition.
	Read Symbols `json:"read,omitempty"`
	// Branches is the number of options taken from this configuration.
	Branches int `json:"branches,omitempty"`
	// Classification is set for halt events.
	Classification Classification `json:"classification,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run on the simulating goroutine and must not retain the event.
type LifecycleHooks struct {
	OnStep  func(context.Context, *StepEvent)
	OnPrune func(context.Context, *StepEvent)
	OnHalt  func(context.Context, *StepEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep:  chain(h.OnStep, other.OnStep),
		OnPrune: chain(h.OnPrune, other.OnPrune),
		OnHalt:  chain(h.OnHalt, other.OnHalt),
	}
}

func chain(a, b func(context.Context, *StepEvent)) func(context.Context, *StepEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
