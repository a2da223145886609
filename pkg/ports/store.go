package ports

import (
	"context"
)

// ProgramStore defines the interface for keeping named programs.
// Stores hold program text only; runs never persist machine state.
type ProgramStore interface {
	// Save stores the program text under name, replacing any previous version.
	Save(ctx context.Context, name string, text string) error

	// Load retrieves the program text for name.
	// Returns domain.ErrProgramNotFound if the program does not exist.
	Load(ctx context.Context, name string) (string, error)

	// Delete removes the program. Deleting a missing program is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored program names in lexicographic order.
	List(ctx context.Context) ([]string, error)
}
