// Package dao defines the persistence contract for fixgod's run history:
// one row per submitted fix task, independent of whether it is ultimately
// backed by sqlite or an in-memory map.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/dekarrin/fixgo/internal/fixid"
)

// ErrNotFound is returned by a RunRepository when no run matches the given
// ID.
var ErrNotFound = errors.New("the requested run could not be found")

// Run is one persisted outcome of a fixgo repair task, the unit fixgod
// hands back to a caller of GET /runs or GET /runs/{id}.
type Run struct {
	ID          fixid.ID
	Lang        string
	MaxLen      int
	FoundLength int // -1 if no fix was found within MaxLen
	Originals   []string
	Outputs     []string
	Submitted   time.Time
	Err         string // non-empty if the task failed to load or run
}

// RunRepository stores and retrieves Run rows.
type RunRepository interface {
	// Create persists run, assigning it a fresh ID if run.ID is the zero
	// value.
	Create(ctx context.Context, run Run) (Run, error)

	GetByID(ctx context.Context, id fixid.ID) (Run, error)

	// List returns every stored run, newest first.
	List(ctx context.Context) ([]Run, error)

	Close() error
}
