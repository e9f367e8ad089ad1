// Package inmem is a memory-backed dao.RunRepository, grounded on the
// teacher's own dao/inmem package: a mutex-guarded map standing in for a
// real datastore, suitable for tests and for fixgod runs launched with
// --db inmem.
package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/dekarrin/fixgo/internal/fixid"
	"github.com/dekarrin/fixgo/server/dao"
)

type RunRepository struct {
	mu   sync.RWMutex
	runs map[fixid.ID]dao.Run
}

func NewRunRepository() *RunRepository {
	return &RunRepository{runs: make(map[fixid.ID]dao.Run)}
}

func (r *RunRepository) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero fixid.ID
	if run.ID == zero {
		run.ID = fixid.New()
	}
	r.runs[run.ID] = run
	return run, nil
}

func (r *RunRepository) GetByID(ctx context.Context, id fixid.ID) (dao.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, ok := r.runs[id]
	if !ok {
		return dao.Run{}, dao.ErrNotFound
	}
	return run, nil
}

func (r *RunRepository) List(ctx context.Context) ([]dao.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]dao.Run, 0, len(r.runs))
	for _, run := range r.runs {
		all = append(all, run)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Submitted.After(all[j].Submitted)
	})
	return all, nil
}

func (r *RunRepository) Close() error {
	return nil
}
