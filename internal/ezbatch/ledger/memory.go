package ledger

import (
	"context"
	"sort"
	"sync"

	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
)

// memoryLedger keeps runs for the lifetime of the process.
type memoryLedger struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

func NewMemoryLedger() Ledger {
	return &memoryLedger{runs: make(map[string]*Run)}
}

func (m *memoryLedger) Record(ctx context.Context, run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.RunID] = run.clone()
	return nil
}

func (m *memoryLedger) Get(ctx context.Context, runID string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[runID]
	if !ok {
		return nil, ezerrors.ErrRunNotFound
	}
	return run.clone(), nil
}

func (m *memoryLedger) List(ctx context.Context, limit int) ([]*Run, error) {
	m.mu.RLock()
	runs := make([]*Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run.clone())
	}
	m.mu.RUnlock()

	sortNewestFirst(runs)
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *memoryLedger) Close() error {
	return nil
}

func sortNewestFirst(runs []*Run) {
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].SubmittedAt.Equal(runs[j].SubmittedAt) {
			return runs[i].RunID < runs[j].RunID
		}
		return runs[i].SubmittedAt.After(runs[j].SubmittedAt)
	})
}
