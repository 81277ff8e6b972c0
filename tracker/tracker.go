package tracker

import (
	"errors"
	"sync"
)

// ErrNotFound is returned for ids the tracker has never seen.
var ErrNotFound = errors.New("tracking id not found")

type entry struct {
	mu   sync.RWMutex
	snap Snapshot
}

// Tracker is a keyed store of job progress. Each job has a single writer (its
// pipeline goroutine) and any number of readers. Entries are never evicted.
type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]*entry
}

func New() *Tracker {
	return &Tracker{jobs: make(map[string]*entry)}
}

// Create registers a job in the Started state. Creating an existing id resets it.
func (t *Tracker) Create(id string) Snapshot {
	e := &entry{snap: Snapshot{
		Status:      StatusStarted,
		Percentage:  0,
		Description: "Initializing article generation...",
	}}
	t.mu.Lock()
	t.jobs[id] = e
	t.mu.Unlock()
	return e.snap
}

// Update moves a job to a new status. The stored percentage never decreases;
// a lower value keeps the previous one.
func (t *Tracker) Update(id string, status Status, percentage int, description string) error {
	e, ok := t.lookup(id)
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if percentage > 100 {
		percentage = 100
	}
	if percentage < e.snap.Percentage {
		percentage = e.snap.Percentage
	}
	e.snap = Snapshot{Status: status, Percentage: percentage, Description: description}
	return nil
}

// Get returns a copy of the job's current progress.
func (t *Tracker) Get(id string) (Snapshot, error) {
	e, ok := t.lookup(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap, nil
}

// Len reports how many jobs have been created.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.jobs)
}

func (t *Tracker) lookup(id string) (*entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.jobs[id]
	return e, ok
}
