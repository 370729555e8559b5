package repositories

import (
	"context"
	"sync"

	"logpanel/models"
)

// memoryLogRepository is an in-process LogRepository used by tests. It keeps
// the stable-id contract of the SQLite implementation: ids are assigned
// monotonically and never reused, so deleting a row never shifts another
// row's identity.
type memoryLogRepository struct {
	mu      sync.Mutex
	entries []models.LogEntry
	nextID  int64
}

// NewMemoryLogRepository creates an in-memory log repository for tests
func NewMemoryLogRepository() LogRepository {
	return &memoryLogRepository{nextID: 1}
}

// snapshotLocked returns the entries newest first. Callers must hold mu.
func (r *memoryLogRepository) snapshotLocked() []models.LogEntry {
	out := make([]models.LogEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

func (r *memoryLogRepository) List(ctx context.Context) ([]models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked(), nil
}

func (r *memoryLogRepository) Create(ctx context.Context, entry *models.LogEntry) ([]models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *entry)

	return r.snapshotLocked(), nil
}

func (r *memoryLogRepository) Update(ctx context.Context, id int64, info, result, timestamp string) ([]models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries[i].Info = info
			r.entries[i].Result = result
			r.entries[i].Time = timestamp
			return r.snapshotLocked(), nil
		}
	}

	return nil, ErrNotFound
}

func (r *memoryLogRepository) Delete(ctx context.Context, id int64) ([]models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return r.snapshotLocked(), nil
		}
	}

	return nil, ErrNotFound
}
