package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

// Snapshot is the catalog item list held by the cache and the time it was ingested.
type Snapshot struct {
	Items     []model.InventoryItem `json:"items"`
	Timestamp time.Time             `json:"timestamp"`
}

// SnapshotStore holds the single catalog cache slot. The slot is replaced
// wholesale and never partially mutated.
type SnapshotStore interface {
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, s Snapshot) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the snapshot in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (Snapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return Snapshot{}, false, nil
	}
	return *m.snap, true, nil
}

func (m *MemoryStore) Save(_ context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = &s
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = nil
	return nil
}
