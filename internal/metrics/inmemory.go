package metrics

import "sync"

// Snapshot captures current in-memory counters keyed by entity.
type Snapshot struct {
	Created map[string]int64
	Updated map[string]int64
	Deleted map[string]int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu      sync.Mutex
	created map[string]int64
	updated map[string]int64
	deleted map[string]int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		created: make(map[string]int64),
		updated: make(map[string]int64),
		deleted: make(map[string]int64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Created: copyCounts(m.created),
		Updated: copyCounts(m.updated),
		Deleted: copyCounts(m.deleted),
	}
}

// IncCreated increments the created counter for entity.
func (m *InMemoryRecorder) IncCreated(entity string) {
	m.mu.Lock()
	m.created[entity]++
	m.mu.Unlock()
}

// IncUpdated increments the updated counter for entity.
func (m *InMemoryRecorder) IncUpdated(entity string) {
	m.mu.Lock()
	m.updated[entity]++
	m.mu.Unlock()
}

// AddDeleted adds n to the deleted counter for entity.
func (m *InMemoryRecorder) AddDeleted(entity string, n int64) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	m.deleted[entity] += n
	m.mu.Unlock()
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
