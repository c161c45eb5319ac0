package cached

import (
	"context"
	"sync"
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// DefaultMaxEntries bounds a memory store built with a non-positive size.
const DefaultMaxEntries = 1 << 16

type memoryEntry struct {
	value []byte
	// validity window; nil when the entry never expires
	span *timespan.TimeSpan
}

// MemoryStore is an in-process Store holding at most about 2*maxEntries values.
// Writes go to the head generation; when it is full the older generation is
// dropped and a fresh one becomes the head.
type MemoryStore struct {
	mu          sync.Mutex
	generations [2]map[string]memoryEntry
	headIdx     int
	size        int
	maxEntries  int
	defaultTTL  time.Duration
	now         func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		m.now = now
	}
}

func NewMemoryStore(maxEntries int, defaultTTL time.Duration, opts ...MemoryOption) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	m := &MemoryStore{
		generations: [2]map[string]memoryEntry{{}, {}},
		maxEntries:  maxEntries,
		defaultTTL:  defaultTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, idx := range [2]int{m.headIdx, 1 - m.headIdx} {
		e, ok := m.generations[idx][key]
		if !ok {
			continue
		}
		if e.span != nil && !m.now().Before(e.span.End()) {
			delete(m.generations[idx], key)
			return nil, false, nil
		}
		return append([]byte(nil), e.value...), true, nil
	}
	return nil, false, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		now := m.now()
		span := timespan.BetweenTimes(now, now.Add(ttl))
		e.span = &span
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.generations[m.headIdx][key]; !ok {
		if m.size >= m.maxEntries {
			m.headIdx = 1 - m.headIdx
			m.generations[m.headIdx] = make(map[string]memoryEntry)
			m.size = 0
		}
		m.size++
	}
	m.generations[m.headIdx][key] = e
	delete(m.generations[1-m.headIdx], key)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.generations[m.headIdx][key]; ok {
		m.size--
	}
	delete(m.generations[0], key)
	delete(m.generations[1], key)
	return nil
}

// Len reports how many entries are held, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.generations[0]) + len(m.generations[1])
}
