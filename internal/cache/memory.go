package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Memory is a TTL map cache. Expired entries are dropped lazily on read
// and swept whenever a Set lands, which bounds growth without a
// background goroutine.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time

	sweepEvery int
	sets       int
}

func NewMemory() *Memory {
	return &Memory{
		entries:    map[string]entry{},
		now:        time.Now,
		sweepEvery: 256,
	}
}

func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
	m.sets++
	if m.sets%m.sweepEvery == 0 {
		now := m.now()
		for k, e := range m.entries {
			if now.After(e.expiresAt) {
				delete(m.entries, k)
			}
		}
	}
}

func (m *Memory) InvalidatePrefix(prefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
}
