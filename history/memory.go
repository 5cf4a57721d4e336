package history

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-memory store.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
	next    int64
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{next: 1}
}

// Insert records an entry.
func (m *Memory) Insert(e Entry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.next
	e.Timestamp = e.Timestamp.Truncate(time.Millisecond)
	m.next++
	m.entries = append(m.entries, e)
	return e.ID, nil
}

// Recent returns up to n of the most recent entries.
func (m *Memory) Recent(n int) ([]Entry, error) {
	return m.filter(func(Entry) bool { return true }, n), nil
}

// Search returns up to n of the most recent entries matching q.
func (m *Memory) Search(q string, n int) ([]Entry, error) {
	q = asciiLower(q)
	return m.filter(func(e Entry) bool {
		return strings.Contains(asciiLower(e.Expression), q) || strings.Contains(asciiLower(e.Result), q)
	}, n), nil
}

// Delete removes an entry by ID.
func (m *Memory) Delete(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes all entries.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// Count returns the number of entries.
func (m *Memory) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}

// filter returns up to n matching entries, newest first.
func (m *Memory) filter(keep func(Entry) bool, n int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var r []Entry
	for _, e := range m.entries {
		if keep(e) {
			r = append(r, e)
		}
	}
	sort.SliceStable(r, func(i, j int) bool {
		if !r[i].Timestamp.Equal(r[j].Timestamp) {
			return r[i].Timestamp.After(r[j].Timestamp)
		}
		return r[i].ID > r[j].ID
	})
	if n > 0 && len(r) > n {
		r = r[:n]
	}
	return r
}

// asciiLower lowers ASCII letters only, matching SQLite's LIKE.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + 'a' - 'A'
		}
		return r
	}, s)
}
