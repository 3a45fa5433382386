// Package history keeps a bounded, most-recently-used list of prior
// hardware-identifier searches, persisted across sessions.
package history

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/usestring/netinv-mcp/internal/store"
	"github.com/usestring/netinv-mcp/pkg/types"
)

// StoreKey is the store key the history list is persisted under.
const StoreKey = "search_history"

// Patch carries optional field updates for an existing entry.
// Nil fields are left untouched; Count and LastSearchedAt never change here.
type Patch struct {
	Loc *string
}

// Manager owns the recency history list. Safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	kv      store.Store
	max     int
	now     func() time.Time
	entries []types.HistoryEntry
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// New loads the persisted history list. A corrupted or missing entry yields
// an empty list; the session never fails on bad storage.
func New(kv store.Store, max int, opts ...Option) *Manager {
	m := &Manager{
		kv:  kv,
		max: max,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	var entries []types.HistoryEntry
	ok, err := kv.Get(StoreKey, &entries)
	if err != nil {
		slog.Warn("discarding persisted search history", slog.String("error", err.Error()))
	} else if ok {
		m.entries = entries
		m.normalize()
	}
	return m
}

// Record notes a search for the canonical identifier mac. An existing entry
// (case-insensitive match) gets its count bumped and timestamp refreshed; a
// new one is inserted. loc is only set when non-empty and not already known.
// The list is then truncated to its bound and re-sorted most-recent-first.
func (m *Manager) Record(mac string, loc string) {
	if mac == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if i := m.indexOf(mac); i >= 0 {
		m.entries[i].Count++
		m.entries[i].LastSearchedAt = now
		if loc != "" && m.entries[i].Loc == "" {
			m.entries[i].Loc = loc
		}
	} else {
		m.entries = append([]types.HistoryEntry{{
			MAC:            strings.ToUpper(mac),
			LastSearchedAt: now,
			Count:          1,
			Loc:            loc,
		}}, m.entries...)
	}

	m.normalize()
	m.save()
}

// Update merges patch fields into the entry for mac without touching its
// count or timestamp. Used to backfill derived attributes after the fact.
func (m *Manager) Update(mac string, patch Patch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(mac)
	if i < 0 {
		return
	}
	if patch.Loc != nil {
		m.entries[i].Loc = *patch.Loc
	}
	m.save()
}

// Remove deletes the entry for mac, if present.
func (m *Manager) Remove(mac string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(mac)
	if i < 0 {
		return
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	m.save()
}

// Clear empties the history list.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	m.save()
}

// List returns a copy of the history, most recent first.
func (m *Manager) List() []types.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.HistoryEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// indexOf finds the entry for mac, case-insensitively. Caller holds the lock.
func (m *Manager) indexOf(mac string) int {
	for i, e := range m.entries {
		if strings.EqualFold(e.MAC, mac) {
			return i
		}
	}
	return -1
}

// normalize re-sorts most-recent-first and truncates to the bound.
// Caller holds the lock.
func (m *Manager) normalize() {
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].LastSearchedAt.After(m.entries[j].LastSearchedAt)
	})
	if m.max > 0 && len(m.entries) > m.max {
		m.entries = m.entries[:m.max]
	}
}

// save persists the list best-effort. Caller holds the lock.
func (m *Manager) save() {
	if err := m.kv.Set(StoreKey, m.entries); err != nil {
		slog.Warn("failed to persist search history", slog.String("error", err.Error()))
	}
}
