package session

import (
	"log/slog"

	"github.com/usestring/netinv-mcp/internal/store"
)

// StateKey is the store key the session state is persisted under.
const StateKey = "search_state"

// Load rehydrates the session state from the store, so a restart restores
// the exact prior view without re-querying. A missing or corrupted entry
// falls back silently to the default state.
func Load(kv store.Store, defaultPageSize int) *State {
	st := Default(defaultPageSize)
	ok, err := kv.Get(StateKey, st)
	if err != nil {
		slog.Warn("discarding persisted session state", slog.String("error", err.Error()))
		return Default(defaultPageSize)
	}
	if !ok {
		return st
	}
	// Re-clamp on load: the persisted payload may predate a config change
	// or have been edited out-of-band.
	st.SetPageSize(st.Pagination.PageSize)
	if st.Pagination.Page < 1 {
		st.Pagination.Page = 1
	}
	return st
}

// Save persists the session state. Best-effort: a storage failure is logged
// and swallowed, never surfaced to the operation that triggered it.
func Save(kv store.Store, st *State) {
	if err := kv.Set(StateKey, st); err != nil {
		slog.Warn("failed to persist session state", slog.String("error", err.Error()))
	}
}
