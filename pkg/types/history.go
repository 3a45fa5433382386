package types

import "time"

// HistoryEntry is one remembered hardware-identifier search.
type HistoryEntry struct {
	MAC            string    `json:"mac"` // canonical 12-hex-digit uppercase form
	LastSearchedAt time.Time `json:"last_searched_at"`
	Count          int       `json:"count"`
	Loc            string    `json:"loc,omitempty"` // short location code, backfilled lazily
}
