package types

// SnapshotInfo is the metadata describing the current dataset snapshot.
type SnapshotInfo struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	SnapshotDate string `json:"snapshot_date"`
	RowCount     int    `json:"row_count"`
	Fallback     bool   `json:"fallback"` // true when the backend served an older file in place of today's
}

// PreviewResult is the leading slice of the current snapshot plus its metadata.
type PreviewResult struct {
	ResultSet
	SnapshotDate string `json:"snapshot_date"`
	RowCount     int    `json:"row_count"`
	Fallback     bool   `json:"fallback"`
}

// Info extracts the snapshot metadata from a preview response.
func (p *PreviewResult) Info() SnapshotInfo {
	return SnapshotInfo{
		Success:      p.Success,
		Message:      p.Message,
		SnapshotDate: p.SnapshotDate,
		RowCount:     p.RowCount,
		Fallback:     p.Fallback,
	}
}

// SnapshotAvailability is the consolidated answer to "is the current snapshot
// usable", computed once from snapshot metadata instead of being re-derived
// from message text in every consumer.
type SnapshotAvailability int

const (
	// SnapshotPresent means today's data exists and has rows.
	SnapshotPresent SnapshotAvailability = iota
	// SnapshotMissing means no current snapshot could be located.
	SnapshotMissing
	// SnapshotEmpty means a current snapshot exists but holds zero rows.
	SnapshotEmpty
)

func (a SnapshotAvailability) String() string {
	switch a {
	case SnapshotPresent:
		return "present"
	case SnapshotMissing:
		return "missing"
	case SnapshotEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// ClassifySnapshot maps snapshot metadata to an availability state.
func ClassifySnapshot(info *SnapshotInfo) SnapshotAvailability {
	if info == nil || !info.Success || info.SnapshotDate == "" {
		return SnapshotMissing
	}
	if info.RowCount == 0 {
		return SnapshotEmpty
	}
	return SnapshotPresent
}
