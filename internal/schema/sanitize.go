package schema

import (
	"log/slog"
	"strconv"

	"github.com/usestring/netinv-mcp/pkg/types"
)

// maxReportedRows caps how many invalid rows get individually reported.
const maxReportedRows = 10

// SanitizeReport summarizes what Sanitize changed.
type SanitizeReport struct {
	DroppedKeys int      // row keys removed for not appearing in Headers
	InvalidRows int      // rows that still violated the schema after dropping
	Errors      []string // sample of violation messages
}

// Sanitize enforces the ResultSet invariant that every row's key set is a
// subset of Headers: unknown keys are dropped in place, and the surviving
// rows are validated against the header-derived schema. Violations are
// reported, not fatal; the backend's data is still shown.
func Sanitize(rs *types.ResultSet) *SanitizeReport {
	report := &SanitizeReport{}
	if rs == nil || len(rs.Data) == 0 {
		return report
	}

	validator, err := NewRowValidator(rs.Headers)
	if err != nil {
		// An uncompilable header list means something upstream is badly
		// broken; log it and pass the data through untouched.
		slog.Warn("row schema unavailable", slog.String("error", err.Error()))
		return report
	}

	headerSet := rs.HeaderSet()
	for i, row := range rs.Data {
		for k := range row {
			if _, ok := headerSet[k]; !ok {
				delete(row, k)
				report.DroppedKeys++
			}
		}

		if msgs := validator.Validate(row); len(msgs) > 0 {
			report.InvalidRows++
			if report.InvalidRows <= maxReportedRows {
				for _, msg := range msgs {
					report.Errors = append(report.Errors, "row "+strconv.Itoa(i)+": "+msg)
				}
			}
		}
	}

	if report.DroppedKeys > 0 || report.InvalidRows > 0 {
		slog.Warn("sanitized backend result set",
			slog.Int("dropped_keys", report.DroppedKeys),
			slog.Int("invalid_rows", report.InvalidRows),
		)
	}
	return report
}
