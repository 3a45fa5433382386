package history

import (
	"regexp"
	"strings"

	"github.com/usestring/netinv-mcp/internal/normalize"
	"github.com/usestring/netinv-mcp/pkg/types"
)

// locPattern is the fixed location-code format: three letters then two
// digits, anchored at the start of a hostname (e.g. "lab04-sw2" -> "LAB04").
var locPattern = regexp.MustCompile(`^[A-Za-z]{3}[0-9]{2}`)

// reservedLocCode is a staging sentinel used for devices with no assigned
// location; it is never treated as a real location.
const reservedLocCode = "NET00"

// BackfillLocations enriches history entries that are still missing a
// location code, scanning a fresh result set for rows whose identifier
// columns match and deriving the code from a hostname-like column.
func (m *Manager) BackfillLocations(rs *types.ResultSet) {
	if rs == nil || len(rs.Data) == 0 {
		return
	}

	macCols, hostCols := classifyColumns(rs.Headers)
	if len(macCols) == 0 || len(hostCols) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	changed := false
	for i := range m.entries {
		if m.entries[i].Loc != "" {
			continue
		}
		if loc := findLoc(rs.Data, macCols, hostCols, m.entries[i].MAC); loc != "" {
			m.entries[i].Loc = loc
			changed = true
		}
	}
	if changed {
		m.save()
	}
}

// classifyColumns splits headers into identifier columns and hostname-like
// columns by name.
func classifyColumns(headers []string) (macCols, hostCols []string) {
	for _, h := range headers {
		l := strings.ToLower(h)
		switch {
		case strings.Contains(l, "mac"):
			macCols = append(macCols, h)
		case strings.Contains(l, "hostname") || strings.Contains(l, "switch"):
			hostCols = append(hostCols, h)
		}
	}
	return macCols, hostCols
}

// findLoc scans rows for one whose identifier column matches mac and returns
// the location code derived from the first hostname column that yields one.
func findLoc(rows []types.Row, macCols, hostCols []string, mac string) string {
	for _, row := range rows {
		if !rowMatchesMAC(row, macCols, mac) {
			continue
		}
		for _, hc := range hostCols {
			if loc := DeriveLoc(cellString(row[hc])); loc != "" {
				return loc
			}
		}
	}
	return ""
}

func rowMatchesMAC(row types.Row, macCols []string, mac string) bool {
	for _, mc := range macCols {
		if got, ok := normalize.CanonicalMAC(cellString(row[mc])); ok && got == mac {
			return true
		}
	}
	return false
}

// DeriveLoc extracts the uppercase location code from a hostname, or ""
// when the hostname does not follow the fixed format or carries the
// reserved sentinel code.
func DeriveLoc(hostname string) string {
	code := locPattern.FindString(strings.TrimSpace(hostname))
	if code == "" {
		return ""
	}
	code = strings.ToUpper(code)
	if code == reservedLocCode {
		return ""
	}
	return code
}

func cellString(v any) string {
	s, _ := v.(string)
	return s
}
