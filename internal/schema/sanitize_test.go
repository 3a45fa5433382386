package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/netinv-mcp/pkg/types"
)

func TestRowValidatorAcceptsScalars(t *testing.T) {
	v, err := NewRowValidator([]string{"MAC Address", "VLAN", "Active"})
	require.NoError(t, err)

	msgs := v.Validate(types.Row{
		"MAC Address": "001A2B3C4D5E",
		"VLAN":        float64(20),
		"Active":      true,
	})
	assert.Empty(t, msgs)
}

func TestRowValidatorAcceptsNullAndMissing(t *testing.T) {
	v, err := NewRowValidator([]string{"MAC Address", "Loc"})
	require.NoError(t, err)

	assert.Empty(t, v.Validate(types.Row{"MAC Address": "001A2B3C4D5E", "Loc": nil}))
	assert.Empty(t, v.Validate(types.Row{"MAC Address": "001A2B3C4D5E"}))
}

func TestRowValidatorRejectsNonScalarValues(t *testing.T) {
	v, err := NewRowValidator([]string{"Ports"})
	require.NoError(t, err)

	msgs := v.Validate(types.Row{"Ports": []any{"Gi1/0/1"}})
	assert.NotEmpty(t, msgs)
}

func TestRowValidatorRejectsUnknownKeys(t *testing.T) {
	v, err := NewRowValidator([]string{"MAC Address"})
	require.NoError(t, err)

	msgs := v.Validate(types.Row{"MAC Address": "x", "Rogue": "y"})
	assert.NotEmpty(t, msgs)
}

func TestSanitizeDropsUnknownKeys(t *testing.T) {
	rs := &types.ResultSet{
		Success: true,
		Headers: []string{"MAC Address", "IP Address"},
		Data: []types.Row{
			{"MAC Address": "001A2B3C4D5E", "IP Address": "10.0.0.1", "Internal": "drop-me"},
			{"MAC Address": "FFEEDDCCBBAA", "IP Address": "10.0.0.2"},
		},
	}

	report := Sanitize(rs)
	assert.Equal(t, 1, report.DroppedKeys)
	assert.Equal(t, 0, report.InvalidRows)
	_, present := rs.Data[0]["Internal"]
	assert.False(t, present)
}

func TestSanitizeReportsInvalidRows(t *testing.T) {
	rs := &types.ResultSet{
		Success: true,
		Headers: []string{"Ports"},
		Data: []types.Row{
			{"Ports": "Gi1/0/1"},
			{"Ports": []any{"Gi1/0/1"}},
		},
	}

	report := Sanitize(rs)
	assert.Equal(t, 1, report.InvalidRows)
	require.NotEmpty(t, report.Errors)
	assert.Contains(t, report.Errors[0], "row 1")
	// Data is reported, not removed.
	assert.Len(t, rs.Data, 2)
}

func TestSanitizeEmptyAndNil(t *testing.T) {
	assert.Equal(t, &SanitizeReport{}, Sanitize(nil))
	assert.Equal(t, &SanitizeReport{}, Sanitize(&types.ResultSet{Success: true}))
}

func TestSanitizeCapsReportedRows(t *testing.T) {
	rs := &types.ResultSet{
		Success: true,
		Headers: []string{"Ports"},
	}
	for i := 0; i < maxReportedRows+5; i++ {
		rs.Data = append(rs.Data, types.Row{"Ports": []any{"x"}})
	}

	report := Sanitize(rs)
	assert.Equal(t, maxReportedRows+5, report.InvalidRows)
	require.NotEmpty(t, report.Errors)
	// Rows past the report limit contribute no messages.
	for _, msg := range report.Errors {
		assert.NotContains(t, msg, "row 10:")
		assert.NotContains(t, msg, "row 14:")
	}
}
