package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/netinv-mcp/pkg/types"
)

func sampleRows() []types.Row {
	return []types.Row{
		{"MAC Address": "001A2B3C4D5E", "Switch Hostname": "lab04-sw2", "VLAN": float64(20)},
		{"MAC Address": "FFEEDDCCBBAA", "Switch Hostname": "lab04-sw3", "VLAN": float64(20)},
		{"MAC Address": "112233445566", "Switch Hostname": "oth99-core1", "VLAN": float64(30)},
	}
}

func TestRunExtractsColumn(t *testing.T) {
	e := NewEngine()
	res, err := e.Run(sampleRows(), `.["Switch Hostname"]`, false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"lab04-sw2", "lab04-sw3", "oth99-core1"}, res.Values)
	assert.Equal(t, 3, res.RawCount)
	assert.Empty(t, res.Errors)
}

func TestRunDeduplicates(t *testing.T) {
	e := NewEngine()
	res, err := e.Run(sampleRows(), `.VLAN`, true, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(20), float64(30)}, res.Values)
	assert.Equal(t, 3, res.RawCount, "raw count precedes deduplication")
}

func TestRunSkipsNilEmissions(t *testing.T) {
	e := NewEngine()
	res, err := e.Run(sampleRows(), `.Missing`, false, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Values)
	assert.Equal(t, 0, res.RawCount)
	assert.Empty(t, res.Errors)
}

func TestRunCapsResults(t *testing.T) {
	e := NewEngine()
	res, err := e.Run(sampleRows(), `.["MAC Address"]`, false, 2)
	require.NoError(t, err)
	assert.Len(t, res.Values, 2)
}

func TestRunCollectsRowErrorsWithoutAborting(t *testing.T) {
	rows := []types.Row{
		{"Ports": []any{"Gi1/0/1", "Gi1/0/2"}},
		{"Ports": "not-an-array"},
	}
	e := NewEngine()
	res, err := e.Run(rows, `.Ports[]`, false, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"Gi1/0/1", "Gi1/0/2"}, res.Values)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "row[1]")
}

func TestRunLabelsErrorsPerRow(t *testing.T) {
	rows := []types.Row{
		{"Ports": "x"},
		{"Ports": "x"},
	}
	e := NewEngine()
	res, err := e.Run(rows, `.Ports[1]`, false, 0)
	require.NoError(t, err)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "row[0]")
	assert.Contains(t, res.Errors[1], "row[1]")
}

func TestRunInvalidExpression(t *testing.T) {
	e := NewEngine()
	_, err := e.Run(sampleRows(), `.[`, false, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestValidateExpression(t *testing.T) {
	e := NewEngine()
	assert.NoError(t, e.ValidateExpression(`.VLAN | tostring`))
	assert.Error(t, e.ValidateExpression(`]broken`))
}

func TestRunCompositeValues(t *testing.T) {
	e := NewEngine()
	res, err := e.Run(sampleRows(), `{mac: .["MAC Address"], host: .["Switch Hostname"]}`, true, 0)
	require.NoError(t, err)
	require.Len(t, res.Values, 3)
	first, ok := res.Values[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "001A2B3C4D5E", first["mac"])
}
