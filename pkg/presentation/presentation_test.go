package presentation

import (
	"bytes"
	"testing"

	"github.com/aarondl/opt/null"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRow struct {
	driver string
	pos    null.Val[int]
	rate   float64
}

func (r sampleRow) Map() map[string]any {
	return map[string]any{
		"driver": r.driver,
		"pos":    Nullable(r.pos),
		"rate":   r.rate,
	}
}

func sampleRows() []sampleRow {
	return []sampleRow{
		{driver: "Max Verstappen", pos: null.From(1), rate: 30.5},
		{driver: "Sergio Pérez", rate: 0},
	}
}

func TestRowsKeepExplicitNull(t *testing.T) {
	got := Rows(sampleRows())
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0]["pos"])
	v, present := got[1]["pos"]
	assert.True(t, present, "nullable field must be present")
	assert.Nil(t, v)
}

func TestRowsEmpty(t *testing.T) {
	got := Rows([]sampleRow{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJSONIsDeterministic(t *testing.T) {
	first := JSON(Generic(Rows(sampleRows())))
	second := JSON(Generic(Rows(sampleRows())))
	assert.Equal(t, first, second)
	assert.Contains(t, first, "null")
	// keys are sorted
	assert.Less(t, bytes.Index([]byte(first), []byte(`"driver"`)),
		bytes.Index([]byte(first), []byte(`"pos"`)))
}

func TestJSONWithoutExponent(t *testing.T) {
	rows := []map[string]any{{"avgPitMs": 1234567.8, "rate": 0.5, "big": 12345678901.0, "zero": 0.0}}
	got := JSON(Generic(rows))
	assert.NotContains(t, got, "e+")
	assert.Contains(t, got, "1234567.8")
	assert.Contains(t, got, "12345678901")
	assert.Contains(t, got, "0.5")
	// the input rows stay untouched
	assert.Equal(t, 1234567.8, rows[0]["avgPitMs"])
}

func TestWriteTable(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteTable(buf, "sample", []string{"driver", "pos", "rate"}, Rows(sampleRows()))
	out := buf.String()
	assert.Contains(t, out, "Max Verstappen")
	assert.Contains(t, out, "30.5")
	assert.Contains(t, out, "-")
}
