package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowFromRecord(t *testing.T) {
	row, err := rowFromRecord(RawRecord{
		"id":          float64(42),
		"date":        "2099-01-01",
		"time":        "09:00",
		"description": "Checkup",
		"timestamp":   "2099-01-01T08:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, row.ID)
	assert.Equal(t, "2099-01-01", row.Date)
	assert.Equal(t, "Checkup", row.Description)

	_, err = rowFromRecord(RawRecord{"id": "UNIFIED_x"})
	assert.Error(t, err, "string ids never reach the schedule store")
}

func TestAsInt(t *testing.T) {
	for _, v := range []any{7, int64(7), float64(7)} {
		n, ok := asInt(v)
		assert.True(t, ok)
		assert.Equal(t, 7, n)
	}
	_, ok := asInt("7")
	assert.False(t, ok)
}
