package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

func TestValuesFromRowsUsesSortedHeaderUnion(t *testing.T) {
	values := valuesFromRows([]models.Row{
		{"name": "Sugar", "id": 2},
		{"id": 3, "stockCode": "SOAP1"},
	})

	require.Len(t, values, 3)
	assert.Equal(t, []interface{}{"id", "name", "stockCode"}, values[0])
	assert.Equal(t, []interface{}{2, "Sugar", ""}, values[1])
	assert.Equal(t, []interface{}{3, "", "SOAP1"}, values[2])
}

func TestValuesFromRowsEmpty(t *testing.T) {
	assert.Nil(t, valuesFromRows(nil))
}

func TestRowsFromValuesSkipsBlankLines(t *testing.T) {
	rows := rowsFromValues([][]interface{}{
		{"id", "name"},
		{float64(1), "Maize Meal"},
		{},
		{"", ""},
		{float64(2)},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, models.Row{"id": float64(1), "name": "Maize Meal"}, rows[0])
	assert.Equal(t, models.Row{"id": float64(2), "name": ""}, rows[1])
}

func TestRowsFromValuesNoHeader(t *testing.T) {
	assert.Empty(t, rowsFromValues(nil))
}
