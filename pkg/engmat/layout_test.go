package engmat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackColumnMajor(t *testing.T) {
	tests := []struct {
		name    string
		data    [][]float64
		order   Order
		rows    int
		cols    int
		flat    []float64
		wantErr bool
	}{
		{name: "empty", data: nil, order: RowMajor},
		{name: "row vector", data: [][]float64{{1, 2, 3}}, order: RowMajor, rows: 1, cols: 3, flat: []float64{1, 2, 3}},
		{name: "2x3 rows", data: [][]float64{{1, 2, 3}, {4, 5, 6}}, order: RowMajor, rows: 2, cols: 3, flat: []float64{1, 4, 2, 5, 3, 6}},
		{name: "2x3 columns", data: [][]float64{{1, 4}, {2, 5}, {3, 6}}, order: ColumnMajor, rows: 2, cols: 3, flat: []float64{1, 4, 2, 5, 3, 6}},
		{name: "ragged", data: [][]float64{{1, 2}, {3}}, order: RowMajor, wantErr: true},
		{name: "bad order", data: [][]float64{{1}}, order: Order(9), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols, flat, err := packColumnMajor(tt.data, tt.order)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidShape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, rows)
			assert.Equal(t, tt.cols, cols)
			assert.Equal(t, tt.flat, flat)
		})
	}
}

func TestUnpackRowMajorInvertsPack(t *testing.T) {
	in := [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}
	rows, cols, flat, err := packColumnMajor(in, RowMajor)
	require.NoError(t, err)
	assert.Equal(t, in, unpackRowMajor(flat, rows, cols))
}

func TestOrderString(t *testing.T) {
	assert.Equal(t, "row-major", RowMajor.String())
	assert.Equal(t, "column-major", ColumnMajor.String())
	assert.Equal(t, "Order(5)", Order(5).String())
}
