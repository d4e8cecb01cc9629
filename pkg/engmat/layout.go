package engmat

import "fmt"

// Order says how the outer slice of a [][]float64 is laid out.
type Order int

const (
	// RowMajor treats data[i] as row i. This is the Go convention and the
	// layout Dense returns.
	RowMajor Order = iota

	// ColumnMajor treats data[j] as column j, matching MATLAB storage.
	ColumnMajor
)

// String returns "row-major", "column-major" or "Order(n)".
func (o Order) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// packColumnMajor flattens data into MATLAB's column-major order. Every
// inner slice must have the same length.
func packColumnMajor(data [][]float64, order Order) (rows, cols int, flat []float64, err error) {
	if order != RowMajor && order != ColumnMajor {
		return 0, 0, nil, fmt.Errorf("engmat: pack: unknown order %d: %w", int(order), ErrInvalidShape)
	}
	if len(data) == 0 {
		return 0, 0, nil, nil
	}

	outer, inner := len(data), len(data[0])
	for i, s := range data {
		if len(s) != inner {
			return 0, 0, nil, fmt.Errorf("engmat: pack: %s slice %d has %d elements, want %d: %w",
				order, i, len(s), inner, ErrInvalidShape)
		}
	}

	flat = make([]float64, outer*inner)
	if order == ColumnMajor {
		for j, col := range data {
			copy(flat[j*inner:], col)
		}
		return inner, outer, flat, nil
	}

	rows, cols = outer, inner
	for r, row := range data {
		for c, v := range row {
			flat[c*rows+r] = v
		}
	}
	return rows, cols, flat, nil
}

// unpackRowMajor turns column-major storage back into rows.
func unpackRowMajor(flat []float64, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for r := range out {
		row := make([]float64, cols)
		for c := range row {
			row[c] = flat[c*rows+r]
		}
		out[r] = row
	}
	return out
}
