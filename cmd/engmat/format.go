package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func variableTable(vars []engmat.MatrixDescription) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "SIZE", "CLASS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, v := range vars {
		t.Row(v.Name, dimsString(v.Dims), v.TypeName())
	}
	return t.String()
}

func dimsString(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}

// formatRows prints one matrix row per line, right-aligned in 10-column
// fields.
func formatRows(data [][]float64) string {
	if len(data) == 0 {
		return "     []"
	}
	var b strings.Builder
	for i, row := range data {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, v := range row {
			s := strconv.FormatFloat(v, 'g', 5, 64)
			b.WriteString(strings.Repeat(" ", max(1, 10-len(s))))
			b.WriteString(s)
		}
	}
	return b.String()
}
