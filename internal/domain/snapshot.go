package domain

import (
	"math"
	"sort"
	"strings"
)

// SortColumns orders columns for deterministic enumeration: by display
// position, then by id so position ties resolve in creation order.
func SortColumns(cols []Column) {
	sort.SliceStable(cols, func(i, j int) bool {
		if cols[i].Position != cols[j].Position {
			return cols[i].Position < cols[j].Position
		}
		return cols[i].ID < cols[j].ID
	})
}

// SortRows orders rows the same way as SortColumns.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		return rows[i].ID < rows[j].ID
	})
}

func cellsByColumn(cells []Cell) map[int64]Cell {
	m := make(map[int64]Cell, len(cells))
	for _, c := range cells {
		m[c.ColumnID] = c
	}
	return m
}

// MissingRequiredFields returns, in display order, the names of every
// required-for-booking column whose cell is absent or blank. Visibility is
// irrelevant here: hidden required columns are still enforced.
func MissingRequiredFields(columns []Column, cells []Cell) []string {
	byCol := cellsByColumn(cells)
	sorted := make([]Column, len(columns))
	copy(sorted, columns)
	SortColumns(sorted)

	var missing []string
	for _, col := range sorted {
		if !col.RequiredForBooking {
			continue
		}
		cell, ok := byCol[col.ID]
		if !ok || strings.TrimSpace(cell.Value) == "" {
			missing = append(missing, col.Name)
		}
	}
	return missing
}

// BuildSnapshot maps column name to raw value for every cell on the row,
// including blank values, so the snapshot shape stays stable.
func BuildSnapshot(columns []Column, cells []Cell) map[string]any {
	names := make(map[int64]string, len(columns))
	for _, col := range columns {
		names[col.ID] = col.Name
	}
	snap := make(map[string]any, len(cells))
	for _, cell := range cells {
		name, ok := names[cell.ColumnID]
		if !ok {
			continue
		}
		snap[name] = cell.Value
	}
	return snap
}

// FirstNumericValue picks the snapshot price: the first column in display
// order whose type is number/currency and whose cell parses as an amount.
// Best effort; with several numeric columns the first one wins.
func FirstNumericValue(columns []Column, cells []Cell) *float64 {
	byCol := cellsByColumn(cells)
	sorted := make([]Column, len(columns))
	copy(sorted, columns)
	SortColumns(sorted)

	for _, col := range sorted {
		if !col.DataType.Numeric() {
			continue
		}
		cell, ok := byCol[col.ID]
		if !ok || strings.TrimSpace(cell.Value) == "" {
			continue
		}
		v, err := ParseAmount(cell.Value)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

// FirstTextualValue picks the snapshot description: the first text/notes
// column in display order with a non-blank cell.
func FirstTextualValue(columns []Column, cells []Cell) *string {
	byCol := cellsByColumn(cells)
	sorted := make([]Column, len(columns))
	copy(sorted, columns)
	SortColumns(sorted)

	for _, col := range sorted {
		if !col.DataType.Textual() {
			continue
		}
		cell, ok := byCol[col.ID]
		if !ok || strings.TrimSpace(cell.Value) == "" {
			continue
		}
		v := cell.Value
		return &v
	}
	return nil
}

// ComputeTotal multiplies price by quantity, rounded to cents. Either side
// missing leaves the total unset; zero is a legitimate price and a legitimate
// total.
func ComputeTotal(price *float64, quantity *int) *float64 {
	if price == nil || quantity == nil {
		return nil
	}
	total := *price * float64(*quantity)
	total = math.Round(total*100) / 100
	return &total
}
