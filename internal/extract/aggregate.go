package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ColumnStats summarizes the numeric cells collected under a matched column
// header across every table of the document. Scale is the largest number of
// fractional digits seen in any cell, so sums render with the precision the
// document used.
type ColumnStats struct {
	Sum   decimal.Decimal
	Min   decimal.Decimal
	Max   decimal.Decimal
	Count int
	Scale int32
}

// SumString renders the column sum at the collected scale, keeping trailing
// zeros that plain String would trim.
func (s ColumnStats) SumString() string {
	return s.Sum.StringFixed(s.Scale)
}

// AggregateColumn finds every column whose normalized header contains the
// given needle and folds the numeric cells below it into ColumnStats. The
// needle is matched as a substring of the normalized header, so "quantity"
// also matches headers like "Quantity (Nos)". Non-numeric cells are skipped.
// Returns false when no numeric cell was collected at all.
func AggregateColumn(tables []Table, needle string) (ColumnStats, bool) {
	return aggregate(tables, needle, "")
}

// AggregateColumnExcluding behaves like AggregateColumn but skips columns
// whose normalized header also contains the exclude substring. Used to
// aggregate an item-value column while leaving its INR twin alone.
func AggregateColumnExcluding(tables []Table, needle, exclude string) (ColumnStats, bool) {
	return aggregate(tables, needle, exclude)
}

func aggregate(tables []Table, needle, exclude string) (ColumnStats, bool) {
	needle = NormalizeKey(needle)
	if exclude != "" {
		exclude = NormalizeKey(exclude)
	}

	var stats ColumnStats
	for _, table := range tables {
		visited := make(map[[2]int]bool)
		for rowIdx, row := range table {
			for col, cell := range row {
				hdr := NormalizeKey(cell)
				if hdr == "" || !strings.Contains(hdr, needle) {
					continue
				}
				if exclude != "" && strings.Contains(hdr, exclude) {
					continue
				}
				collectColumn(table, rowIdx+1, col, visited, &stats)
			}
		}
	}
	return stats, stats.Count > 0
}

// collectColumn walks the cells below a header at the given column and folds
// every parseable decimal into stats. A cell that itself looks like another
// header ends nothing; it is simply skipped, since grids often repeat headers
// across page breaks. The visited set keeps the walk below a repeated header
// from counting the same cells twice.
func collectColumn(table Table, startRow, col int, visited map[[2]int]bool, stats *ColumnStats) {
	for r := startRow; r < len(table); r++ {
		if col >= len(table[r]) {
			continue
		}
		pos := [2]int{r, col}
		if visited[pos] {
			continue
		}
		visited[pos] = true
		raw := ToDecimal(table[r][col])
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		if scale := -d.Exponent(); scale > stats.Scale {
			stats.Scale = scale
		}
		if stats.Count == 0 {
			stats.Min = d
			stats.Max = d
		} else {
			if d.LessThan(stats.Min) {
				stats.Min = d
			}
			if d.GreaterThan(stats.Max) {
				stats.Max = d
			}
		}
		stats.Sum = stats.Sum.Add(d)
		stats.Count++
	}
}
