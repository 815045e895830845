package extract

import (
	"regexp"
	"strings"
)

// regexVariantPrefix marks a lookup variant that should be matched against
// all stored keys as a regular expression instead of by exact normalized-key
// equality.
const regexVariantPrefix = "re:"

// minKeyLength is the shortest normalized key accepted into the index;
// anything shorter is punctuation noise from the grid.
const minKeyLength = 2

// Index maps normalized table keys to cleaned cell values. Insertion order is
// preserved so regex lookups scan keys in the order the document produced
// them, matching first occurrence.
type Index struct {
	keys   []string
	values map[string]string
}

// BuildIndex constructs the key-value index from all table grids of a
// document, processed in page, table, then row order. Two layout strategies
// run per row, highest priority first:
//
//  1. Header-row/next-row pairing: each cell of the current row is a
//     potential header for the cell at the same column of the following row.
//     Structurally the most reliable signal, so its writes always win.
//  2. Same-row offset pairing: each cell is a candidate key whose value sits
//     one or two columns to the right (covering "key | value" and
//     "key | filler | value" as well as multi-column key/value runs). Never
//     overwrites an existing entry.
func BuildIndex(tables []Table) *Index {
	idx := &Index{values: make(map[string]string)}

	for _, table := range tables {
		for rowIdx, row := range table {
			if len(row) == 0 {
				continue
			}

			if rowIdx+1 < len(table) {
				nextRow := table[rowIdx+1]
				for col, cell := range row {
					hdr := NormalizeKey(cell)
					if len(hdr) < minKeyLength || col >= len(nextRow) {
						continue
					}
					val := Clean(nextRow[col])
					if val != "" && IsDataValue(val) {
						idx.set(hdr, val)
					}
				}
			}

			for keyCol := range row {
				key := NormalizeKey(row[keyCol])
				if len(key) < minKeyLength {
					continue
				}
				for _, offset := range []int{1, 2} {
					valCol := keyCol + offset
					if valCol >= len(row) {
						continue
					}
					val := Clean(row[valCol])
					if val != "" && IsDataValue(val) && !idx.has(key) {
						idx.set(key, val)
						break
					}
				}
			}
		}
	}

	return idx
}

// Lookup returns the value for the first matching key variant, or the empty
// string. A variant prefixed with "re:" is treated as a case-insensitive
// regular expression searched against every stored key in insertion order;
// any other variant is normalized and matched exactly.
func (idx *Index) Lookup(variants ...string) string {
	for _, variant := range variants {
		if pattern, ok := strings.CutPrefix(variant, regexVariantPrefix); ok {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				continue
			}
			for _, k := range idx.keys {
				if re.MatchString(k) {
					return idx.values[k]
				}
			}
			continue
		}
		if v, ok := idx.values[NormalizeKey(variant)]; ok {
			return v
		}
	}
	return ""
}

// Len returns the number of distinct keys in the index.
func (idx *Index) Len() int {
	return len(idx.keys)
}

func (idx *Index) set(key, val string) {
	if _, ok := idx.values[key]; !ok {
		idx.keys = append(idx.keys, key)
	}
	idx.values[key] = val
}

func (idx *Index) has(key string) bool {
	_, ok := idx.values[key]
	return ok
}
