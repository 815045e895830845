package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdfduck/pdfduck/internal/extract"
)

// cellGap is the horizontal distance, in PDF points, that separates two words
// into different grid cells. Smaller gaps are normal inter-word spacing.
const cellGap = 14.0

// Decode parses PDF bytes into pages of text lines and table grids. Pages
// that fail to parse are skipped rather than failing the whole document;
// parser panics are converted to errors.
func Decode(data []byte) (doc extract.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return extract.Document{}, fmt.Errorf("failed to open PDF: %w", err)
	}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		doc.Pages = append(doc.Pages, decodePage(page))
	}

	if len(doc.Pages) == 0 {
		return extract.Document{}, fmt.Errorf("no readable pages in PDF")
	}
	return doc, nil
}

// decodePage converts one page into its line text and table grids. Rows come
// back top to bottom with words ordered left to right, so reconstructing
// reading order is a straight join.
func decodePage(page pdf.Page) extract.Page {
	rows, err := page.GetTextByRow()
	if err != nil {
		return extract.Page{}
	}

	var lines []string
	var cellRows [][]string
	for _, row := range rows {
		cells := buildCells(row.Content)
		if len(cells) == 0 {
			continue
		}
		lines = append(lines, strings.Join(cells, " "))
		cellRows = append(cellRows, cells)
	}

	return extract.Page{
		Text:   strings.Join(lines, "\n"),
		Tables: groupTables(cellRows),
	}
}

// buildCells clusters a row's words into cells by horizontal gap. Words
// closer than cellGap belong to the same cell and are joined with a single
// space.
func buildCells(words []pdf.Text) []string {
	var cells []string
	var cur strings.Builder
	var prevEnd float64

	for _, word := range words {
		if word.S == "" {
			continue
		}
		if cur.Len() > 0 {
			if word.X-prevEnd > cellGap {
				cells = appendCell(cells, cur.String())
				cur.Reset()
			} else {
				cur.WriteString(" ")
			}
		}
		cur.WriteString(word.S)
		prevEnd = word.X + word.W
	}
	return appendCell(cells, cur.String())
}

func appendCell(cells []string, cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return cells
	}
	return append(cells, cell)
}

// groupTables folds consecutive multi-cell rows into table grids. A run ends
// at any row that produced a single cell, which is plain paragraph text.
func groupTables(cellRows [][]string) []extract.Table {
	var tables []extract.Table
	var run extract.Table

	flush := func() {
		if len(run) > 0 {
			tables = append(tables, run)
			run = nil
		}
	}

	for _, cells := range cellRows {
		if len(cells) < 2 {
			flush()
			continue
		}
		run = append(run, cells)
	}
	flush()
	return tables
}
