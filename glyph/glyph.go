/*
Package glyph builds a table of glyph bitmaps from a character map.

Each glyph is stored as one word per pixel row with the rightmost pixel in the
least significant bit, so the letter A in a 5 by 8 font reads as:

	0b00000
	0b00100
	0b01010
	0b10001
	0b10001
	0b11111
	0b10001
	0b10001
*/
package glyph

import (
	"fmt"
	"image"

	"github.com/bodgit/cgrom/charmap"
)

// Foreground is the gray level of a lit glyph pixel
const Foreground = 255

// Indexer maps a glyph index to a tile position
type Indexer interface {
	Position(index int) image.Point
}

// ColumnMajor numbers glyphs down each column of the grid first
type ColumnMajor struct {
	Columns, Rows int
}

// Position implements Indexer
func (c ColumnMajor) Position(index int) image.Point {
	return image.Pt(index%(c.Columns*c.Rows)/c.Rows, index%c.Rows)
}

// RowMajor numbers glyphs along each row of the grid first
type RowMajor struct {
	Columns, Rows int
}

// Position implements Indexer
func (r RowMajor) Position(index int) image.Point {
	return image.Pt(index%r.Columns, index/r.Columns%r.Rows)
}

// Glyph is a glyph bitmap, one word per row
type Glyph []uint32

// Table is a set of glyphs indexed by character code
type Table []Glyph

// NewTable scans count glyphs from m, locating each one with idx
func NewTable(m *charmap.Map, count int, idx Indexer) (Table, error) {
	t := make(Table, count)
	for i := range t {
		o := m.Origin(idx.Position(i))
		g := make(Glyph, m.Size.Y)
		for y := range g {
			w, err := m.Word(o.Add(image.Pt(0, y)), m.Size.X, Foreground, false, 0)
			if err != nil {
				return nil, fmt.Errorf("glyph %d row %d: %w", i, y, err)
			}
			g[y] = w
		}
		t[i] = g
	}
	return t, nil
}

// Row returns row y of glyph i
func (t Table) Row(i, y int) uint32 {
	return t[i][y]
}

// Height returns the number of rows in the shortest glyph
func (t Table) Height() int {
	if len(t) == 0 {
		return 0
	}
	h := len(t[0])
	for _, g := range t[1:] {
		if len(g) < h {
			h = len(g)
		}
	}
	return h
}
