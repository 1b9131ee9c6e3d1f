// Package fonttest renders synthetic character generator layouts for tests.
package fonttest

import (
	"image"

	"github.com/bodgit/cgrom/charmap"
)

// Layout returns the geometry of a 16 by 16 grid of 5 by 8 glyphs
func Layout() charmap.Layout {
	return charmap.Layout{
		Margin: charmap.Margin{Top: 1, Left: 1},
		Count:  image.Pt(16, 16),
		Pitch:  image.Pt(6, 9),
		Size:   image.Pt(5, 8),
	}
}

// New returns a map with every glyph tile cleared to black
func New() *charmap.Map {
	m := charmap.New(Layout())
	for y := 0; y < m.Count.Y; y++ {
		for x := 0; x < m.Count.X; x++ {
			m.Fill(image.Pt(x, y), 0)
		}
	}
	return m
}

// Draw renders rows into the tile at p in white, the lowest bit of each row
// being the rightmost pixel
func Draw(m *charmap.Map, p image.Point, rows ...uint32) {
	o := m.Origin(p)
	for y, r := range rows {
		for x := 0; x < m.Size.X; x++ {
			c := uint8(0)
			if r&(1<<uint(m.Size.X-1-x)) != 0 {
				c = 255
			}
			m.Set(o.Add(image.Pt(x, y)), c)
		}
	}
}

// A is the letter A as it appears in the HD44780 family of character ROMs
var A = []uint32{0b00000, 0b00100, 0b01010, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001}
