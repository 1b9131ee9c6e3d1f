/*
Package lut builds a lookup table mapping each possible glyph row pattern to
the first glyph that contains it.

A display controller rendering one pixel row at a time can only pick a
character code, not the pixels themselves. The table answers, for every bit
pattern u and row v, which character code draws exactly u on row v. Low
character codes are usually CGRAM, user-definable characters whose content
can't be relied upon, so the search starts above them.
*/
package lut

import (
	"errors"
	"fmt"
	"image"

	"github.com/bodgit/cgrom/charmap"
	"github.com/bodgit/cgrom/glyph"
)

// None marks a pattern that no glyph draws
const None = -1

const (
	defaultPatternBits = 5
	defaultRows        = 8
	defaultSearchStart = 8
	maxPatternBits     = 16
)

var (
	errPatternBits = errors.New("lut: pattern bits out of range")
	errSearchStart = errors.New("lut: negative search start")
	errLayout      = errors.New("lut: debug tile pitch and size must be positive")

	// ErrOutOfRange is returned when looking up a pattern or row the table
	// doesn't cover
	ErrOutOfRange = errors.New("lut: pattern or row out of range")
)

// Options controls the table search and how the debug image is drawn
type Options struct {
	PatternBits int // Width of a row pattern
	Rows        int // Number of glyph rows to match
	SearchStart int // Lowest glyph index considered

	Layout     charmap.Layout // Debug tile geometry, the tile count is ignored
	Background uint8          // Tile fill
	Highlight  uint8          // Set pattern bit
	Clear      uint8          // Unset pattern bit
}

// DefaultOptions returns the options for a 5 by 8 character ROM
func DefaultOptions() *Options {
	return &Options{
		PatternBits: defaultPatternBits,
		Rows:        defaultRows,
		SearchStart: defaultSearchStart,
		Layout: charmap.Layout{
			Margin: charmap.Margin{Left: 1},
			Pitch:  image.Pt(6, 9),
			Size:   image.Pt(5, 8),
		},
		Background: 64,
		Highlight:  192,
		Clear:      0,
	}
}

// LUT holds a glyph index, or None, for each pattern and row
type LUT struct {
	PatternBits int
	Rows        int

	entries [][]int
}

// New returns a table with every entry set to None
func New(patternBits, rows int) *LUT {
	l := &LUT{
		PatternBits: patternBits,
		Rows:        rows,
		entries:     make([][]int, 1<<uint(patternBits)),
	}
	for u := range l.entries {
		l.entries[u] = make([]int, rows)
		for v := range l.entries[u] {
			l.entries[u][v] = None
		}
	}
	return l
}

// Patterns returns the number of distinct row patterns
func (l *LUT) Patterns() int {
	return len(l.entries)
}

// At returns the glyph that draws pattern u on row v
func (l *LUT) At(u, v int) (int, bool) {
	i := l.entries[u][v]
	return i, i != None
}

// Lookup is like At but checks u and v are within the table
func (l *LUT) Lookup(u, v int) (int, bool, error) {
	if u < 0 || u >= l.Patterns() || v < 0 || v >= l.Rows {
		return None, false, fmt.Errorf("%w: %d, %d in %dx%d table", ErrOutOfRange, u, v, l.Patterns(), l.Rows)
	}
	i, ok := l.At(u, v)
	return i, ok, nil
}

// Set stores glyph i for pattern u on row v
func (l *LUT) Set(u, v, i int) {
	l.entries[u][v] = i
}

// Stats counts the matched and missing entries
func (l *LUT) Stats() (matched, missing int) {
	for _, col := range l.entries {
		for _, i := range col {
			if i == None {
				missing++
			} else {
				matched++
			}
		}
	}
	return
}

func search(t glyph.Table, u uint32, v, start int) int {
	for i := start; i < len(t); i++ {
		if t.Row(i, v) == u {
			return i
		}
	}
	return None
}

// Build searches t for every pattern and row. The returned map shows each
// matched glyph, taken from src via idx, with the pattern drawn over the row
// it was matched on.
func Build(t glyph.Table, src *charmap.Map, idx glyph.Indexer, o *Options) (*LUT, *charmap.Map, error) {
	if o == nil {
		o = DefaultOptions()
	}

	switch {
	case o.PatternBits < 1 || o.PatternBits > maxPatternBits:
		return nil, nil, errPatternBits
	case o.SearchStart < 0:
		return nil, nil, errSearchStart
	case o.Layout.Pitch.X < 1 || o.Layout.Pitch.Y < 1 || o.Layout.Size.X < 1 || o.Layout.Size.Y < 1:
		return nil, nil, errLayout
	case o.Rows < 0 || o.Rows > t.Height():
		return nil, nil, fmt.Errorf("lut: %d rows requested, glyphs have %d", o.Rows, t.Height())
	}

	l := New(o.PatternBits, o.Rows)

	layout := o.Layout
	layout.Count = image.Pt(l.Patterns(), o.Rows)
	m := charmap.New(layout)

	for v := 0; v < o.Rows; v++ {
		for u := 0; u < l.Patterns(); u++ {
			p := image.Pt(u, v)
			m.Fill(p, o.Background)

			i := search(t, uint32(u), v, o.SearchStart)
			if i != None {
				l.Set(u, v, i)
				m.Paste(p, src, idx.Position(i))
			}

			org := m.Origin(p)
			for x := 0; x < o.PatternBits; x++ {
				c := o.Clear
				if u&(1<<uint(o.PatternBits-1-x)) != 0 {
					c = o.Highlight
				}
				m.Set(org.Add(image.Pt(x, v)), c)
			}
		}
	}

	return l, m, nil
}
