/*
Package cgrom extracts the glyphs from a rendered character generator ROM
layout and builds the row pattern lookup table used to emulate it.
*/
package cgrom

import (
	"image"
	"log"

	"github.com/bodgit/cgrom/charmap"
	"github.com/bodgit/cgrom/glyph"
	"github.com/bodgit/cgrom/lut"
)

// Default file names
const (
	SourceFile      = "RW1063_JW.png"
	BlankLayoutFile = "blank_layout.bmp"
	PatternsFile    = "lutimg_bit_patterns.bmp"
	LUTFile         = "LUT.txt"
	ROMFile         = "CGROM.bin"
)

const (
	glyphCount = 256
	cgramSlots = 16
)

// DefaultLayout returns the geometry of the reference layout; a 16 by 16 grid
// of 5 by 8 glyphs, 6 by 9 pixels apart with a single pixel margin on the top
// and left
func DefaultLayout() charmap.Layout {
	return charmap.Layout{
		Margin: charmap.Margin{Top: 1, Left: 1},
		Count:  image.Pt(16, 16),
		Pitch:  image.Pt(6, 9),
		Size:   image.Pt(5, 8),
	}
}

// Generator holds the configuration for extracting a character set
type Generator struct {
	Layout  charmap.Layout
	Indexer glyph.Indexer
	Glyphs  int // Number of glyphs in the layout
	CGRAM   int // Number of CGRAM slots at the start of the layout
	Options *lut.Options

	logger *log.Logger
}

// New returns a Generator configured for the reference layout
func New(logger *log.Logger) *Generator {
	l := DefaultLayout()
	return &Generator{
		Layout:  l,
		Indexer: glyph.ColumnMajor{Columns: l.Count.X, Rows: l.Count.Y},
		Glyphs:  glyphCount,
		CGRAM:   cgramSlots,
		Options: lut.DefaultOptions(),
		logger:  logger,
	}
}
