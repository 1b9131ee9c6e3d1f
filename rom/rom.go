/*
Package rom implements a character generator ROM encoder and decoder.

The ROM holds one byte per glyph row, glyphs stored consecutively in
character code order. Each byte holds the row with the rightmost pixel in
bit 0, so a 5 pixel wide font only uses the lower five bits of every byte.
There is no header; the number of rows per glyph must be known in advance.
*/
package rom

import (
	"errors"
	"io"

	"github.com/bodgit/cgrom/glyph"
)

const maxWidth = 8

var (
	errWidth     = errors.New("rom: glyph width out of range")
	errRows      = errors.New("rom: invalid rows per glyph")
	errNotEnough = errors.New("rom: not enough glyph data")
)

type encoder struct {
	w    io.Writer
	mask uint32
}

func (e *encoder) encode(t glyph.Table) error {
	for _, g := range t {
		b := make([]byte, len(g))
		for y, row := range g {
			b[y] = byte(row & e.mask)
		}
		if _, err := e.w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes t to w, keeping the lower width bits of each row
func Encode(w io.Writer, t glyph.Table, width int) error {
	if width < 1 || width > maxWidth {
		return errWidth
	}

	e := encoder{w: w, mask: 1<<uint(width) - 1}

	return e.encode(t)
}

type decoder struct {
	r    io.Reader
	rows int

	table glyph.Table
}

func (d *decoder) decode() error {
	tmp := make([]byte, d.rows)
	for {
		n, err := io.ReadFull(d.r, tmp)
		switch {
		case err == io.EOF:
			return nil
		case err == io.ErrUnexpectedEOF:
			return errNotEnough
		case err != nil:
			return err
		}

		g := make(glyph.Glyph, n)
		for y, b := range tmp {
			g[y] = uint32(b)
		}
		d.table = append(d.table, g)
	}
}

// Decode reads a ROM of glyphs with the given number of rows from r
func Decode(r io.Reader, rows int) (glyph.Table, error) {
	if rows < 1 {
		return nil, errRows
	}

	d := decoder{r: r, rows: rows}
	if err := d.decode(); err != nil {
		return nil, err
	}

	return d.table, nil
}
