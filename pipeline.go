package cgrom

import (
	"bufio"
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/cgrom/charmap"
	"github.com/bodgit/cgrom/glyph"
	"github.com/bodgit/cgrom/lut"
	"github.com/bodgit/cgrom/rom"
)

// Result is everything derived from a source layout
type Result struct {
	SHA1  string // Checksum of the source file
	Table glyph.Table
	LUT   *lut.LUT
}

// BlankLayout returns a map with every non-CGRAM glyph tile filled in black,
// useful for checking the layout geometry against a source image
func (g *Generator) BlankLayout() *charmap.Map {
	m := charmap.New(g.Layout)
	for i := g.CGRAM; i < g.Glyphs; i++ {
		m.Fill(g.Indexer.Position(i), 0)
	}
	return m
}

// Load reads the source layout from file and returns it along with the SHA-1
// of the file contents
func (g *Generator) Load(file string) (*charmap.Map, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	m := charmap.New(g.Layout)
	if err := m.Load(io.TeeReader(f, h)); err != nil {
		return nil, "", fmt.Errorf("%s: %w", file, err)
	}

	// The decoder may stop short of the end of the file
	if _, err := io.Copy(h, f); err != nil {
		return nil, "", err
	}

	return m, fmt.Sprintf("%X", h.Sum(nil)), nil
}

func writeFile(file string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		return err
	}

	return w.Flush()
}

// Run extracts the glyphs from source and writes the blank layout, the
// pattern image, the lookup table and a ROM image into dir
func (g *Generator) Run(source, dir string) (*Result, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	g.logger.Printf("Writing blank layout to \"%s\"\n", filepath.Join(dir, BlankLayoutFile))
	if err := g.BlankLayout().Save(filepath.Join(dir, BlankLayoutFile)); err != nil {
		return nil, err
	}

	m, sha, err := g.Load(source)
	if err != nil {
		return nil, err
	}
	g.logger.Printf("Loaded \"%s\", %dx%d pixels, SHA-1 %s\n", source, m.Image().Bounds().Dx(), m.Image().Bounds().Dy(), sha)

	table, err := glyph.NewTable(m, g.Glyphs, g.Indexer)
	if err != nil {
		return nil, err
	}

	l, patterns, err := lut.Build(table, m, g.Indexer, g.Options)
	if err != nil {
		return nil, err
	}

	for v := 0; v < l.Rows; v++ {
		for u := 0; u < l.Patterns(); u++ {
			if _, ok := l.At(u, v); !ok {
				g.logger.Printf("No glyph for pattern %0*b on row %d\n", l.PatternBits, u, v)
			}
		}
	}
	matched, missing := l.Stats()
	g.logger.Printf("Matched %d patterns, %d missing\n", matched, missing)

	if err := patterns.Save(filepath.Join(dir, PatternsFile)); err != nil {
		return nil, err
	}

	if err := writeFile(filepath.Join(dir, LUTFile), func(w io.Writer) error {
		_, err := l.WriteTo(w)
		return err
	}); err != nil {
		return nil, err
	}

	if err := writeFile(filepath.Join(dir, ROMFile), func(w io.Writer) error {
		return rom.Encode(w, table, g.Layout.Size.X)
	}); err != nil {
		return nil, err
	}

	return &Result{
		SHA1:  sha,
		Table: table,
		LUT:   l,
	}, nil
}

// ReadLUT reads a lookup table previously written by Run
func ReadLUT(file string) (*lut.LUT, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return lut.Parse(f)
}
