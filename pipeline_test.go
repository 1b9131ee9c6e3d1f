package cgrom

import (
	"crypto/sha1"
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/cgrom/charmap"
	"github.com/bodgit/cgrom/internal/fonttest"
	"github.com/bodgit/cgrom/lut"
	"github.com/bodgit/cgrom/rom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

func writeSource(t *testing.T, dir string) string {
	g := New(testLogger())
	m := fonttest.New()
	fonttest.Draw(m, g.Indexer.Position(65), fonttest.A...)
	fonttest.Draw(m, g.Indexer.Position(3), 0b10000, 0b10000)

	file := filepath.Join(dir, "layout.png")
	require.Nil(t, m.Save(file))
	return file
}

func TestBlankLayout(t *testing.T) {
	g := New(testLogger())
	m := g.BlankLayout()

	assert.Equal(t, image.Rect(0, 0, 97, 145), m.Image().Bounds())

	for i := 0; i < 256; i++ {
		o := m.Origin(g.Indexer.Position(i))
		want := uint8(0)
		if i < 16 {
			want = charmap.Blank
		}
		assert.Equal(t, want, m.Image().GrayAt(o.X, o.Y).Y, "glyph %d", i)
		assert.Equal(t, want, m.Image().GrayAt(o.X+4, o.Y+7).Y, "glyph %d", i)
	}

	// Margin and tile gaps are untouched
	assert.Equal(t, uint8(charmap.Blank), m.Image().GrayAt(0, 0).Y)
	assert.Equal(t, uint8(charmap.Blank), m.Image().GrayAt(96, 144).Y)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir)
	out := filepath.Join(dir, "output")

	g := New(testLogger())
	result, err := g.Run(source, out)
	require.Nil(t, err)

	b, err := ioutil.ReadFile(source)
	require.Nil(t, err)
	h := sha1.Sum(b)
	assert.Equal(t, fmt.Sprintf("%X", h[:]), result.SHA1)

	i, ok := result.LUT.At(4, 1)
	assert.True(t, ok)
	assert.Equal(t, 65, i)

	// Glyph 3 is CGRAM and never matched
	_, ok = result.LUT.At(0b10000, 0)
	assert.False(t, ok)

	for _, file := range []string{BlankLayoutFile, PatternsFile} {
		m, err := charmap.Open(filepath.Join(out, file), g.Layout)
		require.Nil(t, err, file)
		assert.False(t, m.Image().Bounds().Empty(), file)
	}

	b, err = ioutil.ReadFile(filepath.Join(out, LUTFile))
	require.Nil(t, err)
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	require.Len(t, lines, 8)
	for _, line := range lines {
		assert.Len(t, strings.Split(strings.TrimSuffix(line, "\t"), "\t"), 32)
	}

	l, err := ReadLUT(filepath.Join(out, LUTFile))
	require.Nil(t, err)
	assert.Equal(t, result.LUT, l)

	f, err := os.Open(filepath.Join(out, ROMFile))
	require.Nil(t, err)
	defer f.Close()

	table, err := rom.Decode(f, 8)
	require.Nil(t, err)
	assert.Equal(t, result.Table, table)
}

func TestRunMissingSource(t *testing.T) {
	dir := t.TempDir()

	g := New(testLogger())
	_, err := g.Run(filepath.Join(dir, "missing.png"), dir)
	assert.True(t, os.IsNotExist(err))

	// The blank layout is written before the source is read
	_, err = os.Stat(filepath.Join(dir, BlankLayoutFile))
	assert.Nil(t, err)
	_, err = os.Stat(filepath.Join(dir, LUTFile))
	assert.True(t, os.IsNotExist(err))
}

func TestRunCorruptSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "corrupt.png")
	require.Nil(t, ioutil.WriteFile(source, []byte("corrupt"), 0644))

	g := New(testLogger())
	_, err := g.Run(source, dir)
	assert.NotNil(t, err)
}

func TestRunSmallSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "small.png")
	require.Nil(t, charmap.New(charmap.Layout{Count: image.Pt(4, 4), Pitch: image.Pt(6, 9)}).Save(source))

	g := New(testLogger())
	_, err := g.Run(source, dir)
	assert.NotNil(t, err)
}

func TestRunOptions(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir)

	g := New(testLogger())
	g.Options = lut.DefaultOptions()
	g.Options.SearchStart = 0

	result, err := g.Run(source, filepath.Join(dir, "output"))
	require.Nil(t, err)

	i, ok := result.LUT.At(0b10000, 0)
	assert.True(t, ok)
	assert.Equal(t, 3, i)
}
