package cgrom

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/bodgit/cgrom/glyph"
	"github.com/bodgit/cgrom/lut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() (glyph.Table, *lut.LUT) {
	table := make(glyph.Table, 16)
	for i := range table {
		table[i] = glyph.Glyph{uint32(i), uint32(i) >> 1}
	}

	l := lut.New(2, 2)
	l.Set(1, 0, 9)
	l.Set(3, 1, 14)

	return table, l
}

func TestLUTDB(t *testing.T) {
	db, err := NewLUTDB(filepath.Join(t.TempDir(), "cgrom.db"))
	require.Nil(t, err)
	defer db.Close()

	_, err = db.Latest()
	assert.Equal(t, errNoFonts, err)

	table, l := testTable()
	require.Nil(t, db.Store("ABCD", table, l))

	sha, err := db.Latest()
	require.Nil(t, err)
	assert.Equal(t, "ABCD", sha)

	for v := 0; v < l.Rows; v++ {
		for u := 0; u < l.Patterns(); u++ {
			want, wantOK := l.At(u, v)
			got, ok, err := db.FindGlyph(sha, u, v)
			require.Nil(t, err)
			assert.Equal(t, wantOK, ok)
			assert.Equal(t, want, got)
		}
	}

	g, err := db.FindGlyphRows(sha, 13)
	require.Nil(t, err)
	assert.Equal(t, glyph.Glyph{13, 6}, g)

	_, ok, err := db.FindGlyph("EF01", 1, 0)
	assert.Equal(t, errUnknownFont, err)
	assert.False(t, ok)

	for _, p := range [][2]int{{4, 0}, {-1, 0}, {0, 2}, {0, -1}} {
		_, ok, err := db.FindGlyph(sha, p[0], p[1])
		assert.True(t, errors.Is(err, lut.ErrOutOfRange), "%v", p)
		assert.False(t, ok)
	}
}

func TestLUTDBReplace(t *testing.T) {
	db, err := NewLUTDB(filepath.Join(t.TempDir(), "cgrom.db"))
	require.Nil(t, err)
	defer db.Close()

	table, l := testTable()
	require.Nil(t, db.Store("ABCD", table, l))
	require.Nil(t, db.Store("EF01", table, l))

	l.Set(1, 0, lut.None)
	l.Set(0, 0, 12)
	require.Nil(t, db.Store("ABCD", table, l))

	sha, err := db.Latest()
	require.Nil(t, err)
	assert.Equal(t, "ABCD", sha)

	_, ok, err := db.FindGlyph("ABCD", 1, 0)
	require.Nil(t, err)
	assert.False(t, ok)

	i, ok, err := db.FindGlyph("ABCD", 0, 0)
	require.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12, i)

	// Other fonts are untouched
	i, ok, err = db.FindGlyph("EF01", 1, 0)
	require.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9, i)
}
