package cgrom

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodgit/cgrom/glyph"
	"github.com/bodgit/cgrom/lut"
	_ "github.com/mattn/go-sqlite3"
)

var (
	errNoFonts     = errors.New("no fonts in database")
	errUnknownFont = errors.New("font not in database")
)

// LUTDB stores glyph tables and lookup tables keyed by the SHA-1 of the
// source layout they were extracted from
type LUTDB struct {
	db *sql.DB
}

// NewLUTDB opens or creates the database in file
func NewLUTDB(file string) (*LUTDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS font (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, pattern_bits INTEGER NOT NULL, lines INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS glyph (font_id INTEGER NOT NULL, idx INTEGER NOT NULL, line INTEGER NOT NULL, word INTEGER NOT NULL, UNIQUE(font_id, idx, line), FOREIGN KEY(font_id) REFERENCES font(id))"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS lut (font_id INTEGER NOT NULL, pattern INTEGER NOT NULL, line INTEGER NOT NULL, glyph INTEGER, UNIQUE(font_id, pattern, line), FOREIGN KEY(font_id) REFERENCES font(id))"); err != nil {
		return nil, err
	}

	return &LUTDB{
		db: db,
	}, nil
}

// Close closes the database
func (db *LUTDB) Close() error {
	return db.db.Close()
}

// Store replaces anything held for sha with t and l
func (db *LUTDB) Store(sha string, t glyph.Table, l *lut.LUT) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	for _, q := range []string{
		"DELETE FROM lut WHERE font_id IN (SELECT id FROM font WHERE sha1 = ?)",
		"DELETE FROM glyph WHERE font_id IN (SELECT id FROM font WHERE sha1 = ?)",
		"DELETE FROM font WHERE sha1 = ?",
	} {
		if _, err = tx.Exec(q, sha); err != nil {
			return err
		}
	}

	result, err := tx.Exec("INSERT INTO font (sha1, pattern_bits, lines) VALUES (?, ?, ?)", sha, l.PatternBits, l.Rows)
	if err != nil {
		return err
	}
	font, err := result.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO glyph (font_id, idx, line, word) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, g := range t {
		for y, word := range g {
			if _, err = stmt.Exec(font, i, y, word); err != nil {
				return err
			}
		}
	}

	stmt, err = tx.Prepare("INSERT INTO lut (font_id, pattern, line, glyph) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for v := 0; v < l.Rows; v++ {
		for u := 0; u < l.Patterns(); u++ {
			var g sql.NullInt64
			if i, ok := l.At(u, v); ok {
				g.Int64 = int64(i)
				g.Valid = true
			}
			if _, err = stmt.Exec(font, u, v, g); err != nil {
				return err
			}
		}
	}

	return nil
}

// Latest returns the SHA-1 of the most recently stored font
func (db *LUTDB) Latest() (string, error) {
	var sha string
	switch err := db.db.QueryRow("SELECT sha1 FROM font ORDER BY id DESC LIMIT 1").Scan(&sha); err {
	case sql.ErrNoRows:
		return "", errNoFonts
	case nil:
		return sha, nil
	default:
		return "", err
	}
}

// FindGlyph returns the glyph that draws pattern on row for the font
// identified by sha. A pattern or row the stored table doesn't cover returns
// lut.ErrOutOfRange.
func (db *LUTDB) FindGlyph(sha string, pattern, row int) (int, bool, error) {
	var bits, lines int
	switch err := db.db.QueryRow("SELECT pattern_bits, lines FROM font WHERE sha1 = ?", sha).Scan(&bits, &lines); err {
	case sql.ErrNoRows:
		return lut.None, false, errUnknownFont
	case nil:
	default:
		return lut.None, false, err
	}

	if pattern < 0 || pattern >= 1<<uint(bits) || row < 0 || row >= lines {
		return lut.None, false, fmt.Errorf("%w: %d, %d in %dx%d table", lut.ErrOutOfRange, pattern, row, 1<<uint(bits), lines)
	}

	var g sql.NullInt64
	switch err := db.db.QueryRow("SELECT l.glyph FROM lut AS l JOIN font AS f ON l.font_id = f.id WHERE f.sha1 = ? AND l.pattern = ? AND l.line = ?", sha, pattern, row).Scan(&g); err {
	case sql.ErrNoRows:
		return lut.None, false, nil
	case nil:
		if !g.Valid {
			return lut.None, false, nil
		}
		return int(g.Int64), true, nil
	default:
		return lut.None, false, err
	}
}

// FindGlyphRows returns the stored rows of glyph i for the font identified
// by sha
func (db *LUTDB) FindGlyphRows(sha string, i int) (glyph.Glyph, error) {
	rows, err := db.db.Query("SELECT g.word FROM glyph AS g JOIN font AS f ON g.font_id = f.id WHERE f.sha1 = ? AND g.idx = ? ORDER BY g.line", sha, i)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var g glyph.Glyph
	for rows.Next() {
		var word uint32
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		g = append(g, word)
	}

	return g, rows.Err()
}
