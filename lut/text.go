package lut

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strconv"
	"strings"
)

const noneToken = "None"

var errNoRows = errors.New("lut: no rows")

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo writes the table as text, one line per row with a tab after each
// pattern's glyph index or None.
func (l *LUT) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	for v := 0; v < l.Rows; v++ {
		for u := 0; u < l.Patterns(); u++ {
			s := noneToken
			if i, ok := l.At(u, v); ok {
				s = strconv.Itoa(i)
			}
			if _, err := bw.WriteString(s + "\t"); err != nil {
				return cw.n, err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return cw.n, err
		}
	}
	err := bw.Flush()
	return cw.n, err
}

// Parse reads a table written by WriteTo
func Parse(r io.Reader) (*LUT, error) {
	var rows [][]int

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSuffix(s.Text(), "\t")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(rows) > 0 && len(fields) != len(rows[0]) {
			return nil, fmt.Errorf("lut: row %d has %d fields, expected %d", len(rows), len(fields), len(rows[0]))
		}

		row := make([]int, len(fields))
		for u, f := range fields {
			if f == noneToken {
				row[u] = None
				continue
			}
			i, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("lut: row %d pattern %d: %w", len(rows), u, err)
			}
			if i < 0 {
				return nil, fmt.Errorf("lut: row %d pattern %d: negative glyph index %d", len(rows), u, i)
			}
			row[u] = i
		}
		rows = append(rows, row)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errNoRows
	}

	patterns := len(rows[0])
	if bits.OnesCount(uint(patterns)) != 1 {
		return nil, fmt.Errorf("lut: %d patterns is not a power of two", patterns)
	}

	l := New(bits.TrailingZeros(uint(patterns)), len(rows))
	for v, row := range rows {
		for u, i := range row {
			l.Set(u, v, i)
		}
	}

	return l, nil
}
