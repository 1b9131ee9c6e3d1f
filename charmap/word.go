package charmap

import (
	"errors"
	"fmt"
	"image"
)

var errWordTooWide = errors.New("charmap: word wider than 32 bits")

// Word samples n pixels from start along the x axis and packs them into a
// word, one bit per pixel that equals ref. The first bit considered has a
// weight of 1<<shift, each following bit doubles.
//
// When bigEndian is set the pixels are visited left to right so the leftmost
// pixel lands in the lowest bit, otherwise they are visited right to left and
// the rightmost pixel lands in the lowest bit.
func (m *Map) Word(start image.Point, n int, ref uint8, bigEndian bool, shift uint) (uint32, error) {
	if n < 0 || uint(n)+shift > 32 {
		return 0, errWordTooWide
	}

	var word uint32
	b := uint64(1) << shift
	for i := 0; i < n; i++ {
		x := start.X + i
		if !bigEndian {
			x = start.X + n - 1 - i
		}

		p := image.Point{x, start.Y}
		if !p.In(m.img.Rect) {
			return 0, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
		}

		if m.img.GrayAt(p.X, p.Y).Y == ref {
			word |= uint32(b)
		}
		b <<= 1
	}

	return word, nil
}
