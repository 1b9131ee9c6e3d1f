package charmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
)

var errUnknownFormat = errors.New("charmap: unknown image format")

// luminance returns the ITU-R 601 luma of the straight RGB components of c.
// Alpha is ignored so a transparent white pixel is still white.
func luminance(c color.Color) color.Gray {
	var r, g, b uint32
	switch n := c.(type) {
	case color.NRGBA64:
		r, g, b = uint32(n.R>>8), uint32(n.G>>8), uint32(n.B>>8)
	default:
		s := color.NRGBAModel.Convert(c).(color.NRGBA)
		r, g, b = uint32(s.R), uint32(s.G), uint32(s.B)
	}
	return color.Gray{uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 16)}
}

// Load replaces the raster with an image decoded from r. Anything other than
// an 8-bit grayscale image is converted to luminance.
func (m *Map) Load(r io.Reader) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return err
	}

	if g, ok := src.(*image.Gray); ok {
		m.img = g
		return nil
	}

	b := src.Bounds()
	g := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.SetGray(x, y, luminance(src.At(x, y)))
		}
	}
	m.img = g

	return nil
}

// Open returns a map with the given layout and the contents of file
func Open(file string, layout Layout) (*Map, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Map{Layout: layout}
	if err := m.Load(f); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return m, nil
}

// Encode writes the raster to w in the format named by ext, one of ".bmp",
// ".png" or ".gif"
func (m *Map) Encode(w io.Writer, ext string) error {
	switch strings.ToLower(ext) {
	case ".bmp":
		return bmp.Encode(w, m.img)
	case ".png":
		return png.Encode(w, m.img)
	case ".gif":
		return gif.Encode(w, m.img, &gif.Options{
			NumColors: 256,
			Quantizer: quantize.MedianCutQuantizer{},
			Drawer:    draw.Src,
		})
	default:
		return errUnknownFormat
	}
}

// Save writes the raster to file, picking the format from the extension
func (m *Map) Save(file string) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return m.Encode(f, filepath.Ext(file))
}
