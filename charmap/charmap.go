/*
Package charmap implements a grayscale raster addressed as a regular grid of
character tiles.

A character generator layout is rendered as a grid of tiles, each tile being
Pitch pixels apart from its neighbours. The glyph itself occupies a Size
rectangle within the tile, Offset pixels in from the tile origin. The whole
grid may be surrounded by a margin.
*/
package charmap

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// Blank is the gray level a new map is filled with
const Blank = 128

// ErrOutOfBounds is returned when a pixel outside of the raster is sampled,
// usually the result of a misconfigured Layout
var ErrOutOfBounds = errors.New("charmap: pixel out of bounds")

// Margin is the number of pixels surrounding the tile grid
type Margin struct {
	Top, Left, Bottom, Right int
}

// Layout describes the geometry of the tile grid
type Layout struct {
	Margin Margin
	Count  image.Point // Number of tile columns and rows
	Pitch  image.Point // Distance between tile origins
	Offset image.Point // Offset of the glyph within the tile
	Size   image.Point // Size of the glyph
}

// Bounds returns the raster bounds implied by the layout
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0,
		l.Margin.Left+l.Margin.Right+l.Count.X*l.Pitch.X,
		l.Margin.Top+l.Margin.Bottom+l.Count.Y*l.Pitch.Y)
}

// Map is a grayscale raster with a tile layout
type Map struct {
	Layout
	img *image.Gray
}

// New returns a blank map sized to fit the layout
func New(layout Layout) *Map {
	m := &Map{
		Layout: layout,
		img:    image.NewGray(layout.Bounds()),
	}
	draw.Draw(m.img, m.img.Bounds(), image.NewUniform(color.Gray{Blank}), image.Point{}, draw.Src)
	return m
}

// Image returns the underlying raster
func (m *Map) Image() *image.Gray {
	return m.img
}

// Origin returns the pixel coordinate of the glyph in the tile at p. There is
// no bounds checking.
func (m *Map) Origin(p image.Point) image.Point {
	return image.Point{
		X: m.Margin.Left + m.Offset.X + p.X*m.Pitch.X,
		Y: m.Margin.Top + m.Offset.Y + p.Y*m.Pitch.Y,
	}
}

// Rect returns the glyph rectangle of the tile at p
func (m *Map) Rect(p image.Point) image.Rectangle {
	o := m.Origin(p)
	return image.Rectangle{o, o.Add(m.Size)}
}

// Fill fills the glyph rectangle of the tile at p with c, clipped to the
// raster
func (m *Map) Fill(p image.Point, c uint8) {
	draw.Draw(m.img, m.Rect(p), image.NewUniform(color.Gray{c}), image.Point{}, draw.Src)
}

// Paste copies the glyph rectangle of the tile at sp in src to the tile at dp
func (m *Map) Paste(dp image.Point, src *Map, sp image.Point) {
	r := m.Rect(dp)
	r.Max = r.Min.Add(src.Size)
	draw.Draw(m.img, r, src.img, src.Origin(sp), draw.Src)
}

// Set sets a single pixel, ignoring anything outside the raster
func (m *Map) Set(p image.Point, c uint8) {
	m.img.SetGray(p.X, p.Y, color.Gray{c})
}
