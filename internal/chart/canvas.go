package chart

import (
	"image/color"
	"io"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Canvas is a drawing surface. Coordinates are pixels with the origin at
// the top left corner.
type Canvas interface {
	// FillRect paints r in c.
	FillRect(r Rect, c color.Color)
	// DrawText draws s with its left end at x and its baseline at y.
	DrawText(s string, x, y float64, c color.Color)
	// MeasureText returns the advance width of s.
	MeasureText(s string) float64
	// FontMetrics returns the ascent and descent of the canvas font.
	FontMetrics() (ascent, descent float64)
}

// surface is a Canvas that can encode itself.
type surface interface {
	Canvas
	Encode(w io.Writer) error
}

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// newFace returns a Go Regular face of size points at dpi.
func newFace(size float64, dpi int) (font.Face, error) {
	f, err := goRegular()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	})
}

// faceMetrics implements the measuring half of Canvas on a font face.
type faceMetrics struct {
	face font.Face
}

func (m faceMetrics) MeasureText(s string) float64 {
	return fromFixed(font.MeasureString(m.face, s))
}

func (m faceMetrics) FontMetrics() (float64, float64) {
	metrics := m.face.Metrics()
	return fromFixed(metrics.Ascent), fromFixed(metrics.Descent)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
