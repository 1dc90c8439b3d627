package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"

	"github.com/Iron-Ham/lazygantt/internal/errors"
)

const jpegQuality = 95

// rasterCanvas draws into an RGBA image.
type rasterCanvas struct {
	faceMetrics
	img    *image.RGBA
	format string
}

func newRasterCanvas(width, height int, face font.Face, format string) *rasterCanvas {
	return &rasterCanvas{
		faceMetrics: faceMetrics{face: face},
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		format:      format,
	}
}

// pixelRect snaps r to whole pixels. Non-empty rectangles cover at least
// one pixel in each direction so thin lines stay visible.
func pixelRect(r Rect) image.Rectangle {
	x0, y0 := int(math.Round(r.X)), int(math.Round(r.Y))
	x1, y1 := int(math.Round(r.Right())), int(math.Round(r.Bottom()))
	if r.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if r.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return image.Rect(x0, y0, x1, y1)
}

func (c *rasterCanvas) FillRect(r Rect, col color.Color) {
	b := pixelRect(r).Intersect(c.img.Bounds())
	if b.Empty() {
		return
	}
	draw.Draw(c.img, b, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *rasterCanvas) DrawText(s string, x, y float64, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
	}
	d.Dot.X = toFixed(x)
	d.Dot.Y = toFixed(y)
	d.DrawString(s)
}

// Image returns the drawn image.
func (c *rasterCanvas) Image() image.Image {
	return c.img
}

func (c *rasterCanvas) Encode(w io.Writer) error {
	var err error
	switch c.format {
	case FormatPNG:
		err = png.Encode(w, c.img)
	case FormatJPG, FormatJPEG:
		err = jpeg.Encode(w, c.img, &jpeg.Options{Quality: jpegQuality})
	case FormatGIF:
		err = gif.Encode(w, c.img, &gif.Options{NumColors: 256})
	default:
		return fmt.Errorf("raster format %q: %w", c.format, errors.ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.format, err)
	}
	return nil
}
