package chart

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strings"

	"golang.org/x/image/font"
)

const svgFontFamily = "Go, Helvetica, Arial, sans-serif"

// svgCanvas records drawing operations as SVG elements. Text is measured
// with the same face as the raster backend, so both produce the same layout.
type svgCanvas struct {
	faceMetrics
	width, height int
	fontPx        float64
	body          strings.Builder
}

func newSVGCanvas(width, height int, face font.Face, fontPx float64) *svgCanvas {
	return &svgCanvas{
		faceMetrics: faceMetrics{face: face},
		width:       width,
		height:      height,
		fontPx:      fontPx,
	}
}

func (c *svgCanvas) FillRect(r Rect, col color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	fmt.Fprintf(&c.body, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		r.X, r.Y, r.W, r.H, toColorful(col).Hex())
}

func (c *svgCanvas) DrawText(s string, x, y float64, col color.Color) {
	var escaped bytes.Buffer
	// EscapeText only fails when writing to the buffer fails.
	_ = xml.EscapeText(&escaped, []byte(s))
	fmt.Fprintf(&c.body, `<text x="%.2f" y="%.2f" fill="%s">%s</text>`+"\n",
		x, y, toColorful(col).Hex(), escaped.String())
}

func (c *svgCanvas) Encode(w io.Writer) error {
	_, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" font-family="%s" font-size="%.2f">
%s</svg>
`, c.width, c.height, c.width, c.height, svgFontFamily, c.fontPx, c.body.String())
	if err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}
