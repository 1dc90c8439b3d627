package chart

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

var (
	white    = colorful.Color{R: 1, G: 1, B: 1}
	black    = colorful.Color{}
	gridGray = mustParseColor("gray")
)

// ParseColor accepts a CSS color name (case-insensitive) or a #RGB/#RRGGBB
// hex string.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if !hexColorRegex.MatchString(s) {
			return colorful.Color{}, fmt.Errorf("invalid hex color %q (expected #RGB or #RRGGBB)", s)
		}
		return colorful.Hex(s)
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return colorful.Color{}, fmt.Errorf("unknown color name %q", s)
	}
	c, _ := colorful.MakeColor(named)
	return c, nil
}

// IsValidColor reports whether s is accepted by ParseColor.
func IsValidColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}

// ContrastText returns black or white, whichever reads better on bg.
func ContrastText(bg colorful.Color) colorful.Color {
	r, g, b := bg.LinearRgb()
	if 0.2126*r+0.7152*g+0.0722*b > 0.179 {
		return black
	}
	return white
}

// toColorful converts any color to colorful. Fully transparent colors map
// to black.
func toColorful(c color.Color) colorful.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return black
	}
	return cf
}

func mustParseColor(s string) colorful.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
