// Package chart draws a Gantt chart to an image file.
//
// A [Style] controls colors, size, captions and output format. It is either
// [DefaultStyle] or read from a YAML chart configuration file with
// [LoadStyle]. [Draw] paints a chart onto any [Canvas]; [Write] and [Save]
// pick the raster (PNG, JPEG, GIF) or SVG backend from the style's format.
//
// The phase panel, when present, sits above the package panel. Both share
// the month axis, so cells line up between panels.
package chart
