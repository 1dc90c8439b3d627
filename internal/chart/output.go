package chart

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/lazygantt/internal/gantt"
)

// newSurface creates the backend for the style's output format.
func newSurface(s *Style) (surface, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	face, err := newFace(s.Font.Size, s.Image.DPI)
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}

	w, h := s.PixelSize()
	if s.Format() == FormatSVG {
		return newSVGCanvas(w, h, face, s.Points(s.Font.Size)), nil
	}
	return newRasterCanvas(w, h, face, s.Format()), nil
}

// Write renders g and encodes it to w in the style's format.
func Write(w io.Writer, g *gantt.Gantt, s *Style) error {
	surf, err := newSurface(s)
	if err != nil {
		return err
	}
	Draw(surf, g, s)
	return surf.Encode(w)
}

// Filename returns "<basename>.<format>".
func Filename(basename string, s *Style) string {
	return basename + "." + s.Format()
}

// Save renders g to <dir>/<basename>.<format> and returns the path. The
// chart is rendered completely before the file is created.
func Save(fs afero.Fs, dir, basename string, g *gantt.Gantt, s *Style) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, g, s); err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(basename, s))
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing chart: %w", err)
	}
	return path, nil
}
