package chart

import (
	"bytes"
	"encoding/xml"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/lazygantt/internal/errors"
	"github.com/Iron-Ham/lazygantt/internal/gantt"
)

// recordingCanvas records drawing calls with a fixed-width font.
type recordingCanvas struct {
	rects []Rect
	texts []string
}

func (r *recordingCanvas) FillRect(rect Rect, _ color.Color) { r.rects = append(r.rects, rect) }

func (r *recordingCanvas) DrawText(s string, _, _ float64, _ color.Color) {
	r.texts = append(r.texts, s)
}

func (r *recordingCanvas) MeasureText(s string) float64 { return float64(len(s)) * 8 }

func (r *recordingCanvas) FontMetrics() (float64, float64) { return 12, 4 }

func smallStyle(format string) *Style {
	s := DefaultStyle()
	s.Image.Width = 8
	s.Image.Height = 4
	s.Image.DPI = 40
	s.Image.Format = format
	s.Font.Size = 8
	return s
}

func TestTickHidden(t *testing.T) {
	var visible []int
	for i := 0; i < 8; i++ {
		if !TickHidden(i, 2) {
			visible = append(visible, i+1)
		}
	}
	if diff := cmp.Diff([]int{2, 4, 6, 8}, visible); diff != "" {
		t.Errorf("visible labels mismatch (-want +got):\n%s", diff)
	}
	if TickHidden(0, 1) {
		t.Error("steps of 1 should show every label")
	}
}

func TestDraw_Labels(t *testing.T) {
	c := &recordingCanvas{}
	Draw(c, gantt.Default(), smallStyle(FormatPNG))

	want := []string{
		"P1", "P2", "P3", "Phases",
		"WP1", "WP2", "WP3", "WP4", "WP5", "WP6", "Work Packages",
		"2", "4", "6", "8", "10", "12", "14", "16", "18", "20", "22", "24", "Months",
		"MS 1", "MS 2", "MS 3", "MS 4", "MS 5",
	}
	if diff := cmp.Diff(want, c.texts); diff != "" {
		t.Errorf("drawn text mismatch (-want +got):\n%s", diff)
	}
}

func TestDraw_WithoutPhases(t *testing.T) {
	g := gantt.Default()
	g.Phases = nil
	g.Milestones = nil

	c := &recordingCanvas{}
	Draw(c, g, smallStyle(FormatPNG))

	for _, text := range []string{"Phases", "P1", "MS 1"} {
		if slices.Contains(c.texts, text) {
			t.Errorf("unexpected text %q without phases and milestones", text)
		}
	}
	if !slices.Contains(c.texts, "WP6") {
		t.Error("package labels should still be drawn")
	}
}

func TestComputeLayout(t *testing.T) {
	s := smallStyle(FormatPNG)
	g := gantt.Default()
	l := computeLayout(&recordingCanvas{}, g, s)

	if l.cellW <= 0 || l.cellH <= 0 {
		t.Fatalf("cell size = %vx%v, want positive", l.cellW, l.cellH)
	}
	if diff := l.cellH - l.cellW*s.Image.Aspect; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("cell aspect = %v, want %v", l.cellH/l.cellW, s.Image.Aspect)
	}

	gap := l.packages.Y - l.phases.Bottom()
	if want := panelGapInches * float64(s.Image.DPI); gap < want-1e-9 || gap > want+1e-9 {
		t.Errorf("panel gap = %v, want %v", gap, want)
	}
	if l.phases.X != l.packages.X || l.phases.W != l.packages.W {
		t.Error("panels should share the month axis")
	}

	w, h := s.PixelSize()
	for _, r := range []Rect{l.phases, l.packages} {
		if r.X < 0 || r.Y < 0 || r.Right() > float64(w) || r.Bottom() > float64(h) {
			t.Errorf("panel %+v outside %dx%d canvas", r, w, h)
		}
	}
}

func TestWrite_Raster(t *testing.T) {
	tests := []struct {
		format string
		decode func(io.Reader) (image.Config, error)
	}{
		{FormatPNG, png.DecodeConfig},
		{FormatJPG, jpeg.DecodeConfig},
		{FormatJPEG, jpeg.DecodeConfig},
		{FormatGIF, gif.DecodeConfig},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			s := smallStyle(tt.format)
			var buf bytes.Buffer
			if err := Write(&buf, gantt.Default(), s); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			cfg, err := tt.decode(&buf)
			if err != nil {
				t.Fatalf("decoding output: %v", err)
			}
			if cfg.Width != 320 || cfg.Height != 160 {
				t.Errorf("image size = %dx%d, want 320x160", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestWrite_PNGColors(t *testing.T) {
	s := smallStyle(FormatPNG)
	var buf bytes.Buffer
	if err := Write(&buf, gantt.Default(), s); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	bg := toColorful(img.At(0, 0))
	if want := mustParseColor(s.Colors.Background); bg.Hex() != want.Hex() {
		t.Errorf("corner color = %s, want background %s", bg.Hex(), want.Hex())
	}
}

func TestWrite_SVG(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, gantt.Default(), smallStyle(FormatSVG)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(buf.Bytes()))
	var texts []string
	var root string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("output is not well-formed XML: %v", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if root == "" {
				root = el.Name.Local
			}
		case xml.CharData:
			if s := strings.TrimSpace(string(el)); s != "" {
				texts = append(texts, s)
			}
		}
	}

	if root != "svg" {
		t.Errorf("root element = %q, want svg", root)
	}
	for _, want := range []string{"WP1", "P3", "Months", "MS 5"} {
		if !slices.Contains(texts, want) {
			t.Errorf("svg text %q not found", want)
		}
	}
	if !strings.Contains(buf.String(), `width="320" height="160"`) {
		t.Error("svg should carry the pixel size")
	}
}

func TestWrite_EscapesSVGText(t *testing.T) {
	s := smallStyle(FormatSVG)
	s.Labels.XLabel = "Months <&>"
	var buf bytes.Buffer
	if err := Write(&buf, gantt.Default(), s); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Months &lt;&amp;&gt;") {
		t.Error("label should be XML escaped")
	}
}

func TestWrite_InvalidStyle(t *testing.T) {
	s := smallStyle("tiff")
	err := Write(io.Discard, gantt.Default(), s)
	if !errors.Is(err, errors.ErrUnsupportedFormat) {
		t.Errorf("Write() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	path, err := Save(fs, "/out/charts", "plan", gantt.Default(), smallStyle(FormatSVG))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path != "/out/charts/plan.svg" {
		t.Errorf("path = %q, want /out/charts/plan.svg", path)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("reading saved chart: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		t.Error("saved file is not an svg document")
	}
}

func TestSave_NoFileOnError(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := Save(fs, "out", "gantt", gantt.Default(), smallStyle("bmp")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if exists, _ := afero.Exists(fs, "out/gantt.bmp"); exists {
		t.Error("no file should be written when rendering fails")
	}
}

func TestWrite_OverflowingSize(t *testing.T) {
	s := DefaultStyle()
	s.Image.Width = 1e300
	if err := s.Validate(); !errors.Is(err, errors.ErrInvalidConfig) {
		t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
	}
	if err := Write(&bytes.Buffer{}, gantt.Default(), s); err == nil {
		t.Error("Write() should refuse an oversized style")
	}
}
