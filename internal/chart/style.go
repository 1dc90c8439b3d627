package chart

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/lazygantt/internal/errors"
	"github.com/Iron-Ham/lazygantt/internal/logging"
)

// Output formats supported by Write and Save.
const (
	FormatPNG  = "png"
	FormatJPG  = "jpg"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatSVG  = "svg"
)

// maxPixels bounds each image side after scaling by dpi.
const maxPixels = 20000

// Style is the appearance of a rendered chart.
type Style struct {
	Colors     Colors     `yaml:"colors"`
	Image      Image      `yaml:"image"`
	Milestones Milestones `yaml:"milestones"`
	Labels     Labels     `yaml:"labels"`
	Font       Font       `yaml:"font"`
}

// Colors holds the role colors as CSS names or hex strings.
type Colors struct {
	// Primary fills package cells.
	Primary string `yaml:"primary"`
	// Secondary fills phase cells.
	Secondary string `yaml:"secondary"`
	// Contrast draws milestones.
	Contrast string `yaml:"contrast"`
	// Background fills the canvas.
	Background string `yaml:"background"`
}

// Image sets the figure size in inches and the output encoding.
type Image struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Aspect is the cell height divided by the cell width.
	Aspect float64 `yaml:"aspect"`
	DPI    int     `yaml:"dpi"`
	Format string  `yaml:"format"`
}

// Milestones sets the milestone line width in points.
type Milestones struct {
	LineWidth float64 `yaml:"linewidth"`
}

// Labels holds the chart captions.
type Labels struct {
	PackageAbbr    string `yaml:"package_abbr"`
	PackageYLabel  string `yaml:"package_ylabel"`
	MilestonesAbbr string `yaml:"milestones_abbr"`
	PhaseAbbr      string `yaml:"phase_abbr"`
	PhaseYLabel    string `yaml:"phase_ylabel"`
	XLabel         string `yaml:"xlabel"`
	// XTicksSteps hides every n-th month label, starting with the first,
	// when greater than 1.
	XTicksSteps int `yaml:"xticks_steps"`
}

// Font sets the text size in points.
type Font struct {
	Size float64 `yaml:"fontsize"`
}

// DefaultStyle returns the built-in chart appearance.
func DefaultStyle() *Style {
	return &Style{
		Colors: Colors{
			Primary:    "steelblue",
			Secondary:  "yellowgreen",
			Contrast:   "darkred",
			Background: "beige",
		},
		Image: Image{
			Width:  25,
			Height: 10,
			Aspect: 1,
			DPI:    150,
			Format: FormatPNG,
		},
		Milestones: Milestones{LineWidth: 2.5},
		Labels: Labels{
			PackageAbbr:    "WP",
			PackageYLabel:  "Work Packages",
			MilestonesAbbr: "MS",
			PhaseAbbr:      "P",
			PhaseYLabel:    "Phases",
			XLabel:         "Months",
			XTicksSteps:    2,
		},
		Font: Font{Size: 16},
	}
}

// SupportedFormats returns the accepted image formats.
func SupportedFormats() []string {
	return []string{FormatPNG, FormatJPG, FormatJPEG, FormatGIF, FormatSVG}
}

// IsSupportedFormat reports whether format names a supported encoding.
func IsSupportedFormat(format string) bool {
	return slices.Contains(SupportedFormats(), strings.ToLower(format))
}

// Validate checks that the style can be rendered.
func (s *Style) Validate() error {
	for _, role := range colorRoles {
		if _, err := ParseColor(*role.field(&s.Colors)); err != nil {
			return errors.NewConfigError(err.Error(), errors.ErrInvalidConfig).
				WithSection("colors").WithKey(role.key)
		}
	}

	positive := []struct {
		section, key string
		value        float64
	}{
		{"image", "width", s.Image.Width},
		{"image", "height", s.Image.Height},
		{"image", "aspect", s.Image.Aspect},
		{"image", "dpi", float64(s.Image.DPI)},
		{"milestones", "linewidth", s.Milestones.LineWidth},
		{"labels", "xticks_steps", float64(s.Labels.XTicksSteps)},
		{"font", "fontsize", s.Font.Size},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errors.NewConfigError(fmt.Sprintf("must be positive, got %v", p.value), errors.ErrInvalidConfig).
				WithSection(p.section).WithKey(p.key)
		}
	}

	// Compared before the int conversion in PixelSize, which overflows.
	dpi := float64(s.Image.DPI)
	if fw, fh := s.Image.Width*dpi, s.Image.Height*dpi; fw > maxPixels || fh > maxPixels {
		return errors.NewConfigError(
			fmt.Sprintf("image of %.0fx%.0f pixels exceeds %d pixels per side", fw, fh, maxPixels),
			errors.ErrInvalidConfig).WithSection("image")
	}

	if !IsSupportedFormat(s.Image.Format) {
		return errors.NewConfigError(
			fmt.Sprintf("format %q is not supported (supported: %s)", s.Image.Format, strings.Join(SupportedFormats(), ", ")),
			errors.ErrUnsupportedFormat).WithSection("image").WithKey("format")
	}
	return nil
}

// PixelSize returns the canvas size in pixels.
func (s *Style) PixelSize() (int, int) {
	dpi := float64(s.Image.DPI)
	return int(s.Image.Width*dpi + 0.5), int(s.Image.Height*dpi + 0.5)
}

// Format returns the normalized output format.
func (s *Style) Format() string {
	return strings.ToLower(s.Image.Format)
}

// Points converts a length in points to pixels at the style's dpi.
func (s *Style) Points(pt float64) float64 {
	return pt * float64(s.Image.DPI) / 72
}

// WriteYAML encodes the style in the chart configuration file format.
func (s *Style) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding chart style: %w", err)
	}
	return enc.Close()
}

// palette holds the resolved role colors.
type palette struct {
	primary, secondary, contrast, background colorful.Color
}

func (s *Style) palette() palette {
	parse := func(v, fallback string) colorful.Color {
		if c, err := ParseColor(v); err == nil {
			return c
		}
		return mustParseColor(fallback)
	}
	d := DefaultStyle().Colors
	return palette{
		primary:    parse(s.Colors.Primary, d.Primary),
		secondary:  parse(s.Colors.Secondary, d.Secondary),
		contrast:   parse(s.Colors.Contrast, d.Contrast),
		background: parse(s.Colors.Background, d.Background),
	}
}

// colorRole binds a key of the colors section to its field.
type colorRole struct {
	key   string
	field func(*Colors) *string
}

var colorRoles = []colorRole{
	{"primary", func(c *Colors) *string { return &c.Primary }},
	{"secondary", func(c *Colors) *string { return &c.Secondary }},
	{"contrast", func(c *Colors) *string { return &c.Contrast }},
	{"background", func(c *Colors) *string { return &c.Background }},
}

// Section names of the chart configuration file.
var (
	requiredSections = []string{"colors", "image", "milestones", "labels"}
	optionalSections = []string{"font"}
)

// LoadStyle reads a chart configuration file. An empty path returns
// DefaultStyle. Missing sections or keys fail with *errors.ConfigError;
// invalid or unknown colors are logged and the defaults kept.
func LoadStyle(fs afero.Fs, path string, logger *logging.Logger) (*Style, error) {
	if path == "" {
		return DefaultStyle(), nil
	}
	logger = logging.OrNop(logger).WithComponent("style").WithFile(path)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.NewConfigError("reading chart configuration", err).WithFile(path)
	}

	s, err := ParseStyle(data, logger)
	if err != nil {
		var cfgErr *errors.ConfigError
		if errors.As(err, &cfgErr) && cfgErr.File == "" {
			cfgErr.WithFile(path)
		}
		return nil, err
	}
	logger.Debug("chart configuration loaded", "format", s.Image.Format, "dpi", s.Image.DPI)
	return s, nil
}

// ParseStyle decodes chart configuration YAML on top of DefaultStyle.
func ParseStyle(data []byte, logger *logging.Logger) (*Style, error) {
	logger = logging.OrNop(logger)

	var raw map[string]any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil && err != io.EOF {
		return nil, errors.NewConfigError("parsing chart configuration", fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err))
	}

	sections := make(map[string]map[string]any, len(raw))
	for name, value := range raw {
		if !slices.Contains(requiredSections, name) && !slices.Contains(optionalSections, name) {
			logger.Warn("unknown section ignored", "section", name)
			continue
		}
		if value == nil {
			sections[name] = map[string]any{}
			continue
		}
		m, ok := value.(map[string]any)
		if !ok {
			return nil, errors.NewConfigError("section must be a mapping", errors.ErrInvalidConfig).WithSection(name)
		}
		sections[name] = m
	}

	for _, name := range requiredSections {
		if _, ok := sections[name]; !ok {
			return nil, errors.NewConfigError("section is missing", errors.ErrMissingSection).WithSection(name)
		}
	}

	s := DefaultStyle()
	mergeColors(&s.Colors, sections["colors"], logger)

	r := sectionReader{name: "image", values: sections["image"], logger: logger}
	r.readFloat("width", &s.Image.Width)
	r.readFloat("height", &s.Image.Height)
	r.readFloat("aspect", &s.Image.Aspect)
	r.readInt("dpi", &s.Image.DPI)
	r.readString("format", &s.Image.Format)
	if err := r.done(); err != nil {
		return nil, err
	}

	r = sectionReader{name: "milestones", values: sections["milestones"], logger: logger}
	r.readFloat("linewidth", &s.Milestones.LineWidth)
	if err := r.done(); err != nil {
		return nil, err
	}

	r = sectionReader{name: "labels", values: sections["labels"], logger: logger}
	r.readString("package_abbr", &s.Labels.PackageAbbr)
	r.readString("package_ylabel", &s.Labels.PackageYLabel)
	r.readString("milestones_abbr", &s.Labels.MilestonesAbbr)
	r.readString("phase_abbr", &s.Labels.PhaseAbbr)
	r.readString("phase_ylabel", &s.Labels.PhaseYLabel)
	r.readString("xlabel", &s.Labels.XLabel)
	r.readInt("xticks_steps", &s.Labels.XTicksSteps)
	if err := r.done(); err != nil {
		return nil, err
	}

	if font, ok := sections["font"]; ok {
		r = sectionReader{name: "font", values: font, logger: logger}
		r.readFloat("fontsize", &s.Font.Size)
		if err := r.done(); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// mergeColors overrides the default role colors with valid entries.
func mergeColors(c *Colors, values map[string]any, logger *logging.Logger) {
	for key, value := range values {
		i := slices.IndexFunc(colorRoles, func(r colorRole) bool { return r.key == key })
		if i < 0 {
			logger.Warn("unknown color role ignored", "section", "colors", "key", key)
			continue
		}
		s, err := cast.ToStringE(value)
		if err != nil || !IsValidColor(s) {
			logger.Warn("invalid color ignored, keeping default",
				"section", "colors", "key", key, "value", value, "default", *colorRoles[i].field(c))
			continue
		}
		*colorRoles[i].field(c) = strings.TrimSpace(s)
	}
}

// sectionReader reads required keys from one section. The first failure is
// kept and reported by done.
type sectionReader struct {
	name   string
	values map[string]any
	logger *logging.Logger
	read   []string
	err    error
}

func (r *sectionReader) lookup(key string) (any, bool) {
	r.read = append(r.read, key)
	if r.err != nil {
		return nil, false
	}
	v, ok := r.values[key]
	if !ok {
		r.err = errors.NewConfigError("key is missing", errors.ErrMissingKey).
			WithSection(r.name).WithKey(key)
		return nil, false
	}
	return v, true
}

func (r *sectionReader) invalid(key string, value any, err error) {
	r.err = errors.NewConfigError(fmt.Sprintf("invalid value %v: %v", value, err), errors.ErrInvalidConfig).
		WithSection(r.name).WithKey(key)
}

func (r *sectionReader) readFloat(key string, dst *float64) {
	v, ok := r.lookup(key)
	if !ok {
		return
	}
	f, err := cast.ToFloat64E(v)
	if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
		err = fmt.Errorf("not a finite number")
	}
	if err != nil {
		r.invalid(key, v, err)
		return
	}
	*dst = f
}

func (r *sectionReader) readInt(key string, dst *int) {
	v, ok := r.lookup(key)
	if !ok {
		return
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || f != float64(int(f)) {
		if err == nil {
			err = fmt.Errorf("not a whole number")
		}
		r.invalid(key, v, err)
		return
	}
	*dst = int(f)
}

func (r *sectionReader) readString(key string, dst *string) {
	v, ok := r.lookup(key)
	if !ok {
		return
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		r.invalid(key, v, err)
		return
	}
	*dst = s
}

// done reports the first failure and warns about keys nobody read.
func (r *sectionReader) done() error {
	if r.err != nil {
		return r.err
	}
	for key := range r.values {
		if !slices.Contains(r.read, key) {
			r.logger.Warn("unknown key ignored", "section", r.name, "key", key)
		}
	}
	return nil
}
