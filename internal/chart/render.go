package chart

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Iron-Ham/lazygantt/internal/gantt"
)

// panelGapInches separates the phase panel from the package panel.
const panelGapInches = 0.1

// layout positions the panels of one chart in pixels.
type layout struct {
	phases   Rect
	packages Rect
	cellW    float64
	cellH    float64
	pad      float64
}

func computeLayout(c Canvas, g *gantt.Gantt, s *Style) layout {
	width, height := s.PixelSize()
	ascent, descent := c.FontMetrics()
	lineH := ascent + descent
	pad := s.Points(s.Font.Size) / 2

	yLabelW := c.MeasureText(s.Labels.PackageYLabel)
	if g.HasPhases() {
		yLabelW = max(yLabelW, c.MeasureText(s.Labels.PhaseYLabel))
	}

	left := yLabelW + 2*pad
	right := 2 * pad
	top := lineH + 2*s.Points(milestoneBoxPad) + pad
	bottom := 2*lineH + 3*pad

	availW := max(float64(width)-left-right, 0)
	availH := max(float64(height)-top-bottom, 0)

	rows := len(g.Packages) + len(g.Phases)
	gap := 0.0
	if g.HasPhases() {
		gap = panelGapInches * float64(s.Image.DPI)
	}

	l := layout{pad: pad}
	if g.Months <= 0 || rows == 0 {
		return l
	}

	l.cellW = availW / float64(g.Months)
	l.cellH = l.cellW * s.Image.Aspect
	if float64(rows)*l.cellH+gap > availH {
		l.cellH = max(availH-gap, 0) / float64(rows)
		l.cellW = l.cellH / s.Image.Aspect
	}

	gridW := float64(g.Months) * l.cellW
	gridH := float64(rows)*l.cellH + gap
	x0 := left + (availW-gridW)/2
	y0 := top + (availH-gridH)/2

	phasesH := float64(len(g.Phases)) * l.cellH
	if g.HasPhases() {
		l.phases = Rect{X: x0, Y: y0, W: gridW, H: phasesH}
	}
	l.packages = Rect{
		X: x0,
		Y: y0 + phasesH + gap,
		W: gridW,
		H: float64(len(g.Packages)) * l.cellH,
	}
	return l
}

// Draw renders g onto c, which must be s.PixelSize() pixels large.
func Draw(c Canvas, g *gantt.Gantt, s *Style) {
	width, height := s.PixelSize()
	colors := s.palette()
	c.FillRect(Rect{W: float64(width), H: float64(height)}, colors.background)

	l := computeLayout(c, g, s)
	if l.cellW <= 0 || l.cellH <= 0 {
		return
	}

	if g.HasPhases() {
		drawPanel(c, s, l, panel{
			grid:   g.PhaseGrid(),
			area:   l.phases,
			fill:   colors.secondary,
			abbr:   s.Labels.PhaseAbbr,
			ylabel: s.Labels.PhaseYLabel,
		})
	}
	drawPanel(c, s, l, panel{
		grid:   g.PackageGrid(),
		area:   l.packages,
		fill:   colors.primary,
		abbr:   s.Labels.PackageAbbr,
		ylabel: s.Labels.PackageYLabel,
	})
	drawMonthAxis(c, s, l, g.Months)
	drawMilestones(c, s, l, g.Milestones, colors.contrast)
}

// panel is one occupancy grid and its captions.
type panel struct {
	grid   gantt.OccupancyGrid
	area   Rect
	fill   colorful.Color
	abbr   string
	ylabel string
}

func drawPanel(c Canvas, s *Style, l layout, p panel) {
	ascent, descent := c.FontMetrics()
	width := p.grid.Width()

	for r, row := range p.grid {
		y := p.area.Y + float64(r)*l.cellH
		for m, on := range row {
			cell := white
			if on {
				cell = p.fill
			}
			c.FillRect(Rect{X: p.area.X + float64(m)*l.cellW, Y: y, W: l.cellW, H: l.cellH}, cell)
		}
	}

	line := s.Points(1)
	for m := 0; m <= width; m++ {
		col := color.Color(gridGray)
		if m == 0 || m == width {
			col = black
		}
		x := p.area.X + float64(m)*l.cellW
		c.FillRect(Rect{X: x - line/2, Y: p.area.Y, W: line, H: p.area.H}, col)
	}
	for r := 0; r <= p.grid.Rows(); r++ {
		col := color.Color(gridGray)
		if r == 0 || r == p.grid.Rows() {
			col = black
		}
		y := p.area.Y + float64(r)*l.cellH
		c.FillRect(Rect{X: p.area.X - line/2, Y: y - line/2, W: p.area.W + line, H: line}, col)
	}

	for r, row := range p.grid {
		m := p.grid.FirstActive(r)
		bg := white
		if m < len(row) && row[m] {
			bg = p.fill
		}
		x := p.area.X + (float64(m)+0.1)*l.cellW
		baseline := p.area.Y + (float64(r)+0.5)*l.cellH + (ascent-descent)/2
		c.DrawText(p.abbr+strconv.Itoa(r+1), x, baseline, ContrastText(bg))
	}

	if p.ylabel != "" {
		w := c.MeasureText(p.ylabel)
		baseline := p.area.Y + p.area.H/2 + (ascent-descent)/2
		c.DrawText(p.ylabel, p.area.X-l.pad-w, baseline, black)
	}
}

// drawMonthAxis labels the months under the package panel.
func drawMonthAxis(c Canvas, s *Style, l layout, months int) {
	ascent, descent := c.FontMetrics()
	area := l.packages
	baseline := area.Bottom() + l.pad + ascent

	for i := 0; i < months; i++ {
		if TickHidden(i, s.Labels.XTicksSteps) {
			continue
		}
		label := strconv.Itoa(i + 1)
		x := area.X + (float64(i)+0.5)*l.cellW - c.MeasureText(label)/2
		c.DrawText(label, x, baseline, black)
	}

	if s.Labels.XLabel != "" {
		w := c.MeasureText(s.Labels.XLabel)
		c.DrawText(s.Labels.XLabel, area.X+area.W/2-w/2, baseline+descent+l.pad+ascent, black)
	}
}

// TickHidden reports whether the label of month index i is hidden. With
// steps greater than 1, every steps-th label starting at the first is hidden.
func TickHidden(i, steps int) bool {
	return steps > 1 && i%steps == 0
}

// milestoneBoxPad is the padding of milestone labels in points.
const milestoneBoxPad = 2

// drawMilestones draws a vertical line at the left edge of each milestone
// month with a numbered label on top of the package panel.
func drawMilestones(c Canvas, s *Style, l layout, milestones []int, contrast colorful.Color) {
	ascent, descent := c.FontMetrics()
	area := l.packages
	lw := s.Points(s.Milestones.LineWidth)
	boxPad := s.Points(milestoneBoxPad)
	border := s.Points(0.5)

	for k, m := range milestones {
		x := area.X + float64(m)*l.cellW
		c.FillRect(Rect{X: x - lw/2, Y: area.Y, W: lw, H: area.H}, contrast)

		label := fmt.Sprintf("%s %d", s.Labels.MilestonesAbbr, k+1)
		box := Rect{
			X: x,
			W: c.MeasureText(label) + 2*boxPad,
			H: ascent + descent + 2*boxPad,
		}
		box.Y = area.Y - box.H
		c.FillRect(box, black)
		c.FillRect(Rect{X: box.X + border, Y: box.Y + border, W: box.W - 2*border, H: box.H - 2*border}, white)
		c.DrawText(label, box.X+boxPad, box.Y+boxPad+ascent, contrast)
	}
}
