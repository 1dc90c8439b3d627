// Package preview renders a Gantt chart as colored text for the terminal.
package preview

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Iron-Ham/lazygantt/internal/chart"
	"github.com/Iron-Ham/lazygantt/internal/gantt"
	"github.com/Iron-Ham/lazygantt/internal/util"
)

const (
	// DefaultWidth is used when the terminal width cannot be determined.
	DefaultWidth = 120

	// cellWidth is the number of columns per month.
	cellWidth = 3

	fullCell      = "███"
	emptyCell     = " · "
	milestoneCell = " │ "
	markerCell    = " ▼ "
)

// TerminalWidth returns the width of stdout, or DefaultWidth when stdout is
// not a terminal.
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return DefaultWidth
}

// styles holds the lipgloss styles derived from a chart style.
type styles struct {
	primary   lipgloss.Style
	secondary lipgloss.Style
	contrast  lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
}

func newStyles(s *chart.Style) styles {
	fg := func(value string) lipgloss.Style {
		st := lipgloss.NewStyle()
		if c, err := chart.ParseColor(value); err == nil {
			st = st.Foreground(lipgloss.Color(c.Hex()))
		}
		return st
	}
	return styles{
		primary:   fg(s.Colors.Primary),
		secondary: fg(s.Colors.Secondary),
		contrast:  fg(s.Colors.Contrast).Bold(true),
		heading:   lipgloss.NewStyle().Bold(true),
		muted:     lipgloss.NewStyle().Faint(true),
	}
}

// Render draws g in at most width columns. Months that do not fit are cut
// off and marked with an ellipsis.
func Render(g *gantt.Gantt, s *chart.Style, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	st := newStyles(s)

	gutter := labelWidth(g, s) + 1
	months := g.Months
	truncated := false
	if avail := (width - gutter - lipgloss.Width(util.Ellipsis)) / cellWidth; months > avail {
		months = max(avail, 0)
		truncated = true
	}

	milestoneAt := make(map[int]bool, len(g.Milestones))
	for _, m := range g.Milestones {
		milestoneAt[m] = true
	}

	var b strings.Builder
	if len(g.Milestones) > 0 {
		b.WriteString(util.Truncate(markerRow(g.Milestones, s.Labels.MilestonesAbbr, gutter, months, st), width))
		b.WriteByte('\n')
	}
	if g.HasPhases() {
		b.WriteString(st.heading.Render(util.Truncate(s.Labels.PhaseYLabel, width)))
		b.WriteByte('\n')
		writeRows(&b, g.PhaseGrid(), s.Labels.PhaseAbbr, gutter, months, truncated, nil, st.secondary, st)
	}
	b.WriteString(st.heading.Render(util.Truncate(s.Labels.PackageYLabel, width)))
	b.WriteByte('\n')
	writeRows(&b, g.PackageGrid(), s.Labels.PackageAbbr, gutter, months, truncated, milestoneAt, st.primary, st)

	b.WriteString(axisRow(gutter, months, s.Labels.XTicksSteps))
	if s.Labels.XLabel != "" {
		pad := gutter + max(months*cellWidth-lipgloss.Width(s.Labels.XLabel), 0)/2
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(st.muted.Render(util.Truncate(s.Labels.XLabel, max(width-pad, 0))))
		b.WriteByte('\n')
	}
	return b.String()
}

// labelWidth is the widest row label of the chart.
func labelWidth(g *gantt.Gantt, s *chart.Style) int {
	w := lipgloss.Width(s.Labels.PackageAbbr + strconv.Itoa(len(g.Packages)))
	if g.HasPhases() {
		w = max(w, lipgloss.Width(s.Labels.PhaseAbbr+strconv.Itoa(len(g.Phases))))
	}
	return max(w, lipgloss.Width(s.Labels.MilestonesAbbr))
}

func writeRows(b *strings.Builder, grid gantt.OccupancyGrid, abbr string, gutter, months int,
	truncated bool, milestoneAt map[int]bool, fill lipgloss.Style, st styles) {
	for r, row := range grid {
		b.WriteString(util.PadRight(abbr+strconv.Itoa(r+1), gutter))
		for m := 0; m < months && m < len(row); m++ {
			switch {
			case row[m]:
				b.WriteString(fill.Render(fullCell))
			case milestoneAt[m]:
				b.WriteString(st.contrast.Render(milestoneCell))
			default:
				b.WriteString(st.muted.Render(emptyCell))
			}
		}
		if truncated {
			b.WriteString(util.Ellipsis)
		}
		b.WriteByte('\n')
	}
}

// markerRow places a marker above the left edge of every visible milestone
// month.
func markerRow(milestones []int, abbr string, gutter, months int, st styles) string {
	cells := make([]string, months+1)
	for i := range cells {
		cells[i] = strings.Repeat(" ", cellWidth)
	}
	for _, m := range milestones {
		if m >= 0 && m <= months {
			cells[m] = st.contrast.Render(markerCell)
		}
	}
	return util.PadRight(abbr, gutter) + strings.TrimRight(strings.Join(cells, ""), " ")
}

// axisRow numbers the months, hiding labels the way the chart does.
func axisRow(gutter, months, steps int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutter))
	for i := 0; i < months; i++ {
		label := ""
		if !chart.TickHidden(i, steps) {
			label = strconv.Itoa(i + 1)
		}
		b.WriteString(util.PadLeft(label, cellWidth-1))
		b.WriteByte(' ')
	}
	return strings.TrimRight(b.String(), " ") + "\n"
}
