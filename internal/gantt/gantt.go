package gantt

import (
	"fmt"
	"slices"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/lazygantt/internal/errors"
	"github.com/Iron-Ham/lazygantt/internal/logging"
	"github.com/Iron-Ham/lazygantt/internal/table"
)

// MaxMonths bounds the last month of any work package. Grids are allocated
// Months columns wide, so the data must not be able to ask for more.
const MaxMonths = 1200

// Gantt is the data of one chart. Phases is nil when the data has no usable
// phase column; the phase row is then omitted.
type Gantt struct {
	Months     int
	Packages   []Interval
	Phases     []Interval
	Milestones []int
}

// Default returns the demonstration chart used when no data file is given.
func Default() *Gantt {
	return &Gantt{
		Months: 24,
		Packages: []Interval{
			{0, 3},
			{3, 7},
			{5, 12},
			{12, 18},
			{17, 24},
			{19, 24},
		},
		Phases: []Interval{
			{0, 6},
			{6, 16},
			{16, 24},
		},
		Milestones: []int{5, 8, 14, 19, 22},
	}
}

// WithMilestones returns a copy of g whose milestones are replaced by the
// given ones, filtered against g.Months.
func (g *Gantt) WithMilestones(milestones []int, logger *logging.Logger) *Gantt {
	out := *g
	out.Packages = slices.Clone(g.Packages)
	out.Phases = slices.Clone(g.Phases)
	out.Milestones = FilterMilestones(milestones, g.Months, logger)
	return &out
}

// HasPhases reports whether the chart carries phase data.
func (g *Gantt) HasPhases() bool {
	return g.Phases != nil
}

// PackageGrid returns the package occupancy grid, Months columns wide.
func (g *Gantt) PackageGrid() OccupancyGrid {
	return ToOccupancyGrid(g.Packages, g.Months)
}

// PhaseGrid returns the phase occupancy grid, or nil without phase data.
func (g *Gantt) PhaseGrid() OccupancyGrid {
	if !g.HasPhases() {
		return nil
	}
	return ToOccupancyGrid(g.Phases, g.Months)
}

// LoadOptions controls how a table becomes a Gantt.
type LoadOptions struct {
	// Columns maps roles to column names. Zero value uses DefaultColumnNames.
	Columns ColumnNames
	// Milestones are filtered against the project duration. Nil means none.
	Milestones []int
	// PhaseEnd selects how phase ends are derived. Empty means PhaseEndNextStart.
	PhaseEnd PhaseEndRule
	// Logger receives recoverable diagnostics. Nil discards them.
	Logger *logging.Logger
}

func (o LoadOptions) columns() ColumnNames {
	if o.Columns == (ColumnNames{}) {
		return DefaultColumnNames()
	}
	return o.Columns
}

// Load reads the delimited file at path and builds a Gantt from it.
func Load(fs afero.Fs, path string, sep rune, opts LoadOptions) (*Gantt, error) {
	t, err := table.ReadFile(fs, path, sep)
	if err != nil {
		return nil, err
	}

	opts.Logger = logging.OrNop(opts.Logger).WithFile(path)
	g, err := FromTable(t, opts)
	if err != nil {
		var dataErr *errors.DataError
		if errors.As(err, &dataErr) && dataErr.File == "" {
			dataErr.WithFile(path)
		}
		return nil, err
	}
	return g, nil
}

// FromTable validates the columns of t and derives packages, phases and
// milestones. It returns either a complete Gantt or an error, never both.
func FromTable(t *table.Table, opts LoadOptions) (*Gantt, error) {
	logger := logging.OrNop(opts.Logger)
	names := opts.columns()
	if err := names.Validate(); err != nil {
		return nil, errors.Wrap(err, "column names")
	}

	valid, err := ValidateColumns(t, names.Recognized(), names.Mandatory(), logger)
	if err != nil {
		return nil, err
	}
	desc := NewDescriptor(names, valid)

	startCol, _ := desc.Column(RoleStart)
	durationCol, _ := desc.Column(RoleDuration)

	before := t.Len()
	t = t.DropNull(startCol)
	if dropped := before - t.Len(); dropped > 0 {
		logger.Info("rows without start dropped", "rows", dropped)
	}
	if t.Len() == 0 {
		return nil, errors.NewDataError("no records with a start value", errors.ErrNoRecords)
	}

	starts, err := t.Ints(startCol)
	if err != nil {
		return nil, err
	}
	durations, err := t.Ints(durationCol)
	if err != nil {
		return nil, err
	}
	if err := checkRange(t, startCol, starts, 0, "start must not be negative"); err != nil {
		return nil, err
	}
	if err := checkRange(t, durationCol, durations, 1, "duration must be positive"); err != nil {
		return nil, err
	}
	if err := checkEnds(t, startCol, durationCol, starts, durations); err != nil {
		return nil, err
	}

	g := &Gantt{
		Months:     ProjectDuration(starts, durations),
		Packages:   PackageIntervals(starts, durations),
		Milestones: []int{},
	}

	if groupCol, ok := desc.Column(RoleGroupID); ok {
		groups, err := t.Ints(groupCol)
		if err != nil {
			return nil, err
		}
		if err := checkRange(t, groupCol, groups, 1, "phase number must be at least 1"); err != nil {
			return nil, err
		}
		if DistinctCount(groups) > 1 {
			g.Phases = PhaseIntervals(groups, starts, durations, g.Months, opts.PhaseEnd)
		} else {
			logger.Info("single phase in data, phase row omitted", "column", groupCol)
		}
	}

	if opts.Milestones != nil {
		g.Milestones = FilterMilestones(opts.Milestones, g.Months, logger)
	}

	logger.Debug("chart data loaded",
		"months", g.Months,
		"packages", len(g.Packages),
		"phases", len(g.Phases),
		"milestones", len(g.Milestones))
	return g, nil
}

func checkRange(t *table.Table, column string, values []int, lowest int, message string) error {
	for i, v := range values {
		if v < lowest {
			return errors.NewDataError(fmt.Sprintf("%s, got %d", message, v), errors.ErrInvalidValue).
				WithRow(t.RowNumber(i)).
				WithColumn(column)
		}
	}
	return nil
}

// checkEnds rejects packages ending after MaxMonths. The start column is
// blamed when the start alone is out of range.
func checkEnds(t *table.Table, startCol, durationCol string, starts, durations []int) error {
	for i := range starts {
		if int64(starts[i])+int64(durations[i]) <= MaxMonths {
			continue
		}
		column := durationCol
		if starts[i] >= MaxMonths {
			column = startCol
		}
		return errors.NewDataError(
			fmt.Sprintf("work package ends after month %d (start %d, duration %d)", MaxMonths, starts[i], durations[i]),
			errors.ErrInvalidValue).
			WithRow(t.RowNumber(i)).
			WithColumn(column)
	}
	return nil
}
