package gantt

import (
	"fmt"
	"strings"
)

// Interval is a half-open month range [Start, End).
type Interval struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of months covered by the interval.
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// Contains reports whether month m lies inside the interval.
func (iv Interval) Contains(m int) bool {
	return m >= iv.Start && m < iv.End
}

// String renders the interval as "[start, end)".
func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Start, iv.End)
}

// PhaseEndRule selects how the end of every phase except the last is
// derived from the first package of the following phase.
type PhaseEndRule string

const (
	// PhaseEndNextStart ends a phase where the next phase's first package starts.
	PhaseEndNextStart PhaseEndRule = "next_start"
	// PhaseEndNextFirstEnd ends a phase where the next phase's first package ends.
	PhaseEndNextFirstEnd PhaseEndRule = "next_first_end"
)

// ValidPhaseEndRules returns the accepted phase end rule names.
func ValidPhaseEndRules() []string {
	return []string{string(PhaseEndNextStart), string(PhaseEndNextFirstEnd)}
}

// ParsePhaseEndRule converts a configured rule name. An empty name selects
// PhaseEndNextStart.
func ParsePhaseEndRule(s string) (PhaseEndRule, error) {
	switch PhaseEndRule(strings.ToLower(strings.TrimSpace(s))) {
	case "", PhaseEndNextStart:
		return PhaseEndNextStart, nil
	case PhaseEndNextFirstEnd:
		return PhaseEndNextFirstEnd, nil
	default:
		return "", fmt.Errorf("unknown phase end rule %q (valid: %s)", s, strings.Join(ValidPhaseEndRules(), ", "))
	}
}

// PackageIntervals pairs starts and durations elementwise into
// [start, start+duration). Both slices must have the same length.
func PackageIntervals(starts, durations []int) []Interval {
	out := make([]Interval, len(starts))
	for i, s := range starts {
		out[i] = Interval{Start: s, End: s + durations[i]}
	}
	return out
}

// RunBoundaries returns the indices at which groupIDs changes value. Index 0
// is always a boundary of a non-empty sequence.
func RunBoundaries(groupIDs []int) []int {
	if len(groupIDs) == 0 {
		return nil
	}
	bounds := []int{0}
	for i := 1; i < len(groupIDs); i++ {
		if groupIDs[i] != groupIDs[i-1] {
			bounds = append(bounds, i)
		}
	}
	return bounds
}

// PhaseIntervals aggregates one interval per contiguous run of equal group
// ids. The input is not re-sorted: ids must already form contiguous runs in
// record order.
//
// A run starts at the start of its first record. Every run except the last
// ends according to rule, using the first record of the following run. The
// last run always ends at total, so phases reach the end of the project.
// The end of a run is not checked against the extents of its own packages;
// overlapping packages across a phase boundary can outlast their phase.
//
// With PhaseEndNextFirstEnd a phase ends at starts[j]+durations[j] of the
// next phase's first record j, which reproduces charts drawn by the Python
// lazygantt tool; adjacent phases then overlap by that record's duration.
// PhaseEndNextStart, the default, ends it at starts[j].
func PhaseIntervals(groupIDs, starts, durations []int, total int, rule PhaseEndRule) []Interval {
	bounds := RunBoundaries(groupIDs)
	if len(bounds) == 0 {
		return nil
	}

	phases := make([]Interval, len(bounds))
	for k, i := range bounds {
		phases[k].Start = starts[i]
		if k == len(bounds)-1 {
			phases[k].End = total
			continue
		}
		j := bounds[k+1]
		switch rule {
		case PhaseEndNextFirstEnd:
			phases[k].End = starts[j] + durations[j]
		default:
			phases[k].End = starts[j]
		}
	}
	return phases
}

// ProjectDuration returns the end of the record with the greatest start.
// On ties the first such record wins. A longer record starting earlier can
// outlast it; that record is then clipped by the chart.
func ProjectDuration(starts, durations []int) int {
	if len(starts) == 0 {
		return 0
	}
	last := 0
	for i, s := range starts {
		if s > starts[last] {
			last = i
		}
	}
	return starts[last] + durations[last]
}

// DistinctCount returns the number of distinct values in ids.
func DistinctCount(ids []int) int {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
