// Package gantt turns tabular package data into the intervals drawn on a
// Gantt chart.
//
// The pipeline is:
//
//  1. [ValidateColumns] keeps the recognized columns that exist, are
//     non-empty and numeric. Optional columns that fail are dropped with a
//     warning; a failing mandatory column fails the load.
//  2. A [Descriptor] maps roles (start, duration, group_id) to the surviving
//     column names.
//  3. Rows without a start are dropped; the remaining columns are converted
//     to integers.
//  4. [PackageIntervals] and, when more than one phase is present,
//     [PhaseIntervals] derive the intervals; [ProjectDuration] gives the
//     number of months.
//  5. [FilterMilestones] removes milestones outside the project.
//
// [ToOccupancyGrid] converts intervals into the boolean matrices consumed by
// the chart renderer and the terminal preview.
package gantt
