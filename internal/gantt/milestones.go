package gantt

import "github.com/Iron-Ham/lazygantt/internal/logging"

// FilterMilestones drops milestones before month 0 or after total, keeping
// the order of the rest. Each offending condition is reported once with all
// of its dropped values. Filtering its own output returns it unchanged.
func FilterMilestones(milestones []int, total int, logger *logging.Logger) []int {
	logger = logging.OrNop(logger).WithComponent("milestones")

	kept := make([]int, 0, len(milestones))
	var negative, beyond []int
	for _, m := range milestones {
		switch {
		case m < 0:
			negative = append(negative, m)
		case m > total:
			beyond = append(beyond, m)
		default:
			kept = append(kept, m)
		}
	}

	if len(negative) > 0 {
		logger.Warn("milestones are negative and are filtered", "values", negative)
	}
	if len(beyond) > 0 {
		logger.Warn("milestones exceed the total length of the project and are filtered",
			"max", total, "values", beyond)
	}
	return kept
}
