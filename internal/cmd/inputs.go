package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lazygantt/internal/chart"
	"github.com/Iron-Ham/lazygantt/internal/config"
	"github.com/Iron-Ham/lazygantt/internal/gantt"
	"github.com/Iron-Ham/lazygantt/internal/logging"
)

// chartFlags are the flags shared by commands that build a chart.
type chartFlags struct {
	milestones []int
	style      string
	sep        string
	phaseEnd   string
}

func (f *chartFlags) register(c *cobra.Command) {
	c.Flags().IntSliceVarP(&f.milestones, "milestones", "m", nil, "milestone months, e.g. 5,8,14")
	c.Flags().StringVarP(&f.style, "style", "s", "", "chart configuration file (overrides output.chart_config)")
	c.Flags().StringVar(&f.sep, "sep", "", `field separator of the data file (overrides data.separator, "\t" for tab)`)
	c.Flags().StringVar(&f.phaseEnd, "phase-end", "", "phase end rule: next_start or next_first_end")
}

// apply copies the flags the user set over the loaded configuration.
func (f *chartFlags) apply(c *cobra.Command, cfg *config.Config) {
	if c.Flags().Changed("style") {
		cfg.Output.ChartConfig = f.style
	}
	if c.Flags().Changed("sep") {
		cfg.Data.Separator = f.sep
	}
	if c.Flags().Changed("phase-end") {
		cfg.Data.PhaseEnd = f.phaseEnd
	}
}

// chartInputs is everything a command needs to draw a chart.
type chartInputs struct {
	cfg    *config.Config
	logger *logging.Logger
	style  *chart.Style
	gantt  *gantt.Gantt
}

func (in *chartInputs) close() {
	_ = in.logger.Close()
}

// loadInputs resolves configuration, logger, chart style and data. Without
// a data file the demo chart is used.
func loadInputs(c *cobra.Command, args []string, flags *chartFlags, override func(*config.Config)) (*chartInputs, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags.apply(c, cfg)
	if override != nil {
		override(cfg)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, config.ValidationErrors(errs)
	}

	logger, err := newLogger(c, cfg)
	if err != nil {
		return nil, err
	}
	in := &chartInputs{cfg: cfg, logger: logger}

	in.style, err = chart.LoadStyle(appFs, cfg.Output.ChartConfig, logger)
	if err != nil {
		in.close()
		return nil, err
	}

	in.gantt, err = loadGantt(c, args, cfg, flags, logger)
	if err != nil {
		in.close()
		return nil, err
	}
	return in, nil
}

func loadGantt(c *cobra.Command, args []string, cfg *config.Config, flags *chartFlags, logger *logging.Logger) (*gantt.Gantt, error) {
	withMilestones := c.Flags().Changed("milestones")

	if len(args) == 0 {
		logger.Info("no data file given, using the demo chart")
		g := gantt.Default()
		if withMilestones {
			g = g.WithMilestones(flags.milestones, logger)
		}
		return g, nil
	}

	// Both were checked by cfg.Validate.
	sep, _ := cfg.Data.SeparatorRune()
	rule, _ := cfg.Data.PhaseEndRule()

	opts := gantt.LoadOptions{
		Columns:  cfg.Data.Columns,
		PhaseEnd: rule,
		Logger:   logger,
	}
	if withMilestones {
		opts.Milestones = flags.milestones
		if opts.Milestones == nil {
			opts.Milestones = []int{}
		}
	}

	g, err := gantt.Load(appFs, args[0], sep, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("data loaded",
		"file", args[0],
		"months", g.Months,
		"packages", len(g.Packages),
		"phases", len(g.Phases),
		"milestones", len(g.Milestones))
	return g, nil
}

// newLogger writes to logging.file when set, rotating it by size, otherwise
// to the command's error stream.
func newLogger(c *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	if cfg.Logging.File != "" {
		return logging.NewLogger(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Rotation())
	}
	return logging.New(c.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format), nil
}
