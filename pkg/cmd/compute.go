package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/c9s/mesa/pkg/datasource/csvsource"
	"github.com/c9s/mesa/pkg/indicator"
)

func init() {
	ComputeCmd.Flags().StringArray("input", nil, "bar CSV file (time,open,high,low,close[,volume]); repeatable")
	ComputeCmd.Flags().Int("tail", 10, "number of trailing bars to print")
	RootCmd.AddCommand(ComputeCmd)
}

var ComputeCmd = &cobra.Command{
	Use:          "compute --input bars.csv [--input more.csv] [--tail N]",
	Short:        "compute the cycle indicator family over bar files",
	SilenceUsage: true,
	RunE:         compute,
}

func pipelineFromFlags() *indicator.Pipeline {
	return &indicator.Pipeline{
		FastLimit:          viper.GetFloat64("fast-limit"),
		SlowLimit:          viper.GetFloat64("slow-limit"),
		MinPeriod:          viper.GetFloat64("min-period"),
		MaxPeriod:          viper.GetFloat64("max-period"),
		SARAcceleration:    viper.GetFloat64("sar-af"),
		SARMaxAcceleration: viper.GetFloat64("sar-af-max"),
	}
}

type seriesResult struct {
	input string
	bars  int
	price *indicator.Report
	bar   *indicator.BarReport
}

func compute(cmd *cobra.Command, args []string) error {
	inputs, err := cmd.Flags().GetStringArray("input")
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("--input is required")
	}

	tailSize, err := cmd.Flags().GetInt("tail")
	if err != nil {
		return err
	}

	pipeline := pipelineFromFlags()

	// Independent series share no state, so every input file gets its own
	// goroutine.
	results := make([]*seriesResult, len(inputs))
	var g errgroup.Group
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			r, err := computeOne(pipeline, input)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		renderResult(r, tailSize)
	}
	return nil
}

func computeOne(pipeline *indicator.Pipeline, input string) (*seriesResult, error) {
	bars, err := csvsource.ReadBarsFromCSV(input)
	if err != nil {
		return nil, err
	}

	log.Debugf("loaded %d bars from %s", len(bars), input)

	price, err := pipeline.Run(bars.Closes())
	if err != nil {
		return nil, err
	}

	bar, err := pipeline.RunBars(bars.Highs(), bars.Lows())
	if err != nil {
		return nil, err
	}

	return &seriesResult{
		input: input,
		bars:  len(bars),
		price: price,
		bar:   bar,
	}, nil
}

func renderResult(r *seriesResult, tailSize int) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("%s (%d bars)", r.input, r.bars)
	t.AppendHeader(table.Row{
		"#", "PERIOD", "PHASE", "SINE", "LEAD SINE", "MAMA", "FAMA", "TRENDLINE", "MODE", "SAR", "DIR",
	})

	start := r.bars - tailSize
	if start < 0 {
		start = 0
	}
	for i := start; i < r.bars; i++ {
		t.AppendRow(table.Row{
			i,
			cell(r.price.Period[i]),
			cell(r.price.Phase[i]),
			cell(r.price.Sine[i]),
			cell(r.price.LeadSine[i]),
			cell(r.price.MAMA[i]),
			cell(r.price.FAMA[i]),
			cell(r.price.Trendline[i]),
			modeCell(r.price.TrendMode[i]),
			cell(r.bar.SAR[i]),
			dirCell(r.bar.SARTrend[i]),
		})
	}
	t.Render()
}

func cell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

func modeCell(v float64) string {
	switch {
	case math.IsNaN(v):
		return "-"
	case v > 0:
		return "trend"
	default:
		return "cycle"
	}
}

func dirCell(v float64) string {
	switch {
	case math.IsNaN(v):
		return "-"
	case v > 0:
		return "long"
	case v < 0:
		return "short"
	default:
		return "flip"
	}
}
