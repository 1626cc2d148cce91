package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spf13/cobra"

	"github.com/c9s/mesa/pkg/datasource/csvsource"
	"github.com/c9s/mesa/pkg/datatype/floats"
)

func init() {
	PlotCmd.Flags().String("input", "", "bar CSV file (time,open,high,low,close[,volume])")
	PlotCmd.Flags().String("output", "mesa.png", "output PNG file")
	RootCmd.AddCommand(PlotCmd)
}

var PlotCmd = &cobra.Command{
	Use:          "plot --input bars.csv [--output chart.png]",
	Short:        "render price with MAMA/FAMA and the SAR stops to a PNG",
	SilenceUsage: true,
	RunE:         plot,
}

func plot(cmd *cobra.Command, args []string) error {
	input, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	if input == "" {
		return fmt.Errorf("--input is required")
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	r, err := computeOne(pipelineFromFlags(), input)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	xs := make([]float64, r.bars)
	for i := range xs {
		xs[i] = float64(i)
	}

	bars, err := csvsource.ReadBarsFromCSV(input)
	if err != nil {
		return err
	}

	graph := chart.Chart{
		Title:  input,
		Width:  1280,
		Height: 720,
		Series: []chart.Series{
			lineSeries("close", xs, bars.Closes(), drawing.ColorBlue),
			lineSeries("mama", xs, r.price.MAMA, drawing.ColorRed),
			lineSeries("fama", xs, r.price.FAMA, drawing.ColorFromHex("9b59b6")),
			lineSeries("trendline", xs, r.price.Trendline, drawing.ColorFromHex("7f8c8d")),
			dotSeries("sar", xs, r.bar.SAR, drawing.ColorGreen),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	return graph.Render(chart.PNG, f)
}

// lineSeries drops the NaN warm-up prefix so go-chart sees finite values
// only.
func lineSeries(name string, xs []float64, ys floats.Slice, color drawing.Color) chart.Series {
	vx, vy := validPoints(xs, ys)
	return chart.ContinuousSeries{
		Name:    name,
		XValues: vx,
		YValues: vy,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 1.5,
		},
	}
}

func dotSeries(name string, xs []float64, ys floats.Slice, color drawing.Color) chart.Series {
	vx, vy := validPoints(xs, ys)
	return chart.ContinuousSeries{
		Name:    name,
		XValues: vx,
		YValues: vy,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    color,
			DotWidth:    2,
		},
	}
}

func validPoints(xs []float64, ys []float64) (vx, vy []float64) {
	for i := range ys {
		if math.IsNaN(ys[i]) {
			continue
		}
		vx = append(vx, xs[i])
		vy = append(vy, ys[i])
	}
	return vx, vy
}
