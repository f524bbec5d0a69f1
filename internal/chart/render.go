package chart

import (
	"io"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Render translates the figure into a go-echarts line chart and writes the
// resulting HTML document to w. Lines are aligned on the union of their
// dates; a date a line has no value for becomes a gap.
func Render(fig *Figure, w io.Writer) error {
	line := charts.NewLine()

	globals := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fig.Title,
			Width:     "1100px",
			Height:    "560px",
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
	}
	if fig.LogScale {
		globals = append(globals, charts.WithYAxisOpts(opts.YAxis{
			Name: "Investment value ($)",
			Type: "log",
			Min:  fig.YMin,
			Max:  fig.YMax,
		}))
	} else {
		globals = append(globals, charts.WithYAxisOpts(opts.YAxis{Name: "Investment value ($)"}))
	}
	line.SetGlobalOptions(globals...)

	axis := dateAxis(fig.Lines)
	index := make(map[time.Time]int, len(axis))
	labels := make([]string, len(axis))
	for i, d := range axis {
		index[d] = i
		labels[i] = d.Format("2006-01-02")
	}
	line.SetXAxis(labels)

	for _, l := range fig.Lines {
		data := make([]opts.LineData, len(axis))
		for i := range data {
			data[i] = opts.LineData{Value: "-"}
		}
		for _, p := range l.Points {
			data[index[p.Date]] = opts.LineData{Value: p.Value}
		}
		var seriesOpts []charts.SeriesOpts
		if l.Dashed {
			seriesOpts = append(seriesOpts, charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Color: "black"}))
		}
		line.AddSeries(l.Name, data, seriesOpts...)
	}

	return line.Render(w)
}

func dateAxis(lines []Line) []time.Time {
	seen := make(map[time.Time]bool)
	for _, l := range lines {
		for _, p := range l.Points {
			seen[p.Date] = true
		}
	}
	axis := make([]time.Time, 0, len(seen))
	for d := range seen {
		axis = append(axis, d)
	}
	sort.Slice(axis, func(i, j int) bool { return axis[i].Before(axis[j]) })
	return axis
}
