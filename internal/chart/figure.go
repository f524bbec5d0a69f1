// Package chart turns cumulative return series into a dollar-valued figure
// description and renders it as an HTML line chart.
package chart

import (
	"fmt"
	"math"
	"sort"
	"time"

	"BacktestLab/internal/model"
)

// Line is one plotted trajectory.
type Line struct {
	Name   string
	Points model.Series
	Dashed bool
}

// Figure is the full description of a rendered chart: every line plus the
// axis layout. Tests assert on this; Render only translates it to HTML.
type Figure struct {
	Title    string
	Lines    []Line
	LogScale bool

	// YMin/YMax are the linear axis bounds when LogScale is set; LogRange
	// holds the same bounds in log10 space.
	YMin, YMax float64
	LogRange   [2]float64
}

// Empty reports whether there is nothing to plot.
func (f *Figure) Empty() bool {
	return len(f.Lines) == 0
}

// Build maps per-strategy cumulative return collections into dollar-valued
// lines: value(t) = cumulative_return(t) × investment. A dashed reference
// line at the investment level spans the open-to-close date range. With
// logScale set, the y-axis bounds are derived from the drawn values.
func Build(results map[model.Strategy]map[string]model.Series, investment float64, logScale bool, start, end time.Time) *Figure {
	fig := &Figure{
		Title:    fmt.Sprintf("Investment value from %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
		LogScale: logScale,
	}

	for _, ticker := range tickerUniverse(results) {
		for _, strat := range model.Strategies {
			series, ok := results[strat][ticker]
			if !ok {
				continue
			}
			points := make(model.Series, len(series))
			for i, p := range series {
				points[i] = model.Point{Date: p.Date, Value: p.Value * investment}
			}
			fig.Lines = append(fig.Lines, Line{
				Name:   fmt.Sprintf("%s - %s", ticker, strat.Label()),
				Points: points,
			})
		}
	}

	if ref, ok := referenceLine(results[model.OpenToClose], investment); ok {
		fig.Lines = append(fig.Lines, ref)
	}

	if logScale {
		fig.YMin, fig.YMax = logBounds(fig.Lines, investment)
		fig.LogRange = [2]float64{math.Log10(fig.YMin), math.Log10(fig.YMax)}
	}
	return fig
}

func tickerUniverse(results map[model.Strategy]map[string]model.Series) []string {
	seen := make(map[string]bool)
	for _, res := range results {
		for ticker := range res {
			seen[ticker] = true
		}
	}
	tickers := make([]string, 0, len(seen))
	for t := range seen {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// referenceLine builds the flat initial-investment line spanning the full
// date range of the open-to-close series.
func referenceLine(openToClose map[string]model.Series, investment float64) (Line, bool) {
	var first, last time.Time
	for _, series := range openToClose {
		if len(series) == 0 {
			continue
		}
		if first.IsZero() || series[0].Date.Before(first) {
			first = series[0].Date
		}
		if series[len(series)-1].Date.After(last) {
			last = series[len(series)-1].Date
		}
	}
	if first.IsZero() {
		return Line{}, false
	}
	return Line{
		Name: "Initial investment",
		Points: model.Series{
			{Date: first, Value: investment},
			{Date: last, Value: investment},
		},
		Dashed: true,
	}, true
}

// logBounds computes the padded y-axis bounds for a log axis. The minimum is
// the smallest positive drawn value (0.1 when no positive value exists), the
// maximum the largest drawn value, each padded by 10% of the span. A lower
// bound that padding pushes to zero or below falls back to 0.1.
func logBounds(lines []Line, investment float64) (lo, hi float64) {
	minPos := math.Inf(1)
	maxVal := math.Inf(-1)
	consider := func(v float64) {
		if v > 0 && v < minPos {
			minPos = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	for _, l := range lines {
		for _, p := range l.Points {
			consider(p.Value)
		}
	}
	consider(investment)

	if math.IsInf(minPos, 1) {
		minPos = 0.1
	}
	if math.IsInf(maxVal, -1) {
		maxVal = minPos
	}

	padding := 0.1 * (maxVal - minPos)
	lo = minPos - padding
	if lo <= 0 {
		lo = 0.1
	}
	hi = maxVal + padding
	return lo, hi
}
