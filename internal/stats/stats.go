// Package stats derives per-series summary statistics shown under the chart.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"BacktestLab/internal/model"
)

// tradingDaysPerYear is the conventional annualization factor for daily data.
const tradingDaysPerYear = 252

// Summary describes one (ticker, strategy) trajectory.
type Summary struct {
	Ticker         string
	Strategy       model.Strategy
	Points         int
	FinalReturn    float64 // final cumulative return multiplier
	FinalValue     float64 // FinalReturn × initial investment
	TotalReturnPct float64
	AnnualMean     float64 // annualized mean of daily returns
	AnnualStdDev   float64 // annualized standard deviation of daily returns
	MaxDrawdown    float64 // worst peak-to-trough decline, as a fraction
}

// Summarize computes the summary for one cumulative return series. The series
// is assumed non-empty and seeded at 1.0, so the first daily return is the
// first cumulative value minus one.
func Summarize(ticker string, strategy model.Strategy, series model.Series, investment float64) Summary {
	daily := dailyReturns(series)
	final := series[len(series)-1].Value

	mean := stat.Mean(daily, nil)
	sd := 0.0
	if len(daily) > 1 {
		sd = stat.StdDev(daily, nil)
	}

	return Summary{
		Ticker:         ticker,
		Strategy:       strategy,
		Points:         len(series),
		FinalReturn:    final,
		FinalValue:     final * investment,
		TotalReturnPct: (final - 1) * 100,
		AnnualMean:     mean * tradingDaysPerYear,
		AnnualStdDev:   sd * math.Sqrt(tradingDaysPerYear),
		MaxDrawdown:    maxDrawdown(series),
	}
}

// SummarizeAll flattens per-strategy results into a summary per line, ordered
// like the chart legend.
func SummarizeAll(results map[model.Strategy]map[string]model.Series, investment float64) []Summary {
	var out []Summary
	for _, strat := range model.Strategies {
		res := results[strat]
		for _, ticker := range sortedTickers(res) {
			out = append(out, Summarize(ticker, strat, res[ticker], investment))
		}
	}
	return out
}

func dailyReturns(series model.Series) []float64 {
	daily := make([]float64, len(series))
	prev := 1.0
	for i, p := range series {
		daily[i] = p.Value/prev - 1
		prev = p.Value
	}
	return daily
}

func maxDrawdown(series model.Series) float64 {
	peak := 1.0
	worst := 0.0
	for _, p := range series {
		if p.Value > peak {
			peak = p.Value
		}
		if dd := 1 - p.Value/peak; dd > worst {
			worst = dd
		}
	}
	return worst
}

func sortedTickers(res map[string]model.Series) []string {
	tickers := make([]string, 0, len(res))
	for t := range res {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
