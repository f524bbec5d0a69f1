// Package returns computes cumulative return series for the three strategies
// under comparison from a multi-ticker price table.
package returns

import (
	"fmt"

	"BacktestLab/internal/model"
)

// MissingFieldError reports that a ticker could not be evaluated for a
// strategy because a required price field is absent (or holds too few dates
// to produce even a one-point series).
type MissingFieldError struct {
	Ticker   string
	Field    model.Field
	Strategy model.Strategy
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: ticker %s is missing required %s data, skipped", e.Strategy, e.Ticker, e.Field)
}

// Compute produces one cumulative return series per ticker for the given
// strategy. Tickers that lack a required field are skipped and reported as
// MissingFieldError warnings; the remaining tickers are still computed.
// Strategies fail independently per ticker: a ticker absent here may well be
// present in another strategy's result.
func Compute(table *model.PriceTable, strat model.Strategy) (map[string]model.Series, []error) {
	result := make(map[string]model.Series)
	var warnings []error

	for _, ticker := range table.Tickers() {
		series, err := computeTicker(table, strat, ticker)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		result[ticker] = series
	}
	return result, warnings
}

func computeTicker(table *model.PriceTable, strat model.Strategy, ticker string) (model.Series, error) {
	for _, f := range strat.Fields() {
		if !table.Has(f, ticker) {
			return nil, &MissingFieldError{Ticker: ticker, Field: f, Strategy: strat}
		}
	}

	// Dates with a gap in any required field are dropped up front, so every
	// ratio below divides two prices from the same joined date index.
	dates := table.Dates(ticker, strat.Fields()...)

	var daily model.Series
	switch strat {
	case model.OpenToClose:
		for _, d := range dates {
			open, _ := table.Lookup(model.FieldOpen, ticker, d)
			cls, _ := table.Lookup(model.FieldClose, ticker, d)
			daily = append(daily, model.Point{Date: d, Value: cls/open - 1})
		}
	case model.CloseToOpen:
		// Buy at close of d, sell at open of the next usable day. The return
		// is indexed at the buy date; the tail date has no next open.
		for i := 0; i+1 < len(dates); i++ {
			cls, _ := table.Lookup(model.FieldClose, ticker, dates[i])
			nextOpen, _ := table.Lookup(model.FieldOpen, ticker, dates[i+1])
			daily = append(daily, model.Point{Date: dates[i], Value: nextOpen/cls - 1})
		}
	case model.BuyAndHold:
		for i := 1; i < len(dates); i++ {
			prev, _ := table.Lookup(model.FieldAdjClose, ticker, dates[i-1])
			cur, _ := table.Lookup(model.FieldAdjClose, ticker, dates[i])
			daily = append(daily, model.Point{Date: dates[i], Value: cur/prev - 1})
		}
	default:
		panic(fmt.Sprintf("unknown strategy %d", int(strat)))
	}

	// A series that degenerates to zero points (single usable date for the
	// shifted strategies) counts as missing.
	if len(daily) == 0 {
		return nil, &MissingFieldError{Ticker: ticker, Field: strat.Fields()[0], Strategy: strat}
	}

	// Cumulative return: running product of (1 + daily return), seeded at 1.
	cumulative := make(model.Series, len(daily))
	acc := 1.0
	for i, p := range daily {
		acc *= 1 + p.Value
		cumulative[i] = model.Point{Date: p.Date, Value: acc}
	}
	return cumulative, nil
}

// ComputeAll runs Compute for every strategy and aggregates the warnings.
func ComputeAll(table *model.PriceTable) (map[model.Strategy]map[string]model.Series, []error) {
	results := make(map[model.Strategy]map[string]model.Series, len(model.Strategies))
	var warnings []error
	for _, strat := range model.Strategies {
		res, warns := Compute(table, strat)
		results[strat] = res
		warnings = append(warnings, warns...)
	}
	return results, warnings
}
