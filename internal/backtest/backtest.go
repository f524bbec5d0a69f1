// Package backtest orchestrates one run: fetch, compute, figure, record.
package backtest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"BacktestLab/internal/chart"
	"BacktestLab/internal/collector"
	"BacktestLab/internal/recorder"
	"BacktestLab/internal/returns"
	"BacktestLab/internal/stats"
)

// MaxTickers caps how many symbols one run may compare.
const MaxTickers = 5

// MinInvestment is the smallest accepted initial investment.
const MinInvestment = 0.01

// Request describes one backtest run.
type Request struct {
	Start, End time.Time
	Tickers    []string
	Investment float64
	LogScale   bool
	Source     string // "web" or "watchlist"
}

// Result is everything a run produces for display.
type Result struct {
	Figure    *chart.Figure
	Summaries []stats.Summary
	Warnings  []string
}

// Runner executes backtest requests. Each run is synchronous: one fetch, three
// sequential strategy computations, one figure.
type Runner struct {
	Collector *collector.Collector
	Recorder  recorder.Recorder
}

// NewRunner creates a Runner.
func NewRunner(col *collector.Collector, rec recorder.Recorder) *Runner {
	return &Runner{Collector: col, Recorder: rec}
}

// NormalizeTickers trims, upper-cases, drops empties, and truncates the
// comma-separated list to MaxTickers.
func NormalizeTickers(s string) []string {
	var tickers []string
	for _, part := range strings.Split(s, ",") {
		t := strings.ToUpper(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		tickers = append(tickers, t)
		if len(tickers) == MaxTickers {
			break
		}
	}
	return tickers
}

// Validate checks the request before any network work.
func (req *Request) Validate() error {
	if len(req.Tickers) == 0 {
		return fmt.Errorf("enter at least one ticker symbol")
	}
	if req.Investment < MinInvestment {
		return fmt.Errorf("initial investment must be at least %v", MinInvestment)
	}
	if !req.End.After(req.Start) {
		return fmt.Errorf("end date must be after start date")
	}
	return nil
}

// Run executes the request. Fetch failures for individual tickers and missing
// fields become warnings in the result; an entirely empty fetch fails with
// collector.ErrEmptyResult.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	table, warnings, err := r.Collector.Collect(ctx, req.Tickers, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	results, calcWarns := returns.ComputeAll(table)
	for _, w := range calcWarns {
		log.Printf("[WARN] %v", w)
		warnings = append(warnings, w.Error())
	}

	res := &Result{
		Figure:    chart.Build(results, req.Investment, req.LogScale, req.Start, req.End),
		Summaries: stats.SummarizeAll(results, req.Investment),
		Warnings:  warnings,
	}

	r.record(req, res)
	return res, nil
}

// record persists the run summary. Recording never fails a run.
func (r *Runner) record(req Request, res *Result) {
	rec := &recorder.RunRecord{
		ID:                uuid.New().String(),
		StartedAt:         time.Now(),
		Source:            req.Source,
		Start:             req.Start,
		End:               req.End,
		Tickers:           req.Tickers,
		InitialInvestment: req.Investment,
		LogScale:          req.LogScale,
		Warnings:          len(res.Warnings),
	}
	for _, s := range res.Summaries {
		rec.Results = append(rec.Results, recorder.StrategyResult{
			Ticker:      s.Ticker,
			Strategy:    s.Strategy,
			FinalReturn: s.FinalReturn,
			Points:      s.Points,
		})
	}
	if err := r.Recorder.RecordRun(rec); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
