package recorder

import (
	"time"

	"BacktestLab/internal/model"
)

// StrategyResult is one (ticker, strategy) outcome of a run.
type StrategyResult struct {
	Ticker      string
	Strategy    model.Strategy
	FinalReturn float64
	Points      int
}

// RunRecord captures the summary of one backtest run. The price and return
// series themselves are never persisted.
type RunRecord struct {
	ID                string
	StartedAt         time.Time
	Source            string // "web" or "watchlist"
	Start, End        time.Time
	Tickers           []string
	InitialInvestment float64
	LogScale          bool
	Warnings          int
	Results           []StrategyResult
}

// Recorder persists run summaries for later inspection.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
