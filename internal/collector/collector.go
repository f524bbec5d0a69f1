package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"BacktestLab/internal/model"
)

// Collector assembles a multi-ticker PriceTable from per-ticker fetches.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches daily bars for every ticker sequentially and builds the
// price table. A ticker whose fetch fails is reported as a warning and left
// out; the run continues with the remaining tickers. When nothing at all came
// back the collect fails with ErrEmptyResult.
func (c *Collector) Collect(ctx context.Context, tickers []string, start, end time.Time) (*model.PriceTable, []string, error) {
	table := model.NewPriceTable()
	var warnings []string

	for _, ticker := range tickers {
		bars, err := c.Fetcher.FetchDailyBars(ctx, ticker, start, end)
		if err != nil {
			log.Printf("[WARN] fetch %s: %v", ticker, err)
			warnings = append(warnings, fmt.Sprintf("ticker %s: fetch failed: %v", ticker, err))
			continue
		}
		for _, b := range bars {
			table.AddBar(ticker, b)
		}
	}

	if table.Empty() {
		return nil, warnings, ErrEmptyResult
	}
	return table, warnings, nil
}
