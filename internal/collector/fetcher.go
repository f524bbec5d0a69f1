package collector

import (
	"context"
	"errors"
	"time"

	"BacktestLab/internal/model"
)

// ErrEmptyResult signals that the fetch returned no data at all for the
// requested symbols and range. The run aborts with a user-facing message.
var ErrEmptyResult = errors.New("no price data returned for the requested symbols and date range")

// Fetcher defines the interface for fetching daily price bars.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error)
	Name() string
}
