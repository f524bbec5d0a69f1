package collector

import (
	"context"
	"time"

	"BacktestLab/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.Bar // per symbol; nil entry means "generate"
	Errs map[string]error       // per-symbol forced errors
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, start, end time.Time) ([]model.Bar, error) {
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return GenerateBars(100, start, end), nil
}

// GenerateBars produces a deterministic gently rising daily series over
// weekdays in [start, end).
func GenerateBars(basePrice float64, start, end time.Time) []model.Bar {
	var bars []model.Bar
	i := 0
	for d := model.Day(start); d.Before(model.Day(end)); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i)*0.001)
		bars = append(bars, model.Bar{
			Date:     d,
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			AdjClose: p,
			Volume:   1000000,
		})
		i++
	}
	return bars
}
