package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"BacktestLab/internal/model"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func TestCollect_BuildsTable(t *testing.T) {
	fetcher := &MockFetcher{
		Bars: map[string][]model.Bar{
			"AAPL": {
				{Date: day(1), Open: 10, Close: 10.5, AdjClose: 10.4},
				{Date: day(2), Open: 11, Close: 11.5, AdjClose: 11.4},
			},
		},
	}
	col := NewCollector(fetcher)

	table, warns, err := col.Collect(context.Background(), []string{"AAPL"}, day(1), day(3))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if v, ok := table.Lookup(model.FieldOpen, "AAPL", day(2)); !ok || v != 11 {
		t.Errorf("expected AAPL open 11 on day 2, got %v (present=%v)", v, ok)
	}
	if v, ok := table.Lookup(model.FieldAdjClose, "AAPL", day(1)); !ok || v != 10.4 {
		t.Errorf("expected AAPL adjclose 10.4 on day 1, got %v (present=%v)", v, ok)
	}
}

func TestCollect_PartialFailureContinues(t *testing.T) {
	fetcher := &MockFetcher{
		Bars: map[string][]model.Bar{
			"AAPL": {{Date: day(1), Open: 10, Close: 10.5, AdjClose: 10.4}},
		},
		Errs: map[string]error{"BAD": errors.New("no such ticker")},
	}
	col := NewCollector(fetcher)

	table, warns, err := col.Collect(context.Background(), []string{"AAPL", "BAD"}, day(1), day(2))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(warns) != 1 {
		t.Fatalf("expected one warning, got %v", warns)
	}
	if !table.Has(model.FieldOpen, "AAPL") {
		t.Error("AAPL data should survive a failing sibling ticker")
	}
	if table.Has(model.FieldOpen, "BAD") {
		t.Error("failed ticker should have no columns")
	}
}

func TestCollect_AllFailed(t *testing.T) {
	fetcher := &MockFetcher{
		Errs: map[string]error{"A": errors.New("down"), "B": errors.New("down")},
	}
	col := NewCollector(fetcher)

	_, warns, err := col.Collect(context.Background(), []string{"A", "B"}, day(1), day(2))
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	if len(warns) != 2 {
		t.Errorf("expected two warnings, got %v", warns)
	}
}

func TestYahooFetcher_ParsesChart(t *testing.T) {
	payload := map[string]interface{}{
		"chart": map[string]interface{}{
			"result": []interface{}{
				map[string]interface{}{
					"timestamp": []int64{day(2).Unix(), day(1).Unix()},
					"indicators": map[string]interface{}{
						"quote": []interface{}{
							map[string]interface{}{
								"open":   []interface{}{11.0, 10.0},
								"high":   []interface{}{11.6, 10.6},
								"low":    []interface{}{10.9, 9.9},
								"close":  []interface{}{11.5, 10.5},
								"volume": []interface{}{2000.0, 1000.0},
							},
						},
						"adjclose": []interface{}{
							map[string]interface{}{
								"adjclose": []interface{}{11.4, nil},
							},
						},
					},
				},
			},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("expected interval=1d, got %q", r.URL.Query().Get("interval"))
		}
		if r.URL.Query().Get("period1") == "" || r.URL.Query().Get("period2") == "" {
			t.Error("expected period1/period2 range parameters")
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "")
	bars, err := f.FetchDailyBars(context.Background(), "AAPL", day(1), day(3))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	// Sorted ascending regardless of response order.
	if !bars[0].Date.Equal(day(1)) {
		t.Errorf("expected first bar on day 1, got %v", bars[0].Date)
	}
	if bars[0].AdjClose != 0 {
		t.Errorf("null adjclose should map to 0, got %v", bars[0].AdjClose)
	}
	if bars[1].AdjClose != 11.4 {
		t.Errorf("expected adjclose 11.4, got %v", bars[1].AdjClose)
	}
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "")
	if _, err := f.FetchDailyBars(context.Background(), "NOPE", day(1), day(2)); err == nil {
		t.Fatal("expected error for API error response")
	}
}
