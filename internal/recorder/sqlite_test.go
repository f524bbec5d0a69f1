package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"BacktestLab/internal/model"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	rec := &RunRecord{
		ID:                uuid.New().String(),
		StartedAt:         time.Now(),
		Source:            "web",
		Start:             time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:               time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Tickers:           []string{"AAPL", "MSFT"},
		InitialInvestment: 100,
		LogScale:          true,
		Warnings:          1,
		Results: []StrategyResult{
			{Ticker: "AAPL", Strategy: model.OpenToClose, FinalReturn: 1.05, Points: 250},
			{Ticker: "AAPL", Strategy: model.BuyAndHold, FinalReturn: 1.20, Points: 249},
		},
	}
	if err := r.RecordRun(rec); err != nil {
		t.Fatalf("record: %v", err)
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM run_results WHERE run_id = ?`, rec.ID).Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 result rows, got %d", count)
	}

	var tickers string
	if err := r.db.QueryRow(`SELECT tickers FROM runs WHERE id = ?`, rec.ID).Scan(&tickers); err != nil {
		t.Fatalf("query run: %v", err)
	}
	if tickers != "AAPL,MSFT" {
		t.Errorf("expected tickers AAPL,MSFT, got %q", tickers)
	}
}

func TestSQLiteRecorder_MigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	for i := 0; i < 2; i++ {
		r, err := NewSQLiteRecorder(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i, err)
		}
		r.Close()
	}
}
