// Package scheduler runs the configured watchlist backtest on a cron.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"BacktestLab/internal/backtest"
	"BacktestLab/internal/config"
	"BacktestLab/internal/notifier"
)

// Scheduler manages the watchlist cron task.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   *backtest.Runner
	Notifier *notifier.TelegramNotifier
	Cfg      *config.Config
	Ctx      context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, runner *backtest.Runner, tn *notifier.TelegramNotifier, cfg *config.Config) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Notifier: tn,
		Cfg:      cfg,
		Ctx:      ctx,
	}
}

// Register adds the watchlist task when a cron expression is configured.
func (s *Scheduler) Register() error {
	if s.Cfg.Watchlist.Cron == "" {
		log.Println("[INFO] no watchlist cron configured, scheduled runs disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(s.Cfg.Watchlist.Cron, s.watchlistTask); err != nil {
		return fmt.Errorf("register watchlist task: %w", err)
	}
	log.Printf("[INFO] watchlist task registered: %s", s.Cfg.Watchlist.Cron)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunWatchlistNow executes the watchlist task immediately (manual trigger).
func (s *Scheduler) RunWatchlistNow() {
	s.watchlistTask()
}

func (s *Scheduler) watchlistTask() {
	wl := s.Cfg.Watchlist
	end := time.Now().AddDate(0, 0, 1)
	req := backtest.Request{
		Start:      end.AddDate(0, 0, -wl.LookbackDays-1),
		End:        end,
		Tickers:    wl.Tickers,
		Investment: wl.Investment,
		Source:     "watchlist",
	}

	log.Printf("[INFO] running watchlist backtest: %v over %d days", wl.Tickers, wl.LookbackDays)
	res, err := s.Runner.Run(s.Ctx, req)
	if err != nil {
		log.Printf("[ERROR] watchlist run: %v", err)
		s.trySend(fmt.Sprintf("❌ Watchlist backtest failed: %v", err))
		return
	}

	log.Printf("[INFO] watchlist run done: %d summaries, %d warnings", len(res.Summaries), len(res.Warnings))
	s.trySend(notifier.FormatRunReport(req.Start, req.End, res.Summaries, res.Warnings))
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil || !s.Notifier.Enabled() {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] notify: %v", err)
	}
}
