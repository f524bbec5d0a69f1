// Package server exposes the backtest UI over HTTP: a form page and a run
// handler that renders the chart inline.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"BacktestLab/internal/backtest"
	"BacktestLab/internal/chart"
	"BacktestLab/internal/collector"
	"BacktestLab/internal/config"
)

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	cfg    *config.Config
	runner *backtest.Runner
}

// New creates a Server.
func New(cfg *config.Config, runner *backtest.Runner) *Server {
	return &Server{cfg: cfg, runner: runner}
}

// Router builds the chi router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/backtest", s.handleBacktest)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderForm(w, "", http.StatusOK)
}

func (s *Server) renderForm(w http.ResponseWriter, errMsg string, status int) {
	data := formData{
		StartDate:  s.cfg.Defaults.StartDate,
		EndDate:    time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		Tickers:    s.cfg.Defaults.Tickers,
		Investment: s.cfg.Defaults.Investment,
		LogScale:   s.cfg.Defaults.LogScale,
		Error:      errMsg,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := formTmpl.Execute(w, data); err != nil {
		log.Printf("[ERROR] render form: %v", err)
	}
}

// handleBacktest runs one backtest per submission. Any failure aborts this
// run only: errors surface as messages and never crash the process (bad
// input and empty fetches explicitly, everything else via the Recoverer
// middleware).
func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		s.renderForm(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.runner.Run(r.Context(), req)
	if errors.Is(err, collector.ErrEmptyResult) {
		s.renderForm(w, "No data found for the selected symbols and date range.", http.StatusOK)
		return
	}
	if err != nil {
		log.Printf("[ERROR] backtest run: %v", err)
		s.renderForm(w, fmt.Sprintf("The run failed: %v", err), http.StatusOK)
		return
	}

	s.renderResult(w, req, res)
}

func (s *Server) parseRequest(r *http.Request) (backtest.Request, error) {
	if err := r.ParseForm(); err != nil {
		return backtest.Request{}, fmt.Errorf("parse form: %w", err)
	}

	start, err := time.Parse("2006-01-02", r.FormValue("start"))
	if err != nil {
		return backtest.Request{}, fmt.Errorf("start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", r.FormValue("end"))
	if err != nil {
		return backtest.Request{}, fmt.Errorf("end date: %w", err)
	}
	investment, err := strconv.ParseFloat(r.FormValue("investment"), 64)
	if err != nil {
		return backtest.Request{}, fmt.Errorf("initial investment: %w", err)
	}

	req := backtest.Request{
		Start:      start,
		End:        end,
		Tickers:    backtest.NormalizeTickers(r.FormValue("tickers")),
		Investment: investment,
		LogScale:   r.FormValue("log_scale") != "",
		Source:     "web",
	}
	return req, req.Validate()
}

func (s *Server) renderResult(w http.ResponseWriter, req backtest.Request, res *backtest.Result) {
	data := resultData{
		Tickers:    req.Tickers,
		Start:      req.Start.Format("2006-01-02"),
		End:        req.End.Format("2006-01-02"),
		Investment: req.Investment,
		Warnings:   res.Warnings,
		Summaries:  summaryRows(res.Summaries),
		Empty:      res.Figure.Empty(),
	}

	if !data.Empty {
		var buf bytes.Buffer
		if err := chart.Render(res.Figure, &buf); err != nil {
			log.Printf("[ERROR] render chart: %v", err)
			s.renderForm(w, fmt.Sprintf("Chart rendering failed: %v", err), http.StatusOK)
			return
		}
		data.ChartHTML = buf.String()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := resultTmpl.Execute(w, data); err != nil {
		log.Printf("[ERROR] render result: %v", err)
	}
}
