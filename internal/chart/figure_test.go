package chart

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"BacktestLab/internal/model"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func singleResult(strat model.Strategy, ticker string, values ...float64) map[model.Strategy]map[string]model.Series {
	series := make(model.Series, len(values))
	for i, v := range values {
		series[i] = model.Point{Date: day(i + 1), Value: v}
	}
	return map[model.Strategy]map[string]model.Series{strat: {ticker: series}}
}

func TestBuild_DollarValues(t *testing.T) {
	results := singleResult(model.OpenToClose, "X", 1.0, 1.05)
	fig := Build(results, 100, false, day(1), day(2))

	var line *Line
	for i := range fig.Lines {
		if strings.HasPrefix(fig.Lines[i].Name, "X") {
			line = &fig.Lines[i]
		}
	}
	if line == nil {
		t.Fatal("expected a line for X")
	}
	if !approx(line.Points[0].Value, 100) || !approx(line.Points[1].Value, 105) {
		t.Errorf("expected dollar series [100 105], got [%v %v]", line.Points[0].Value, line.Points[1].Value)
	}
}

func TestBuild_ReferenceLineSpansOpenToClose(t *testing.T) {
	results := map[model.Strategy]map[string]model.Series{
		model.OpenToClose: {
			"X": {{Date: day(1), Value: 1.0}, {Date: day(5), Value: 1.1}},
			"Y": {{Date: day(2), Value: 1.0}, {Date: day(9), Value: 0.9}},
		},
	}
	fig := Build(results, 100, false, day(1), day(9))

	var ref *Line
	for i := range fig.Lines {
		if fig.Lines[i].Dashed {
			ref = &fig.Lines[i]
		}
	}
	if ref == nil {
		t.Fatal("expected a dashed reference line")
	}
	if !ref.Points[0].Date.Equal(day(1)) || !ref.Points[1].Date.Equal(day(9)) {
		t.Errorf("reference line should span day 1..9, got %v..%v", ref.Points[0].Date, ref.Points[1].Date)
	}
	if !approx(ref.Points[0].Value, 100) || !approx(ref.Points[1].Value, 100) {
		t.Errorf("reference line should sit at the initial investment")
	}
}

func TestBuild_LogRange(t *testing.T) {
	// Values 50, 100, 150 with investment 100: padding is 10, so the linear
	// bounds are 40 and 160.
	results := singleResult(model.OpenToClose, "X", 0.5, 1.0, 1.5)
	fig := Build(results, 100, true, day(1), day(3))

	if !approx(fig.YMin, 40) || !approx(fig.YMax, 160) {
		t.Errorf("expected linear bounds [40 160], got [%v %v]", fig.YMin, fig.YMax)
	}
	if !approx(fig.LogRange[0], math.Log10(40)) || !approx(fig.LogRange[1], math.Log10(160)) {
		t.Errorf("expected log range [log10(40) log10(160)], got %v", fig.LogRange)
	}
}

func TestBuild_LogRangeFloor(t *testing.T) {
	// Padding pushes the lower bound to zero or below: fall back to 0.1.
	results := singleResult(model.OpenToClose, "X", 0.0001, 10)
	fig := Build(results, 100, true, day(1), day(2))

	if !approx(fig.YMin, 0.1) {
		t.Errorf("expected floor 0.1, got %v", fig.YMin)
	}
}

func TestBuild_EmptyResults(t *testing.T) {
	fig := Build(map[model.Strategy]map[string]model.Series{}, 100, true, day(1), day(2))
	if !fig.Empty() {
		t.Error("expected empty figure")
	}
	// Rendering an empty figure must not fail either.
	var buf bytes.Buffer
	if err := Render(fig, &buf); err != nil {
		t.Fatalf("render empty figure: %v", err)
	}
}

func TestBuild_OneLinePerTickerStrategy(t *testing.T) {
	results := map[model.Strategy]map[string]model.Series{
		model.OpenToClose: {"X": {{Date: day(1), Value: 1.05}}},
		model.CloseToOpen: {"X": {{Date: day(1), Value: 1.01}}},
		model.BuyAndHold:  {"Y": {{Date: day(2), Value: 1.02}}},
	}
	fig := Build(results, 100, false, day(1), day(2))

	// Three strategy lines plus the reference line.
	if len(fig.Lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(fig.Lines))
	}
	names := make(map[string]bool)
	for _, l := range fig.Lines {
		names[l.Name] = true
	}
	for _, want := range []string{"X - Open to Close", "X - Close to Open", "Y - Buy and Hold", "Initial investment"} {
		if !names[want] {
			t.Errorf("missing line %q (have %v)", want, names)
		}
	}
}

func TestRender_ContainsSeries(t *testing.T) {
	results := singleResult(model.OpenToClose, "X", 1.0, 1.05)
	fig := Build(results, 100, true, day(1), day(2))

	var buf bytes.Buffer
	if err := Render(fig, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "Open to Close") {
		t.Error("rendered chart should mention the strategy label")
	}
	if !strings.Contains(html, "2024-01-02") {
		t.Error("rendered chart should contain the date axis labels")
	}
}
