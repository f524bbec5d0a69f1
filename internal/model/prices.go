package model

import (
	"sort"
	"time"
)

// Field identifies a price column within a PriceTable.
type Field string

const (
	FieldOpen     Field = "Open"
	FieldClose    Field = "Close"
	FieldAdjClose Field = "AdjClose"
)

// Bar represents a single daily candlestick bar. AdjClose may be zero when
// the data source did not return an adjusted close for that day.
type Bar struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// Point is a dated value.
type Point struct {
	Date  time.Time
	Value float64
}

// Series is an ordered-by-date sequence of points.
type Series []Point

// Day truncates a timestamp to its UTC calendar day. All PriceTable dates are
// normalized through this so that bars fetched in different timezones line up.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ColumnKey addresses one price column: a (field, ticker) pair.
type ColumnKey struct {
	Field  Field
	Ticker string
}

// PriceTable holds daily prices keyed by (field, ticker) and date. Columns may
// be missing entirely (a fetch returned nothing for that ticker or field) and
// individual columns may have per-date gaps.
type PriceTable struct {
	cols map[ColumnKey]map[time.Time]float64
}

// NewPriceTable creates an empty PriceTable.
func NewPriceTable() *PriceTable {
	return &PriceTable{cols: make(map[ColumnKey]map[time.Time]float64)}
}

// Set stores one price. Non-positive prices are ignored: the data sources use
// zero to mean "no data for this day".
func (t *PriceTable) Set(f Field, ticker string, date time.Time, price float64) {
	if price <= 0 {
		return
	}
	key := ColumnKey{Field: f, Ticker: ticker}
	col, ok := t.cols[key]
	if !ok {
		col = make(map[time.Time]float64)
		t.cols[key] = col
	}
	col[Day(date)] = price
}

// AddBar stores the open, close, and adjusted close of a bar.
func (t *PriceTable) AddBar(ticker string, b Bar) {
	t.Set(FieldOpen, ticker, b.Date, b.Open)
	t.Set(FieldClose, ticker, b.Date, b.Close)
	t.Set(FieldAdjClose, ticker, b.Date, b.AdjClose)
}

// Has reports whether the table holds a non-empty column for (field, ticker).
func (t *PriceTable) Has(f Field, ticker string) bool {
	return len(t.cols[ColumnKey{Field: f, Ticker: ticker}]) > 0
}

// Lookup returns the price at (field, ticker, date), if present.
func (t *PriceTable) Lookup(f Field, ticker string, date time.Time) (float64, bool) {
	v, ok := t.cols[ColumnKey{Field: f, Ticker: ticker}][Day(date)]
	return v, ok
}

// Column returns the (field, ticker) column as a date-sorted series, or nil
// when the column is absent.
func (t *PriceTable) Column(f Field, ticker string) Series {
	col := t.cols[ColumnKey{Field: f, Ticker: ticker}]
	if len(col) == 0 {
		return nil
	}
	s := make(Series, 0, len(col))
	for d, v := range col {
		s = append(s, Point{Date: d, Value: v})
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
	return s
}

// Dates returns the sorted union of dates for which all given fields are
// present for the ticker. With no fields it returns nil.
func (t *PriceTable) Dates(ticker string, fields ...Field) []time.Time {
	if len(fields) == 0 {
		return nil
	}
	first := t.cols[ColumnKey{Field: fields[0], Ticker: ticker}]
	dates := make([]time.Time, 0, len(first))
	for d := range first {
		ok := true
		for _, f := range fields[1:] {
			if _, present := t.cols[ColumnKey{Field: f, Ticker: ticker}][d]; !present {
				ok = false
				break
			}
		}
		if ok {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Tickers returns the sorted set of tickers with at least one column.
func (t *PriceTable) Tickers() []string {
	seen := make(map[string]bool)
	for key := range t.cols {
		seen[key.Ticker] = true
	}
	tickers := make([]string, 0, len(seen))
	for tk := range seen {
		tickers = append(tickers, tk)
	}
	sort.Strings(tickers)
	return tickers
}

// Empty reports whether the table holds no data at all.
func (t *PriceTable) Empty() bool {
	for _, col := range t.cols {
		if len(col) > 0 {
			return false
		}
	}
	return true
}
