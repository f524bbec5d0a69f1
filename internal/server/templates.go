package server

import (
	"html/template"

	"github.com/dustin/go-humanize"

	"BacktestLab/internal/stats"
)

type formData struct {
	StartDate  string
	EndDate    string
	Tickers    string
	Investment float64
	LogScale   bool
	Error      string
}

type resultData struct {
	Tickers    []string
	Start, End string
	Investment float64
	Warnings   []string
	Summaries  []summaryRow
	ChartHTML  string
	Empty      bool
}

type summaryRow struct {
	Ticker      string
	Strategy    string
	FinalValue  string
	TotalReturn string
	AnnualVol   string
	MaxDrawdown string
}

func summaryRows(summaries []stats.Summary) []summaryRow {
	rows := make([]summaryRow, len(summaries))
	for i, s := range summaries {
		rows[i] = summaryRow{
			Ticker:      s.Ticker,
			Strategy:    s.Strategy.Label(),
			FinalValue:  "$" + humanize.CommafWithDigits(s.FinalValue, 2),
			TotalReturn: humanize.FormatFloat("#,###.##", s.TotalReturnPct) + "%",
			AnnualVol:   humanize.FormatFloat("#,###.##", s.AnnualStdDev*100) + "%",
			MaxDrawdown: humanize.FormatFloat("#,###.##", s.MaxDrawdown*100) + "%",
		}
	}
	return rows
}

const pageStyle = `
  body { font-family: sans-serif; margin: 2em auto; max-width: 1150px; color: #222; }
  label { display: block; margin-top: 0.8em; }
  input[type=text], input[type=date], input[type=number] { width: 16em; padding: 0.3em; }
  button { margin-top: 1.2em; padding: 0.5em 1.5em; }
  .error { color: #b00020; margin: 1em 0; }
  .warning { color: #8a6d00; margin: 0.2em 0; }
  table { border-collapse: collapse; margin-top: 1.5em; }
  th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: right; }
  th { background: #f4f4f4; }
  td:first-child, td:nth-child(2) { text-align: left; }
  iframe.chart { width: 100%; height: 640px; border: none; margin-top: 1em; }
`

var formTmpl = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
<head><title>Strategy Backtest</title><style>` + pageStyle + `</style></head>
<body>
  <h1>Strategy Backtest</h1>
  <p>Compare open-to-close, close-to-open, and buy-and-hold on up to five tickers.</p>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="post" action="/backtest">
    <label>Start date <input type="date" name="start" value="{{.StartDate}}"></label>
    <label>End date <input type="date" name="end" value="{{.EndDate}}"></label>
    <label>Tickers (comma-separated, max 5) <input type="text" name="tickers" value="{{.Tickers}}"></label>
    <label>Initial investment ($) <input type="number" name="investment" step="0.01" min="0.01" value="{{.Investment}}"></label>
    <label><input type="checkbox" name="log_scale" {{if .LogScale}}checked{{end}}> Logarithmic y-axis</label>
    <button type="submit">Run backtest</button>
  </form>
</body>
</html>
`))

var resultTmpl = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head><title>Backtest result</title><style>` + pageStyle + `</style></head>
<body>
  <h1>Backtest result</h1>
  <p>{{range $i, $t := .Tickers}}{{if $i}}, {{end}}{{$t}}{{end}} | {{.Start}} → {{.End}} | initial ${{.Investment}}</p>
  <p><a href="/">← new run</a></p>
  {{range .Warnings}}<p class="warning">⚠ {{.}}</p>{{end}}
  {{if .Empty}}
  <p class="error">Nothing to plot: no ticker produced a usable return series.</p>
  {{else}}
  <iframe class="chart" srcdoc="{{.ChartHTML}}"></iframe>
  <table>
    <tr><th>Ticker</th><th>Strategy</th><th>Final value</th><th>Total return</th><th>Annual volatility</th><th>Max drawdown</th></tr>
    {{range .Summaries}}
    <tr><td>{{.Ticker}}</td><td>{{.Strategy}}</td><td>{{.FinalValue}}</td><td>{{.TotalReturn}}</td><td>{{.AnnualVol}}</td><td>{{.MaxDrawdown}}</td></tr>
    {{end}}
  </table>
  {{end}}
</body>
</html>
`))
