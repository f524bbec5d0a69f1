package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"BacktestLab/internal/stats"
)

// FormatRunReport formats a watchlist run into a Telegram message.
func FormatRunReport(start, end time.Time, summaries []stats.Summary, warnings []string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Watchlist backtest</b> | %s → %s\n\n",
		start.Format("2006-01-02"), end.Format("2006-01-02")))

	for _, s := range summaries {
		b.WriteString(fmt.Sprintf("%s %s: $%s (%+.1f%%, max DD %.1f%%)\n",
			s.Ticker, s.Strategy.Label(),
			humanize.CommafWithDigits(s.FinalValue, 2),
			s.TotalReturnPct, s.MaxDrawdown*100))
	}

	if len(warnings) > 0 {
		b.WriteString("\n⚠️ <b>Warnings:</b>\n")
		for _, w := range warnings {
			b.WriteString(fmt.Sprintf("  %s\n", w))
		}
	}
	return b.String()
}
