package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/seenimoa/trademetriks/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Daily curve statistics
// ════════════════════════════════════════════════════════════════════

// ComputeExtremes reports the best and worst days, the longest runs of
// winning (P/L ≥ 0) and losing days, and the maximum drawdown of the
// cumulative curve measured from a flat start.
func ComputeExtremes(daily []models.DailyPnL) models.Extremes {
	var e models.Extremes
	if len(daily) == 0 {
		e.MaxDrawdown = decimal.Zero
		return e
	}

	best, worst := daily[0], daily[0]
	for _, d := range daily[1:] {
		if d.Net.GreaterThan(best.Net) {
			best = d
		}
		if d.Net.LessThan(worst.Net) {
			worst = d
		}
	}
	e.BestDay, e.WorstDay = &best, &worst

	e.LongestWinStreak, e.LongestLossStreak = streaks(daily)
	e.MaxDrawdown = maxDrawdown(daily)
	return e
}

// ────────────────────────────────────────────────────────────────────
// Streaks
// ────────────────────────────────────────────────────────────────────

func streaks(daily []models.DailyPnL) (win, loss int) {
	var curWin, curLoss int
	for _, d := range daily {
		if d.Net.IsNegative() {
			curLoss++
			curWin = 0
		} else {
			curWin++
			curLoss = 0
		}
		win = max(win, curWin)
		loss = max(loss, curLoss)
	}
	return win, loss
}

// ────────────────────────────────────────────────────────────────────
// Maximum Drawdown
// ────────────────────────────────────────────────────────────────────

func maxDrawdown(daily []models.DailyPnL) decimal.Decimal {
	peak := decimal.Zero
	maxDD := decimal.Zero
	for _, d := range daily {
		if d.Cumulative.GreaterThan(peak) {
			peak = d.Cumulative
		}
		if dd := peak.Sub(d.Cumulative); dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD.RoundBank(2)
}
