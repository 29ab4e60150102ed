package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/trademetriks/pkg/models"
)

// ComputeKPIs derives the banner values from the closed positions and their
// daily series (as returned by DailySeries).
//
// Two time references are in play and are kept apart: TodayPnL is for the
// latest date present in the data, MonthPnL is for asOf's calendar month.
// All rounding is half-to-even.
func ComputeKPIs(closed []models.ClosedPosition, daily []models.DailyPnL, asOf time.Time) models.KPIs {
	k := models.KPIs{
		GrossPnL: SumDecimal(closed, netOf).RoundBank(2),
		TodayPnL: decimal.Zero,
		MonthPnL: decimal.Zero,
		Month:    asOf.Month().String(),
	}

	if n := len(daily); n > 0 {
		k.TodayDate = daily[n-1].Date
		k.TodayPnL = daily[n-1].Net.RoundBank(2)
	}

	// The month bucket matches MonthSeries: calendar month number, any year.
	month := decimal.Zero
	for _, p := range closed {
		if p.Date.Month == asOf.Month() {
			month = month.Add(p.NetTrade)
			k.MonthHasTrades = true
		}
	}
	k.MonthPnL = month.RoundBank(2)

	k.WinRate, k.PnLRatio = dayRatios(daily)

	if days := int64(len(daily)); days > 0 {
		k.AvgStocksPerDay = int64(len(closed)) / days

		total := SumDecimal(daily, func(d models.DailyPnL) decimal.Decimal { return d.TradeValue })
		k.AvgAmountPerDay = total.Div(decimal.NewFromInt(days)).RoundBank(0).IntPart()
	}
	return k
}

// dayRatios returns the win rate (share of days with P/L ≥ 0) and the P/L
// ratio (sum of non-negative days over the absolute sum of losing days).
// Either is unavailable when its denominator is zero.
func dayRatios(daily []models.DailyPnL) (winRate, pnlRatio models.Ratio) {
	var wins int64
	gains, losses := decimal.Zero, decimal.Zero
	for _, d := range daily {
		if d.Net.IsNegative() {
			losses = losses.Add(d.Net.Neg())
			continue
		}
		wins++
		gains = gains.Add(d.Net)
	}

	if len(daily) > 0 {
		winRate = models.NewRatio(
			decimal.NewFromInt(wins).Div(decimal.NewFromInt(int64(len(daily)))).RoundBank(2),
		)
	}
	if losses.IsPositive() {
		pnlRatio = models.NewRatio(gains.Div(losses).RoundBank(2))
	}
	return winRate, pnlRatio
}
