package analytics

import (
	"cmp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/trademetriks/pkg/models"
)

// WeekdayNames are indexed Monday=0 … Sunday=6.
var WeekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayIndex maps a time.Weekday onto Monday=0 … Sunday=6.
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// DailySeries nets closed positions per date, in ascending date order, with
// the running cumulative total.
func DailySeries(closed []models.ClosedPosition) []models.DailyPnL {
	groups := GroupBy(closed, func(p models.ClosedPosition) models.Date { return p.Date })
	SortGroups(groups, compareDates)

	daily := make([]models.DailyPnL, 0, len(groups))
	running := decimal.Zero
	for _, g := range groups {
		net := SumDecimal(g.Rows, func(p models.ClosedPosition) decimal.Decimal { return p.NetTrade })
		running = running.Add(net)
		daily = append(daily, models.DailyPnL{
			Date:       g.Key,
			Weekday:    WeekdayNames[WeekdayIndex(g.Key.Weekday())],
			Net:        net,
			Cumulative: running,
			TradeValue: SumDecimal(g.Rows, func(p models.ClosedPosition) decimal.Decimal { return p.TradeValue }),
			Positions:  len(g.Rows),
		})
	}
	return daily
}

// WeekdaySeries sums daily P/L across dates sharing a weekday. Only
// weekdays that occur are returned, Monday first.
func WeekdaySeries(daily []models.DailyPnL) []models.WeekdayPnL {
	groups := GroupBy(daily, func(d models.DailyPnL) int { return WeekdayIndex(d.Date.Weekday()) })
	SortGroups(groups, cmp.Compare[int])

	out := make([]models.WeekdayPnL, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.WeekdayPnL{
			Day:  g.Key,
			Name: WeekdayNames[g.Key],
			Net:  SumDecimal(g.Rows, func(d models.DailyPnL) decimal.Decimal { return d.Net }),
		})
	}
	return out
}

// MonthSeries sums closed positions per calendar month number, across
// years, rounded to paise and ordered January first.
func MonthSeries(closed []models.ClosedPosition) []models.MonthPnL {
	groups := GroupBy(closed, func(p models.ClosedPosition) time.Month { return p.Date.Month })
	SortGroups(groups, cmp.Compare[time.Month])

	out := make([]models.MonthPnL, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.MonthPnL{
			Month: int(g.Key),
			Name:  g.Key.String(),
			Net:   SumDecimal(g.Rows, func(p models.ClosedPosition) decimal.Decimal { return p.NetTrade }).RoundBank(2),
		})
	}
	return out
}
