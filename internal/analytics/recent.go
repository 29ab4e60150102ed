package analytics

import (
	"slices"

	"github.com/seenimoa/trademetriks/pkg/models"
)

// LatestDate returns the most recent trade date in the dataset, or the zero
// Date when there are no trades.
func LatestDate(trades []models.Trade) models.Date {
	var latest models.Date
	for _, t := range trades {
		if t.Date.After(latest) {
			latest = t.Date
		}
	}
	return latest
}

// RecentTrades returns every trade on the given date, open positions
// included, newest first. Trades with equal timestamps keep input order.
func RecentTrades(trades []models.Trade, on models.Date) []models.RecentTrade {
	var day []models.Trade
	for _, t := range trades {
		if t.Date == on {
			day = append(day, t)
		}
	}
	slices.SortStableFunc(day, func(a, b models.Trade) int {
		return b.OrderTime.Compare(a.OrderTime)
	})

	out := make([]models.RecentTrade, 0, len(day))
	for _, t := range day {
		out = append(out, models.RecentTrade{
			OrderTime:   t.OrderTime,
			Symbol:      t.SymbolExtracted,
			TradeType:   t.TradeType,
			ProductType: t.ProductType,
			TradePrice:  t.TradePrice,
			TradedQty:   t.TradedQty,
			TradeValue:  t.TradeValue,
		})
	}
	return out
}
