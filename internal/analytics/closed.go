// Package analytics is the trade-aggregation pipeline: it nets each day's
// executions per symbol, keeps only closed positions and derives the
// dashboard's KPIs, series and tables from them.
package analytics

import (
	"cmp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/trademetriks/pkg/models"
)

type daySymbol struct {
	date   models.Date
	symbol string
}

// ClosedPositions groups trades by (date, symbol), sums each group and keeps
// only the groups whose signed quantities net to zero. Filtering happens on
// the group sums, never per row. Output is ordered by date, then symbol.
//
// This is the single source of closed positions: every P/L figure in the
// dashboard is computed from its result.
func ClosedPositions(trades []models.Trade) []models.ClosedPosition {
	groups := GroupBy(trades, func(t models.Trade) daySymbol {
		return daySymbol{date: t.Date, symbol: t.SymbolExtracted}
	})
	SortGroups(groups, func(a, b daySymbol) int {
		if c := compareDates(a.date, b.date); c != 0 {
			return c
		}
		return strings.Compare(a.symbol, b.symbol)
	})

	var closed []models.ClosedPosition
	for _, g := range groups {
		if SumInt(g.Rows, func(t models.Trade) int64 { return t.IntraCheck }) != 0 {
			continue
		}
		closed = append(closed, models.ClosedPosition{
			Date:           g.Key.date,
			Symbol:         g.Key.symbol,
			InstrumentType: g.Rows[0].InstrumentType,
			NetTrade:       SumDecimal(g.Rows, func(t models.Trade) decimal.Decimal { return t.NetTrade }),
			TradeValue:     SumDecimal(g.Rows, func(t models.Trade) decimal.Decimal { return t.TradeValue }),
			Trades:         len(g.Rows),
		})
	}
	return closed
}

func compareDates(a, b models.Date) int {
	return cmp.Or(
		cmp.Compare(a.Year, b.Year),
		cmp.Compare(a.Month, b.Month),
		cmp.Compare(a.Day, b.Day),
	)
}
