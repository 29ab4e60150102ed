package analytics

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/trademetriks/pkg/models"
)

// SymbolSeries sums closed-position P/L per symbol across all dates,
// ordered by symbol.
func SymbolSeries(closed []models.ClosedPosition) []models.SymbolPnL {
	groups := GroupBy(closed, func(p models.ClosedPosition) string { return p.Symbol })
	SortGroups(groups, strings.Compare)

	out := make([]models.SymbolPnL, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.SymbolPnL{
			Symbol:         g.Key,
			InstrumentType: g.Rows[0].InstrumentType,
			Net:            SumDecimal(g.Rows, netOf),
			Days:           len(g.Rows),
		})
	}
	return out
}

// InstrumentSeries sums closed-position P/L per instrument type.
func InstrumentSeries(closed []models.ClosedPosition) []models.InstrumentPnL {
	groups := GroupBy(closed, func(p models.ClosedPosition) models.InstrumentType { return p.InstrumentType })
	SortGroups(groups, func(a, b models.InstrumentType) int { return strings.Compare(string(a), string(b)) })

	out := make([]models.InstrumentPnL, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.InstrumentPnL{
			Type:      g.Key,
			Net:       SumDecimal(g.Rows, netOf),
			Positions: len(g.Rows),
		})
	}
	return out
}

func netOf(p models.ClosedPosition) decimal.Decimal { return p.NetTrade }
