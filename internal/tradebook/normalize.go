// Package tradebook loads broker tradebook CSV exports and normalizes each
// execution row into a models.Trade.
package tradebook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/trademetriks/internal/config"
	"github.com/seenimoa/trademetriks/pkg/models"
	"github.com/seenimoa/trademetriks/pkg/utils"
)

var (
	// ErrBadTimestamp marks an order timestamp that no day-first layout parses.
	ErrBadTimestamp = errors.New("malformed order timestamp")
	// ErrBadNumber marks an unparseable price, value, quantity or side.
	ErrBadNumber = errors.New("malformed number")
)

// Row is one raw tradebook line, keyed by the export's header names.
// Fields stay textual until Normalize so errors can name the bad value.
type Row struct {
	TradePrice    string `csv:"tradePrice"`
	ProductType   string `csv:"productType"`
	TradedQty     string `csv:"tradedQty"`
	Symbol        string `csv:"symbol"`
	OrderDateTime string `csv:"orderDateTime"`
	TradeValue    string `csv:"tradeValue"`
	Side          string `csv:"side"`
	OrderType     string `csv:"orderType"`
}

// Options controls row normalization.
type Options struct {
	PrefixLen    int            // exchange prefix width, 4 for "NSE:"
	EquitySuffix string         // symbol suffix marking cash equity
	Location     *time.Location // timezone of the order timestamps
	Layouts      []string       // day-first timestamp layouts, tried in order
}

// DefaultOptions matches Fyers-style tradebooks: "NSE:" prefixes, "-EQ"
// cash symbols and IST timestamps.
func DefaultOptions() Options {
	return Options{
		PrefixLen:    4,
		EquitySuffix: "EQ",
		Location:     utils.IST,
		Layouts:      utils.DayFirstLayouts,
	}
}

// OptionsFromConfig applies the data section of the config over the
// defaults. Unset fields keep their default.
func OptionsFromConfig(dc config.DataConfig) (Options, error) {
	opts := DefaultOptions()
	if dc.SymbolPrefixLen > 0 {
		opts.PrefixLen = dc.SymbolPrefixLen
	}
	if dc.EquitySuffix != "" {
		opts.EquitySuffix = dc.EquitySuffix
	}
	if len(dc.DatetimeLayouts) > 0 {
		opts.Layouts = dc.DatetimeLayouts
	}
	loc, err := utils.LoadLocation(dc.Timezone)
	if err != nil {
		return Options{}, fmt.Errorf("data.timezone: %w", err)
	}
	opts.Location = loc
	return opts, nil
}

// Normalize derives the analysis fields for a single row. It is pure and
// depends on no other row.
func Normalize(r Row, opts Options) (models.Trade, error) {
	price, err := parseDecimal("tradePrice", r.TradePrice)
	if err != nil {
		return models.Trade{}, err
	}
	value, err := parseDecimal("tradeValue", r.TradeValue)
	if err != nil {
		return models.Trade{}, err
	}
	qty, err := parseWhole("tradedQty", r.TradedQty)
	if err != nil {
		return models.Trade{}, err
	}
	side, err := parseWhole("side", r.Side)
	if err != nil {
		return models.Trade{}, err
	}
	ts, err := utils.ParseDayFirst(r.OrderDateTime, opts.Layouts, opts.Location)
	if err != nil {
		return models.Trade{}, fmt.Errorf("%w: %v", ErrBadTimestamp, err)
	}

	symbol := strings.TrimSpace(r.Symbol)
	t := models.Trade{
		Symbol:      symbol,
		TradePrice:  price,
		TradedQty:   qty,
		TradeValue:  value,
		Side:        int(side),
		ProductType: strings.TrimSpace(r.ProductType),
		OrderType:   strings.TrimSpace(r.OrderType),
		OrderTime:   ts,

		SymbolExtracted: utils.StripExchangePrefix(symbol, opts.PrefixLen),
		InstrumentType:  models.Options,
		TradeType:       models.Sell,
		IntraCheck:      qty * side,
		NetTrade:        value.Mul(decimal.NewFromInt(side)).Neg(),
		Date:            models.DateOf(ts),
		Month:           ts.Month(),
	}
	if utils.HasSeriesSuffix(symbol, opts.EquitySuffix) {
		t.InstrumentType = models.Equity
	}
	if t.Side == models.SideBuy {
		t.TradeType = models.Buy
	}
	return t, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q", ErrBadNumber, field, s)
	}
	return d, nil
}

// parseWhole accepts integers, including float renderings such as "10.0".
func parseWhole(field, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadNumber, field, s)
	}
	return d.IntPart(), nil
}
