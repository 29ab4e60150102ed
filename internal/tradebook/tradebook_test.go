package tradebook

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/trademetriks/internal/config"
	"github.com/seenimoa/trademetriks/pkg/models"
	"github.com/seenimoa/trademetriks/pkg/utils"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ════════════════════════════════════════════════════════════════════
// Normalize
// ════════════════════════════════════════════════════════════════════

func TestNormalizeBuyEquity(t *testing.T) {
	tr, err := Normalize(Row{
		TradePrice:    "760.50",
		ProductType:   "INTRADAY",
		TradedQty:     "10",
		Symbol:        "NSE:SBIN-EQ",
		OrderDateTime: "05-03-2024 09:20:11",
		TradeValue:    "7605.0",
		Side:          "1",
		OrderType:     "2",
	}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "SBIN-EQ", tr.SymbolExtracted)
	assert.Equal(t, models.Equity, tr.InstrumentType)
	assert.Equal(t, models.Buy, tr.TradeType)
	assert.Equal(t, int64(10), tr.IntraCheck)
	assert.True(t, tr.NetTrade.Equal(dec("-7605")), "net trade: %s", tr.NetTrade)
	assert.Equal(t, models.Date{Year: 2024, Month: time.March, Day: 5}, tr.Date)
	assert.Equal(t, time.March, tr.Month)
	assert.True(t, tr.OrderTime.Equal(time.Date(2024, 3, 5, 9, 20, 11, 0, utils.IST)))
}

func TestNormalizeSellOption(t *testing.T) {
	tr, err := Normalize(Row{
		TradePrice:    "110",
		TradedQty:     "50.0",
		Symbol:        "NSE:NIFTY24MAR22000CE",
		OrderDateTime: "05/03/2024 13:10:55",
		TradeValue:    "5500",
		Side:          "-1",
	}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "NIFTY24MAR22000CE", tr.SymbolExtracted)
	assert.Equal(t, models.Options, tr.InstrumentType)
	assert.Equal(t, models.Sell, tr.TradeType)
	assert.Equal(t, int64(-50), tr.IntraCheck)
	assert.True(t, tr.NetTrade.Equal(dec("5500")))
}

func TestNormalizeShortSymbol(t *testing.T) {
	tr, err := Normalize(Row{
		TradePrice: "1", TradedQty: "1", Symbol: "EQ", TradeValue: "1", Side: "1",
		OrderDateTime: "01-01-2024 10:00:00",
	}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "", tr.SymbolExtracted)
	assert.Equal(t, models.Equity, tr.InstrumentType)
}

func TestNormalizeUnpaddedTimestamp(t *testing.T) {
	for _, ts := range []string{"5-3-2024 9:20:11", "5/3/2024 9:20:11", "5-Mar-2024 9:20:11"} {
		t.Run(ts, func(t *testing.T) {
			tr, err := Normalize(Row{
				TradePrice: "1", TradedQty: "1", Symbol: "NSE:SBIN-EQ", TradeValue: "1", Side: "1",
				OrderDateTime: ts,
			}, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, models.Date{Year: 2024, Month: time.March, Day: 5}, tr.Date)
			assert.True(t, tr.OrderTime.Equal(time.Date(2024, 3, 5, 9, 20, 11, 0, utils.IST)))
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	base := Row{
		TradePrice: "1", TradedQty: "1", Symbol: "NSE:X-EQ", TradeValue: "1", Side: "1",
		OrderDateTime: "01-01-2024 10:00:00",
	}
	tests := []struct {
		name   string
		mutate func(r *Row)
		want   error
	}{
		{"bad date", func(r *Row) { r.OrderDateTime = "2024-13-45" }, ErrBadTimestamp},
		{"empty date", func(r *Row) { r.OrderDateTime = "" }, ErrBadTimestamp},
		{"bad price", func(r *Row) { r.TradePrice = "abc" }, ErrBadNumber},
		{"fractional qty", func(r *Row) { r.TradedQty = "1.5" }, ErrBadNumber},
		{"bad side", func(r *Row) { r.Side = "BUY" }, ErrBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			_, err := Normalize(r, DefaultOptions())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ════════════════════════════════════════════════════════════════════
// Load / Read
// ════════════════════════════════════════════════════════════════════

func TestLoadTestdata(t *testing.T) {
	trades, err := Load(context.Background(), filepath.Join("testdata", "tradebook.csv"), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, trades, 6)

	assert.Equal(t, "SBIN-EQ", trades[0].SymbolExtracted)
	assert.Equal(t, "NSE:NIFTY24MAR22000CE", trades[2].Symbol)
	assert.Equal(t, "MARGIN", trades[2].ProductType)
	assert.Equal(t, int64(-5), trades[5].IntraCheck)
	assert.True(t, trades[5].TradePrice.Equal(dec("2880")))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions())
	assert.ErrorIs(t, err, ErrNoTradebook)
}

func TestReadMissingColumn(t *testing.T) {
	csv := ",symbol,tradePrice\n0,NSE:SBIN-EQ,700\n"
	_, err := Read(context.Background(), strings.NewReader(csv), DefaultOptions())
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "orderDateTime")
}

func TestReadEmptyFile(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader(""), DefaultOptions())
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadHeaderOnly(t *testing.T) {
	header := ",tradePrice,productType,tradedQty,symbol,orderDateTime,tradeValue,side,orderType\n"
	trades, err := Read(context.Background(), strings.NewReader(header), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestReadMalformedDateIsFatal(t *testing.T) {
	csv := ",tradePrice,productType,tradedQty,symbol,orderDateTime,tradeValue,side,orderType\n" +
		"0,10,CNC,1,NSE:SBIN-EQ,05-03-2024 09:20:11,10,1,2\n" +
		"1,10,CNC,1,NSE:SBIN-EQ,not a date,10,-1,2\n"
	_, err := Read(context.Background(), strings.NewReader(csv), DefaultOptions())
	require.ErrorIs(t, err, ErrBadTimestamp)
	assert.Contains(t, err.Error(), "row 3")
}

func TestReadUnpaddedTimestamp(t *testing.T) {
	csv := ",tradePrice,productType,tradedQty,symbol,orderDateTime,tradeValue,side,orderType\n" +
		"0,10,CNC,1,NSE:SBIN-EQ,5-3-2024 9:20:11,10,1,2\n"
	trades, err := Read(context.Background(), strings.NewReader(csv), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, models.Date{Year: 2024, Month: time.March, Day: 5}, trades[0].Date)
}

func TestReadStripsBOM(t *testing.T) {
	csv := "\xEF\xBB\xBFtradePrice,productType,tradedQty,symbol,orderDateTime,tradeValue,side,orderType\n" +
		"10,CNC,1,NSE:SBIN-EQ,05-03-2024 09:20:11,10,1,2\n"
	trades, err := Read(context.Background(), strings.NewReader(csv), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, trades, 1)
}

func TestReadCancelled(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "tradebook.csv"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Read(ctx, strings.NewReader(string(data)), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := OptionsFromConfig(config.DataConfig{SymbolPrefixLen: 4, Timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, 4, opts.PrefixLen)
	assert.Equal(t, "EQ", opts.EquitySuffix)
	assert.Equal(t, time.UTC, opts.Location)
	assert.Equal(t, utils.DayFirstLayouts, opts.Layouts)

	opts, err = OptionsFromConfig(config.DataConfig{})
	require.NoError(t, err)
	assert.Equal(t, utils.IST, opts.Location)

	_, err = OptionsFromConfig(config.DataConfig{Timezone: "Mars/Olympus"})
	assert.Error(t, err)
}
