// Package models defines the tradebook records and the dashboard result
// produced by the aggregation pipeline.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentType classifies a traded symbol.
type InstrumentType string

const (
	Equity  InstrumentType = "Equity"
	Options InstrumentType = "Options"
)

// TradeType is the display label for a trade's side.
type TradeType string

const (
	Buy  TradeType = "Buy"
	Sell TradeType = "Sell"
)

// SideBuy is the tradebook side code for a buy. Every other code is a sell.
const SideBuy = 1

// Trade is one normalized execution row from the tradebook.
// It is immutable once loaded.
type Trade struct {
	// Raw fields
	Symbol      string          `json:"raw_symbol"   yaml:"raw_symbol"` // e.g. "NSE:SBIN-EQ"
	TradePrice  decimal.Decimal `json:"trade_price"  yaml:"trade_price"`
	TradedQty   int64           `json:"traded_qty"   yaml:"traded_qty"`
	TradeValue  decimal.Decimal `json:"trade_value"  yaml:"trade_value"`
	Side        int             `json:"side"         yaml:"side"`
	ProductType string          `json:"product_type" yaml:"product_type"` // INTRADAY, CNC, MARGIN...
	OrderType   string          `json:"order_type"   yaml:"order_type"`
	OrderTime   time.Time       `json:"order_time"   yaml:"order_time"`

	// Derived fields
	SymbolExtracted string          `json:"symbol"          yaml:"symbol"`
	InstrumentType  InstrumentType  `json:"instrument_type" yaml:"instrument_type"`
	TradeType       TradeType       `json:"trade_type"      yaml:"trade_type"`
	IntraCheck      int64           `json:"intra_check"     yaml:"intra_check"` // qty × side
	NetTrade        decimal.Decimal `json:"net_trade"       yaml:"net_trade"`   // value × side × -1
	Date            Date            `json:"date"            yaml:"date"`
	Month           time.Month      `json:"month"           yaml:"month"`
}

// ClosedPosition is a (date, symbol) group whose signed quantities net to
// zero. Only closed positions count towards P/L.
type ClosedPosition struct {
	Date           Date            `json:"date"            yaml:"date"`
	Symbol         string          `json:"symbol"          yaml:"symbol"`
	InstrumentType InstrumentType  `json:"instrument_type" yaml:"instrument_type"`
	NetTrade       decimal.Decimal `json:"net_trade"       yaml:"net_trade"`
	TradeValue     decimal.Decimal `json:"trade_value"     yaml:"trade_value"`
	Trades         int             `json:"trades"          yaml:"trades"`
}
