package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ratio is a KPI whose denominator can be zero. An unavailable Ratio
// serialises as null and renders as "N/A".
type Ratio struct {
	Value decimal.Decimal
	Valid bool
}

// NewRatio returns an available Ratio.
func NewRatio(v decimal.Decimal) Ratio {
	return Ratio{Value: v, Valid: true}
}

func (r Ratio) String() string {
	if !r.Valid {
		return "N/A"
	}
	return r.Value.String()
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return r.Value.MarshalJSON()
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio{}
		return nil
	}
	if err := r.Value.UnmarshalJSON(data); err != nil {
		return err
	}
	r.Valid = true
	return nil
}

func (r Ratio) MarshalYAML() (interface{}, error) {
	if !r.Valid {
		return nil, nil
	}
	return r.Value.String(), nil
}

// KPIs are the seven banner values of the dashboard.
type KPIs struct {
	GrossPnL        decimal.Decimal `json:"gross_pnl"          yaml:"gross_pnl"`
	TodayPnL        decimal.Decimal `json:"today_pnl"          yaml:"today_pnl"`
	TodayDate       Date            `json:"today_date"         yaml:"today_date"` // latest closed-position date
	MonthPnL        decimal.Decimal `json:"month_pnl"          yaml:"month_pnl"`
	Month           string          `json:"month"              yaml:"month"` // month of the as-of time
	MonthHasTrades  bool            `json:"month_has_trades"   yaml:"month_has_trades"`
	WinRate         Ratio           `json:"win_rate"           yaml:"win_rate"`  // fraction of days with P/L ≥ 0
	PnLRatio        Ratio           `json:"pnl_ratio"          yaml:"pnl_ratio"` // profits / |losses|
	AvgStocksPerDay int64           `json:"avg_stocks_per_day" yaml:"avg_stocks_per_day"`
	AvgAmountPerDay int64           `json:"avg_amount_per_day" yaml:"avg_amount_per_day"` // whole rupees
}

// DailyPnL is one point of the cumulative P/L curve.
type DailyPnL struct {
	Date       Date            `json:"date"        yaml:"date"`
	Weekday    string          `json:"weekday"     yaml:"weekday"`
	Net        decimal.Decimal `json:"net"         yaml:"net"`
	Cumulative decimal.Decimal `json:"cumulative"  yaml:"cumulative"`
	TradeValue decimal.Decimal `json:"trade_value" yaml:"trade_value"`
	Positions  int             `json:"positions"   yaml:"positions"`
}

// WeekdayPnL is net P/L summed over every date sharing a weekday.
// Day is 0 for Monday through 6 for Sunday.
type WeekdayPnL struct {
	Day  int             `json:"day"  yaml:"day"`
	Name string          `json:"name" yaml:"name"`
	Net  decimal.Decimal `json:"net"  yaml:"net"`
}

// MonthPnL is net P/L summed over every date sharing a calendar month.
type MonthPnL struct {
	Month int             `json:"month" yaml:"month"` // 1..12
	Name  string          `json:"name"  yaml:"name"`
	Net   decimal.Decimal `json:"net"   yaml:"net"`
}

// SymbolPnL is the stockwise performance row.
type SymbolPnL struct {
	Symbol         string          `json:"symbol"          yaml:"symbol"`
	InstrumentType InstrumentType  `json:"instrument_type" yaml:"instrument_type"`
	Net            decimal.Decimal `json:"net"             yaml:"net"`
	Days           int             `json:"days"            yaml:"days"`
}

// InstrumentPnL is net P/L per instrument type.
type InstrumentPnL struct {
	Type      InstrumentType  `json:"type"      yaml:"type"`
	Net       decimal.Decimal `json:"net"       yaml:"net"`
	Positions int             `json:"positions" yaml:"positions"`
}

// RecentTrade is the display projection of a trade on the latest data date.
type RecentTrade struct {
	OrderTime   time.Time       `json:"order_time"   yaml:"order_time"`
	Symbol      string          `json:"symbol"       yaml:"symbol"`
	TradeType   TradeType       `json:"trade_type"   yaml:"trade_type"`
	ProductType string          `json:"product_type" yaml:"product_type"`
	TradePrice  decimal.Decimal `json:"trade_price"  yaml:"trade_price"`
	TradedQty   int64           `json:"traded_qty"   yaml:"traded_qty"`
	TradeValue  decimal.Decimal `json:"trade_value"  yaml:"trade_value"`
}

// Extremes summarises the daily P/L curve.
type Extremes struct {
	BestDay           *DailyPnL       `json:"best_day"            yaml:"best_day"`
	WorstDay          *DailyPnL       `json:"worst_day"           yaml:"worst_day"`
	LongestWinStreak  int             `json:"longest_win_streak"  yaml:"longest_win_streak"`
	LongestLossStreak int             `json:"longest_loss_streak" yaml:"longest_loss_streak"`
	MaxDrawdown       decimal.Decimal `json:"max_drawdown"        yaml:"max_drawdown"` // rupees, ≥ 0
}

// Dashboard is the complete output of one pipeline run.
type Dashboard struct {
	GeneratedAt     time.Time       `json:"generated_at"     yaml:"generated_at"` // the as-of time
	DataAsOf        Date            `json:"data_as_of"       yaml:"data_as_of"`   // latest date in the tradebook
	Trades          int             `json:"trades"           yaml:"trades"`
	ClosedPositions int             `json:"closed_positions" yaml:"closed_positions"`
	TradingDays     int             `json:"trading_days"     yaml:"trading_days"`
	KPIs            KPIs            `json:"kpis"             yaml:"kpis"`
	Daily           []DailyPnL      `json:"daily"            yaml:"daily"`
	Weekday         []WeekdayPnL    `json:"weekday"          yaml:"weekday"`
	Monthly         []MonthPnL      `json:"monthly"          yaml:"monthly"`
	Symbols         []SymbolPnL     `json:"symbols"          yaml:"symbols"`
	Instruments     []InstrumentPnL `json:"instruments"      yaml:"instruments"`
	RecentTrades    []RecentTrade   `json:"recent_trades"    yaml:"recent_trades"`
	Extremes        Extremes        `json:"extremes"         yaml:"extremes"`
}
