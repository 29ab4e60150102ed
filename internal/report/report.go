package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/seenimoa/trademetriks/internal/config"
	"github.com/seenimoa/trademetriks/pkg/models"
	"github.com/seenimoa/trademetriks/pkg/utils"
	"github.com/seenimoa/trademetriks/web"
)

// ════════════════════════════════════════════════════════════════════
// Report Generator — Orchestrates chart + template rendering
// ════════════════════════════════════════════════════════════════════

// Format specifies an output format.
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatRSS  Format = "rss"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown report format")

// ErrNilDashboard is returned when a generator is handed no dashboard.
var ErrNilDashboard = errors.New("dashboard is nil")

// ParseFormat maps a format name ("html", "JSON", "yml", "txt") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	case "rss", "xml":
		return FormatRSS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatRSS:
		return ".xml"
	default:
		return "." + string(f)
	}
}

// Options controls dashboard rendering.
type Options struct {
	Title             string
	Author            string
	ChartCfg          ChartConfig
	RecentTradesLimit int // 0 = all
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Title:    "Trademetriks",
		ChartCfg: DefaultChartConfig(),
	}
}

// OptionsFromConfig builds rendering options from the report config section.
func OptionsFromConfig(rc config.ReportConfig) Options {
	opts := DefaultOptions()
	if rc.Title != "" {
		opts.Title = rc.Title
	}
	opts.Author = rc.Author
	opts.RecentTradesLimit = rc.RecentTradesLimit
	opts.ChartCfg = opts.ChartCfg.withSize(rc.ChartWidth, rc.ChartHeight)
	return opts
}

// ════════════════════════════════════════════════════════════════════
// View model — Flattened for template rendering
// ════════════════════════════════════════════════════════════════════

// View is the template model passed to the HTML template and the text
// renderer. All amounts are pre-formatted.
type View struct {
	Title       string
	Author      string
	GeneratedAt string // IST formatted
	DataAsOf    string
	Footer      string
	Stylesheet  template.CSS

	Trades          int
	ClosedPositions int
	TradingDays     int

	KPIs []KPICard

	// Charts (embedded SVG strings)
	CumulativeChart template.HTML
	DailyChart      template.HTML
	WeekdayChart    template.HTML
	MonthlyChart    template.HTML
	InstrumentChart template.HTML
	WinRateGauge    template.HTML

	Extremes     ExtremesView
	Symbols      []SymbolRow
	Recent       []RecentRow
	RecentTotal  int
	RecentHidden int
}

// KPICard is one tile of the banner.
type KPICard struct {
	Key   string // stable identifier, used as a CSS hook
	Label string
	Value string
	Class string // "profit", "loss" or ""
}

// ExtremesView is the formatted best/worst-day block.
type ExtremesView struct {
	BestDay       string
	BestDayNet    string
	WorstDay      string
	WorstDayNet   string
	WinStreak     int
	LossStreak    int
	MaxDrawdown   string
	HasTradingDay bool
}

// SymbolRow is one row of the symbol-wise performance table.
type SymbolRow struct {
	Symbol     string
	Instrument string
	Net        string
	Days       int
	Class      string
}

// RecentRow is one row of the recent trades table.
type RecentRow struct {
	Time        string
	Symbol      string
	TradeType   string
	SideClass   string
	ProductType string
	Price       string
	Qty         string
	Value       string
}

// ════════════════════════════════════════════════════════════════════
// Generate
// ════════════════════════════════════════════════════════════════════

var dashboardTmpl = template.Must(template.New("dashboard").Parse(DashboardTemplate))

// GenerateHTML renders the dashboard page with inline SVG charts and the
// embedded stylesheet.
func GenerateHTML(db *models.Dashboard, opts Options) ([]byte, error) {
	if db == nil {
		return nil, ErrNilDashboard
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, BuildView(db, opts)); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateText renders a plain-text summary (terminal / CLI friendly).
func GenerateText(db *models.Dashboard, opts Options) ([]byte, error) {
	if db == nil {
		return nil, ErrNilDashboard
	}
	return []byte(renderText(BuildView(db, opts), db)), nil
}

// GenerateJSON serialises the dashboard. Money is emitted as strings and
// unavailable ratios as null.
func GenerateJSON(db *models.Dashboard) ([]byte, error) {
	if db == nil {
		return nil, ErrNilDashboard
	}
	out, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return append(out, '\n'), nil
}

// GenerateYAML serialises the dashboard as YAML.
func GenerateYAML(db *models.Dashboard) ([]byte, error) {
	if db == nil {
		return nil, ErrNilDashboard
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(db); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// ════════════════════════════════════════════════════════════════════
// Internal — Build view
// ════════════════════════════════════════════════════════════════════

// BuildView flattens a dashboard into display strings and charts.
func BuildView(db *models.Dashboard, opts Options) View {
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}

	v := View{
		Title:           opts.Title,
		Author:          opts.Author,
		GeneratedAt:     utils.FormatDateTimeIST(db.GeneratedAt),
		Stylesheet:      template.CSS(web.Stylesheet()),
		Trades:          db.Trades,
		ClosedPositions: db.ClosedPositions,
		TradingDays:     db.TradingDays,
		KPIs:            kpiCards(db.KPIs),
		Symbols:         symbolRows(db.Symbols),
		Extremes:        extremesView(db.Extremes),
	}

	v.DataAsOf = "no data"
	if !db.DataAsOf.IsZero() {
		v.DataAsOf = db.DataAsOf.Format("02 Jan 2006")
	}
	v.Footer = "Last Updated Data on " + v.DataAsOf

	v.RecentTotal = len(db.RecentTrades)
	recent := db.RecentTrades
	if opts.RecentTradesLimit > 0 && len(recent) > opts.RecentTradesLimit {
		recent = recent[:opts.RecentTradesLimit]
	}
	v.Recent = recentRows(recent)
	v.RecentHidden = v.RecentTotal - len(v.Recent)

	buildCharts(&v, db, opts.ChartCfg)
	return v
}

func kpiCards(k models.KPIs) []KPICard {
	winRate := "N/A"
	if k.WinRate.Valid {
		winRate = utils.FormatPct(k.WinRate.Value)
	}

	return []KPICard{
		{Key: "gross", Label: signLabel("Gross", k.GrossPnL), Value: utils.FormatINR(k.GrossPnL), Class: signClass(k.GrossPnL)},
		{Key: "today", Label: signLabel("Today's", k.TodayPnL), Value: utils.FormatINR(k.TodayPnL), Class: signClass(k.TodayPnL)},
		{Key: "month", Label: signLabel("Month", k.MonthPnL), Value: monthValue(k), Class: signClass(k.MonthPnL)},
		{Key: "win-rate", Label: "Win Rate", Value: winRate},
		{Key: "pnl-ratio", Label: "P/L Ratio", Value: k.PnLRatio.String()},
		{Key: "avg-stocks", Label: "Avg Stocks Traded Daily", Value: fmt.Sprintf("%d", k.AvgStocksPerDay)},
		{Key: "avg-amount", Label: "Avg Amount Traded Daily", Value: utils.FormatRupees(k.AvgAmountPerDay)},
	}
}

func monthValue(k models.KPIs) string {
	if !k.MonthHasTrades {
		return utils.FormatINR(decimal.Zero) + " (no trades in " + k.Month + ")"
	}
	return utils.FormatINR(k.MonthPnL)
}

// signLabel picks "Profit" for values ≥ 0 and "Loss" otherwise.
func signLabel(prefix string, v decimal.Decimal) string {
	return prefix + " " + outcome(v)
}

func outcome(v decimal.Decimal) string {
	if v.IsNegative() {
		return "Loss"
	}
	return "Profit"
}

func signClass(v decimal.Decimal) string {
	switch {
	case v.IsNegative():
		return "loss"
	case v.IsPositive():
		return "profit"
	}
	return ""
}

func symbolRows(symbols []models.SymbolPnL) []SymbolRow {
	rows := make([]SymbolRow, 0, len(symbols))
	for _, s := range symbols {
		rows = append(rows, SymbolRow{
			Symbol:     s.Symbol,
			Instrument: string(s.InstrumentType),
			Net:        utils.FormatINR(s.Net),
			Days:       s.Days,
			Class:      signClass(s.Net),
		})
	}
	return rows
}

func recentRows(trades []models.RecentTrade) []RecentRow {
	rows := make([]RecentRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, RecentRow{
			Time:        utils.ToIST(t.OrderTime).Format("02 Jan 15:04:05"),
			Symbol:      t.Symbol,
			TradeType:   string(t.TradeType),
			SideClass:   strings.ToLower(string(t.TradeType)),
			ProductType: t.ProductType,
			Price:       utils.FormatINR(t.TradePrice),
			Qty:         utils.FormatQty(t.TradedQty),
			Value:       utils.FormatINR(t.TradeValue),
		})
	}
	return rows
}

func extremesView(e models.Extremes) ExtremesView {
	v := ExtremesView{
		WinStreak:   e.LongestWinStreak,
		LossStreak:  e.LongestLossStreak,
		MaxDrawdown: utils.FormatINR(e.MaxDrawdown),
	}
	if e.BestDay != nil {
		v.HasTradingDay = true
		v.BestDay = e.BestDay.Date.Format("02 Jan 2006")
		v.BestDayNet = utils.FormatINR(e.BestDay.Net)
	}
	if e.WorstDay != nil {
		v.WorstDay = e.WorstDay.Date.Format("02 Jan 2006")
		v.WorstDayNet = utils.FormatINR(e.WorstDay.Net)
	}
	return v
}

func buildCharts(v *View, db *models.Dashboard, base ChartConfig) {
	base = base.withSize(0, 0)

	cumulative := make([]float64, len(db.Daily))
	labels := make([]string, len(db.Daily))
	daily := make([]BarItem, len(db.Daily))
	for i, d := range db.Daily {
		cumulative[i] = d.Cumulative.InexactFloat64()
		labels[i] = d.Date.Format("02 Jan")
		daily[i] = BarItem{Label: labels[i], Value: d.Net.InexactFloat64()}
	}

	cfg := base
	cfg.Title = "Cumulative Profit or Loss"
	series := []LineChartSeries{{Name: "Cumulative P/L", Values: cumulative, Color: colorLine}}
	if len(cumulative) == 0 {
		series = nil
	}
	v.CumulativeChart = template.HTML(LineChart(series, labels, cfg))

	cfg.Title = "Date-wise Profit or Loss"
	v.DailyChart = template.HTML(ColumnChart(daily, cfg))

	weekday := make([]BarItem, len(db.Weekday))
	for i, w := range db.Weekday {
		weekday[i] = BarItem{Label: abbrev(w.Name), Value: w.Net.InexactFloat64()}
	}
	cfg.Title = "Weekday-wise Profit or Loss"
	v.WeekdayChart = template.HTML(ColumnChart(weekday, cfg))

	monthly := make([]BarItem, len(db.Monthly))
	for i, m := range db.Monthly {
		monthly[i] = BarItem{Label: m.Name, Value: m.Net.InexactFloat64()}
	}
	cfg.Title = "Month-wise Profit or Loss"
	v.MonthlyChart = template.HTML(ColumnChart(monthly, cfg))

	instruments := make([]BarItem, len(db.Instruments))
	for i, in := range db.Instruments {
		instruments[i] = BarItem{Label: string(in.Type), Value: in.Net.InexactFloat64()}
	}
	cfg = base.withSize(0, 80+60*max(1, len(instruments)))
	cfg.Title = "Instrument-wise Profit or Loss"
	v.InstrumentChart = template.HTML(HorizontalBarChart(instruments, cfg))

	rate := -1.0
	if db.KPIs.WinRate.Valid {
		rate = db.KPIs.WinRate.Value.InexactFloat64() * 100
	}
	v.WinRateGauge = template.HTML(GaugeChart(rate, "Win Rate", 220))
}

// ════════════════════════════════════════════════════════════════════
// Plain-text renderer
// ════════════════════════════════════════════════════════════════════

func renderText(v View, db *models.Dashboard) string {
	var sb strings.Builder
	line := strings.Repeat("═", 64)
	thinLine := strings.Repeat("─", 64)

	sb.WriteString("\n" + line + "\n")
	fmt.Fprintf(&sb, "  %s\n", v.Title)
	fmt.Fprintf(&sb, "  Generated: %s", v.GeneratedAt)
	if v.Author != "" {
		fmt.Fprintf(&sb, " | Author: %s", v.Author)
	}
	sb.WriteString("\n" + line + "\n\n")

	fmt.Fprintf(&sb, "  Trades: %d | Closed positions: %d | Trading days: %d\n",
		v.Trades, v.ClosedPositions, v.TradingDays)
	sb.WriteString(thinLine + "\n")

	sb.WriteString("\n  ■ KEY METRICS\n")
	for _, k := range v.KPIs {
		fmt.Fprintf(&sb, "    %-26s %s\n", k.Label, k.Value)
	}
	sb.WriteString(thinLine + "\n")

	if len(db.Daily) > 0 {
		sb.WriteString("\n  ■ DAILY P/L\n")
		for _, d := range db.Daily {
			fmt.Fprintf(&sb, "    %s %-3s %14s %16s\n",
				d.Date, abbrev(d.Weekday), utils.FormatINR(d.Net), utils.FormatINR(d.Cumulative))
		}
		sb.WriteString(thinLine + "\n")

		sb.WriteString("\n  ■ WEEKDAY P/L\n")
		for _, w := range db.Weekday {
			fmt.Fprintf(&sb, "    %-10s %14s\n", w.Name, utils.FormatINR(w.Net))
		}

		sb.WriteString("\n  ■ MONTH P/L\n")
		for _, m := range db.Monthly {
			fmt.Fprintf(&sb, "    %-10s %14s\n", m.Name, utils.FormatINR(m.Net))
		}

		sb.WriteString("\n  ■ INSTRUMENTS\n")
		for _, in := range db.Instruments {
			fmt.Fprintf(&sb, "    %-10s %14s  (%d positions)\n", in.Type, utils.FormatINR(in.Net), in.Positions)
		}
		sb.WriteString(thinLine + "\n")

		sb.WriteString("\n  ■ EXTREMES\n")
		fmt.Fprintf(&sb, "    Best day:  %s  %s\n", v.Extremes.BestDay, v.Extremes.BestDayNet)
		fmt.Fprintf(&sb, "    Worst day: %s  %s\n", v.Extremes.WorstDay, v.Extremes.WorstDayNet)
		fmt.Fprintf(&sb, "    Streaks:   %d winning / %d losing days\n", v.Extremes.WinStreak, v.Extremes.LossStreak)
		fmt.Fprintf(&sb, "    Max drawdown: %s\n", v.Extremes.MaxDrawdown)
		sb.WriteString(thinLine + "\n")
	}

	if len(v.Symbols) > 0 {
		sb.WriteString("\n  ■ SYMBOL-WISE PERFORMANCE\n")
		for _, s := range v.Symbols {
			fmt.Fprintf(&sb, "    %-24s %-8s %14s\n", s.Symbol, s.Instrument, s.Net)
		}
		sb.WriteString(thinLine + "\n")
	}

	if len(v.Recent) > 0 {
		sb.WriteString("\n  ■ RECENT TRADES\n")
		for _, r := range v.Recent {
			fmt.Fprintf(&sb, "    %s  %-20s %-4s %-9s %8s x %-6s %14s\n",
				r.Time, r.Symbol, r.TradeType, r.ProductType, r.Price, r.Qty, r.Value)
		}
		if v.RecentHidden > 0 {
			fmt.Fprintf(&sb, "    … %d more\n", v.RecentHidden)
		}
		sb.WriteString(thinLine + "\n")
	}

	sb.WriteString("\n" + line + "\n")
	fmt.Fprintf(&sb, "  %s\n", v.Footer)
	sb.WriteString(line + "\n")

	return sb.String()
}

func abbrev(name string) string {
	if len(name) <= 3 {
		return name
	}
	return name[:3]
}
