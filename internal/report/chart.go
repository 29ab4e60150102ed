// Package report renders a computed dashboard: SVG charts, the HTML
// dashboard page, a terminal summary, JSON/YAML exports, an RSS feed of
// daily P/L and optional PDF output.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/trademetriks/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// SVG Chart Generator — Pure Go
// ════════════════════════════════════════════════════════════════════

// Palette used across charts and the stylesheet.
const (
	colorProfit = "#16a34a"
	colorLoss   = "#dc2626"
	colorLine   = "#2563eb"
	colorZero   = "#9ca3af"
)

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int    // SVG width in pixels (default: 800)
	Height       int    // SVG height in pixels (default: 360)
	MarginTop    int    // top margin (default: 40)
	MarginRight  int    // right margin (default: 30)
	MarginBottom int    // bottom margin (default: 50)
	MarginLeft   int    // left margin (default: 80)
	BgColor      string // background color (default: "#ffffff")
	GridColor    string // grid line color (default: "#e8e8e8")
	TextColor    string // axis label color (default: "#333333")
	FontSize     int    // axis label font size (default: 11)
	Title        string // chart title
}

// DefaultChartConfig returns sensible defaults for chart rendering.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        800,
		Height:       360,
		MarginTop:    40,
		MarginRight:  30,
		MarginBottom: 50,
		MarginLeft:   80,
		BgColor:      "#ffffff",
		GridColor:    "#e8e8e8",
		TextColor:    "#333333",
		FontSize:     11,
	}
}

// withSize returns a copy of c resized to w×h, keeping defaults for zero values.
func (c ChartConfig) withSize(w, h int) ChartConfig {
	if c.Width == 0 {
		c = DefaultChartConfig()
	}
	if w > 0 {
		c.Width = w
	}
	if h > 0 {
		c.Height = h
	}
	return c
}

// plotArea returns the usable drawing area dimensions.
func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

// valueRange returns a padded [min, max] that always includes zero so P/L
// charts share a visible baseline.
func valueRange(values []float64) (lo, hi float64) {
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span < 0.001 {
		span = 1
	}
	return lo - span*0.05, hi + span*0.05
}

// writeYAxis draws horizontal grid lines with rupee labels.
func writeYAxis(sb *strings.Builder, cfg ChartConfig, lo, hi float64) {
	px, py, pw, ph := cfg.plotArea()
	gridLines := 5
	for i := 0; i <= gridLines; i++ {
		val := lo + (hi-lo)*float64(i)/float64(gridLines)
		y := py + ph - int(float64(ph)*float64(i)/float64(gridLines))
		fmt.Fprintf(sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, cfg.GridColor)
		fmt.Fprintf(sb, `<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-5, y+4, cfg.FontSize, cfg.TextColor, escapeXML(utils.FormatINRCompact(decimal.NewFromFloat(val))))
	}
}

func writeFrame(sb *strings.Builder, cfg ChartConfig) {
	sb.WriteString(svgHeader(cfg))
	fmt.Fprintf(sb, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor)
	fmt.Fprintf(sb, `<text x="%d" y="20" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title))
}

// ════════════════════════════════════════════════════════════════════
// Line Chart
// ════════════════════════════════════════════════════════════════════

// LineChartSeries represents a named data series for line charts.
type LineChartSeries struct {
	Name   string
	Values []float64
	Color  string // optional; defaults to the accent blue
}

// LineChart generates an SVG line chart with one or more series and a zero
// baseline. Labels are optional X-axis labels corresponding to data points.
func LineChart(series []LineChartSeries, labels []string, cfg ChartConfig) string {
	cfg = cfg.withSize(0, 0)
	if cfg.Title == "" {
		cfg.Title = "Line Chart"
	}

	var all []float64
	maxLen := 0
	for _, s := range series {
		maxLen = max(maxLen, len(s.Values))
		all = append(all, s.Values...)
	}
	if maxLen == 0 {
		return emptySVG(cfg, "No closed positions yet")
	}

	px, py, pw, ph := cfg.plotArea()
	lo, hi := valueRange(all)
	toY := func(v float64) float64 { return float64(py+ph) - (v-lo)/(hi-lo)*float64(ph) }
	toX := func(i int) float64 {
		if maxLen == 1 {
			return float64(px) + float64(pw)/2
		}
		return float64(px) + float64(i)*float64(pw)/float64(maxLen-1)
	}

	var sb strings.Builder
	writeFrame(&sb, cfg)
	writeYAxis(&sb, cfg, lo, hi)
	fmt.Fprintf(&sb, `<line class="zero" x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="1"/>`,
		px, toY(0), px+pw, toY(0), colorZero)

	for si, s := range series {
		color := s.Color
		if color == "" {
			color = colorLine
		}

		parts := make([]string, 0, len(s.Values))
		for i, v := range s.Values {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			parts = append(parts, fmt.Sprintf("%s%.1f,%.1f", cmd, toX(i), toY(v)))
		}
		fmt.Fprintf(&sb, `<path class="series" d="%s" fill="none" stroke="%s" stroke-width="2"/>`,
			strings.Join(parts, " "), color)
		for i, v := range s.Values {
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="2.5" fill="%s"><title>%s</title></circle>`,
				toX(i), toY(v), color, escapeXML(pointTitle(labels, i, v)))
		}

		// Legend
		ly := py + 10 + si*16
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`,
			px+10, ly, px+30, ly, color)
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="10" fill="%s">%s</text>`,
			px+35, ly+4, cfg.TextColor, escapeXML(s.Name))
	}

	writeXLabels(&sb, cfg, labels, maxLen, toX)
	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Column Chart (Vertical bars)
// ════════════════════════════════════════════════════════════════════

// BarItem represents a single bar.
type BarItem struct {
	Label string
	Value float64
	Color string // optional; green for profit, red for loss
}

func barColor(item BarItem) string {
	if item.Color != "" {
		return item.Color
	}
	if item.Value >= 0 {
		return colorProfit
	}
	return colorLoss
}

// ColumnChart generates an SVG vertical bar chart around a zero baseline.
// Used for the date-wise, weekday and month-wise P/L views.
func ColumnChart(items []BarItem, cfg ChartConfig) string {
	cfg = cfg.withSize(0, 0)
	if cfg.Title == "" {
		cfg.Title = "P/L"
	}
	if len(items) == 0 {
		return emptySVG(cfg, "No closed positions yet")
	}

	values := make([]float64, len(items))
	for i, it := range items {
		values[i] = it.Value
	}
	px, py, pw, ph := cfg.plotArea()
	lo, hi := valueRange(values)
	toY := func(v float64) float64 { return float64(py+ph) - (v-lo)/(hi-lo)*float64(ph) }

	slot := float64(pw) / float64(len(items))
	barW := math.Min(slot*0.7, 48)
	zeroY := toY(0)

	var sb strings.Builder
	writeFrame(&sb, cfg)
	writeYAxis(&sb, cfg, lo, hi)

	for i, it := range items {
		x := float64(px) + slot*float64(i) + (slot-barW)/2
		top, height := toY(it.Value), zeroY-toY(it.Value)
		if it.Value < 0 {
			top, height = zeroY, toY(it.Value)-zeroY
		}
		fmt.Fprintf(&sb, `<rect class="bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="2"><title>%s</title></rect>`,
			x, top, barW, height, barColor(it), escapeXML(pointTitle([]string{it.Label}, 0, it.Value)))
	}
	fmt.Fprintf(&sb, `<line class="zero" x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="1"/>`,
		px, zeroY, px+pw, zeroY, colorZero)

	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
	}
	writeXLabels(&sb, cfg, labels, len(items), func(i int) float64 {
		return float64(px) + slot*float64(i) + slot/2
	})
	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Bar Chart (Horizontal)
// ════════════════════════════════════════════════════════════════════

// HorizontalBarChart generates an SVG horizontal bar chart.
// Used for the instrument-type split.
func HorizontalBarChart(items []BarItem, cfg ChartConfig) string {
	cfg = cfg.withSize(0, 0)
	cfg.MarginLeft = 120 // wider for labels
	if cfg.Title == "" {
		cfg.Title = "Comparison"
	}
	if len(items) == 0 {
		return emptySVG(cfg, "No closed positions yet")
	}

	px, py, pw, ph := cfg.plotArea()

	maxVal, minVal := 0.0, 0.0
	for _, item := range items {
		maxVal = math.Max(maxVal, item.Value)
		minVal = math.Min(minVal, item.Value)
	}
	valRange := maxVal - minVal
	if valRange < 0.001 {
		valRange = 1
	}
	// Leave room on the right for the value label.
	scale := float64(pw) * 0.8 / valRange

	barH := math.Min(float64(ph)/float64(len(items))*0.7, 30)
	gap := (float64(ph) - barH*float64(len(items))) / float64(len(items)+1)

	var sb strings.Builder
	writeFrame(&sb, cfg)

	zeroX := float64(px) + (-minVal)*scale
	fmt.Fprintf(&sb, `<line class="zero" x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="1"/>`,
		zeroX, py, zeroX, py+ph, colorZero)

	for i, item := range items {
		by := float64(py) + gap + float64(i)*(barH+gap)
		bw := math.Abs(item.Value) * scale
		bx := zeroX
		if item.Value < 0 {
			bx = zeroX - bw
		}

		fmt.Fprintf(&sb, `<rect class="bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="2"/>`,
			bx, by, bw, barH, barColor(item))

		// Label
		fmt.Fprintf(&sb, `<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-5, by+barH/2+4, cfg.FontSize, cfg.TextColor, escapeXML(item.Label))

		// Value
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="%d" fill="%s">%s</text>`,
			math.Max(bx+bw, zeroX)+5, by+barH/2+4, cfg.FontSize, cfg.TextColor,
			escapeXML(utils.FormatINRCompact(decimal.NewFromFloat(item.Value))))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Gauge / Dial Chart (win rate)
// ════════════════════════════════════════════════════════════════════

// GaugeChart generates an SVG semicircular gauge for a 0–100 value.
// A negative value draws an empty gauge reading "N/A".
func GaugeChart(value float64, label string, width int) string {
	if width == 0 {
		width = 200
	}
	height := width/2 + 30

	cx := float64(width) / 2
	cy := float64(width)/2 - 10
	radius := float64(width)/2 - 20

	available := value >= 0
	value = math.Max(0, math.Min(100, value))

	// Color zones
	var color string
	switch {
	case !available:
		color = colorZero
	case value < 40:
		color = colorLoss
	case value < 50:
		color = "#ea580c"
	case value < 60:
		color = "#eab308"
	default:
		color = colorProfit
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" class="gauge" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height)
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="white"/>`, width, height)

	// Background arc
	fmt.Fprintf(&sb, `<path d="M%.1f,%.1f A%.1f,%.1f 0 0,1 %.1f,%.1f" fill="none" stroke="#e0e0e0" stroke-width="12" stroke-linecap="round"/>`,
		cx-radius, cy, radius, radius, cx+radius, cy)

	text := "N/A"
	if available {
		// Angle: 180° (left) to 0° (right)
		angle := math.Pi - (value/100)*math.Pi
		endX := cx + radius*math.Cos(angle)
		endY := cy - radius*math.Sin(angle)
		fmt.Fprintf(&sb, `<path d="M%.1f,%.1f A%.1f,%.1f 0 0,1 %.1f,%.1f" fill="none" stroke="%s" stroke-width="12" stroke-linecap="round"/>`,
			cx-radius, cy, radius, radius, endX, endY, color)

		// Needle
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="2"/>`,
			cx, cy, cx+radius*0.85*math.Cos(angle), cy-radius*0.85*math.Sin(angle))
		text = fmt.Sprintf("%.0f%%", value)
	}
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="5" fill="#333"/>`, cx, cy)

	fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="22" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cx, cy+25, color, text)
	fmt.Fprintf(&sb, `<text x="%.1f" y="%d" font-size="11" fill="#666" text-anchor="middle">%s</text>`,
		cx, height-5, escapeXML(label))

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

// writeXLabels writes at most ~8 evenly spaced category labels.
func writeXLabels(sb *strings.Builder, cfg ChartConfig, labels []string, n int, toX func(int) float64) {
	if len(labels) == 0 {
		return
	}
	_, py, _, ph := cfg.plotArea()
	interval := max(1, (n+7)/8)
	for i := 0; i < len(labels) && i < n; i += interval {
		fmt.Fprintf(sb, `<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			toX(i), py+ph+18, cfg.FontSize-1, cfg.TextColor, escapeXML(labels[i]))
	}
}

func pointTitle(labels []string, i int, v float64) string {
	amount := utils.FormatINR(decimal.NewFromFloat(v))
	if i < len(labels) {
		return labels[i] + ": " + amount
	}
	return amount
}

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" class="empty" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
