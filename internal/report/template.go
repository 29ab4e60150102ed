package report

// DashboardTemplate is the HTML template for the P/L dashboard.
// The stylesheet is inlined from the web package so the page is a single
// self-contained file (also what the PDF engines print).
const DashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="alternate" type="application/rss+xml" title="{{.Title}} daily P/L" href="feed.xml">
<style>
{{.Stylesheet}}
</style>
</head>
<body>

<header class="header">
  <div class="header-left">
    <h1 class="title">{{.Title}}</h1>
    <p class="muted">{{.Trades}} trades · {{.ClosedPositions}} closed positions · {{.TradingDays}} trading days</p>
  </div>
  <div class="header-right muted">
    <p>Generated {{.GeneratedAt}}</p>
    {{- if .Author}}<p>{{.Author}}</p>{{end}}
  </div>
</header>

<section class="banner" id="kpis">
  {{- range .KPIs}}
  <div class="kpi kpi-{{.Key}} {{.Class}}" data-kpi="{{.Key}}">
    <p class="label">{{.Label}}</p>
    <p class="value">{{.Value}}</p>
  </div>
  {{- end}}
</section>

<section class="charts charts-top">
  <div class="chart" id="chart-cumulative">{{.CumulativeChart}}</div>
  <div class="chart" id="chart-daily">{{.DailyChart}}</div>
  <div class="chart" id="chart-weekday">{{.WeekdayChart}}</div>
</section>

<section class="charts charts-bottom">
  <div class="chart" id="chart-monthly">{{.MonthlyChart}}</div>
  <div class="chart" id="chart-instruments">{{.InstrumentChart}}</div>
  <div class="chart gauge-box" id="chart-winrate">{{.WinRateGauge}}</div>
</section>

{{- if .Extremes.HasTradingDay}}
<section class="extremes" id="extremes">
  <div><span class="muted">Best day</span> <strong>{{.Extremes.BestDay}}</strong> <span class="profit">{{.Extremes.BestDayNet}}</span></div>
  <div><span class="muted">Worst day</span> <strong>{{.Extremes.WorstDay}}</strong> <span class="loss">{{.Extremes.WorstDayNet}}</span></div>
  <div><span class="muted">Longest streaks</span> <strong>{{.Extremes.WinStreak}}W / {{.Extremes.LossStreak}}L</strong></div>
  <div><span class="muted">Max drawdown</span> <strong class="loss">{{.Extremes.MaxDrawdown}}</strong></div>
</section>
{{- end}}

<section class="tables">
  <div class="table-box">
    <h2>Symbol-wise Performance</h2>
    <table id="symbols">
      <thead><tr><th>Symbol</th><th>Instrument</th><th class="num">Net P/L</th><th class="num">Days</th></tr></thead>
      <tbody>
      {{- range .Symbols}}
        <tr><td>{{.Symbol}}</td><td>{{.Instrument}}</td><td class="num {{.Class}}">{{.Net}}</td><td class="num">{{.Days}}</td></tr>
      {{- else}}
        <tr><td colspan="4" class="muted">No closed positions</td></tr>
      {{- end}}
      </tbody>
    </table>
  </div>

  <div class="table-box wide">
    <h2>Recent Trades</h2>
    <table id="recent-trades">
      <thead><tr><th>Time</th><th>Symbol</th><th>Type</th><th>Product</th><th class="num">Price</th><th class="num">Qty</th><th class="num">Value</th></tr></thead>
      <tbody>
      {{- range .Recent}}
        <tr><td>{{.Time}}</td><td>{{.Symbol}}</td><td class="{{.SideClass}}">{{.TradeType}}</td><td>{{.ProductType}}</td><td class="num">{{.Price}}</td><td class="num">{{.Qty}}</td><td class="num">{{.Value}}</td></tr>
      {{- else}}
        <tr><td colspan="7" class="muted">No trades</td></tr>
      {{- end}}
      </tbody>
    </table>
    {{- if .RecentHidden}}
    <p class="muted">{{.RecentHidden}} more trades not shown</p>
    {{- end}}
  </div>
</section>

<footer class="developer">
  <div class="developer_item" id="last-updated">{{.Footer}}</div>
  {{- if .Author}}
  <div class="developer_item">Developed by {{.Author}}</div>
  {{- end}}
</footer>

</body>
</html>
`
