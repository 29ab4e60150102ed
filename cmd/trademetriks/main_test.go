package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/seenimoa/trademetriks/api"
	"github.com/seenimoa/trademetriks/internal/analytics"
	"github.com/seenimoa/trademetriks/internal/config"
	"github.com/seenimoa/trademetriks/internal/report"
	"github.com/seenimoa/trademetriks/internal/trace"
	"github.com/seenimoa/trademetriks/internal/tradebook"
	"github.com/seenimoa/trademetriks/pkg/models"
)

// One closed SBIN round trip on Mon 04-Mar-2024, +150.
const marchTradebook = `,tradePrice,productType,tradedQty,symbol,orderDateTime,tradeValue,side,orderType
0,700,INTRADAY,10,NSE:SBIN-EQ,04-03-2024 09:20:00,7000,1,2
1,715,INTRADAY,10,NSE:SBIN-EQ,04-03-2024 14:30:00,7150,-1,2
`

func asOfCommand(t *testing.T, value string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "serve"}
	cmd.Flags().String("as-of", "", "")
	if value != "" {
		if err := cmd.Flags().Set("as-of", value); err != nil {
			t.Fatalf("set --as-of: %v", err)
		}
	}
	return cmd
}

func marchServer() *api.Server {
	return api.NewServer(&config.Config{}, func(ctx context.Context) ([]models.Trade, error) {
		return tradebook.Read(ctx, strings.NewReader(marchTradebook), tradebook.DefaultOptions())
	})
}

func TestParseFormats(t *testing.T) {
	got, err := parseFormats([]string{"html", "PDF", "html", "txt"})
	if err != nil {
		t.Fatalf("parseFormats: %v", err)
	}
	want := []report.Format{report.FormatHTML, report.FormatPDF, report.FormatText}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := parseFormats([]string{"html", "xlsx"}); !errors.Is(err, report.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"render", "summary", "serve", "config", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "log-level", "trades", "as-of"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

// ════════════════════════════════════════════════════════════════════
// serve --as-of
// ════════════════════════════════════════════════════════════════════

func TestApplyAsOfPinsServerMonth(t *testing.T) {
	srv := marchServer()
	if err := applyAsOf(srv, asOfCommand(t, "2024-03-31")); err != nil {
		t.Fatalf("applyAsOf: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/kpis", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data models.KPIs `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Month != "March" || !resp.Data.MonthHasTrades {
		t.Errorf("month = %q (has trades %v), want March with trades", resp.Data.Month, resp.Data.MonthHasTrades)
	}
	if !resp.Data.MonthPnL.Equal(decimal.NewFromInt(150)) {
		t.Errorf("month pnl = %s, want 150", resp.Data.MonthPnL)
	}
}

func TestApplyAsOfUnsetKeepsClock(t *testing.T) {
	if err := applyAsOf(marchServer(), asOfCommand(t, "")); err != nil {
		t.Errorf("applyAsOf without flag: %v", err)
	}
}

func TestApplyAsOfInvalid(t *testing.T) {
	err := applyAsOf(marchServer(), asOfCommand(t, "31-03-2024"))
	if !errors.Is(err, analytics.ErrBadAsOf) {
		t.Errorf("expected ErrBadAsOf, got %v", err)
	}
}

// ════════════════════════════════════════════════════════════════════
// flush
// ════════════════════════════════════════════════════════════════════

func TestFlushExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	if err := trace.Init(trace.Options{Enabled: true, Writer: &buf, Version: "test"}); err != nil {
		t.Fatalf("trace.Init: %v", err)
	}
	_, span := trace.StartSpan(context.Background(), "cmd.render")
	span.End()

	flush()
	if !strings.Contains(buf.String(), "cmd.render") {
		t.Errorf("flush did not export the buffered span: %q", buf.String())
	}
	if trace.Enabled() {
		t.Error("tracing should be disabled after flush")
	}
}
