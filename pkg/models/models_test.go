package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ── Date Tests ──

func TestDateOfAndString(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	ts := time.Date(2024, 3, 5, 23, 59, 0, 0, ist)
	d := DateOf(ts)
	if d != (Date{2024, time.March, 5}) {
		t.Errorf("DateOf: got %+v", d)
	}
	if d.String() != "2024-03-05" {
		t.Errorf("String: got %q, want %q", d.String(), "2024-03-05")
	}
	if d.Weekday() != time.Tuesday {
		t.Errorf("Weekday: got %v, want Tuesday", d.Weekday())
	}
}

func TestDateOrdering(t *testing.T) {
	tests := []struct {
		a, b   Date
		before bool
	}{
		{Date{2024, 3, 5}, Date{2024, 3, 6}, true},
		{Date{2024, 2, 28}, Date{2024, 3, 1}, true},
		{Date{2023, 12, 31}, Date{2024, 1, 1}, true},
		{Date{2024, 3, 5}, Date{2024, 3, 5}, false},
		{Date{2024, 3, 6}, Date{2024, 3, 5}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Before(tt.b); got != tt.before {
			t.Errorf("%v.Before(%v) = %v, want %v", tt.a, tt.b, got, tt.before)
		}
	}
	if !(Date{2024, 3, 6}).After(Date{2024, 3, 5}) {
		t.Error("After should be true for a later date")
	}
}

func TestDateJSONRoundtrip(t *testing.T) {
	d := Date{2024, time.March, 5}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal(Date) error: %v", err)
	}
	if string(data) != `"2024-03-05"` {
		t.Errorf("json: got %s", data)
	}
	var decoded Date
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal(Date) error: %v", err)
	}
	if decoded != d {
		t.Errorf("decoded: got %v, want %v", decoded, d)
	}

	zero, _ := json.Marshal(Date{})
	if string(zero) != "null" {
		t.Errorf("zero Date json: got %s, want null", zero)
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("05-03-2024"); err == nil {
		t.Error("ParseDate should reject day-first input")
	}
}

// ── Ratio Tests ──

func TestRatioJSON(t *testing.T) {
	tests := []struct {
		name  string
		ratio Ratio
		want  string
	}{
		{"valid", NewRatio(decimal.RequireFromString("0.67")), `"0.67"`},
		{"unavailable", Ratio{}, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ratio)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}
			var back Ratio
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatal(err)
			}
			if back.Valid != tt.ratio.Valid || !back.Value.Equal(tt.ratio.Value) {
				t.Errorf("roundtrip: got %+v, want %+v", back, tt.ratio)
			}
		})
	}
}

func TestRatioString(t *testing.T) {
	if got := (Ratio{}).String(); got != "N/A" {
		t.Errorf("unavailable String: got %q", got)
	}
	if got := NewRatio(decimal.NewFromInt(1)).String(); got != "1" {
		t.Errorf("valid String: got %q", got)
	}
}

// ── Dashboard Tests ──

func TestDashboardYAML(t *testing.T) {
	db := Dashboard{
		DataAsOf: Date{2024, 3, 5},
		KPIs: KPIs{
			GrossPnL: decimal.RequireFromString("70.5"),
			WinRate:  NewRatio(decimal.NewFromInt(1)),
		},
	}
	out, err := yaml.Marshal(db)
	if err != nil {
		t.Fatalf("yaml.Marshal(Dashboard) error: %v", err)
	}

	var generic map[string]interface{}
	if err := yaml.Unmarshal(out, &generic); err != nil {
		t.Fatalf("yaml.Unmarshal error: %v", err)
	}
	if generic["data_as_of"] != "2024-03-05" {
		t.Errorf("data_as_of: got %v", generic["data_as_of"])
	}
	kpis, ok := generic["kpis"].(map[string]interface{})
	if !ok {
		t.Fatalf("kpis: got %T", generic["kpis"])
	}
	if kpis["gross_pnl"] != "70.5" {
		t.Errorf("gross_pnl: got %v (%T)", kpis["gross_pnl"], kpis["gross_pnl"])
	}
	if kpis["pnl_ratio"] != nil {
		t.Errorf("pnl_ratio: got %v, want nil", kpis["pnl_ratio"])
	}
}
