package utils

import (
	"errors"
	"testing"
	"time"
)

func TestNowIST(t *testing.T) {
	now := NowIST()
	if now.Location() != IST {
		t.Errorf("NowIST location = %v, want IST", now.Location())
	}
}

func TestLoadLocation(t *testing.T) {
	for _, name := range []string{"", "IST", "Asia/Kolkata"} {
		loc, err := LoadLocation(name)
		if err != nil {
			t.Fatalf("LoadLocation(%q): %v", name, err)
		}
		if loc != IST {
			t.Errorf("LoadLocation(%q) = %v, want IST", name, loc)
		}
	}
	if _, err := LoadLocation("Mars/Olympus_Mons"); err == nil {
		t.Error("LoadLocation with unknown zone should fail")
	}
}

func TestParseDayFirst(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"05-03-2024 10:15:30", time.Date(2024, 3, 5, 10, 15, 30, 0, IST)},
		{"05/03/2024 10:15:30", time.Date(2024, 3, 5, 10, 15, 30, 0, IST)},
		{"05-Mar-2024 09:20:00", time.Date(2024, 3, 5, 9, 20, 0, 0, IST)},
		{"05-03-2024 14:05", time.Date(2024, 3, 5, 14, 5, 0, 0, IST)},
		{" 12/11/2023 ", time.Date(2023, 11, 12, 0, 0, 0, 0, IST)},
		{"2024-03-05 10:15:30", time.Date(2024, 3, 5, 10, 15, 30, 0, IST)},
		{"5-3-2024 9:20:11", time.Date(2024, 3, 5, 9, 20, 11, 0, IST)},
		{"5/3/2024 9:20:11", time.Date(2024, 3, 5, 9, 20, 11, 0, IST)},
		{"5-Mar-2024 9:20:11", time.Date(2024, 3, 5, 9, 20, 11, 0, IST)},
		{"5-3-2024 14:05", time.Date(2024, 3, 5, 14, 5, 0, 0, IST)},
		{"5-3-2024", time.Date(2024, 3, 5, 0, 0, 0, 0, IST)},
		{"05-03-2024 09:20:11.250", time.Date(2024, 3, 5, 9, 20, 11, 250_000_000, IST)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDayFirst(tt.input, nil, IST)
			if err != nil {
				t.Fatalf("ParseDayFirst(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDayFirst(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDayFirstMalformed(t *testing.T) {
	for _, input := range []string{"", "yesterday", "31-02-2024 10:00:00", "2024/13/01"} {
		_, err := ParseDayFirst(input, nil, IST)
		if !errors.Is(err, ErrNoLayoutMatched) {
			t.Errorf("ParseDayFirst(%q) error = %v, want ErrNoLayoutMatched", input, err)
		}
	}
}

func TestParseDayFirstCustomLayouts(t *testing.T) {
	got, err := ParseDayFirst("2024.03.05", []string{"2006.01.02"}, time.UTC)
	if err != nil {
		t.Fatalf("ParseDayFirst custom layout: %v", err)
	}
	if got.Day() != 5 || got.Month() != time.March {
		t.Errorf("ParseDayFirst custom layout = %v", got)
	}
}

func TestParseDateIST(t *testing.T) {
	d, err := ParseDateIST("2026-02-19")
	if err != nil {
		t.Fatalf("ParseDateIST failed: %v", err)
	}
	if d.Year() != 2026 || d.Month() != 2 || d.Day() != 19 {
		t.Errorf("ParseDateIST = %v, want 2026-02-19", d)
	}
}

func TestFormatDateIST(t *testing.T) {
	d := time.Date(2026, 2, 19, 10, 30, 0, 0, IST)
	result := FormatDateIST(d)
	if result != "2026-02-19" {
		t.Errorf("FormatDateIST = %s, want 2026-02-19", result)
	}
}

func TestFormatDateTimeIST(t *testing.T) {
	d := time.Date(2026, 2, 19, 15, 4, 5, 0, IST)
	if got := FormatDateTimeIST(d); got != "19 Feb 2026, 03:04:05 PM IST" {
		t.Errorf("FormatDateTimeIST = %s", got)
	}
}
