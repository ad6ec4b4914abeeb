package service

import (
	"strings"
	"testing"
	"time"

	"signal_bot/internal/history"
	"signal_bot/internal/models"
)

func TestFormatDecision(t *testing.T) {
	dec := models.Decision{
		Direction:  models.DirectionBuy,
		Confidence: 0.96,
		Reason:     "red-line",
		Pair:       "EURUSD_otc",
		Time:       time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
	}
	got := formatDecision(dec)
	for _, want := range []string{"EURUSD_otc", "BUY", "96.00%", "2026-08-01 12:30:00"} {
		if !strings.Contains(got, want) {
			t.Fatalf("formatDecision: %q not found in %q", want, got)
		}
	}
}

func TestFormatHistoryEmpty(t *testing.T) {
	got := formatHistory(nil)
	if !strings.Contains(got, "📭") {
		t.Fatalf("empty history: got %q", got)
	}
}

func TestFormatHistoryEntries(t *testing.T) {
	entries := []history.Entry{
		{
			UserID: 7,
			Decision: models.Decision{
				Direction:  models.DirectionSell,
				Confidence: 0.91,
				Pair:       "BTCUSD_otc",
				Time:       time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
			},
		},
	}
	got := formatHistory(entries)
	for _, want := range []string{"BTCUSD_otc", "SELL", "91.00%", "02.08 09:00"} {
		if !strings.Contains(got, want) {
			t.Fatalf("formatHistory: %q not found in %q", want, got)
		}
	}
}

func TestCatalogDefaults(t *testing.T) {
	c := LoadCatalog()
	if len(c.Forex) == 0 || len(c.Crypto) == 0 {
		t.Fatalf("catalog defaults missing: %+v", c)
	}
	if !c.Contains("EURUSD_otc") {
		t.Fatalf("expected EURUSD_otc in default catalog")
	}
	if c.Contains("NOPE_otc") {
		t.Fatalf("unexpected pair reported as known")
	}
}
