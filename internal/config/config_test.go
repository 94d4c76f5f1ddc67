package config

import (
	"testing"
	"time"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	t.Run("http", func(t *testing.T) {
		if cfg.HTTP.Addr != ":8080" {
			t.Errorf("http addr = %q, want :8080", cfg.HTTP.Addr)
		}
	})

	t.Run("nurture", func(t *testing.T) {
		if cfg.Nurture.Interval != 5*time.Minute {
			t.Errorf("interval = %v, want 5m", cfg.Nurture.Interval)
		}
		if cfg.Nurture.Workers != 8 {
			t.Errorf("workers = %d, want 8", cfg.Nurture.Workers)
		}
		if cfg.Nurture.Tier1After != 48*time.Hour {
			t.Errorf("tier1_after = %v, want 48h", cfg.Nurture.Tier1After)
		}
		if cfg.Nurture.Tier2After != 120*time.Hour {
			t.Errorf("tier2_after = %v, want 120h", cfg.Nurture.Tier2After)
		}
		if cfg.Nurture.Tier3After != 168*time.Hour {
			t.Errorf("tier3_after = %v, want 168h", cfg.Nurture.Tier3After)
		}
		if cfg.Nurture.MetricsAddr != ":9091" {
			t.Errorf("metrics_addr = %q, want :9091", cfg.Nurture.MetricsAddr)
		}
	})

	t.Run("quote", func(t *testing.T) {
		if cfg.Quote.ValidityDays != 30 {
			t.Errorf("validity_days = %d, want 30", cfg.Quote.ValidityDays)
		}
		if cfg.Quote.ConfirmBaseURL == "" {
			t.Error("confirm_base_url empty")
		}
	})
}
