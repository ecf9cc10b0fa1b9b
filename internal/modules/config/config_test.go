package config

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.QuoteAsset != "USDT" {
		t.Fatalf("quote asset: got %q", cfg.QuoteAsset)
	}
	if cfg.Mode != ModeEMA {
		t.Fatalf("mode: got %q", cfg.Mode)
	}
	if cfg.EMAFast != 50 || cfg.EMASlow != 200 {
		t.Fatalf("ema periods: got %d/%d", cfg.EMAFast, cfg.EMASlow)
	}
	if cfg.Binance.Timeout != 15*time.Second {
		t.Fatalf("timeout: got %s", cfg.Binance.Timeout)
	}
	want := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.StartTime.Equal(want) {
		t.Fatalf("start time: got %s", cfg.StartTime)
	}
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("QUOTE_ASSET", "BTC")
	t.Setenv("MODE", ModeExtrema)
	t.Setenv("EXTREMA_WINDOW", "30")
	t.Setenv("CONCURRENCY", "2")
	t.Setenv("KLINES_LIMIT", "5000") // выше потолка страницы — должен ужаться
	t.Setenv("BYPASS_PROXY", "1")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.QuoteAsset != "BTC" {
		t.Fatalf("quote asset override: got %q", cfg.QuoteAsset)
	}
	if cfg.Mode != ModeExtrema || cfg.Window != 30 {
		t.Fatalf("mode/window: got %q/%d", cfg.Mode, cfg.Window)
	}
	if cfg.Concurrency != 2 {
		t.Fatalf("concurrency: got %d", cfg.Concurrency)
	}
	if cfg.KlinesLimit != 1000 {
		t.Fatalf("klines limit clamp: got %d", cfg.KlinesLimit)
	}
	if !cfg.Binance.BypassProxy {
		t.Fatal("bypass proxy not set")
	}
}

func TestNewConfigRejectsBadMode(t *testing.T) {
	t.Setenv("MODE", "sma")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestNewConfigRejectsInvertedEMA(t *testing.T) {
	t.Setenv("EMA_FAST", "200")
	t.Setenv("EMA_SLOW", "50")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for fast >= slow")
	}
}

func TestNewConfigRejectsBadStartDate(t *testing.T) {
	t.Setenv("START_DATE", "01.02.2021")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for bad start date")
	}
}
