package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"breadth_bot/internal/modules/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Binance.BaseURL = srv.URL
	cfg.Binance.Timeout = 5 * time.Second
	cfg.StartTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewClient(cfg)
}

func TestGetKlinesNormalizes(t *testing.T) {
	// 2024-01-02 приходит дважды (второй выигрывает) и раньше 2024-01-01;
	// 2023-12-31 — до start_date и должен отфильтроваться
	body := `[
		[1704153600000, "42000", "43000", "41000", "42500.5", "10", 1704239999999],
		[1703980800000, "40000", "40500", "39500", "40100", "7", 1704067199999],
		[1704067200000, "41000", "41500", "40500", "41200", "8", 1704153599999],
		[1704153600000, "42000", "43000", "41000", "42600", "10", 1704239999999]
	]`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/klines" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "BTCUSDT" {
			t.Fatalf("symbol param: %s", got)
		}
		_, _ = w.Write([]byte(body))
	})

	bars, err := c.GetKlines(context.Background(), "BTCUSDT", "1d", 500)
	if err != nil {
		t.Fatalf("GetKlines: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("want 2 bars after cutoff+collapse, got %d", len(bars))
	}
	if bars[0].Date() != "2024-01-01" || bars[1].Date() != "2024-01-02" {
		t.Fatalf("order: %s, %s", bars[0].Date(), bars[1].Date())
	}
	if bars[1].Close != 42600 {
		t.Fatalf("duplicate date must collapse to last record, got close=%v", bars[1].Close)
	}
}

func TestGetKlinesTransportError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	})

	_, err := c.GetKlines(context.Background(), "BTCUSDT", "1d", 10)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("want TransportError, got %v", err)
	}
}

func TestGetKlinesDecodeError(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"code":-1121`,
		"short row":       `[[1704067200000]]`,
		"close not a str": `[[1704067200000, "1", "1", "1", 42]]`,
	}
	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := c.GetKlines(context.Background(), "BTCUSDT", "1d", 10)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("want DecodeError, got %v", err)
			}
		})
	}
}

func TestGetUniverseFilters(t *testing.T) {
	body := `{"symbols":[
		{"symbol":"ETHUSDT","status":"TRADING","quoteAsset":"USDT","isSpotTradingAllowed":true},
		{"symbol":"BTCUSDT","status":"TRADING","quoteAsset":"USDT","isSpotTradingAllowed":true},
		{"symbol":"HALTUSDT","status":"BREAK","quoteAsset":"USDT","isSpotTradingAllowed":true},
		{"symbol":"MARGINUSDT","status":"TRADING","quoteAsset":"USDT","isSpotTradingAllowed":false},
		{"symbol":"ETHBTC","status":"TRADING","quoteAsset":"BTC","isSpotTradingAllowed":true},
		{"symbol":"BTCUSDT","status":"TRADING","quoteAsset":"USDT","isSpotTradingAllowed":true}
	]}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/exchangeInfo" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(body))
	})

	syms, err := c.GetUniverse(context.Background(), "USDT")
	if err != nil {
		t.Fatalf("GetUniverse: %v", err)
	}
	want := []string{"BTCUSDT", "ETHUSDT"}
	if len(syms) != len(want) {
		t.Fatalf("want %v, got %v", want, syms)
	}
	for i := range want {
		if syms[i] != want[i] {
			t.Fatalf("want %v, got %v", want, syms)
		}
	}
}

func TestGetUniverseBadShape(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"timezone":"UTC"}`))
	})
	_, err := c.GetUniverse(context.Background(), "USDT")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("want DecodeError on missing symbols, got %v", err)
	}
}
