package service

import (
	"context"
	"io"
	"net/http"
	"sort"

	"github.com/bytedance/sonic"
)

type exchangeSymbol struct {
	Symbol               string `json:"symbol"`
	Status               string `json:"status"`
	QuoteAsset           string `json:"quoteAsset"`
	IsSpotTradingAllowed bool   `json:"isSpotTradingAllowed"`
}

// GetUniverse — торгуемые спотовые символы с нужной котировкой из /api/v3/exchangeInfo.
// Список определяется один раз на прогон; ретраев здесь нет — это забота вызывающего.
func (c *Client) GetUniverse(ctx context.Context, quoteAsset string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/v3/exchangeInfo", nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, transportf("http %d: %s", resp.StatusCode, string(b))
	}

	var payload struct {
		Symbols []exchangeSymbol `json:"symbols"`
	}
	if err := sonic.Unmarshal(b, &payload); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if payload.Symbols == nil {
		return nil, decodef("exchangeInfo: no symbols field")
	}

	seen := make(map[string]struct{}, len(payload.Symbols))
	out := make([]string, 0, len(payload.Symbols))
	for _, s := range payload.Symbols {
		if s.Status != "TRADING" || !s.IsSpotTradingAllowed || s.QuoteAsset != quoteAsset {
			continue
		}
		if _, ok := seen[s.Symbol]; ok {
			continue
		}
		seen[s.Symbol] = struct{}{}
		out = append(out, s.Symbol)
	}
	sort.Strings(out)
	return out, nil
}
