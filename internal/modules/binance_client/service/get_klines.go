package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"breadth_bot/internal/models"
)

// одна страница /api/v3/klines; пагинации нет — больше истории за вызов не взять
const maxKlinesLimit = 1000

// GetKlines — дневные свечи одного инструмента.
// Формат строки kline: [openTime, o, h, l, c, vol, closeTime, ...] — нам нужны 0 и 4.
// Бары фильтруются по start_date, схлопываются по календарной дате (UTC)
// и сортируются по времени: порядок и дубли у источника не гарантированы.
func (c *Client) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]models.Bar, error) {
	if limit <= 0 || limit > maxKlinesLimit {
		limit = maxKlinesLimit
	}

	u := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		c.base, url.QueryEscape(symbol), url.QueryEscape(interval), limit,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
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

	var rows [][]any
	if err := sonic.Unmarshal(b, &rows); err != nil {
		return nil, &DecodeError{Err: err}
	}

	byDate := make(map[string]models.Bar, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			return nil, decodef("kline row too short: %d fields", len(row))
		}
		tsMs, ok := row[0].(float64)
		if !ok {
			return nil, decodef("kline open time: unexpected %T", row[0])
		}
		closeStr, ok := row[4].(string)
		if !ok {
			return nil, decodef("kline close: unexpected %T", row[4])
		}
		closePx, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			return nil, decodef("kline close %q: %v", closeStr, err)
		}
		if closePx <= 0 {
			continue
		}

		bar := models.Bar{OpenTime: time.UnixMilli(int64(tsMs)).UTC(), Close: closePx}
		if bar.OpenTime.Before(c.cfg.StartTime) {
			continue
		}
		// дубль или нарушение порядка — считаем одной датой, последняя запись выигрывает
		byDate[bar.Date()] = bar
	}

	out := make([]models.Bar, 0, len(byDate))
	for _, bar := range byDate {
		out = append(out, bar)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpenTime.Before(out[j].OpenTime) })
	return out, nil
}
