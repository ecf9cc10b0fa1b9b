package service

import (
	"context"
	"errors"
	"time"

	"github.com/opentracing/opentracing-go"
	pkgerrors "github.com/pkg/errors"

	"breadth_bot/internal/indicator"
	"breadth_bot/internal/models"
	binancesvc "breadth_bot/internal/modules/binance_client/service"
	"breadth_bot/internal/modules/config"
)

// HistorySource — источник дневной истории одного инструмента.
type HistorySource interface {
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]models.Bar, error)
}

// Processor обрабатывает один инструмент: история → индикаторы →
// строки детального отчёта + вклад в дневной агрегат.
type Processor struct {
	src HistorySource
	agg *Aggregator
	set IndicatorSet

	interval string
	limit    int
}

func NewProcessor(src HistorySource, agg *Aggregator, set IndicatorSet, cfg *config.Config) *Processor {
	return &Processor{
		src:      src,
		agg:      agg,
		set:      set,
		interval: cfg.Interval,
		limit:    cfg.KlinesLimit,
	}
}

// Process возвращает (rows, ok, err).
// ok=false без ошибки — штатный пропуск: истории меньше минимума,
// инструмент не даёт ни строк, ни вкладов в агрегат.
func (p *Processor) Process(ctx context.Context, symbol string) ([]models.SignalRow, bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "process_symbol")
	span.SetTag("symbol", symbol)
	defer span.Finish()

	bars, err := p.fetch(ctx, symbol)
	if err != nil {
		return nil, false, pkgerrors.Wrap(err, symbol)
	}
	if len(bars) < p.set.MinBars() {
		return nil, false, nil
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	var rows []models.SignalRow
	if p.set.Mode == config.ModeExtrema {
		rows = p.extremaRows(symbol, bars, closes)
	} else {
		rows = p.emaRows(symbol, bars, closes)
	}

	for _, r := range rows {
		p.agg.Observe(r.Date, r.Cat)
	}
	return rows, true, nil
}

// один повтор при транспортной ошибке — от разовых обрывов;
// DecodeError не ретраим, повторный вызов вернёт тот же мусор
func (p *Processor) fetch(ctx context.Context, symbol string) ([]models.Bar, error) {
	bars, err := p.src.GetKlines(ctx, symbol, p.interval, p.limit)
	if err == nil {
		return bars, nil
	}
	var te *binancesvc.TransportError
	if !errors.As(err, &te) {
		return nil, err
	}
	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return p.src.GetKlines(ctx, symbol, p.interval, p.limit)
}

// close выше обеих EMA → positive, иначе negative.
// Строки идут только с момента готовности медленной EMA.
func (p *Processor) emaRows(symbol string, bars []models.Bar, closes []float64) []models.SignalRow {
	fast := indicator.EMA(closes, p.set.EMAFast)
	slow := indicator.EMA(closes, p.set.EMASlow)

	rows := make([]models.SignalRow, 0, len(bars)-slow.Start)
	for i := slow.Start; i < len(bars); i++ {
		fv, okF := fast.At(i)
		sv, okS := slow.At(i)
		if !okF || !okS {
			continue
		}
		cat := models.CategoryNegative
		if closes[i] > fv && closes[i] > sv {
			cat = models.CategoryPositive
		}
		rows = append(rows, models.SignalRow{
			Symbol:  symbol,
			Date:    bars[i].Date(),
			Close:   closes[i],
			EMAFast: fv,
			EMASlow: sv,
			Cat:     cat,
		})
	}
	return rows
}

// новый максимум окна → positive, новый минимум → negative, иначе neutral.
// Пока окно не заполнено, бар не оценивается вовсе.
func (p *Processor) extremaRows(symbol string, bars []models.Bar, closes []float64) []models.SignalRow {
	hi, lo := indicator.PriorExtrema(closes, p.set.Window)

	rows := make([]models.SignalRow, 0, len(bars)-hi.Start)
	for i := hi.Start; i < len(bars); i++ {
		hv, okH := hi.At(i)
		lv, okL := lo.At(i)
		if !okH || !okL {
			continue
		}
		cat := models.CategoryNeutral
		switch {
		case closes[i] > hv:
			cat = models.CategoryPositive
		case closes[i] < lv:
			cat = models.CategoryNegative
		}
		rows = append(rows, models.SignalRow{
			Symbol:    symbol,
			Date:      bars[i].Date(),
			Close:     closes[i],
			PriorHigh: hv,
			PriorLow:  lv,
			Cat:       cat,
		})
	}
	return rows
}
