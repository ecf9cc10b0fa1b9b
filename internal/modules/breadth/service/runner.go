package service

import (
	"context"
	"sort"
	"sync"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"breadth_bot/internal/models"
	"breadth_bot/internal/modules/config"
	"breadth_bot/internal/notify"
	"breadth_bot/pkg/logger"
)

// UniverseSource — список торгуемых инструментов с нужной котировкой.
type UniverseSource interface {
	GetUniverse(ctx context.Context, quoteAsset string) ([]string, error)
}

// ReportWriter — выгрузка итоговых таблиц.
type ReportWriter interface {
	WriteAggregate(rows []models.AggregateRow) (string, error)
	WriteDetail(rows []models.SignalRow) (string, error)
}

// Runner — фан-аут обработчиков по вселенной с потолком параллелизма.
// Ошибка одного инструмента — это скип, а не падение прогона;
// отчёты пишутся один раз, строго после завершения всей пачки.
type Runner struct {
	cfg  *config.Config
	uni  UniverseSource
	proc *Processor
	agg  *Aggregator
	w    ReportWriter
	n    notify.Notifier
	prog *Progress
}

func NewRunner(
	cfg *config.Config,
	uni UniverseSource,
	proc *Processor,
	agg *Aggregator,
	w ReportWriter,
	n notify.Notifier,
	prog *Progress,
) *Runner {
	return &Runner{cfg: cfg, uni: uni, proc: proc, agg: agg, w: w, n: n, prog: prog}
}

func (r *Runner) Run(ctx context.Context) error {
	span := opentracing.GlobalTracer().StartSpan("breadth_run")
	defer span.Finish()
	ctx = opentracing.ContextWithSpan(ctx, span)

	// без вселенной прогона нет — это фатально для всего запуска
	symbols, err := r.uni.GetUniverse(ctx, r.cfg.QuoteAsset)
	if err != nil {
		return errors.Wrap(err, "resolve universe")
	}
	if len(symbols) == 0 {
		return errors.Errorf("empty universe for quote %s", r.cfg.QuoteAsset)
	}
	logger.Info("universe: %d symbols, quote=%s mode=%s concurrency=%d",
		len(symbols), r.cfg.QuoteAsset, r.cfg.Mode, r.cfg.Concurrency)

	// ограничитель параллелизма, чтобы не словить rate limit
	sem := make(chan struct{}, r.cfg.Concurrency)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		details []models.SignalRow
	)
	for _, sym := range symbols {
		sym := sym
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rows, ok, err := r.proc.Process(ctx, sym)
			switch {
			case err != nil:
				r.prog.MarkFailed()
				logger.Error("skip %s: %v", sym, err)
			case !ok:
				r.prog.MarkSkipped()
			default:
				r.prog.MarkProcessed()
				mu.Lock()
				details = append(details, rows...)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// детерминированный порядок в файле вне зависимости от гонки горутин
	sort.Slice(details, func(i, j int) bool {
		if details[i].Symbol != details[j].Symbol {
			return details[i].Symbol < details[j].Symbol
		}
		return details[i].Date < details[j].Date
	})

	aggRows := r.agg.Rows()
	aggPath, err := r.w.WriteAggregate(aggRows)
	if err != nil {
		return errors.Wrap(err, "write aggregate")
	}
	detPath, err := r.w.WriteDetail(details)
	if err != nil {
		return errors.Wrap(err, "write detail")
	}

	logger.Info("done: %s, files: %s %s", r.prog.Summary(), aggPath, detPath)
	r.notifySummary(aggRows)
	return nil
}

func (r *Runner) notifySummary(rows []models.AggregateRow) {
	if r.n == nil {
		return
	}
	if len(rows) == 0 {
		r.n.Sendf("breadth %s: %s, агрегат пустой", r.cfg.Mode, r.prog.Summary())
		return
	}
	last := rows[len(rows)-1]
	r.n.Sendf("breadth %s: %s\n%s: +%d / -%d (%.2f%%)",
		r.cfg.Mode, r.prog.Summary(), last.Date, last.Positive, last.Negative, last.PositivePct)
}
