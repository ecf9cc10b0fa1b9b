package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"breadth_bot/internal/models"
	"breadth_bot/internal/modules/config"
)

// Writer пишет две плоские таблицы прогона: дневной агрегат и детализацию
// по инструментам. Набор колонок зависит от режима индикаторов.
type Writer struct {
	dir     string
	mode    string
	emaFast int
	emaSlow int
}

func NewWriter(cfg *config.Config) *Writer {
	return &Writer{
		dir:     cfg.OutDir,
		mode:    cfg.Mode,
		emaFast: cfg.EMAFast,
		emaSlow: cfg.EMASlow,
	}
}

func (w *Writer) WriteAggregate(rows []models.AggregateRow) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("breadth_%s_daily.csv", w.mode))

	recs := make([][]string, 0, len(rows)+1)
	if w.mode == config.ModeExtrema {
		recs = append(recs, []string{"date", "new_high_count", "new_low_count", "net", "high_pct", "low_pct"})
		for _, r := range rows {
			recs = append(recs, []string{
				r.Date,
				strconv.Itoa(r.Positive),
				strconv.Itoa(r.Negative),
				strconv.Itoa(r.Net()),
				pct(r.PositivePct),
				pct(r.NegativePct),
			})
		}
	} else {
		recs = append(recs, []string{"date", "above_count", "below_count", "above_pct", "below_pct"})
		for _, r := range rows {
			recs = append(recs, []string{
				r.Date,
				strconv.Itoa(r.Positive),
				strconv.Itoa(r.Negative),
				pct(r.PositivePct),
				pct(r.NegativePct),
			})
		}
	}
	return path, w.writeFile(path, recs)
}

func (w *Writer) WriteDetail(rows []models.SignalRow) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("breadth_%s_symbols.csv", w.mode))

	recs := make([][]string, 0, len(rows)+1)
	if w.mode == config.ModeExtrema {
		recs = append(recs, []string{"symbol", "date", "close", "prior_high", "prior_low", "new_high"})
		for _, r := range rows {
			recs = append(recs, []string{
				r.Symbol, r.Date, fnum(r.Close), fnum(r.PriorHigh), fnum(r.PriorLow), flag(r.Positive()),
			})
		}
	} else {
		recs = append(recs, []string{
			"symbol", "date", "close",
			fmt.Sprintf("ema_%d", w.emaFast),
			fmt.Sprintf("ema_%d", w.emaSlow),
			"above_both",
		})
		for _, r := range rows {
			recs = append(recs, []string{
				r.Symbol, r.Date, fnum(r.Close), fnum(r.EMAFast), fnum(r.EMASlow), flag(r.Positive()),
			})
		}
	}
	return path, w.writeFile(path, recs)
}

func (w *Writer) writeFile(path string, recs [][]string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return errors.Wrap(err, "mkdir out dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create")
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(recs); err != nil {
		return errors.Wrap(err, "write csv")
	}
	return cw.Error()
}

func pct(v float64) string { return fmt.Sprintf("%.2f", v) }

func fnum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
