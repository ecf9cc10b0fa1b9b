package service

import (
	"sort"
	"sync"

	"breadth_bot/internal/models"
)

type dayCounts struct {
	positive int
	negative int
	neutral  int
}

// Aggregator копит по датам вклады всех инструментов.
// Observe зовут обработчики из разных горутин — всё под мьютексом,
// инкременты коммутативны, итог не зависит от порядка инструментов.
type Aggregator struct {
	mu   sync.Mutex
	days map[string]*dayCounts
}

func NewAggregator() *Aggregator {
	return &Aggregator{days: make(map[string]*dayCounts)}
}

func (a *Aggregator) Observe(date string, cat models.Category) {
	a.mu.Lock()
	defer a.mu.Unlock()

	d := a.days[date]
	if d == nil {
		d = &dayCounts{}
		a.days[date] = d
	}
	switch cat {
	case models.CategoryPositive:
		d.positive++
	case models.CategoryNegative:
		d.negative++
	default:
		d.neutral++
	}
}

// Rows — итог по датам, отсортированный по возрастанию.
// Даты без единого оценённого инструмента (positive+negative == 0)
// в отчёт не попадают — никаких NaN и 0/0.
func (a *Aggregator) Rows() []models.AggregateRow {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]models.AggregateRow, 0, len(a.days))
	for date, d := range a.days {
		total := d.positive + d.negative
		if total == 0 {
			continue
		}
		out = append(out, models.AggregateRow{
			Date:        date,
			Positive:    d.positive,
			Negative:    d.negative,
			PositivePct: float64(d.positive) / float64(total) * 100,
			NegativePct: float64(d.negative) / float64(total) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
