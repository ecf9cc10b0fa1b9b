package models

// Category — вклад инструмента в дату: выше/ниже порога или нейтрально.
type Category int8

const (
	CategoryNeutral Category = iota
	CategoryPositive
	CategoryNegative
)

// SignalRow — строка детального отчёта: один инструмент, одна дата.
// Какие поля индикаторов заполнены — зависит от режима прогона.
type SignalRow struct {
	Symbol string
	Date   string
	Close  float64

	// режим ema
	EMAFast float64
	EMASlow float64

	// режим extrema: экстремумы по предыдущему окну, текущий бар не входит
	PriorHigh float64
	PriorLow  float64

	Cat Category
}

func (r SignalRow) Positive() bool { return r.Cat == CategoryPositive }

// AggregateRow — итог по дате через всю вселенную.
// Проценты считаются от positive+negative; нейтральные вклады в знаменатель не входят.
type AggregateRow struct {
	Date        string
	Positive    int
	Negative    int
	PositivePct float64
	NegativePct float64
}

func (r AggregateRow) Net() int { return r.Positive - r.Negative }
