package indicator

// EMA — классическая экспоненциальная скользящая по закрытиям.
// Сид на индексе period-1 = среднее первых period закрытий,
// дальше v[i] = close[i]*k + v[i-1]*(1-k), k = 2/(period+1).
func EMA(closes []float64, period int) Series {
	n := len(closes)
	s := Series{Start: period - 1, Values: make([]float64, n)}
	if period <= 0 || n < period {
		// истории меньше периода — вся серия не рассчитана
		s.Start = n
		return s
	}

	var sum float64
	for _, c := range closes[:period] {
		sum += c
	}
	s.Values[period-1] = sum / float64(period)

	k := 2.0 / (float64(period) + 1)
	for i := period; i < n; i++ {
		s.Values[i] = closes[i]*k + s.Values[i-1]*(1-k)
	}
	return s
}
