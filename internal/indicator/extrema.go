package indicator

// PriorExtrema — максимум и минимум по предыдущим window закрытиям,
// текущий бар в окно не входит: флаг пробоя на i не должен зависеть от close[i].
// Наивный пересчёт O(window) на шаг — на дневках этого достаточно.
func PriorExtrema(closes []float64, window int) (hi Series, lo Series) {
	n := len(closes)
	hi = Series{Start: window, Values: make([]float64, n)}
	lo = Series{Start: window, Values: make([]float64, n)}
	if window <= 0 || n <= window {
		hi.Start, lo.Start = n, n
		return hi, lo
	}

	for i := window; i < n; i++ {
		h, l := closes[i-window], closes[i-window]
		for _, v := range closes[i-window+1 : i] {
			if v > h {
				h = v
			}
			if v < l {
				l = v
			}
		}
		hi.Values[i], lo.Values[i] = h, l
	}
	return hi, lo
}
