package indicator

// Series — значения индикатора, выровненные 1:1 со входной серией закрытий.
// Индексы < Start не рассчитаны (прогрев); нулевых заглушек нет, чтобы не
// ловить ложные сигналы на границе.
type Series struct {
	Start  int
	Values []float64
}

// At — значение и признак готовности на индексе i.
func (s Series) At(i int) (float64, bool) {
	if i < s.Start || i >= len(s.Values) {
		return 0, false
	}
	return s.Values[i], true
}
