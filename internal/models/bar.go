package models

import "time"

// Bar — дневная свеча после нормализации: одна на календарную дату (UTC).
// Из всего kline нам нужны только время открытия и close.
type Bar struct {
	OpenTime time.Time
	Close    float64
}

// Date — ключ календарного дня, по нему идёт агрегация.
func (b Bar) Date() string { return b.OpenTime.UTC().Format("2006-01-02") }
