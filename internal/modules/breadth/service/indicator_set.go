package service

import "breadth_bot/internal/modules/config"

// IndicatorSet — описание набора индикаторов одного прогона.
// Раньше под каждую пару периодов был свой скрипт; теперь это просто параметры.
type IndicatorSet struct {
	Mode    string
	EMAFast int
	EMASlow int
	Window  int
}

func NewIndicatorSet(cfg *config.Config) IndicatorSet {
	return IndicatorSet{
		Mode:    cfg.Mode,
		EMAFast: cfg.EMAFast,
		EMASlow: cfg.EMASlow,
		Window:  cfg.Window,
	}
}

// MinBars — минимум истории; инструмент с меньшим числом баров пропускаем целиком.
func (s IndicatorSet) MinBars() int {
	if s.Mode == config.ModeExtrema {
		return s.Window + 1
	}
	return s.EMASlow
}
