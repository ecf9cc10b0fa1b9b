package report

import (
	"go.uber.org/fx"

	"breadth_bot/internal/modules/report/service"
)

func Module() fx.Option {
	return fx.Module("report",
		fx.Provide(
			service.NewWriter, // *service.Writer
		),
	)
}
