package binance_client

import (
	"go.uber.org/fx"

	"breadth_bot/internal/modules/binance_client/service"
)

func Module() fx.Option {
	return fx.Module("binance_client",
		fx.Provide(
			service.NewClient, // *service.Client
		),
	)
}
