package breadth

import (
	"context"

	"go.uber.org/fx"

	binancesvc "breadth_bot/internal/modules/binance_client/service"
	"breadth_bot/internal/modules/breadth/service"
	reportsvc "breadth_bot/internal/modules/report/service"
	"breadth_bot/pkg/logger"
)

func asHistorySource(c *binancesvc.Client) service.HistorySource   { return c }
func asUniverseSource(c *binancesvc.Client) service.UniverseSource { return c }
func asReportWriter(w *reportsvc.Writer) service.ReportWriter      { return w }

func Module() fx.Option {
	return fx.Module("breadth",
		fx.Provide(
			service.NewIndicatorSet,
			service.NewAggregator,
			service.NewProgress,
			service.NewProcessor,
			service.NewRunner,
			asHistorySource,
			asUniverseSource,
			asReportWriter,
		),

		fx.Invoke(func(lc fx.Lifecycle, r *service.Runner, sd fx.Shutdowner, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						code := 0
						if err := r.Run(ctx); err != nil {
							logger.Error("run failed: %v", err)
							code = 1
						}
						_ = sd.Shutdown(fx.ExitCode(code))
					}()
					return nil
				},
			})
		}),
	)
}
