package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	binance "breadth_bot/internal/modules/binance_client"
	"breadth_bot/internal/modules/breadth"
	"breadth_bot/internal/modules/config"
	"breadth_bot/internal/modules/report"
	"breadth_bot/internal/notify"
	"breadth_bot/pkg/logger"
	"breadth_bot/pkg/tracing"
)

const serviceName = "breadth_bot"

func main() {
	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
			// Notifier: если TELEGRAM_* нет — используем stdout
			func(cfg *config.Config) notify.Notifier {
				if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
					if tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID); err == nil {
						return tg
					}
				}
				return notify.NewStdout()
			},
		),
		config.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			logger.SetServiceName(serviceName)
			if err := logger.Init(cfg.LogLevel); err != nil {
				return err
			}

			tracing.SetServiceName(serviceName)
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					return nil
				},
			})
			return nil
		}),
		binance.Module(),
		report.Module(),
		breadth.Module(),
	)
	app.Run()

	if err := app.Err(); err != nil {
		log.Fatal(err)
	}
}
