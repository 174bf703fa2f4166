package main

import (
	"context"

	"relay_bot/internal/modules/config"
	"relay_bot/internal/modules/health"
	"relay_bot/internal/modules/liveconfig"
	"relay_bot/internal/modules/markfeed"
	"relay_bot/internal/modules/paperbot"
	telegram "relay_bot/internal/modules/telegram_bot"
	"relay_bot/pkg/logger"
	"relay_bot/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		fx.Invoke(setupObservability),
		liveconfig.Module(),
		paperbot.Module(),
		markfeed.Module(),
		telegram.Module(),
		health.Module(),
	)
	app.Run()
}

func setupObservability(lc fx.Lifecycle, cfg *config.Config) {
	logger.SetServiceName("relay_bot")
	logger.Init(cfg.Log)

	tracing.SetServiceName("relay_bot")
	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Jaeger.Host,
		Port: cfg.Jaeger.Port,
	})
	if err != nil {
		logger.Warn("jaeger init: %v", err)
		return
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			closeTracer()
			return nil
		},
	})
}
