package telegram

import (
	"context"

	"relay_bot/internal/bot"
	"relay_bot/internal/modules/config"
	liveconfig "relay_bot/internal/modules/liveconfig/service"
	"relay_bot/internal/modules/telegram_bot/service"
	"relay_bot/internal/reload"
	"relay_bot/pkg/logger"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			// Reload coordinator; the Telegram service wires itself in
			// as its notifier/announcer.
			func(store *liveconfig.Store, facade bot.Facade, cfg *config.Config) *reload.Coordinator {
				return reload.New(store, facade, cfg.ReloadCooldown)
			},
			service.NewTelegram,
		),
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram, appCtx context.Context) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						t.Start(appCtx)
						go t.Announce()
						return nil
					},
					OnStop: func(ctx context.Context) error {
						// Shutdown proceeds no matter what the
						// transport teardown does.
						if err := t.Stop(); err != nil {
							logger.Warn("telegram shutdown: %v", err)
						}
						return nil
					},
				})
			},
		),
	)
}
