package paperbot

import (
	"context"

	"relay_bot/internal/bot"
	marksvc "relay_bot/internal/modules/markfeed/service"
	"relay_bot/internal/modules/paperbot/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("paperbot",
		fx.Provide(
			service.NewBot,
			func(b *service.Bot) bot.Facade {
				return b
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, b *service.Bot, feed *marksvc.Client, appCtx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					go func() {
						for m := range feed.Stream(appCtx) {
							b.OnMark(m.Price)
						}
					}()
					return nil
				},
			})
		}),
	)
}
