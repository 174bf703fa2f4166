package liveconfig

import (
	"relay_bot/internal/modules/liveconfig/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("liveconfig",
		fx.Provide(
			service.NewStore,
		),
	)
}
