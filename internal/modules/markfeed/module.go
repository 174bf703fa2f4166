package markfeed

import (
	"relay_bot/internal/modules/markfeed/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("markfeed",
		fx.Provide(
			service.NewClient,
		),
	)
}
