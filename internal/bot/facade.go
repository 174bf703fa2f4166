package bot

import (
	"context"

	"relay_bot/internal/models"
)

// Facade is the surface of the host trading bot the relay talks to.
// Accessors return fresh snapshots per call; the relay never caches.
type Facade interface {
	OpenOrders() []models.Order
	Position() models.PositionSnapshot
	Config() models.LiveConfig

	SetConfigValue(key string, value any)
	SetConfig(cfg models.LiveConfig)
	Pause()
	Resume()

	// InitIndicators rebuilds indicator state after a config swap. It
	// blocks until warmup finishes; callers schedule it off the command
	// path.
	InitIndicators(ctx context.Context) error
}
