package service

import (
	"context"
	"sync"

	"relay_bot/internal/models"
	liveconfig "relay_bot/internal/modules/liveconfig/service"
	"relay_bot/pkg/logger"

	"github.com/spf13/cast"
)

// Bot is an in-memory stand-in for the host trading bot, enough for the
// relay to run standalone: it holds the live config, a position
// snapshot refreshed from the mark feed, and honors pause/resume. It
// places no orders and runs no strategy.
type Bot struct {
	mu     sync.RWMutex
	cfg    models.LiveConfig
	pos    models.PositionSnapshot
	orders []models.Order
	paused bool

	marks []float64 // recent marks, indicator warmup input
	ema   float64
}

func NewBot(store *liveconfig.Store) *Bot {
	cfg, err := store.Load()
	if err != nil {
		logger.Warn("paperbot: live config: %v", err)
		cfg = models.LiveConfig{}
	}
	return &Bot{cfg: cfg}
}

// OnMark feeds one mark-price update into the snapshot.
func (b *Bot) OnMark(price float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.marks = append(b.marks, price)
	if len(b.marks) > 4096 {
		b.marks = b.marks[len(b.marks)-4096:]
	}

	if !b.pos.Initialized {
		b.pos.Initialized = true
		b.pos.Long.Price = price
		b.pos.Shrt.Price = price
	}
	b.pos.Long.UPNL = b.pos.Long.Size * (price - b.pos.Long.Price)
	b.pos.Shrt.UPNL = b.pos.Shrt.Size * (b.pos.Shrt.Price - price)
	if price > 0 {
		if lp := b.pos.Long.LiquidationPrice; lp > 0 {
			b.pos.Long.LiqDiff = (price - lp) / price
		}
		if lp := b.pos.Shrt.LiquidationPrice; lp > 0 {
			b.pos.Shrt.LiqDiff = (lp - price) / price
		}
	}
}

func (b *Bot) OpenOrders() []models.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

func (b *Bot) Position() models.PositionSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pos
}

func (b *Bot) Config() models.LiveConfig {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(models.LiveConfig, len(b.cfg))
	for k, v := range b.cfg {
		out[k] = v
	}
	return out
}

func (b *Bot) SetConfigValue(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cfg == nil {
		b.cfg = models.LiveConfig{}
	}
	b.cfg[key] = value
}

func (b *Bot) SetConfig(cfg models.LiveConfig) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cfg = cfg
}

func (b *Bot) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paused = true
}

func (b *Bot) Resume() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paused = false
}

func (b *Bot) Paused() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.paused
}

// InitIndicators rebuilds the EMA from the recorded marks using the
// span from the live config.
func (b *Bot) InitIndicators(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	span := cast.ToFloat64(b.cfg["ema_span"])
	if span < 2 {
		span = 2
	}
	alpha := 2 / (span + 1)

	ema := 0.0
	for i, px := range b.marks {
		if i == 0 {
			ema = px
			continue
		}
		ema = alpha*px + (1-alpha)*ema
	}
	b.ema = ema
	return ctx.Err()
}

// EMA is the warmed-up indicator value, zero before the first warmup.
func (b *Bot) EMA() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ema
}
