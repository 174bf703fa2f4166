package reload

import (
	"context"
	"sync"
	"time"

	"relay_bot/internal/bot"
	"relay_bot/internal/models"
	"relay_bot/pkg/logger"

	"github.com/pkg/errors"
)

// State of the reload workflow.
type State int32

const (
	Idle State = iota
	Reloading
)

// ErrCooldown is returned while a previous reload attempt is still
// inside the cooldown window.
var ErrCooldown = errors.New("config reload already in progress")

// Loader reads the live trading config from its persistent source.
type Loader interface {
	Load() (models.LiveConfig, error)
}

// Notifier is the outbound chat side channel. Delivery is best-effort;
// implementations swallow transport errors.
type Notifier interface {
	Notify(msg string)
}

// Coordinator owns the reload timestamp and drives the guarded
// pause / apply / reinit / resume sequence. Only the command path and
// one completion goroutine touch the timestamp, but those are separate
// OS threads here, so it is mutex-guarded.
type Coordinator struct {
	loader   Loader
	facade   bot.Facade
	cooldown time.Duration

	mu       sync.Mutex
	reloadTS time.Time
	state    State

	notifier Notifier
	announce func()

	now func() time.Time
}

func New(loader Loader, facade bot.Facade, cooldown time.Duration) *Coordinator {
	return &Coordinator{
		loader:   loader,
		facade:   facade,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// SetNotifier wires the chat channel in after construction; the
// transport depends on the coordinator, not the other way round.
func (c *Coordinator) SetNotifier(n Notifier) { c.notifier = n }

// SetAnnouncer sets the callback that re-sends the startup banner and
// active config once a reload completes.
func (c *Coordinator) SetAnnouncer(f func()) { c.announce = f }

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastReload returns the timestamp of the reload in flight, zero when
// idle.
func (c *Coordinator) LastReload() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reloadTS
}

// Reload runs one guarded reload attempt. The returned channel settles
// with exactly one value once the attempt is rejected, fails, or the
// indicator warmup finishes; callers that only care about the chat
// replies may discard it.
func (c *Coordinator) Reload(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	c.mu.Lock()
	if !c.reloadTS.IsZero() && c.now().Sub(c.reloadTS) < c.cooldown {
		c.mu.Unlock()
		c.notify("Config reload in progress, please wait")
		done <- ErrCooldown
		return done
	}
	c.reloadTS = c.now()
	c.state = Reloading
	c.mu.Unlock()

	c.notify("Reloading config...")

	cfg, err := c.loader.Load()
	if err != nil {
		logger.Error("config reload: %v", err)
		c.notify("Failed to load config file")
		c.reset()
		done <- err
		return done
	}

	// Pause before applying so the trading loop never acts on a
	// half-applied config.
	c.facade.Pause()
	c.facade.SetConfig(cfg)

	go func() {
		if err := c.facade.InitIndicators(ctx); err != nil {
			logger.Error("config reload: init indicators: %v", err)
		}
		c.facade.Resume()
		if c.announce != nil {
			c.announce()
		}
		c.reset()
		done <- nil
	}()

	return done
}

func (c *Coordinator) notify(msg string) {
	if c.notifier != nil {
		c.notifier.Notify(msg)
	}
}

func (c *Coordinator) reset() {
	c.mu.Lock()
	c.reloadTS = time.Time{}
	c.state = Idle
	c.mu.Unlock()
}
