package reload

import (
	"context"
	"sync"
	"testing"
	"time"

	"relay_bot/internal/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFacade struct {
	mu       sync.Mutex
	calls    []string
	applied  models.LiveConfig
	initErr  error
	initGate chan struct{} // when non-nil, InitIndicators blocks until closed
}

func (m *mockFacade) record(c string) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
}

func (m *mockFacade) OpenOrders() []models.Order           { return nil }
func (m *mockFacade) Position() models.PositionSnapshot    { return models.PositionSnapshot{} }
func (m *mockFacade) Config() models.LiveConfig            { return nil }
func (m *mockFacade) SetConfigValue(key string, value any) { m.record("set:" + key) }
func (m *mockFacade) Pause()                               { m.record("pause") }
func (m *mockFacade) Resume()                              { m.record("resume") }

func (m *mockFacade) SetConfig(cfg models.LiveConfig) {
	m.mu.Lock()
	m.applied = cfg
	m.mu.Unlock()
	m.record("set_config")
}

func (m *mockFacade) InitIndicators(ctx context.Context) error {
	m.record("init_indicators")
	if m.initGate != nil {
		<-m.initGate
	}
	return m.initErr
}

func (m *mockFacade) callList() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

type mockLoader struct {
	cfg models.LiveConfig
	err error
}

func (m *mockLoader) Load() (models.LiveConfig, error) { return m.cfg, m.err }

type mockNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (m *mockNotifier) Notify(msg string) {
	m.mu.Lock()
	m.msgs = append(m.msgs, msg)
	m.mu.Unlock()
}

func (m *mockNotifier) list() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.msgs...)
}

func waitSettle(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload to settle")
		return nil
	}
}

func TestReloadHappyPath(t *testing.T) {
	facade := &mockFacade{}
	loader := &mockLoader{cfg: models.LiveConfig{"do_long": true}}
	notifier := &mockNotifier{}

	announced := make(chan struct{}, 1)

	c := New(loader, facade, 5*time.Minute)
	c.SetNotifier(notifier)
	c.SetAnnouncer(func() { announced <- struct{}{} })

	err := waitSettle(t, c.Reload(context.Background()))
	require.NoError(t, err)

	assert.Equal(t, []string{"pause", "set_config", "init_indicators", "resume"}, facade.callList())
	assert.Equal(t, loader.cfg, facade.applied)
	assert.Contains(t, notifier.list(), "Reloading config...")

	select {
	case <-announced:
	default:
		t.Fatal("completion should re-send the startup announcement")
	}

	// Timestamp must be back to zero so the next reload is accepted
	// immediately.
	assert.True(t, c.LastReload().IsZero())
	assert.Equal(t, Idle, c.State())
}

func TestCooldownRejectsSecondAttempt(t *testing.T) {
	gate := make(chan struct{})
	facade := &mockFacade{initGate: gate}
	loader := &mockLoader{cfg: models.LiveConfig{}}
	notifier := &mockNotifier{}

	c := New(loader, facade, 5*time.Minute)
	c.SetNotifier(notifier)

	first := c.Reload(context.Background())
	assert.Equal(t, Reloading, c.State())

	// Second attempt inside the window: rejected, no facade mutation,
	// no timestamp change.
	ts := c.LastReload()
	err := waitSettle(t, c.Reload(context.Background()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCooldown))
	assert.Contains(t, notifier.list(), "Config reload in progress, please wait")
	assert.Equal(t, ts, c.LastReload())

	pauses := 0
	for _, call := range facade.callList() {
		if call == "pause" {
			pauses++
		}
	}
	assert.Equal(t, 1, pauses, "only the first attempt may drive the facade")

	close(gate)
	require.NoError(t, waitSettle(t, first))
	assert.True(t, c.LastReload().IsZero())
}

func TestLoadFailureResetsTimestamp(t *testing.T) {
	facade := &mockFacade{}
	loader := &mockLoader{err: errors.New("unexpected end of JSON input")}
	notifier := &mockNotifier{}

	c := New(loader, facade, 5*time.Minute)
	c.SetNotifier(notifier)

	err := waitSettle(t, c.Reload(context.Background()))
	require.Error(t, err)

	assert.Contains(t, notifier.list(), "Failed to load config file")
	assert.Empty(t, facade.callList(), "pause/set_config must not run on a failed load")
	assert.True(t, c.LastReload().IsZero(), "a retry must be possible immediately")
	assert.Equal(t, Idle, c.State())
}

func TestCooldownExpiryAcceptsNextAttempt(t *testing.T) {
	gate := make(chan struct{})
	facade := &mockFacade{initGate: gate}
	loader := &mockLoader{cfg: models.LiveConfig{}}

	now := time.Unix(1_700_000_000, 0)
	c := New(loader, facade, 5*time.Minute)
	c.SetNotifier(&mockNotifier{})
	c.now = func() time.Time { return now }

	first := c.Reload(context.Background())

	// Guard is a timestamp window, not a lock: once it lapses a new
	// attempt goes through even if the old warmup never finished.
	now = now.Add(6 * time.Minute)
	second := c.Reload(context.Background())

	close(gate)
	require.NoError(t, waitSettle(t, first))
	require.NoError(t, waitSettle(t, second))

	pauses := 0
	for _, call := range facade.callList() {
		if call == "pause" {
			pauses++
		}
	}
	assert.Equal(t, 2, pauses)
}
