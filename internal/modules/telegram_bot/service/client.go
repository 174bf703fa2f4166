package service

import (
	"context"
	"sync"
	"time"

	"relay_bot/internal/bot"
	"relay_bot/internal/modules/config"
	"relay_bot/internal/reload"
	"relay_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

// Sender is the slice of tgbot.BotAPI the handlers need; tests plug in
// a recorder here.
type Sender interface {
	Send(c tgbot.Chattable) (tgbot.Message, error)
}

// Telegram relays commands from one pre-configured operator chat to the
// host bot and pushes notifications back.
type Telegram struct {
	api    *tgbot.BotAPI
	sender Sender
	chatID int64

	facade      bot.Facade
	coordinator *reload.Coordinator

	keyboard tgbot.ReplyKeyboardMarkup
	commands map[Command]func(context.Context)

	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewTelegram(cfg *config.Config, facade bot.Facade, coordinator *reload.Coordinator) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	t := &Telegram{
		api:         b,
		sender:      b,
		chatID:      cfg.Telegram.ChatID,
		facade:      facade,
		coordinator: coordinator,
		keyboard:    mainKeyboard(),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
	t.commands = t.commandTable()

	coordinator.SetNotifier(t)
	coordinator.SetAnnouncer(t.Announce)

	return t, nil
}

// mainKeyboard is the shortcut keyboard attached to every outbound
// message. Client-side rendering only, no protocol effect.
func mainKeyboard() tgbot.ReplyKeyboardMarkup {
	kb := tgbot.NewReplyKeyboard(
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("/balance"),
			tgbot.NewKeyboardButton("/orders"),
			tgbot.NewKeyboardButton("/position"),
		),
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("/graceful_stop"),
			tgbot.NewKeyboardButton("/show_config"),
			tgbot.NewKeyboardButton("/reload_config"),
		),
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("/help"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// Send pushes text to the operator chat. The error is returned for the
// caller to log; it must never travel further than that.
func (t *Telegram) Send(text string, formatted bool) error {
	msg := tgbot.NewMessage(t.chatID, text)
	if formatted {
		msg.ParseMode = tgbot.ModeHTML
	}
	msg.ReplyMarkup = t.keyboard

	_, err := t.sender.Send(msg)
	return err
}

// Notify implements reload.Notifier: best-effort send, failures only
// logged.
func (t *Telegram) Notify(text string) {
	if err := t.Send(text, true); err != nil {
		logger.Error("telegram send failed: %v", err)
	}
}

// Announce sends the startup banner followed by the active config. Used
// on startup and after every completed reload.
func (t *Telegram) Announce() {
	t.Notify("<b>Bot started!</b>")
	t.showConfig(context.Background())
}

// Start begins long polling. Returns once the listener goroutine is up;
// never blocks the caller.
func (t *Telegram) Start(ctx context.Context) {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.api.GetUpdatesChan(u)

	go func() {
		defer close(t.stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.done:
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				t.handleUpdate(ctx, upd)
			}
		}
	}()
}

// Stop terminates the listener and waits for it to drain.
func (t *Telegram) Stop() error {
	t.api.StopReceivingUpdates()
	t.stopOnce.Do(func() { close(t.done) })

	select {
	case <-t.stopped:
		return nil
	case <-time.After(5 * time.Second):
		return errors.New("telegram listener did not stop in time")
	}
}
