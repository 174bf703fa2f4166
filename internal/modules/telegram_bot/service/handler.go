package service

import (
	"context"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/opentracing/opentracing-go"
)

func (t *Telegram) handleUpdate(ctx context.Context, upd tgbot.Update) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	// Single-operator bot: everything outside the configured chat is
	// dropped.
	if msg.Chat.ID != t.chatID {
		return
	}
	if !msg.IsCommand() {
		return
	}

	t.dispatch(ctx, Command(msg.Command()))
}

func (t *Telegram) dispatch(ctx context.Context, cmd Command) {
	h, ok := t.commands[cmd]
	if !ok {
		// Unrecognized commands are ignored on purpose; no fallback
		// reply.
		return
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "telegram.command")
	span.SetTag("command", string(cmd))
	defer span.Finish()

	h(ctx)
}
