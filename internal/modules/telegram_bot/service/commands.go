package service

import (
	"context"
	"fmt"
)

// Command is one of the fixed inbound commands. Argument text, if any,
// is unused.
type Command string

const (
	CmdBalance      Command = "balance"
	CmdOrders       Command = "orders"
	CmdPosition     Command = "position"
	CmdGracefulStop Command = "graceful_stop"
	CmdShowConfig   Command = "show_config"
	CmdReloadConfig Command = "reload_config"
	CmdHelp         Command = "help"
)

func (t *Telegram) commandTable() map[Command]func(context.Context) {
	return map[Command]func(context.Context){
		CmdBalance:      t.handleBalance,
		CmdOrders:       t.handleOrders,
		CmdPosition:     t.handlePosition,
		CmdGracefulStop: t.handleGracefulStop,
		CmdShowConfig:   t.showConfig,
		CmdReloadConfig: t.handleReloadConfig,
		CmdHelp:         t.handleHelp,
	}
}

func (t *Telegram) handleBalance(ctx context.Context) {
	pos := t.facade.Position()
	if !pos.Initialized {
		t.Notify("Balance not retrieved yet, please try again later")
		return
	}

	t.Notify(fmt.Sprintf(
		"<pre><b>Balance:</b></pre>\n"+
			"Equity: %v\n"+
			"Used margin: %v\n"+
			"Available margin: %v",
		pos.Equity, pos.UsedMargin, pos.AvailableMargin,
	))
}

func (t *Telegram) handleOrders(ctx context.Context) {
	orders := t.facade.OpenOrders()
	t.Notify("<pre>" + renderOrdersTable(orders) + "</pre>")
}

func (t *Telegram) handlePosition(ctx context.Context) {
	pos := t.facade.Position()
	if !pos.Initialized {
		t.Notify("Position not initialized yet, please try again later")
		return
	}

	t.Notify("<pre>" + renderPositionTable(pos) + "</pre>")
}

func (t *Telegram) handleGracefulStop(ctx context.Context) {
	t.facade.SetConfigValue("do_long", false)
	t.facade.SetConfigValue("do_shrt", false)

	t.Notify("No longer opening new long or short positions, existing positions will be closed gracefully")
}

func (t *Telegram) showConfig(ctx context.Context) {
	t.Notify(fmt.Sprintf(
		"<pre><b>Version:</b></pre> %s,\n"+
			"<pre><b>Config:</b></pre> \n"+
			"%s",
		version(), renderConfig(t.facade.Config()),
	))
}

func (t *Telegram) handleReloadConfig(ctx context.Context) {
	// All operator feedback goes through the coordinator's notifier;
	// completion is not awaited on the command path.
	t.coordinator.Reload(ctx)
}

func (t *Telegram) handleHelp(ctx context.Context) {
	t.Notify("<pre><b>The following commands are available:</b></pre>\n" +
		"/balance: the equity & wallet balance in the configured account\n" +
		"/orders: a list of all buy & sell orders currently open\n" +
		"/graceful_stop: instructs the bot to no longer open new positions and exit gracefully\n" +
		"/position: information about the current position(s)\n" +
		"/show_config: the active configuration used\n" +
		"/reload_config: reload the configuration from disk, based on the file initially used\n" +
		"/help: This help page\n")
}
