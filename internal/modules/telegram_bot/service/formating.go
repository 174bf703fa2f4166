package service

import (
	"runtime/debug"

	"relay_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/jedib0t/go-pretty/v6/table"
)

// newPreTable returns a writer tuned for Telegram <pre> blocks: no
// outer border, header rule only.
func newPreTable() table.Writer {
	w := table.NewWriter()
	w.Style().Options.DrawBorder = false
	w.Style().Options.SeparateColumns = true
	w.Style().Options.SeparateHeader = true
	w.Style().Options.SeparateRows = false
	return w
}

func renderOrdersTable(orders []models.Order) string {
	w := newPreTable()
	w.AppendHeader(table.Row{"l/s", "b/s", "price", "qty"})
	for _, o := range orders {
		w.AppendRow(table.Row{o.PositionSide, o.Side, o.Price, o.Qty})
	}
	w.SortBy([]table.SortBy{{Name: "price", Mode: table.AscNumeric}})
	return w.Render()
}

func renderPositionTable(pos models.PositionSnapshot) string {
	w := newPreTable()
	w.AppendHeader(table.Row{"", "Long", "Short"})
	w.AppendRow(table.Row{"Size", pos.Long.Size, pos.Shrt.Size})
	w.AppendRow(table.Row{"Price", pos.Long.Price, pos.Shrt.Price})
	w.AppendRow(table.Row{"Leverage", pos.Long.Leverage, pos.Shrt.Leverage})
	w.AppendRow(table.Row{"Liq.price", pos.Long.LiquidationPrice, pos.Shrt.LiquidationPrice})
	w.AppendRow(table.Row{"Liq.diff", pos.Long.LiqDiff, pos.Shrt.LiqDiff})
	w.AppendRow(table.Row{"UPNL", pos.Long.UPNL, pos.Shrt.UPNL})
	return w.Render()
}

func renderConfig(cfg models.LiveConfig) string {
	data, err := sonic.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// version is the short VCS revision baked into the binary, UNKNOWN when
// the build carries no metadata.
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "UNKNOWN"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 7 {
				return s.Value[:7]
			}
			return s.Value
		}
	}
	return "UNKNOWN"
}
