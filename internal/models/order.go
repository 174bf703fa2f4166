package models

// Order is one open order as reported by the host bot.
type Order struct {
	Side         string // buy/sell
	PositionSide string // long/shrt
	Price        float64
	Qty          float64
}
