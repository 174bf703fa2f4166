package models

// PositionSide is one leg of a hedged position.
type PositionSide struct {
	Size             float64
	Price            float64
	Leverage         float64
	LiquidationPrice float64
	LiqDiff          float64
	UPNL             float64
}

// PositionSnapshot is a point-in-time read of the account exposure.
// Initialized stays false until the host bot has fetched its first
// position update; handlers must not assume any other field is set
// before that.
type PositionSnapshot struct {
	Initialized     bool
	Equity          float64
	UsedMargin      float64
	AvailableMargin float64
	Long            PositionSide
	Shrt            PositionSide
}
