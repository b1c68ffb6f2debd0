package types

import "time"

type PositionSide string

const (
	PositionSideFlat  PositionSide = "FLAT"
	PositionSideLong  PositionSide = "LONG"
	PositionSideShort PositionSide = "SHORT"
)

// Position is the netted holding of one instrument.
type Position struct {
	PositionID   string       `yaml:"position_id" json:"position_id" csv:"position_id"`
	InstrumentID InstrumentID `yaml:"instrument_id" json:"instrument_id" csv:"-"`
	Side         PositionSide `yaml:"side" json:"side" csv:"side"`
	// Entry is the side of the order that opened the position.
	Entry PurchaseType `yaml:"entry" json:"entry" csv:"entry"`
	// Quantity is always non negative, the direction is given by Side.
	Quantity    float64   `yaml:"quantity" json:"quantity" csv:"quantity"`
	AvgPxOpen   float64   `yaml:"avg_px_open" json:"avg_px_open" csv:"avg_px_open"`
	RealizedPnL float64   `yaml:"realized_pnl" json:"realized_pnl" csv:"realized_pnl"`
	Commissions float64   `yaml:"commissions" json:"commissions" csv:"commissions"`
	OpenedAt    time.Time `yaml:"opened_at" json:"opened_at" csv:"opened_at"`
	ClosedAt    time.Time `yaml:"closed_at" json:"closed_at" csv:"closed_at"`
}

func (p Position) IsLong() bool {
	return p.Side == PositionSideLong
}

func (p Position) IsShort() bool {
	return p.Side == PositionSideShort
}

func (p Position) IsOpen() bool {
	return p.Side != PositionSideFlat && p.Quantity > 0
}

// ClosingSide returns the order side that reduces this position.
func (p Position) ClosingSide() PurchaseType {
	if p.IsShort() {
		return PurchaseTypeBuy
	}

	return PurchaseTypeSell
}

// SignedQuantity returns the quantity, negative for short positions.
func (p Position) SignedQuantity() float64 {
	if p.IsShort() {
		return -p.Quantity
	}

	return p.Quantity
}

// Fill is a single execution of an order.
type Fill struct {
	FillID       string       `csv:"fill_id"`
	OrderID      string       `csv:"order_id"`
	PositionID   string       `csv:"position_id"`
	InstrumentID InstrumentID `csv:"-"`
	Side         PurchaseType `csv:"side"`
	Quantity     float64      `csv:"quantity"`
	Price        float64      `csv:"price"`
	Commission   float64      `csv:"commission"`
	// RealizedPnL is the gross pnl this fill realized against the open position.
	// For example, short 100 shares at $50 and buy back 100 at $48: the PnL is (50-48)*100 = $200.
	RealizedPnL float64   `csv:"realized_pnl"`
	ExecutedAt  time.Time `csv:"executed_at"`
}
