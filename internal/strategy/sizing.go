package strategy

import (
	"math"

	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// SizingOutcome is the result kind of a position size calculation.
type SizingOutcome int

const (
	// Sized carries a tradable quantity of at least one unit.
	Sized SizingOutcome = iota
	// SkippedZeroDistance means the stop sits on the close and no order must be sent.
	SkippedZeroDistance
	// FatalUndersized means the risk budget cannot buy a single unit and the run must stop.
	FatalUndersized
)

func (o SizingOutcome) String() string {
	switch o {
	case Sized:
		return "Sized"
	case SkippedZeroDistance:
		return "SkippedZeroDistance"
	case FatalUndersized:
		return "FatalUndersized"
	default:
		return "Unknown"
	}
}

// SizingResult is the outcome of CalcQuantity with the inputs it was derived from.
type SizingResult struct {
	Outcome  SizingOutcome
	Quantity float64
	// RiskBudget and StopDistance are kept for diagnostics.
	RiskBudget   float64
	StopDistance float64
}

// CalcQuantity sizes a position so that hitting the stop loses riskPct percent of the balance.
func CalcQuantity(balance, riskPct, close, stopPrice float64, instrument types.Instrument) SizingResult {
	riskBudget := riskPct / 100 * balance
	distance := math.Abs(close - stopPrice)

	result := SizingResult{RiskBudget: riskBudget, StopDistance: distance}

	if distance == 0 {
		result.Outcome = SkippedZeroDistance

		return result
	}

	quantity := math.Floor(riskBudget / distance)
	if quantity < 1 {
		result.Outcome = FatalUndersized

		return result
	}

	result.Outcome = Sized
	result.Quantity = instrument.MakeQty(quantity)

	return result
}

// CalcStopLoss places the stop multiple ATRs away from the close on the losing side of the position.
func CalcStopLoss(side types.PositionSide, close, atr, multiple float64, instrument types.Instrument) float64 {
	offset := atr * multiple
	if side == types.PositionSideShort {
		return instrument.MakePrice(close + offset)
	}

	return instrument.MakePrice(close - offset)
}
