package trading

import "github.com/rxtech-lab/argo-zscore/internal/types"

// TradingSystem is the order entry API available to strategies.
type TradingSystem interface {
	// SubmitOrder submits a market or stop-market order
	SubmitOrder(order types.Order) error
	// CancelOrder cancels an open order
	CancelOrder(orderID string) error
	// CancelAllOrders cancels every open order of the instrument
	CancelAllOrders(id types.InstrumentID) error
	// ClosePosition submits a market order that flattens the position
	ClosePosition(position types.Position, tags ...string) error
	// CloseAllPositions closes every open position of the instrument
	CloseAllPositions(id types.InstrumentID) error
}

// Portfolio exposes account balances per venue.
type Portfolio interface {
	// BalanceTotal returns the total balance of the venue account, false if no account exists
	BalanceTotal(venue types.Venue) (float64, bool)
}

// DataClient manages bar subscriptions.
type DataClient interface {
	SubscribeBars(barType types.BarType) error
	UnsubscribeBars(barType types.BarType) error
}
