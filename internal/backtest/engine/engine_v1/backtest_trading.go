package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/cache"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/trading"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BacktestTrading simulates a NETTING venue: market orders fill at the current bar close,
// stop-market orders rest until a bar crosses their trigger.
type BacktestTrading struct {
	cache      *cache.CacheV1
	state      *BacktestState
	account    *BacktestAccount
	commission commission_fee.CommissionFee
	log        *logger.Logger

	currentBar types.Bar
	hasBar     bool
	events     []types.Event
}

var _ trading.TradingSystem = (*BacktestTrading)(nil)

func NewBacktestTrading(
	cache *cache.CacheV1,
	state *BacktestState,
	account *BacktestAccount,
	commission commission_fee.CommissionFee,
	log *logger.Logger,
) *BacktestTrading {
	return &BacktestTrading{
		cache:      cache,
		state:      state,
		account:    account,
		commission: commission,
		log:        log,
	}
}

// Reset drops the current bar and every queued event.
func (b *BacktestTrading) Reset() {
	b.currentBar = types.Bar{}
	b.hasBar = false
	b.events = nil
}

// UpdateCurrentBar sets the bar used for fills and triggers resting stop orders against it.
func (b *BacktestTrading) UpdateCurrentBar(bar types.Bar) error {
	b.currentBar = bar
	b.hasBar = true

	return b.triggerStopOrders(bar)
}

// PendingEvents reports whether events are waiting to be dispatched.
func (b *BacktestTrading) PendingEvents() bool {
	return len(b.events) > 0
}

// PopEvent removes the oldest queued event.
func (b *BacktestTrading) PopEvent() (types.Event, bool) {
	if len(b.events) == 0 {
		return types.Event{}, false
	}

	event := b.events[0]
	b.events = b.events[1:]

	return event, true
}

func (b *BacktestTrading) enqueue(event types.Event) {
	b.events = append(b.events, event)
}

// SubmitOrder implements trading.TradingSystem.
func (b *BacktestTrading) SubmitOrder(order types.Order) error {
	if !b.hasBar {
		return errors.New(errors.ErrCodeInvalidOrder, "no market data available to submit order")
	}

	if err := order.Validate(); err != nil {
		return err
	}

	instrument, ok := b.cache.Instrument(order.InstrumentID)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidInstrument, "instrument %s not found", order.InstrumentID)
	}

	if order.OrderType == types.OrderTypeStopMarket {
		order.TriggerPrice = instrument.MakePrice(order.TriggerPrice)
	}

	order.Timestamp = b.currentBar.Time
	order.Status = types.OrderStatusPending

	if order.ReduceOnly && b.wouldIncreasePosition(order) {
		return b.deny(order, reduceOnlyReason(order))
	}

	if err := b.putOrder(order); err != nil {
		return err
	}

	b.enqueue(types.NewOrderEvent("OrderAccepted", order, b.currentBar.Time))

	if order.OrderType == types.OrderTypeMarket {
		return b.fill(order, b.currentBar.Close)
	}

	return nil
}

// CancelOrder implements trading.TradingSystem.
func (b *BacktestTrading) CancelOrder(orderID string) error {
	order, ok := b.cache.Order(orderID)
	if !ok {
		return errors.Newf(errors.ErrCodeOrderNotFound, "order %s not found", orderID)
	}

	if !order.IsOpen() {
		b.log.Debug("Order already closed", zap.String("order_id", orderID), zap.String("status", string(order.Status)))

		return nil
	}

	order.Status = types.OrderStatusCancelled
	if err := b.putOrder(order); err != nil {
		return err
	}

	b.enqueue(types.NewOrderEvent("OrderCanceled", order, b.currentBar.Time))

	return nil
}

// CancelAllOrders implements trading.TradingSystem.
func (b *BacktestTrading) CancelAllOrders(id types.InstrumentID) error {
	for _, order := range b.cache.OrdersOpen(id) {
		if err := b.CancelOrder(order.OrderID); err != nil {
			return err
		}
	}

	return nil
}

// ClosePosition implements trading.TradingSystem.
func (b *BacktestTrading) ClosePosition(position types.Position, tags ...string) error {
	current, ok := b.cache.OpenPosition(position.InstrumentID)
	if !ok || current.PositionID != position.PositionID {
		return errors.Newf(errors.ErrCodePositionNotFound, "open position %s not found", position.PositionID)
	}

	order := types.NewMarketOrder(current.InstrumentID, current.ClosingSide(), current.Quantity, tags...)
	order.ReduceOnly = true

	return b.SubmitOrder(order)
}

// CloseAllPositions implements trading.TradingSystem.
func (b *BacktestTrading) CloseAllPositions(id types.InstrumentID) error {
	for _, position := range b.cache.PositionsOpen(id) {
		if err := b.ClosePosition(position); err != nil {
			return err
		}
	}

	return nil
}

// wouldIncreasePosition reports whether filling the order would open or grow exposure.
func (b *BacktestTrading) wouldIncreasePosition(order types.Order) bool {
	position, ok := b.cache.OpenPosition(order.InstrumentID)
	if !ok {
		return true
	}

	return position.ClosingSide() != order.Side
}

func reduceOnlyReason(order types.Order) string {
	return fmt.Sprintf("REDUCE_ONLY %s %s order would have increased position", order.OrderType, order.Side)
}

func (b *BacktestTrading) deny(order types.Order, reason string) error {
	order.Status = types.OrderStatusDenied
	order.Reason = reason

	b.log.Warn("Order denied", zap.String("order_id", order.OrderID), zap.String("reason", reason))

	if err := b.putOrder(order); err != nil {
		return err
	}

	b.enqueue(types.NewOrderDeniedEvent(order, reason, b.currentBar.Time))

	return nil
}

func (b *BacktestTrading) reject(order types.Order, reason string) error {
	order.Status = types.OrderStatusRejected
	order.Reason = reason

	b.log.Warn("Order rejected", zap.String("order_id", order.OrderID), zap.String("reason", reason))

	if err := b.putOrder(order); err != nil {
		return err
	}

	b.enqueue(types.NewOrderRejectedEvent(order, reason, b.currentBar.Time))

	return nil
}

func (b *BacktestTrading) putOrder(order types.Order) error {
	b.cache.PutOrder(order)

	return b.state.RecordOrder(order)
}

// triggerStopOrders fills every resting stop the bar crossed, in submission order.
func (b *BacktestTrading) triggerStopOrders(bar types.Bar) error {
	for _, order := range b.cache.OrdersOpen(bar.InstrumentID()) {
		if order.OrderType != types.OrderTypeStopMarket {
			continue
		}

		// an earlier fill in this loop may have cancelled or changed it
		latest, ok := b.cache.Order(order.OrderID)
		if !ok || !latest.IsOpen() {
			continue
		}

		var (
			triggered bool
			price     float64
		)

		switch latest.Side {
		case types.PurchaseTypeSell:
			triggered = bar.Low <= latest.TriggerPrice
			price = min(bar.Open, latest.TriggerPrice)
		case types.PurchaseTypeBuy:
			triggered = bar.High >= latest.TriggerPrice
			price = max(bar.Open, latest.TriggerPrice)
		}

		if !triggered {
			continue
		}

		b.log.Debug("Stop triggered",
			zap.String("order_id", latest.OrderID),
			zap.Float64("trigger_price", latest.TriggerPrice),
			zap.Float64("fill_price", price),
		)

		if latest.ReduceOnly && b.wouldIncreasePosition(latest) {
			if err := b.reject(latest, reduceOnlyReason(latest)); err != nil {
				return err
			}

			continue
		}

		if err := b.fill(latest, price); err != nil {
			return err
		}
	}

	return nil
}

// fill executes the order at price and nets it into the instrument position.
func (b *BacktestTrading) fill(order types.Order, price float64) error {
	instrument, _ := b.cache.Instrument(order.InstrumentID)
	quantity := order.Quantity
	at := b.currentBar.Time

	position, hasPosition := b.cache.OpenPosition(order.InstrumentID)
	if order.ReduceOnly && hasPosition && quantity > position.Quantity {
		quantity = position.Quantity
	}

	price = instrument.MakePrice(price)
	commission := b.commission.Calculate(quantity, price)

	order.Status = types.OrderStatusFilled
	if err := b.putOrder(order); err != nil {
		return err
	}

	fill := types.Fill{
		FillID:       uuid.New().String(),
		OrderID:      order.OrderID,
		InstrumentID: order.InstrumentID,
		Side:         order.Side,
		Quantity:     quantity,
		Price:        price,
		Commission:   commission,
		ExecutedAt:   at,
	}

	b.enqueue(types.NewOrderEvent("OrderFilled", order, at))

	remaining := decimal.NewFromFloat(quantity)
	px := decimal.NewFromFloat(price)

	if hasPosition && position.ClosingSide() == order.Side {
		closeQty := decimal.Min(remaining, decimal.NewFromFloat(position.Quantity))
		avg := decimal.NewFromFloat(position.AvgPxOpen)

		pnl := px.Sub(avg).Mul(closeQty)
		if position.IsShort() {
			pnl = pnl.Neg()
		}

		realized, _ := pnl.Float64()
		left, _ := decimal.NewFromFloat(position.Quantity).Sub(closeQty).Float64()

		position.Quantity = left
		position.RealizedPnL += realized
		position.Commissions += commission
		fill.PositionID = position.PositionID
		fill.RealizedPnL = realized

		b.account.ApplyFill(realized, commission)
		commission = 0

		if left <= 0 {
			position.Side = types.PositionSideFlat
			position.Quantity = 0
			position.ClosedAt = at
			b.cache.PutPosition(position)
			b.enqueue(types.NewPositionClosedEvent(position, at))
		} else {
			b.cache.PutPosition(position)
			b.enqueue(types.Event{Kind: types.EventKindOther, Name: "PositionChanged", Time: at, InstrumentID: position.InstrumentID, PositionID: position.PositionID, Entry: position.Entry})
		}

		remaining = remaining.Sub(closeQty)
	}

	if remaining.IsPositive() {
		qty, _ := remaining.Float64()

		if hasPosition && position.IsOpen() && position.ClosingSide() != order.Side {
			total := decimal.NewFromFloat(position.Quantity).Add(remaining)
			avg := decimal.NewFromFloat(position.AvgPxOpen).Mul(decimal.NewFromFloat(position.Quantity)).
				Add(px.Mul(remaining)).Div(total)

			position.Quantity, _ = total.Float64()
			position.AvgPxOpen, _ = avg.Float64()
			position.Commissions += commission
			fill.PositionID = position.PositionID

			b.cache.PutPosition(position)
			b.enqueue(types.Event{Kind: types.EventKindOther, Name: "PositionChanged", Time: at, InstrumentID: position.InstrumentID, PositionID: position.PositionID, Entry: position.Entry})
		} else {
			opened := types.Position{
				PositionID:   uuid.New().String(),
				InstrumentID: order.InstrumentID,
				Side:         types.PositionSideLong,
				Entry:        order.Side,
				Quantity:     qty,
				AvgPxOpen:    price,
				Commissions:  commission,
				OpenedAt:     at,
			}
			if order.Side == types.PurchaseTypeSell {
				opened.Side = types.PositionSideShort
			}

			if fill.PositionID == "" {
				fill.PositionID = opened.PositionID
			}

			b.cache.PutPosition(opened)
			b.enqueue(types.NewPositionOpenedEvent(opened, at))
		}

		b.account.ApplyFill(0, commission)
	}

	b.log.Debug("Order filled",
		zap.String("order_id", order.OrderID),
		zap.String("side", string(order.Side)),
		zap.Float64("quantity", quantity),
		zap.Float64("price", price),
	)

	return b.state.RecordFill(fill)
}
