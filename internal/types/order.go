package types

import (
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
)

type PurchaseType string

type OrderType string

type OrderStatus string

const (
	// OrderStatusPending is an accepted order that has not been filled yet (resting stop orders).
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRejected  OrderStatus = "REJECTED"
	OrderStatusDenied    OrderStatus = "DENIED"
)

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

const (
	OrderTypeMarket     OrderType = "MARKET"
	OrderTypeStopMarket OrderType = "STOP_MARKET"
)

// Opposite returns the other side.
func (p PurchaseType) Opposite() PurchaseType {
	if p == PurchaseTypeBuy {
		return PurchaseTypeSell
	}

	return PurchaseTypeBuy
}

type Order struct {
	OrderID      string       `yaml:"order_id" json:"order_id" csv:"order_id" validate:"required"`
	InstrumentID InstrumentID `yaml:"instrument_id" json:"instrument_id" csv:"-"`
	Side         PurchaseType `yaml:"side" json:"side" csv:"side" validate:"required,oneof=BUY SELL"`
	OrderType    OrderType    `yaml:"order_type" json:"order_type" csv:"order_type" validate:"required,oneof=MARKET STOP_MARKET"`
	Quantity     float64      `yaml:"quantity" json:"quantity" csv:"quantity" validate:"gt=0"`
	// TriggerPrice is only used by STOP_MARKET orders.
	TriggerPrice float64 `yaml:"trigger_price" json:"trigger_price" csv:"trigger_price" validate:"required_if=OrderType STOP_MARKET,gte=0"`
	// ReduceOnly orders may only reduce an existing position.
	ReduceOnly bool `yaml:"reduce_only" json:"reduce_only" csv:"reduce_only"`
	// Tags are free form labels like ENTRY_LONG or LONG_STOP_LOSS.
	Tags   []string    `yaml:"tags" json:"tags" csv:"-"`
	Status OrderStatus `yaml:"status" json:"status" csv:"status"`
	// Reason is set when the order was denied or rejected.
	Reason    string    `yaml:"reason" json:"reason" csv:"reason"`
	Timestamp time.Time `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
	// StrategyID is the id of the strategy that created this order
	StrategyID string `yaml:"strategy_id" json:"strategy_id" csv:"strategy_id"`
}

// NewMarketOrder creates a market order with a fresh id.
func NewMarketOrder(id InstrumentID, side PurchaseType, quantity float64, tags ...string) Order {
	return Order{
		OrderID:      uuid.New().String(),
		InstrumentID: id,
		Side:         side,
		OrderType:    OrderTypeMarket,
		Quantity:     quantity,
		Tags:         tags,
	}
}

// NewStopMarketOrder creates a stop-market order with a fresh id.
func NewStopMarketOrder(id InstrumentID, side PurchaseType, quantity float64, triggerPrice float64, reduceOnly bool, tags ...string) Order {
	return Order{
		OrderID:      uuid.New().String(),
		InstrumentID: id,
		Side:         side,
		OrderType:    OrderTypeStopMarket,
		Quantity:     quantity,
		TriggerPrice: triggerPrice,
		ReduceOnly:   reduceOnly,
		Tags:         tags,
	}
}

// IsOpen reports whether the order can still be filled or cancelled.
func (o Order) IsOpen() bool {
	return o.Status == OrderStatusPending
}

// HasTag reports whether the order carries the given tag.
func (o Order) HasTag(tag string) bool {
	return slices.Contains(o.Tags, tag)
}

// Validate validates the Order struct.
func (o *Order) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid order", err)
	}

	return nil
}
