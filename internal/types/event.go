package types

import "time"

// EventKind tags the variant carried by an Event.
type EventKind int

const (
	// EventKindOther covers every event the strategy does not react to (accepted, filled, cancelled).
	EventKindOther EventKind = iota
	EventKindPositionOpened
	EventKindPositionClosed
	EventKindOrderDenied
	EventKindOrderRejected
)

func (k EventKind) String() string {
	switch k {
	case EventKindPositionOpened:
		return "PositionOpened"
	case EventKindPositionClosed:
		return "PositionClosed"
	case EventKindOrderDenied:
		return "OrderDenied"
	case EventKindOrderRejected:
		return "OrderRejected"
	case EventKindOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Event is an order or position notification delivered to strategies in arrival order.
type Event struct {
	Kind EventKind
	// Name describes the concrete event, e.g. "OrderFilled" for EventKindOther.
	Name         string
	Time         time.Time
	InstrumentID InstrumentID
	OrderID      string
	PositionID   string
	// Entry is the side of the opening order, set for position events.
	Entry PurchaseType
	// Reason is set for denied and rejected orders.
	Reason string
}

func NewPositionOpenedEvent(position Position, at time.Time) Event {
	return Event{
		Kind:         EventKindPositionOpened,
		Name:         EventKindPositionOpened.String(),
		Time:         at,
		InstrumentID: position.InstrumentID,
		PositionID:   position.PositionID,
		Entry:        position.Entry,
	}
}

func NewPositionClosedEvent(position Position, at time.Time) Event {
	return Event{
		Kind:         EventKindPositionClosed,
		Name:         EventKindPositionClosed.String(),
		Time:         at,
		InstrumentID: position.InstrumentID,
		PositionID:   position.PositionID,
		Entry:        position.Entry,
	}
}

func NewOrderDeniedEvent(order Order, reason string, at time.Time) Event {
	return Event{
		Kind:         EventKindOrderDenied,
		Name:         EventKindOrderDenied.String(),
		Time:         at,
		InstrumentID: order.InstrumentID,
		OrderID:      order.OrderID,
		Reason:       reason,
	}
}

func NewOrderRejectedEvent(order Order, reason string, at time.Time) Event {
	return Event{
		Kind:         EventKindOrderRejected,
		Name:         EventKindOrderRejected.String(),
		Time:         at,
		InstrumentID: order.InstrumentID,
		OrderID:      order.OrderID,
		Reason:       reason,
	}
}

// NewOrderEvent creates an informational order event such as "OrderFilled".
func NewOrderEvent(name string, order Order, at time.Time) Event {
	return Event{
		Kind:         EventKindOther,
		Name:         name,
		Time:         at,
		InstrumentID: order.InstrumentID,
		OrderID:      order.OrderID,
	}
}
