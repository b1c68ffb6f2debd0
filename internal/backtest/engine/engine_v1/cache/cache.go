package cache

import (
	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// Cache is the read only view of instruments, orders and positions handed to strategies.
type Cache interface {
	// Instrument returns the instrument registered for the id.
	Instrument(id types.InstrumentID) (types.Instrument, bool)
	// OrdersOpenCount returns the number of open orders across all instruments.
	OrdersOpenCount() int
	// PositionsOpenCount returns the number of open positions across all instruments.
	PositionsOpenCount() int
	// OrdersOpen returns the open orders of the instrument in submission order.
	OrdersOpen(id types.InstrumentID) []types.Order
	// PositionsOpen returns the open positions of the instrument.
	PositionsOpen(id types.InstrumentID) []types.Position
}

// CacheV1 is the in memory cache owned by one backtest engine.
type CacheV1 struct {
	instruments map[types.InstrumentID]types.Instrument
	orders      map[string]types.Order
	orderIDs    []string
	positions   map[string]types.Position
	positionIDs []string
}

func NewCacheV1() *CacheV1 {
	c := &CacheV1{}
	c.Reset()

	return c
}

// Reset drops all instruments, orders and positions.
func (c *CacheV1) Reset() {
	c.instruments = make(map[types.InstrumentID]types.Instrument)
	c.orders = make(map[string]types.Order)
	c.orderIDs = nil
	c.positions = make(map[string]types.Position)
	c.positionIDs = nil
}

func (c *CacheV1) AddInstrument(instrument types.Instrument) {
	c.instruments[instrument.ID] = instrument
}

// Instrument implements cache.Cache.
func (c *CacheV1) Instrument(id types.InstrumentID) (types.Instrument, bool) {
	instrument, ok := c.instruments[id]

	return instrument, ok
}

// Instruments returns every registered instrument.
func (c *CacheV1) Instruments() []types.Instrument {
	result := make([]types.Instrument, 0, len(c.instruments))
	for _, instrument := range c.instruments {
		result = append(result, instrument)
	}

	return result
}

// PutOrder inserts or replaces an order.
func (c *CacheV1) PutOrder(order types.Order) {
	if _, exists := c.orders[order.OrderID]; !exists {
		c.orderIDs = append(c.orderIDs, order.OrderID)
	}

	c.orders[order.OrderID] = order
}

func (c *CacheV1) Order(orderID string) (types.Order, bool) {
	order, ok := c.orders[orderID]

	return order, ok
}

// Orders returns every order ever cached in submission order.
func (c *CacheV1) Orders() []types.Order {
	result := make([]types.Order, 0, len(c.orderIDs))
	for _, id := range c.orderIDs {
		result = append(result, c.orders[id])
	}

	return result
}

// OrdersOpenCount implements cache.Cache.
func (c *CacheV1) OrdersOpenCount() int {
	count := 0

	for _, order := range c.orders {
		if order.IsOpen() {
			count++
		}
	}

	return count
}

// OrdersOpen implements cache.Cache.
func (c *CacheV1) OrdersOpen(id types.InstrumentID) []types.Order {
	result := []types.Order{}

	for _, orderID := range c.orderIDs {
		order := c.orders[orderID]
		if order.IsOpen() && order.InstrumentID == id {
			result = append(result, order)
		}
	}

	return result
}

// PutPosition inserts or replaces a position.
func (c *CacheV1) PutPosition(position types.Position) {
	if _, exists := c.positions[position.PositionID]; !exists {
		c.positionIDs = append(c.positionIDs, position.PositionID)
	}

	c.positions[position.PositionID] = position
}

// Positions returns every position ever cached, open or closed.
func (c *CacheV1) Positions() []types.Position {
	result := make([]types.Position, 0, len(c.positionIDs))
	for _, id := range c.positionIDs {
		result = append(result, c.positions[id])
	}

	return result
}

// PositionsOpenCount implements cache.Cache.
func (c *CacheV1) PositionsOpenCount() int {
	count := 0

	for _, position := range c.positions {
		if position.IsOpen() {
			count++
		}
	}

	return count
}

// PositionsOpen implements cache.Cache.
func (c *CacheV1) PositionsOpen(id types.InstrumentID) []types.Position {
	result := []types.Position{}

	for _, positionID := range c.positionIDs {
		position := c.positions[positionID]
		if position.IsOpen() && position.InstrumentID == id {
			result = append(result, position)
		}
	}

	return result
}

// OpenPosition returns the open netted position of the instrument, if any.
func (c *CacheV1) OpenPosition(id types.InstrumentID) (types.Position, bool) {
	open := c.PositionsOpen(id)
	if len(open) == 0 {
		return types.Position{}, false
	}

	return open[0], true
}
