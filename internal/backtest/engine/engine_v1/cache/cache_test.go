package cache

import (
	"testing"

	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/stretchr/testify/suite"
)

// CacheTestSuite is a test suite for CacheV1
type CacheTestSuite struct {
	suite.Suite
	cache *CacheV1
	aapl  types.InstrumentID
	msft  types.InstrumentID
}

// SetupTest runs before each test
func (suite *CacheTestSuite) SetupTest() {
	suite.cache = NewCacheV1()
	suite.aapl = types.InstrumentID{Symbol: "AAPL", Venue: "SIM"}
	suite.msft = types.InstrumentID{Symbol: "MSFT", Venue: "SIM"}
}

// TestCacheSuite runs the test suite
func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (suite *CacheTestSuite) TestInstrument() {
	_, ok := suite.cache.Instrument(suite.aapl)
	suite.False(ok)

	suite.cache.AddInstrument(types.NewEquity("AAPL", "SIM"))

	instrument, ok := suite.cache.Instrument(suite.aapl)
	suite.True(ok)
	suite.Equal("AAPL", instrument.Symbol())
	suite.Len(suite.cache.Instruments(), 1)
}

func (suite *CacheTestSuite) TestOrdersOpen() {
	stop := types.NewStopMarketOrder(suite.aapl, types.PurchaseTypeSell, 10, 95, true)
	stop.Status = types.OrderStatusPending
	filled := types.NewMarketOrder(suite.aapl, types.PurchaseTypeBuy, 10)
	filled.Status = types.OrderStatusFilled
	other := types.NewStopMarketOrder(suite.msft, types.PurchaseTypeBuy, 1, 300, true)
	other.Status = types.OrderStatusPending

	suite.cache.PutOrder(filled)
	suite.cache.PutOrder(stop)
	suite.cache.PutOrder(other)

	suite.Equal(2, suite.cache.OrdersOpenCount())
	suite.Equal([]types.Order{stop}, suite.cache.OrdersOpen(suite.aapl))
	suite.Len(suite.cache.Orders(), 3)

	stop.Status = types.OrderStatusCancelled
	suite.cache.PutOrder(stop)

	suite.Equal(1, suite.cache.OrdersOpenCount())
	suite.Empty(suite.cache.OrdersOpen(suite.aapl))
	suite.Len(suite.cache.Orders(), 3)

	cached, ok := suite.cache.Order(stop.OrderID)
	suite.True(ok)
	suite.Equal(types.OrderStatusCancelled, cached.Status)
}

func (suite *CacheTestSuite) TestPositionsOpen() {
	position := types.Position{PositionID: "P-1", InstrumentID: suite.aapl, Side: types.PositionSideShort, Quantity: 5}
	suite.cache.PutPosition(position)

	suite.Equal(1, suite.cache.PositionsOpenCount())

	open, ok := suite.cache.OpenPosition(suite.aapl)
	suite.True(ok)
	suite.Equal("P-1", open.PositionID)

	_, ok = suite.cache.OpenPosition(suite.msft)
	suite.False(ok)

	position.Side = types.PositionSideFlat
	position.Quantity = 0
	suite.cache.PutPosition(position)

	suite.Equal(0, suite.cache.PositionsOpenCount())
	suite.Empty(suite.cache.PositionsOpen(suite.aapl))
	suite.Len(suite.cache.Positions(), 1)
}

// TestReset tests the Reset functionality
func (suite *CacheTestSuite) TestReset() {
	suite.cache.AddInstrument(types.NewEquity("AAPL", "SIM"))
	order := types.NewMarketOrder(suite.aapl, types.PurchaseTypeBuy, 1)
	order.Status = types.OrderStatusPending
	suite.cache.PutOrder(order)
	suite.cache.PutPosition(types.Position{PositionID: "P-1", InstrumentID: suite.aapl, Side: types.PositionSideLong, Quantity: 1})

	suite.cache.Reset()

	_, ok := suite.cache.Instrument(suite.aapl)
	suite.False(ok)
	suite.Equal(0, suite.cache.OrdersOpenCount())
	suite.Equal(0, suite.cache.PositionsOpenCount())
	suite.Empty(suite.cache.Orders())
}
