package engine

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/cache"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// BacktestTradingTestSuite is a test suite for BacktestTrading
type BacktestTradingTestSuite struct {
	suite.Suite
	state   *BacktestState
	cache   *cache.CacheV1
	account *BacktestAccount
	trading *BacktestTrading
	barType types.BarType
	start   time.Time
}

func TestBacktestTradingSuite(t *testing.T) {
	suite.Run(t, new(BacktestTradingTestSuite))
}

func (suite *BacktestTradingTestSuite) SetupSuite() {
	var err error

	suite.state, err = NewBacktestState(logger.NewNopLogger())
	suite.Require().NoError(err)

	suite.barType, err = types.NewBarType(types.InstrumentID{Symbol: "AAPL", Venue: "SIM"}, DefaultBarSpec)
	suite.Require().NoError(err)

	suite.start = time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
}

func (suite *BacktestTradingTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.state.Close())
}

func (suite *BacktestTradingTestSuite) SetupTest() {
	suite.Require().NoError(suite.state.Cleanup())

	suite.cache = cache.NewCacheV1()
	suite.cache.AddInstrument(types.NewEquity("AAPL", "SIM"))

	suite.account = NewBacktestAccount()
	suite.account.Open("SIM", types.AccountTypeMargin, "USD", 100_000)

	suite.trading = NewBacktestTrading(
		suite.cache,
		suite.state,
		suite.account,
		commission_fee.GetCommissionFeeHandler(commission_fee.BrokerZero),
		logger.NewNopLogger(),
	)
}

func (suite *BacktestTradingTestSuite) instrument() types.InstrumentID {
	return suite.barType.InstrumentID
}

func (suite *BacktestTradingTestSuite) bar(minute int, open, high, low, closePrice float64) types.Bar {
	return types.Bar{
		BarType: suite.barType,
		Time:    suite.start.Add(time.Duration(minute) * time.Minute),
		Open:    open,
		High:    high,
		Low:     low,
		Close:   closePrice,
		Volume:  1000,
	}
}

func (suite *BacktestTradingTestSuite) drain() []string {
	var names []string

	for {
		event, ok := suite.trading.PopEvent()
		if !ok {
			return names
		}

		names = append(names, event.Name)
	}
}

func (suite *BacktestTradingTestSuite) openShort(quantity float64, price float64) types.Position {
	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(0, price, price, price, price)))
	suite.Require().NoError(suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeSell, quantity, "ENTRY_SHORT")))
	suite.drain()

	position, ok := suite.cache.OpenPosition(suite.instrument())
	suite.Require().True(ok)

	return position
}

func (suite *BacktestTradingTestSuite) TestSubmitWithoutBar() {
	err := suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidOrder))
}

func (suite *BacktestTradingTestSuite) TestSubmitUnknownInstrument() {
	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(0, 100, 101, 99, 100)))

	err := suite.trading.SubmitOrder(types.NewMarketOrder(types.InstrumentID{Symbol: "MSFT", Venue: "SIM"}, types.PurchaseTypeBuy, 10))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidInstrument))
}

func (suite *BacktestTradingTestSuite) TestPendingEvents() {
	suite.False(suite.trading.PendingEvents())

	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(0, 100, 101, 99, 100)))
	suite.Require().NoError(suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10)))
	suite.True(suite.trading.PendingEvents())

	suite.NotEmpty(suite.drain())
	suite.False(suite.trading.PendingEvents())

	suite.trading.Reset()
	suite.False(suite.trading.PendingEvents())
}

func (suite *BacktestTradingTestSuite) TestMarketOrderFillsAtClose() {
	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(0, 100, 101, 99, 100.5)))
	suite.Require().NoError(suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeSell, 115, "ENTRY_SHORT")))

	suite.Equal([]string{"OrderAccepted", "OrderFilled", "PositionOpened"}, suite.drain())

	position, ok := suite.cache.OpenPosition(suite.instrument())
	suite.Require().True(ok)
	suite.Equal(types.PositionSideShort, position.Side)
	suite.Equal(types.PurchaseTypeSell, position.Entry)
	suite.Equal(115.0, position.Quantity)
	suite.Equal(100.5, position.AvgPxOpen)

	fills, err := suite.state.GetAllFills()
	suite.Require().NoError(err)
	suite.Require().Len(fills, 1)
	suite.Equal(100.5, fills[0].Price)
	suite.Equal(position.PositionID, fills[0].PositionID)
}

func (suite *BacktestTradingTestSuite) TestSellStopTriggerPrice() {
	tests := []struct {
		name     string
		bar      types.Bar
		expected float64
		filled   bool
	}{
		{"not crossed", suite.bar(1, 100, 101, 95.01, 100), 0, false},
		{"touched", suite.bar(1, 100, 101, 95, 96), 95, true},
		{"gap below", suite.bar(1, 93, 94, 92, 93), 93, true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(0, 100, 100, 100, 100)))
			suite.Require().NoError(suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10)))

			stop := types.NewStopMarketOrder(suite.instrument(), types.PurchaseTypeSell, 10, 95, true, "LONG_STOP_LOSS")
			suite.Require().NoError(suite.trading.SubmitOrder(stop))
			suite.drain()

			suite.Require().NoError(suite.trading.UpdateCurrentBar(tc.bar))

			order, ok := suite.cache.Order(stop.OrderID)
			suite.Require().True(ok)

			if !tc.filled {
				suite.Equal(types.OrderStatusPending, order.Status)
				suite.Empty(suite.drain())

				return
			}

			suite.Equal(types.OrderStatusFilled, order.Status)
			suite.Equal([]string{"OrderFilled", "PositionClosed"}, suite.drain())

			fills, err := suite.state.GetAllFills()
			suite.Require().NoError(err)
			suite.Require().Len(fills, 2)
			suite.Equal(tc.expected, fills[1].Price)
		})
	}
}

func (suite *BacktestTradingTestSuite) TestBuyStopTriggerPrice() {
	tests := []struct {
		name     string
		bar      types.Bar
		expected float64
		filled   bool
	}{
		{"not crossed", suite.bar(1, 110, 118.66, 109, 110), 0, false},
		{"touched", suite.bar(1, 110, 118.67, 109, 118), 118.67, true},
		{"gap above", suite.bar(1, 120, 121, 119, 120), 120, true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.SetupTest()

			position := suite.openShort(115, 110)

			stop := types.NewStopMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 115, 118.67, true, "SHORT_STOP_LOSS")
			suite.Require().NoError(suite.trading.SubmitOrder(stop))
			suite.drain()

			suite.Require().NoError(suite.trading.UpdateCurrentBar(tc.bar))

			order, _ := suite.cache.Order(stop.OrderID)
			if !tc.filled {
				suite.Equal(types.OrderStatusPending, order.Status)

				return
			}

			suite.Equal(types.OrderStatusFilled, order.Status)

			closed := suite.cache.Positions()[0]
			suite.Equal(position.PositionID, closed.PositionID)
			suite.False(closed.IsOpen())
			suite.InDelta((110-tc.expected)*115, closed.RealizedPnL, 1e-6)
			suite.InDelta(100_000+(110-tc.expected)*115, suite.account.Total(), 1e-6)
		})
	}
}

func (suite *BacktestTradingTestSuite) TestReduceOnlyDeniedWithoutPosition() {
	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(0, 100, 101, 99, 100)))

	stop := types.NewStopMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10, 105, true, "SHORT_STOP_LOSS")
	suite.Require().NoError(suite.trading.SubmitOrder(stop))

	event, ok := suite.trading.PopEvent()
	suite.Require().True(ok)
	suite.Equal(types.EventKindOrderDenied, event.Kind)
	suite.Equal("REDUCE_ONLY STOP_MARKET BUY order would have increased position", event.Reason)

	order, _ := suite.cache.Order(stop.OrderID)
	suite.Equal(types.OrderStatusDenied, order.Status)
	suite.Equal(0, suite.cache.OrdersOpenCount())
}

func (suite *BacktestTradingTestSuite) TestReduceOnlyDeniedOnSameSide() {
	suite.openShort(10, 100)

	stop := types.NewStopMarketOrder(suite.instrument(), types.PurchaseTypeSell, 10, 95, true)
	suite.Require().NoError(suite.trading.SubmitOrder(stop))

	event, ok := suite.trading.PopEvent()
	suite.Require().True(ok)
	suite.Equal(types.EventKindOrderDenied, event.Kind)
}

func (suite *BacktestTradingTestSuite) TestReduceOnlyRejectedAtTrigger() {
	suite.openShort(10, 100)

	stop := types.NewStopMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10, 105, true, "SHORT_STOP_LOSS")
	suite.Require().NoError(suite.trading.SubmitOrder(stop))
	suite.drain()

	// position closed by another order while the stop keeps resting
	suite.Require().NoError(suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10)))
	suite.drain()

	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(1, 104, 106, 103, 105)))

	event, ok := suite.trading.PopEvent()
	suite.Require().True(ok)
	suite.Equal(types.EventKindOrderRejected, event.Kind)
	suite.Equal(stop.OrderID, event.OrderID)
	suite.Equal("REDUCE_ONLY STOP_MARKET BUY order would have increased position", event.Reason)
	suite.Equal(0, suite.cache.PositionsOpenCount())
}

func (suite *BacktestTradingTestSuite) TestReduceOnlyQuantityClamped() {
	suite.openShort(10, 100)

	stop := types.NewStopMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 25, 105, true)
	suite.Require().NoError(suite.trading.SubmitOrder(stop))
	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(1, 104, 106, 103, 105)))

	fills, err := suite.state.GetAllFills()
	suite.Require().NoError(err)
	suite.Require().Len(fills, 2)
	suite.Equal(10.0, fills[1].Quantity)
	suite.Equal(0, suite.cache.PositionsOpenCount())
}

func (suite *BacktestTradingTestSuite) TestNettingPartialCloseAndFlip() {
	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(0, 100, 100, 100, 100)))
	suite.Require().NoError(suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10)))
	suite.drain()

	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(1, 102, 102, 102, 102)))
	suite.Require().NoError(suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeSell, 4)))
	suite.Equal([]string{"OrderAccepted", "OrderFilled", "PositionChanged"}, suite.drain())

	position, ok := suite.cache.OpenPosition(suite.instrument())
	suite.Require().True(ok)
	suite.Equal(6.0, position.Quantity)
	suite.InDelta(8.0, position.RealizedPnL, 1e-9)

	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(2, 105, 105, 105, 105)))
	suite.Require().NoError(suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeSell, 10)))
	suite.Equal([]string{"OrderAccepted", "OrderFilled", "PositionClosed", "PositionOpened"}, suite.drain())

	flipped, ok := suite.cache.OpenPosition(suite.instrument())
	suite.Require().True(ok)
	suite.NotEqual(position.PositionID, flipped.PositionID)
	suite.Equal(types.PositionSideShort, flipped.Side)
	suite.Equal(4.0, flipped.Quantity)
	suite.Equal(105.0, flipped.AvgPxOpen)

	suite.InDelta(100_000+8+30, suite.account.Total(), 1e-9)
}

func (suite *BacktestTradingTestSuite) TestAddingToPositionAveragesPrice() {
	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(0, 100, 100, 100, 100)))
	suite.Require().NoError(suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10)))
	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(1, 110, 110, 110, 110)))
	suite.Require().NoError(suite.trading.SubmitOrder(types.NewMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10)))

	position, ok := suite.cache.OpenPosition(suite.instrument())
	suite.Require().True(ok)
	suite.Equal(20.0, position.Quantity)
	suite.InDelta(105.0, position.AvgPxOpen, 1e-9)
	suite.Len(suite.cache.Positions(), 1)
}

func (suite *BacktestTradingTestSuite) TestCommissionsBooked() {
	suite.trading.commission = commission_fee.GetCommissionFeeHandler(commission_fee.BrokerInteractiveBroker)

	position := suite.openShort(1000, 100)
	suite.Require().NoError(suite.trading.ClosePosition(position))

	suite.InDelta(10.0, suite.account.Commissions(), 1e-9)
	suite.InDelta(100_000-10, suite.account.Total(), 1e-9)

	closed := suite.cache.Positions()[0]
	suite.InDelta(10.0, closed.Commissions, 1e-9)
}

func (suite *BacktestTradingTestSuite) TestCancelOrder() {
	suite.openShort(10, 100)

	stop := types.NewStopMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10, 105, true)
	suite.Require().NoError(suite.trading.SubmitOrder(stop))
	suite.drain()

	suite.Require().NoError(suite.trading.CancelOrder(stop.OrderID))
	suite.Equal([]string{"OrderCanceled"}, suite.drain())

	// cancelling twice is a no-op
	suite.Require().NoError(suite.trading.CancelOrder(stop.OrderID))
	suite.Empty(suite.drain())

	err := suite.trading.CancelOrder("missing")
	suite.True(errors.HasCode(err, errors.ErrCodeOrderNotFound))
}

func (suite *BacktestTradingTestSuite) TestCancelAllAndCloseAll() {
	suite.openShort(10, 100)

	suite.Require().NoError(suite.trading.SubmitOrder(types.NewStopMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10, 105, true)))
	suite.Require().NoError(suite.trading.SubmitOrder(types.NewStopMarketOrder(suite.instrument(), types.PurchaseTypeBuy, 10, 110, true)))
	suite.Equal(2, suite.cache.OrdersOpenCount())

	suite.Require().NoError(suite.trading.CancelAllOrders(suite.instrument()))
	suite.Equal(0, suite.cache.OrdersOpenCount())

	suite.Require().NoError(suite.trading.CloseAllPositions(suite.instrument()))
	suite.Equal(0, suite.cache.PositionsOpenCount())
}

func (suite *BacktestTradingTestSuite) TestClosePositionNotFound() {
	suite.Require().NoError(suite.trading.UpdateCurrentBar(suite.bar(0, 100, 100, 100, 100)))

	err := suite.trading.ClosePosition(types.Position{PositionID: "missing", InstrumentID: suite.instrument()})
	suite.True(errors.HasCode(err, errors.ErrCodePositionNotFound))
}
