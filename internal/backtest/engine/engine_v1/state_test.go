package engine

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/stretchr/testify/suite"
)

// BacktestStateTestSuite is a test suite for BacktestState
type BacktestStateTestSuite struct {
	suite.Suite
	state *BacktestState
}

func TestBacktestStateSuite(t *testing.T) {
	suite.Run(t, new(BacktestStateTestSuite))
}

func (suite *BacktestStateTestSuite) SetupSuite() {
	var err error

	suite.state, err = NewBacktestState(logger.NewNopLogger())
	suite.Require().NoError(err)
}

func (suite *BacktestStateTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.state.Close())
}

func (suite *BacktestStateTestSuite) SetupTest() {
	suite.Require().NoError(suite.state.Initialize())
}

func (suite *BacktestStateTestSuite) TearDownTest() {
	suite.Require().NoError(suite.state.Cleanup())
}

var stateInstrument = types.InstrumentID{Symbol: "AAPL", Venue: "SIM"}

func (suite *BacktestStateTestSuite) TestRecordOrderReplacesStatus() {
	at := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)

	order := types.NewStopMarketOrder(stateInstrument, types.PurchaseTypeBuy, 100, 106.5, true, "SHORT_STOP_LOSS")
	order.Status = types.OrderStatusPending
	order.Timestamp = at
	order.StrategyID = "ZSCORE-001"

	suite.Require().NoError(suite.state.RecordOrder(order))

	order.Status = types.OrderStatusCancelled
	suite.Require().NoError(suite.state.RecordOrder(order))

	orders, err := suite.state.GetAllOrders()
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)

	got := orders[0]
	suite.Equal(order.OrderID, got.OrderID)
	suite.Equal(stateInstrument, got.InstrumentID)
	suite.Equal(types.PurchaseTypeBuy, got.Side)
	suite.Equal(types.OrderTypeStopMarket, got.OrderType)
	suite.Equal(100.0, got.Quantity)
	suite.Equal(106.5, got.TriggerPrice)
	suite.True(got.ReduceOnly)
	suite.Equal([]string{"SHORT_STOP_LOSS"}, got.Tags)
	suite.Equal(types.OrderStatusCancelled, got.Status)
	suite.Equal("ZSCORE-001", got.StrategyID)
	suite.True(at.Equal(got.Timestamp))
}

func (suite *BacktestStateTestSuite) TestRecordFillAndCommissions() {
	at := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)

	fills := []types.Fill{
		{FillID: "f1", OrderID: "o1", PositionID: "p1", InstrumentID: stateInstrument, Side: types.PurchaseTypeSell, Quantity: 100, Price: 110, Commission: 1, ExecutedAt: at},
		{FillID: "f2", OrderID: "o2", PositionID: "p1", InstrumentID: stateInstrument, Side: types.PurchaseTypeBuy, Quantity: 100, Price: 102, Commission: 1.5, RealizedPnL: 800, ExecutedAt: at.Add(time.Minute)},
	}

	for _, fill := range fills {
		suite.Require().NoError(suite.state.RecordFill(fill))
	}

	got, err := suite.state.GetAllFills()
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal("f1", got[0].FillID)
	suite.Equal("f2", got[1].FillID)
	suite.Equal(800.0, got[1].RealizedPnL)
	suite.Equal(stateInstrument, got[1].InstrumentID)

	total, err := suite.state.TotalCommissions()
	suite.Require().NoError(err)
	suite.InDelta(2.5, total, 1e-9)
}

func (suite *BacktestStateTestSuite) TestTotalCommissionsWithoutFills() {
	total, err := suite.state.TotalCommissions()
	suite.Require().NoError(err)
	suite.Equal(0.0, total)
}

func (suite *BacktestStateTestSuite) TestRecordBalances() {
	at := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)

	snapshots := []types.BalanceSnapshot{
		{Time: at, Total: 100_000, Currency: "USD"},
		{Time: at.Add(time.Minute), Total: 100_250, Currency: "USD"},
	}

	suite.Require().NoError(suite.state.RecordBalances(snapshots))

	got, err := suite.state.GetBalances()
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(100_250.0, got[1].Total)
	suite.Equal("USD", got[1].Currency)
}

func (suite *BacktestStateTestSuite) TestCleanupClearsTables() {
	order := types.NewMarketOrder(stateInstrument, types.PurchaseTypeSell, 10)
	order.Status = types.OrderStatusFilled
	suite.Require().NoError(suite.state.RecordOrder(order))

	suite.Require().NoError(suite.state.Cleanup())

	orders, err := suite.state.GetAllOrders()
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func (suite *BacktestStateTestSuite) TestWriteParquet() {
	at := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)

	order := types.NewMarketOrder(stateInstrument, types.PurchaseTypeSell, 10, "ENTRY_SHORT")
	order.Status = types.OrderStatusFilled
	order.Timestamp = at
	suite.Require().NoError(suite.state.RecordOrder(order))
	suite.Require().NoError(suite.state.RecordFill(types.Fill{
		FillID: "f1", OrderID: order.OrderID, PositionID: "p1", InstrumentID: stateInstrument,
		Side: types.PurchaseTypeSell, Quantity: 10, Price: 110, ExecutedAt: at,
	}))
	suite.Require().NoError(suite.state.RecordBalances([]types.BalanceSnapshot{{Time: at, Total: 100_000, Currency: "USD"}}))

	dir := filepath.Join(suite.T().TempDir(), "AAPL")
	suite.Require().NoError(suite.state.Write(dir))

	db, err := sql.Open("duckdb", ":memory:")
	suite.Require().NoError(err)
	defer db.Close()

	for file, expected := range map[string]int{"orders.parquet": 1, "fills.parquet": 1, "balances.parquet": 1} {
		var count int

		err := db.QueryRow("SELECT COUNT(*) FROM read_parquet('" + filepath.Join(dir, file) + "')").Scan(&count)
		suite.Require().NoError(err, file)
		suite.Equal(expected, count, file)
	}
}
