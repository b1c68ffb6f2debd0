package engine

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/stretchr/testify/suite"
)

type AnalyzerTestSuite struct {
	suite.Suite
	day time.Time
}

func TestAnalyzerSuite(t *testing.T) {
	suite.Run(t, new(AnalyzerTestSuite))
}

func (suite *AnalyzerTestSuite) SetupTest() {
	suite.day = time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
}

func (suite *AnalyzerTestSuite) snapshot(day int, minute int, total float64) types.BalanceSnapshot {
	return types.BalanceSnapshot{
		Time:     suite.day.AddDate(0, 0, day).Add(time.Duration(minute) * time.Minute),
		Total:    total,
		Currency: "USD",
	}
}

func (suite *AnalyzerTestSuite) TestDailyReturnsUseLastBalanceOfDay() {
	snapshots := []types.BalanceSnapshot{
		suite.snapshot(0, 0, 100_500),
		suite.snapshot(0, 1, 101_000),
		suite.snapshot(1, 0, 99_990),
	}

	returns := DailyReturns(100_000, snapshots)

	suite.Require().Len(returns, 2)
	suite.InDelta(0.01, returns[0], 1e-12)
	suite.InDelta(-0.01, returns[1], 1e-12)
}

func (suite *AnalyzerTestSuite) TestSharpeRatio() {
	tests := []struct {
		name     string
		returns  []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single return", []float64{0.01}, 0},
		{"zero deviation", []float64{0.01, 0.01, 0.01}, 0},
		// mean 0.01, sample std 0.01
		{"annualized", []float64{0, 0.01, 0.02}, math.Sqrt(252)},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.InDelta(tc.expected, SharpeRatio(tc.returns), 1e-9)
		})
	}
}

func (suite *AnalyzerTestSuite) TestAnalyze() {
	snapshots := []types.BalanceSnapshot{
		suite.snapshot(0, 0, 100_000),
		suite.snapshot(0, 1, 99_200),
		suite.snapshot(1, 0, 100_700),
		suite.snapshot(2, 0, 101_000),
	}

	positions := []types.Position{
		{PositionID: "p1", RealizedPnL: -800},
		{PositionID: "p2", RealizedPnL: 1800, Commissions: 2},
		{PositionID: "p3", RealizedPnL: 1, Commissions: 1},
	}

	stats := Analyze(100_000, snapshots, positions, 3)

	suite.Equal(100_000.0, stats.StartingBalance)
	suite.Equal(101_000.0, stats.FinalBalance)
	suite.InDelta(1000, stats.PnL, 1e-9)
	suite.InDelta(1.0, stats.PnLPercent, 1e-9)
	suite.Equal(99_200.0, stats.LowestBalance)
	suite.Equal(3.0, stats.TotalCommissions)
	suite.Equal(3, stats.Positions)
	suite.Equal(1, stats.Winners)
	suite.Equal(1, stats.Losers)
	suite.InDelta(1.0/3.0, stats.WinRate, 1e-12)
	suite.NotZero(stats.Sharpe252)
}

func (suite *AnalyzerTestSuite) TestAnalyzeWithoutSnapshots() {
	stats := Analyze(50_000, nil, nil, 0)

	suite.Equal(50_000.0, stats.FinalBalance)
	suite.Equal(50_000.0, stats.LowestBalance)
	suite.Equal(0.0, stats.PnL)
	suite.Equal(0.0, stats.Sharpe252)
	suite.Equal(0.0, stats.WinRate)
}

func (suite *AnalyzerTestSuite) TestLowestBalanceIncludesStart() {
	stats := Analyze(100_000, []types.BalanceSnapshot{suite.snapshot(0, 0, 100_100)}, nil, 0)

	suite.Equal(100_000.0, stats.LowestBalance)
}

func (suite *AnalyzerTestSuite) TestAccountTotals() {
	account := NewBacktestAccount()

	_, ok := account.BalanceTotal("SIM")
	suite.False(ok)

	account.Open("SIM", types.AccountTypeMargin, "USD", 100_000)
	account.ApplyFill(0.1, 0)
	account.ApplyFill(0.2, 0.05)

	total, ok := account.BalanceTotal("SIM")
	suite.True(ok)
	suite.Equal(100_000.25, total)

	_, ok = account.BalanceTotal("NASDAQ")
	suite.False(ok)

	account.Snapshot(suite.day)
	suite.Require().Len(account.Snapshots(), 1)
	suite.Equal("USD", account.Snapshots()[0].Currency)

	account.Reset()
	suite.Empty(account.Snapshots())
	suite.Equal(0.0, account.StartingBalance())
}
