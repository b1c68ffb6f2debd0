package screener

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/mocks"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const testDataset = "test_dataset"

type ScreenerTestSuite struct {
	suite.Suite
	dataDir string
	config  Config
	out     *bytes.Buffer
	now     time.Time
}

func TestScreenerSuite(t *testing.T) {
	suite.Run(t, new(ScreenerTestSuite))
}

func (suite *ScreenerTestSuite) SetupTest() {
	suite.dataDir = suite.T().TempDir()
	suite.out = &bytes.Buffer{}
	suite.now = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

	suite.config = DefaultConfig(suite.dataDir, testDataset)
	suite.config.OutputDir = suite.T().TempDir()
	suite.config.Workers = 2
	suite.config.ADFMaxLag = 2
	suite.config.NATRPeriod = 3
}

func (suite *ScreenerTestSuite) newScreener() *Screener {
	s, err := NewScreener(suite.config, logger.NewNopLogger(), WithOutput(suite.out), WithClock(func() time.Time { return suite.now }))
	suite.Require().NoError(err)

	return s
}

func (suite *ScreenerTestSuite) writeTicker(ticker string, closes []float64) {
	start := time.Date(2024, 10, 1, 13, 30, 0, 0, time.UTC)
	rows := make([]types.MarketData, len(closes))

	for i, c := range closes {
		rows[i] = types.MarketData{
			Symbol: ticker,
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 10,
		}
	}

	suite.Require().NoError(mocks.WriteParquet(datasource.TickerDataPath(suite.dataDir, testDataset, ticker), rows))
}

func (suite *ScreenerTestSuite) TestRun() {
	suite.writeTicker("AAPL", noise(1, 200, 100))
	suite.writeTicker("MSFT", noise(2, 200, 50))
	suite.writeTicker("TINY", noise(3, 5, 10))

	path, results, err := suite.newScreener().Run(context.Background())
	suite.Require().NoError(err)

	suite.Equal(filepath.Join(suite.config.OutputDir, "results_1min_2025-01-02-15:04.csv"), path)
	suite.FileExists(path)
	suite.Contains(suite.out.String(), "Completed in")

	suite.Require().Len(results, 2)
	suite.Equal("AAPL", results[0].Ticker)
	suite.Equal("MSFT", results[1].Ticker)

	for _, result := range results {
		suite.Equal(2000.0, result.TotalVolume)
		suite.True(result.Below10)
		suite.Less(result.ADF, result.ADFCritical10)
		suite.Greater(result.NATRMean, 0.0)
		suite.LessOrEqual(result.NATRMin, result.NATRMean)
		suite.LessOrEqual(result.MinPrice, result.MeanPrice)
		suite.LessOrEqual(result.MeanPrice, result.MaxPrice)
	}

	suite.FileExists(filepath.Join(suite.dataDir, TempDirName, "AAPL.csv"))
	suite.FileExists(filepath.Join(suite.dataDir, TempDirName, "MSFT.csv"))
	suite.NoFileExists(filepath.Join(suite.dataDir, TempDirName, "TINY.csv"))

	aggregated, err := readResults(path)
	suite.Require().NoError(err)
	suite.Equal(results, aggregated)
}

func (suite *ScreenerTestSuite) TestExistingResultsAreSkipped() {
	suite.writeTicker("AAPL", noise(1, 200, 100))

	tempDir := filepath.Join(suite.dataDir, TempDirName)
	suite.Require().NoError(os.MkdirAll(tempDir, 0755))
	suite.Require().NoError(writeResults(filepath.Join(tempDir, "AAPL.csv"), []types.ScreeningResult{{Ticker: "AAPL", ADF: -99}}))

	_, results, err := suite.newScreener().Run(context.Background())
	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal(-99.0, results[0].ADF)
}

func (suite *ScreenerTestSuite) TestMissingDataDirectory() {
	_, _, err := suite.newScreener().Run(context.Background())
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *ScreenerTestSuite) TestCancelled() {
	suite.writeTicker("AAPL", noise(1, 200, 100))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := suite.newScreener().Run(ctx)
	suite.True(errors.HasCode(err, errors.ErrCodeScreeningFailed))
}

func (suite *ScreenerTestSuite) TestInvalidConfig() {
	config := suite.config
	config.Workers = 0

	_, err := NewScreener(config, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ScreenerTestSuite) TestCompute() {
	barType, err := types.NewBarType(types.InstrumentID{Symbol: "AAPL", Venue: "SIM"}, "1-MINUTE-LAST-EXTERNAL")
	suite.Require().NoError(err)

	closes := noise(7, 100, 20)
	bars := mocks.BarsFromCloses(barType, suite.now, closes, 0.5)

	result, err := Compute("AAPL", bars, 2, 3)
	suite.Require().NoError(err)
	suite.Equal("AAPL", result.Ticker)
	suite.Equal(result.ADF < result.ADFCritical10, result.Below10)

	_, err = Compute("AAPL", nil, 2, 3)
	suite.True(errors.HasCode(err, errors.ErrCodeInsufficientData))

	_, err = Compute("AAPL", bars[:8], 2, 10)
	suite.True(errors.HasCode(err, errors.ErrCodeInsufficientData))
}
