package writer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *DuckDBWriterTestSuite) TestNewDuckDBWriter() {
	outputPath := filepath.Join(suite.tempDir, "AAPL.parquet")
	w := NewDuckDBWriter(outputPath, nil)

	duckWriter, ok := w.(*DuckDBWriter)
	suite.Require().True(ok)
	suite.Equal(outputPath, duckWriter.GetOutputPath())
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestWriteWithoutInitialize() {
	w := NewDuckDBWriter(filepath.Join(suite.tempDir, "AAPL.parquet"), nil)

	err := w.Write(types.MarketData{Symbol: "AAPL", Time: time.Now()})
	suite.True(errors.HasCode(err, errors.ErrCodeDataWriteFailed))

	_, err = w.Finalize()
	suite.True(errors.HasCode(err, errors.ErrCodeDataWriteFailed))
	suite.NoError(w.Close())
}

func (suite *DuckDBWriterTestSuite) TestExportIsReadableByDataSource() {
	outputPath := filepath.Join(suite.tempDir, "stocks", "minute_interval", "AAPL.parquet")
	w := NewDuckDBWriter(outputPath, logger.NewNopLogger())
	suite.Require().NoError(w.Initialize())

	start := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)

	// written out of order
	for _, minute := range []int{2, 0, 1} {
		suite.Require().NoError(w.Write(types.MarketData{
			Symbol: "AAPL",
			Time:   start.Add(time.Duration(minute) * time.Minute),
			Open:   100,
			High:   101,
			Low:    99,
			Close:  100 + float64(minute),
			Volume: 10,
		}))
	}

	path, err := w.Finalize()
	suite.Require().NoError(err)
	suite.Equal(outputPath, path)
	suite.Require().NoError(w.Close())
	suite.FileExists(outputPath)

	ds, err := datasource.NewDataSource("", logger.NewNopLogger())
	suite.Require().NoError(err)
	defer ds.Close()

	suite.Require().NoError(ds.Initialize(outputPath))

	rows, err := datasource.ReadRows(ds, optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)

	for i, row := range rows {
		suite.Equal("AAPL", row.Symbol)
		suite.Equal(100+float64(i), row.Close)
		suite.True(start.Add(time.Duration(i) * time.Minute).Equal(row.Time))
	}
}

func (suite *DuckDBWriterTestSuite) TestCloseWithoutFinalize() {
	w := NewDuckDBWriter(filepath.Join(suite.tempDir, "MSFT.parquet"), nil)
	suite.Require().NoError(w.Initialize())
	suite.Require().NoError(w.Write(types.MarketData{Symbol: "MSFT", Time: time.Now(), Close: 1}))

	suite.NoError(w.Close())
	suite.NoFileExists(filepath.Join(suite.tempDir, "MSFT.parquet"))
}
