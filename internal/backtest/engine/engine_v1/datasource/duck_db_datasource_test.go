package datasource_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/mocks"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBDataSourceTestSuite struct {
	suite.Suite
	dataSource *datasource.DuckDBDataSource
	path       string
	start      time.Time
}

func TestDuckDBDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBDataSourceTestSuite))
}

func (suite *DuckDBDataSourceTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
	suite.path = filepath.Join(suite.T().TempDir(), "AAPL.parquet")

	rows := make([]types.MarketData, 0, 10)
	// written in reverse so ordering is the data source's job
	for i := 9; i >= 0; i-- {
		rows = append(rows, types.MarketData{
			Symbol: "AAPL",
			Time:   suite.start.Add(time.Duration(i) * time.Minute),
			Open:   100 + float64(i),
			High:   101 + float64(i),
			Low:    99 + float64(i),
			Close:  100.5 + float64(i),
			Volume: 1000,
		})
	}

	suite.Require().NoError(mocks.WriteParquet(suite.path, rows))

	ds, err := datasource.NewDataSource("", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().NoError(ds.Initialize(suite.path))

	suite.dataSource = ds
}

func (suite *DuckDBDataSourceTestSuite) TearDownTest() {
	suite.NoError(suite.dataSource.Close())
}

func (suite *DuckDBDataSourceTestSuite) TestCount() {
	count, err := suite.dataSource.Count(optional.None[time.Time](), optional.None[time.Time]())
	suite.NoError(err)
	suite.Equal(10, count)

	count, err = suite.dataSource.Count(optional.Some(suite.start.Add(5*time.Minute)), optional.None[time.Time]())
	suite.NoError(err)
	suite.Equal(5, count)

	count, err = suite.dataSource.Count(optional.Some(suite.start.Add(2*time.Minute)), optional.Some(suite.start.Add(4*time.Minute)))
	suite.NoError(err)
	suite.Equal(3, count)
}

func (suite *DuckDBDataSourceTestSuite) TestReadAllOrdered() {
	rows, err := datasource.ReadRows(suite.dataSource, optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Require().Len(rows, 10)

	for i, row := range rows {
		suite.Equal("AAPL", row.Symbol)
		suite.True(row.Time.Equal(suite.start.Add(time.Duration(i)*time.Minute)), "row %d", i)
		suite.Equal(100.5+float64(i), row.Close)
	}
}

func (suite *DuckDBDataSourceTestSuite) TestReadAllStopsEarly() {
	seen := 0

	for _, err := range suite.dataSource.ReadAll(optional.None[time.Time](), optional.None[time.Time]()) {
		suite.Require().NoError(err)

		seen++
		if seen == 3 {
			break
		}
	}

	suite.Equal(3, seen)
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeMissingFile() {
	ds, err := datasource.NewDataSource("", logger.NewNopLogger())
	suite.Require().NoError(err)
	defer ds.Close()

	err = ds.Initialize(filepath.Join(suite.T().TempDir(), "missing.parquet"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}
