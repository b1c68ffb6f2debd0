package marketdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DownloadConfigTestSuite struct {
	suite.Suite
}

func TestDownloadConfigSuite(t *testing.T) {
	suite.Run(t, new(DownloadConfigTestSuite))
}

func (suite *DownloadConfigTestSuite) TestParse() {
	config, err := ParseDownloadConfig([]byte(`
tickers: [AAPL, MSFT]
start_date: "2024-10-01"
end_date: "2025-09-30"
`))
	suite.Require().NoError(err)
	suite.Equal([]string{"AAPL", "MSFT"}, config.Tickers)
	suite.Equal("1m", config.Interval)

	params, err := config.ToDownloadParams("AAPL")
	suite.Require().NoError(err)
	suite.Equal("AAPL", params.Ticker)
	suite.Equal(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), params.StartDate)
	suite.Equal(time.Date(2025, 9, 30, 23, 59, 59, int(999*time.Millisecond), time.UTC), params.EndDate)
	suite.Equal(1, params.Multiplier)
	suite.Equal(models.Minute, params.Timespan)
}

func (suite *DownloadConfigTestSuite) TestInvalid() {
	tests := []struct {
		name string
		yaml string
		code errors.ErrorCode
	}{
		{"no tickers", "start_date: \"2024-01-01\"\nend_date: \"2024-02-01\"", errors.ErrCodeInvalidConfiguration},
		{"bad date", "tickers: [AAPL]\nstart_date: \"01/01/2024\"\nend_date: \"2024-02-01\"", errors.ErrCodeInvalidConfiguration},
		{"bad interval", "tickers: [AAPL]\nstart_date: \"2024-01-01\"\nend_date: \"2024-02-01\"\ninterval: 2m", errors.ErrCodeInvalidConfiguration},
		{"end before start", "tickers: [AAPL]\nstart_date: \"2024-02-01\"\nend_date: \"2024-01-01\"", errors.ErrCodeInvalidPeriod},
		{"not yaml", "tickers: [", errors.ErrCodeInvalidConfiguration},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := ParseDownloadConfig([]byte(tt.yaml))
			suite.True(errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func (suite *DownloadConfigTestSuite) TestParseInterval() {
	tests := []struct {
		interval   string
		multiplier int
		timespan   models.Timespan
	}{
		{"1m", 1, models.Minute},
		{"5m", 5, models.Minute},
		{"15m", 15, models.Minute},
		{"1h", 1, models.Hour},
		{"1d", 1, models.Day},
	}

	for _, tt := range tests {
		multiplier, timespan, err := ParseInterval(tt.interval)
		suite.Require().NoError(err)
		suite.Equal(tt.multiplier, multiplier)
		suite.Equal(tt.timespan, timespan)
	}

	_, _, err := ParseInterval("1w")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *DownloadConfigTestSuite) TestLoad() {
	path := filepath.Join(suite.T().TempDir(), "download.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("tickers: [SPY]\nstart_date: \"2024-01-01\"\nend_date: \"2024-01-31\"\ninterval: 5m\n"), 0644))

	config, err := LoadDownloadConfig(path)
	suite.Require().NoError(err)
	suite.Equal("5m", config.Interval)

	_, err = LoadDownloadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *DownloadConfigTestSuite) TestSchema() {
	schema, err := GetDownloadConfigSchema()
	suite.Require().NoError(err)
	suite.Contains(schema, `"tickers"`)
	suite.Contains(schema, `"start_date"`)
	suite.Equal(2, strings.Count(schema, `"format":"date"`))
}
