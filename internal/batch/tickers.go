package batch

import (
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
)

// LoadTickerTable reads a screening CSV. With below10Only only the rows whose ADF statistic
// is below the 10% critical value are kept.
func LoadTickerTable(path string, below10Only bool) ([]types.ScreeningResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to open ticker table %s", path)
	}
	defer file.Close()

	var rows []types.ScreeningResult
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse ticker table %s", path)
	}

	result := make([]types.ScreeningResult, 0, len(rows))

	for _, row := range rows {
		row.Ticker = strings.TrimSpace(row.Ticker)
		if row.Ticker == "" {
			continue
		}

		if below10Only && !row.Below10 {
			continue
		}

		result = append(result, row)
	}

	return result, nil
}

// TickersFromList builds table rows without screening statistics.
func TickersFromList(tickers []string) []types.ScreeningResult {
	rows := make([]types.ScreeningResult, 0, len(tickers))
	for _, ticker := range tickers {
		rows = append(rows, types.ScreeningResult{Ticker: strings.TrimSpace(ticker)})
	}

	return rows
}
