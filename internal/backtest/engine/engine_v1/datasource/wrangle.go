package datasource

import (
	"sort"

	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// WrangleStats counts the rows dropped by Wrangle.
type WrangleStats struct {
	Input        int
	InvalidPrice int
	Duplicates   int
	Output       int
}

// Wrangle turns raw rows into time ordered bars of barType.
// Rows with non positive prices, high below low or a repeated timestamp are dropped.
func Wrangle(barType types.BarType, rows []types.MarketData) ([]types.Bar, WrangleStats) {
	stats := WrangleStats{Input: len(rows)}

	valid := make([]types.MarketData, 0, len(rows))

	for _, row := range rows {
		if row.Open <= 0 || row.High <= 0 || row.Low <= 0 || row.Close <= 0 || row.High < row.Low || row.Volume < 0 {
			stats.InvalidPrice++

			continue
		}

		valid = append(valid, row)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Time.Before(valid[j].Time)
	})

	bars := make([]types.Bar, 0, len(valid))

	for i, row := range valid {
		if i > 0 && row.Time.Equal(valid[i-1].Time) {
			stats.Duplicates++

			continue
		}

		bars = append(bars, types.Bar{
			BarType: barType,
			Time:    row.Time.UTC(),
			Open:    row.Open,
			High:    row.High,
			Low:     row.Low,
			Close:   row.Close,
			Volume:  row.Volume,
		})
	}

	stats.Output = len(bars)

	return bars, stats
}
