package datasource

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TickerDataPath returns <dataDir>/stocks/<dataset>/minute_interval/<ticker>.parquet.
func TickerDataPath(dataDir, dataset, ticker string) string {
	return filepath.Join(MinuteIntervalDir(dataDir, dataset), ticker+".parquet")
}

// MinuteIntervalDir returns the directory holding the per ticker minute bar files.
func MinuteIntervalDir(dataDir, dataset string) string {
	return filepath.Join(dataDir, "stocks", dataset, "minute_interval")
}

// ListTickers returns the sorted tickers that have a parquet file in dir.
func ListTickers(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var tickers []string

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".parquet" {
			continue
		}

		tickers = append(tickers, strings.TrimSuffix(entry.Name(), ".parquet"))
	}

	sort.Strings(tickers)

	return tickers, nil
}
