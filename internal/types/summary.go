package types

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// RunSummary is the per ticker result line of a backtest batch.
type RunSummary struct {
	// Ticker requested by the batch.
	Ticker string `yaml:"ticker" json:"ticker" csv:"ticker"`
	// ADF statistic passed through from the screening table.
	ADF float64 `yaml:"adf" json:"adf" csv:"adf"`
	// NATRMean passed through from the screening table.
	NATRMean float64 `yaml:"natr_mean" json:"natr_mean" csv:"natr_mean"`
	// PnLPercent is the total return of the run in percent.
	PnLPercent float64 `yaml:"pnl_pct" json:"pnl_pct" csv:"pnl_pct"`
	// Sharpe is the 252 day annualized Sharpe ratio.
	Sharpe float64 `yaml:"sharpe" json:"sharpe" csv:"sharpe"`
	// LowestBalance is the minimum account balance observed during the run.
	LowestBalance float64 `yaml:"lowest_balance" json:"lowest_balance" csv:"lowest_balance"`
	// Error is set when the run failed and the batch continued.
	Error string `yaml:"error,omitempty" json:"error,omitempty" csv:"error"`
}

// WriteRunSummaries writes the summaries as YAML.
func WriteRunSummaries(path string, summaries []RunSummary) error {
	data, err := yaml.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("failed to marshal run summaries to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run summaries to file: %w", err)
	}

	return nil
}

// WriteRunSummariesCSV writes the summaries as CSV with a header row.
func WriteRunSummariesCSV(path string, summaries []RunSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create run summary file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&summaries, file); err != nil {
		return fmt.Errorf("failed to write run summaries as CSV: %w", err)
	}

	return nil
}
