package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
)

// RenderSummaries prints one row per ticker.
func RenderSummaries(w io.Writer, summaries []types.RunSummary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Ticker", "ADF", "Mean NATR", "PnL%", "Sharpe", "Lowest Balance", "Error"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, s := range summaries {
		table.Append([]string{
			s.Ticker,
			fmt.Sprintf("%.4f", s.ADF),
			fmt.Sprintf("%.4f", s.NATRMean),
			fmt.Sprintf("%.2f", s.PnLPercent),
			fmt.Sprintf("%.3f", s.Sharpe),
			fmt.Sprintf("%.2f", s.LowestBalance),
			s.Error,
		})
	}

	table.Render()
}

// WriteSummaries writes summary.yaml and summary.csv into dir.
func WriteSummaries(dir string, summaries []types.RunSummary) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestResultsFailed, "failed to create results directory", err)
	}

	if err := types.WriteRunSummaries(filepath.Join(dir, "summary.yaml"), summaries); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestResultsFailed, "failed to write summary.yaml", err)
	}

	if err := types.WriteRunSummariesCSV(filepath.Join(dir, "summary.csv"), summaries); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestResultsFailed, "failed to write summary.csv", err)
	}

	return nil
}
