package engine

import (
	"fmt"
	"path/filepath"

	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// ResultFolder is <root>/<SYMBOL>, with a <start>_<end> sub folder when the config limits the time range.
func ResultFolder(root string, instrumentID types.InstrumentID, config BacktestEngineV1Config) string {
	folder := filepath.Join(root, instrumentID.Symbol)

	if config.StartTime.IsNone() && config.EndTime.IsNone() {
		return folder
	}

	startTimeStr := "all"
	endTimeStr := "all"

	if config.StartTime.IsSome() {
		startTimeStr = config.StartTime.Unwrap().Format("20060102")
	}

	if config.EndTime.IsSome() {
		endTimeStr = config.EndTime.Unwrap().Format("20060102")
	}

	return filepath.Join(folder, fmt.Sprintf("%s_%s", startTimeStr, endTimeStr))
}
