package writer

import (
	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// MarketDataWriter buffers downloaded rows and exports them once the download finished.
type MarketDataWriter interface {
	// Initialize creates the buffer table.
	Initialize() error
	// Write buffers a single row.
	Write(data types.MarketData) error
	// Finalize exports the buffered rows, ordered by time, and returns the output path.
	Finalize() (outputPath string, err error)
	// Close releases the buffer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
