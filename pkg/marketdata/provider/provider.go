package provider

import (
	"context"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-zscore/pkg/marketdata/writer"
)

// OnDownloadProgress reports the downloaded days out of the requested days.
type OnDownloadProgress = func(current float64, total float64, message string)

type Provider interface {
	// ConfigWriter sets the writer that receives the downloaded rows.
	ConfigWriter(writer writer.MarketDataWriter)
	// Download writes the aggregates of ticker between startDate and endDate and returns the exported file.
	// The context can be used to cancel the download between pages.
	Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (path string, err error)
}
