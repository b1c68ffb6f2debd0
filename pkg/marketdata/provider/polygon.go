package provider

import (
	"context"
	"fmt"
	"io"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/rxtech-lab/argo-zscore/pkg/marketdata/writer"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// aggsPageLimit is the largest page size the aggregates endpoint accepts.
const aggsPageLimit = 50000

// PolygonAggsIterator is the subset of the REST iterator used by the download.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient lists aggregates page by page.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type restAggsClient struct {
	client *polygon.Client
}

func (c restAggsClient) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return c.client.ListAggs(ctx, params, options...)
}

type PolygonClient struct {
	apiClient PolygonAPIClient
	writer    writer.MarketDataWriter
	log       *logger.Logger
	out       io.Writer
}

func NewPolygonClient(apiKey string, log *logger.Logger) (*PolygonClient, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon api key is required")
	}

	return NewPolygonClientWithAPI(restAggsClient{client: polygon.New(apiKey)}, log), nil
}

// NewPolygonClientWithAPI builds a client on top of any aggregates lister.
func NewPolygonClientWithAPI(apiClient PolygonAPIClient, log *logger.Logger) *PolygonClient {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &PolygonClient{
		apiClient: apiClient,
		log:       log,
		out:       io.Discard,
	}
}

// SetProgressOutput shows the progress bar on w.
func (c *PolygonClient) SetProgressOutput(w io.Writer) {
	c.out = w
}

func (c *PolygonClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

func (c *PolygonClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (path string, err error) {
	if c.writer == nil {
		return "", errors.New(errors.ErrCodeDataWriteFailed, "no writer configured for the polygon client")
	}

	if err := c.writer.Initialize(); err != nil {
		return "", errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to initialize writer", err)
	}

	defer func() {
		if cerr := c.writer.Close(); cerr != nil {
			if err == nil {
				err = errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to close writer", cerr)
			} else {
				c.log.Warn("Failed to close writer after another error", zap.Error(cerr))
			}
		}
	}()

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	description := fmt.Sprintf("Downloading %s", ticker)

	bar := progressbar.NewOptions(totalDays,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(startDate),
		To:         models.Millis(endDate),
	}.WithAdjusted(true).WithOrder(models.Asc).WithLimit(aggsPageLimit)

	iter := c.apiClient.ListAggs(ctx, params)
	processed := 0

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return "", errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "download of %s cancelled", ticker)
		}

		agg := iter.Item()
		timestamp := time.Time(agg.Timestamp).UTC()

		err = c.writer.Write(types.MarketData{
			Symbol: ticker,
			Time:   timestamp,
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
		if err != nil {
			return "", err
		}

		processed++

		if processed%1000 == 0 {
			days := int(timestamp.Sub(startDate).Hours() / 24)
			_ = bar.Set(days)

			if onProgress != nil {
				onProgress(float64(days), float64(totalDays), description)
			}
		}
	}

	if err := iter.Err(); err != nil {
		return "", errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to list polygon aggregates of %s", ticker)
	}

	_ = bar.Finish()

	if onProgress != nil {
		onProgress(float64(totalDays), float64(totalDays), description)
	}

	c.log.Info("Downloaded aggregates", zap.String("ticker", ticker), zap.Int("rows", processed))

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", err
	}

	return outputPath, nil
}
