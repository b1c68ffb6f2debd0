package marketdata

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/rxtech-lab/argo-zscore/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-zscore/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// ClientConfig holds where the downloaded files go and the Polygon credentials.
type ClientConfig struct {
	DataDir       string `validate:"required"`
	Dataset       string `validate:"required"`
	PolygonApiKey string `validate:"required"`
}

// DownloadParams holds the parameters of one ticker download.
type DownloadParams struct {
	Ticker     string          `validate:"required"`
	StartDate  time.Time       `validate:"required"`
	EndDate    time.Time       `validate:"required,gtfield=StartDate"`
	Multiplier int             `validate:"required,min=1"`
	Timespan   models.Timespan `validate:"required"`
}

// WriterFactory creates the writer of one output file.
type WriterFactory func(outputPath string) writer.MarketDataWriter

// Client downloads aggregates into <DATA_DIR>/stocks/<dataset>/minute_interval/<TICKER>.parquet.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	newWriter  WriterFactory
	onProgress provider.OnDownloadProgress
	log        *logger.Logger
}

func NewClient(config ClientConfig, log *logger.Logger, progress io.Writer) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	polygonClient, err := provider.NewPolygonClient(config.PolygonApiKey, log)
	if err != nil {
		return nil, err
	}

	if progress != nil {
		polygonClient.SetProgressOutput(progress)
	}

	return NewClientWithProvider(config, polygonClient, log), nil
}

// NewClientWithProvider skips the configuration check of the Polygon key.
func NewClientWithProvider(config ClientConfig, marketProvider provider.Provider, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		provider: marketProvider,
		config:   config,
		validate: validator.New(),
		newWriter: func(outputPath string) writer.MarketDataWriter {
			return writer.NewDuckDBWriter(outputPath, log)
		},
		log: log,
	}
}

// OnProgress registers a progress callback.
func (c *Client) OnProgress(onProgress provider.OnDownloadProgress) {
	c.onProgress = onProgress
}

// OutputPath returns the parquet file of ticker.
func (c *Client) OutputPath(ticker string) string {
	return datasource.TickerDataPath(c.config.DataDir, c.config.Dataset, ticker)
}

// Download writes the aggregates of one ticker and returns the parquet path.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	outputPath := c.OutputPath(params.Ticker)
	c.provider.ConfigWriter(c.newWriter(outputPath))

	path, err := c.provider.Download(ctx, params.Ticker, params.StartDate, params.EndDate, params.Multiplier, params.Timespan, c.onProgress)
	if err != nil {
		return "", errors.Wrapf(errors.GetCode(err), err, "download of %s failed", params.Ticker)
	}

	return path, nil
}

// DownloadAll downloads every ticker of the config one after another.
// Tickers whose file already exists are skipped unless overwrite is set.
func (c *Client) DownloadAll(ctx context.Context, config DownloadConfig, overwrite bool) ([]string, error) {
	var paths []string

	for _, ticker := range config.Tickers {
		if err := ctx.Err(); err != nil {
			return paths, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "download cancelled", err)
		}

		if _, err := os.Stat(c.OutputPath(ticker)); err == nil && !overwrite {
			c.log.Info("Skipping existing file", zap.String("ticker", ticker))

			continue
		}

		params, err := config.ToDownloadParams(ticker)
		if err != nil {
			return paths, err
		}

		path, err := c.Download(ctx, params)
		if err != nil {
			return paths, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}
