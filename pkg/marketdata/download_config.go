package marketdata

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/polygon-io/client-go/rest/models"
	pkgstrategy "github.com/rxtech-lab/argo-zscore/pkg/strategy"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// DownloadConfig is the YAML file of a download run.
type DownloadConfig struct {
	Tickers   []string `yaml:"tickers" json:"tickers" jsonschema:"title=Tickers,description=Symbols to download (e.g. SPY)" validate:"required,min=1,dive,required"`
	StartDate string   `yaml:"start_date" json:"start_date" jsonschema:"title=Start Date,description=First day (inclusive)" jsonschema_extras:"format=date" validate:"required,datetime=2006-01-02"`
	EndDate   string   `yaml:"end_date" json:"end_date" jsonschema:"title=End Date,description=Last day (inclusive)" jsonschema_extras:"format=date" validate:"required,datetime=2006-01-02"`
	Interval  string   `yaml:"interval" json:"interval" jsonschema:"title=Interval,description=Aggregate size,enum=1m,enum=5m,enum=15m,enum=1h,enum=1d,default=1m" validate:"required,oneof=1m 5m 15m 1h 1d"`
}

// Validate checks the fields and that the end date is not before the start date.
func (c DownloadConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid download config", err)
	}

	start, end, err := c.dates()
	if err != nil {
		return err
	}

	if end.Before(start) {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "end date %s is before start date %s", c.EndDate, c.StartDate)
	}

	return nil
}

func (c DownloadConfig) dates() (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(errors.ErrCodeInvalidPeriod, "invalid start_date", err)
	}

	end, err := time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(errors.ErrCodeInvalidPeriod, "invalid end_date", err)
	}

	return start, end, nil
}

// ToDownloadParams builds the request of one ticker. The end date covers the whole last day.
func (c DownloadConfig) ToDownloadParams(ticker string) (DownloadParams, error) {
	start, end, err := c.dates()
	if err != nil {
		return DownloadParams{}, err
	}

	multiplier, timespan, err := ParseInterval(c.Interval)
	if err != nil {
		return DownloadParams{}, err
	}

	return DownloadParams{
		Ticker:     ticker,
		StartDate:  start,
		EndDate:    end.Add(24*time.Hour - time.Millisecond),
		Multiplier: multiplier,
		Timespan:   timespan,
	}, nil
}

// ParseInterval maps an interval such as "15m" to the aggregate multiplier and timespan.
func ParseInterval(interval string) (int, models.Timespan, error) {
	switch interval {
	case "1m":
		return 1, models.Minute, nil
	case "5m":
		return 5, models.Minute, nil
	case "15m":
		return 15, models.Minute, nil
	case "1h":
		return 1, models.Hour, nil
	case "1d":
		return 1, models.Day, nil
	default:
		return 0, "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported interval %q", interval)
	}
}

// LoadDownloadConfig reads and validates a download YAML file. The interval defaults to 1m.
func LoadDownloadConfig(path string) (DownloadConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DownloadConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read %s", path)
	}

	return ParseDownloadConfig(data)
}

func ParseDownloadConfig(data []byte) (DownloadConfig, error) {
	config := DownloadConfig{Interval: "1m"}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return DownloadConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse download config", err)
	}

	if err := config.Validate(); err != nil {
		return DownloadConfig{}, err
	}

	return config, nil
}

// GetDownloadConfigSchema returns the JSON schema of the download file.
func GetDownloadConfigSchema() (string, error) {
	//nolint:exhaustruct // empty struct for schema generation
	return pkgstrategy.ToJSONSchema(DownloadConfig{})
}
