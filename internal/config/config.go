package config

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	engine "github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-zscore/internal/strategy"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OnFatalPolicy decides what a batch does when a ticker run fails with a fatal error.
type OnFatalPolicy string

const (
	// OnFatalAbortBatch stops the whole batch.
	OnFatalAbortBatch OnFatalPolicy = "abort_batch"
	// OnFatalSkipTicker records the error in the summary and continues with the next ticker.
	OnFatalSkipTicker OnFatalPolicy = "skip_ticker"
)

const DefaultDataset = "alpaca_2024_Q4_to_2025_Q3"

// StrategySection selects the strategy and carries its parameters.
type StrategySection struct {
	Kind strategy.Kind `yaml:"kind" json:"kind" validate:"required,oneof=zscore_mean_reversion" jsonschema:"title=Strategy Kind,enum=zscore_mean_reversion,default=zscore_mean_reversion"`
	// Config is applied on top of the strategy defaults.
	Config map[string]any `yaml:"config" json:"config,omitempty" jsonschema:"title=Strategy Parameters,description=Parameters applied on top of the strategy defaults"`
}

// RawConfig renders the parameters back to YAML for strategy.New.
func (s StrategySection) RawConfig() (string, error) {
	if len(s.Config) == 0 {
		return "", nil
	}

	data, err := yaml.Marshal(s.Config)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to marshal strategy parameters", err)
	}

	return string(data), nil
}

// BatchSection controls which tickers run and where results go.
type BatchSection struct {
	Dataset string `yaml:"dataset" json:"dataset" validate:"required" jsonschema:"title=Dataset,description=Folder under DATA_DIR/stocks holding minute_interval parquet files"`
	// TickerTable is the screening CSV listing the tickers, ignored when Tickers is set.
	TickerTable string   `yaml:"ticker_table" json:"ticker_table,omitempty" validate:"required_without=Tickers" jsonschema:"title=Ticker Table,description=Screening CSV with a ticker column"`
	Tickers     []string `yaml:"tickers" json:"tickers,omitempty" jsonschema:"title=Tickers,description=Explicit ticker list"`
	// Below10Only keeps only the screening rows flagged below the 10% ADF critical value.
	Below10Only     bool          `yaml:"below_10_only" json:"below_10_only" jsonschema:"title=Below 10% Only,default=false"`
	Workers         int           `yaml:"workers" json:"workers" validate:"gte=1" jsonschema:"title=Workers,minimum=1,default=1"`
	OnFatal         OnFatalPolicy `yaml:"on_fatal" json:"on_fatal" validate:"oneof=abort_batch skip_ticker" jsonschema:"title=On Fatal,enum=abort_batch,enum=skip_ticker,default=abort_batch"`
	ResultsDir      string        `yaml:"results_dir" json:"results_dir" validate:"required" jsonschema:"title=Results Directory,default=results"`
	ConsoleLogLevel string        `yaml:"console_log_level" json:"console_log_level" validate:"required" jsonschema:"title=Console Log Level,default=WARNING"`
	FileLogLevel    string        `yaml:"file_log_level" json:"file_log_level" validate:"required" jsonschema:"title=File Log Level,default=INFO"`
}

// RunConfig is the backtest run file.
type RunConfig struct {
	Engine   engine.BacktestEngineV1Config `yaml:"engine" json:"engine"`
	Strategy StrategySection               `yaml:"strategy" json:"strategy"`
	Batch    BatchSection                  `yaml:"batch" json:"batch"`
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Engine: engine.DefaultConfig(),
		Strategy: StrategySection{
			Kind: strategy.KindZScoreMeanReversion,
		},
		Batch: BatchSection{
			Dataset:         DefaultDataset,
			TickerTable:     "bt_tickers.csv",
			Workers:         1,
			OnFatal:         OnFatalAbortBatch,
			ResultsDir:      "results",
			ConsoleLogLevel: "WARNING",
			FileLogLevel:    "INFO",
		},
	}
}

// Load reads and validates a run file.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Parse decodes a run file over DefaultRunConfig and validates it.
func Parse(data []byte) (RunConfig, error) {
	config := DefaultRunConfig()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return RunConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return RunConfig{}, err
	}

	return config, nil
}

func (c RunConfig) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}

	validate := validator.New()

	if err := validate.Struct(c.Strategy); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid strategy section", err)
	}

	if err := validate.Struct(c.Batch); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid batch section", err)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the run file.
func GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  false,
		ExpandedStruct:             true,
		Mapper:                     engine.SchemaMapper,
	}

	schema := reflector.Reflect(&RunConfig{})
	schema.Title = "backtest-run-config"
	schema.Description = "Run file of the z-score backtest batch"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates the run file schema as indented JSON.
func GenerateSchemaJSON() (string, error) {
	data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to marshal schema", err)
	}

	return string(data), nil
}
