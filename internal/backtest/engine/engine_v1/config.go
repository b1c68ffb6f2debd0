package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultBarSpec = "1-MINUTE-LAST-EXTERNAL"

type BacktestEngineV1Config struct {
	Venue           types.Venue                `yaml:"venue" json:"venue" validate:"required" jsonschema:"title=Venue,description=Simulated venue name,default=SIM"`
	OmsType         types.OmsType              `yaml:"oms_type" json:"oms_type" validate:"required,oneof=NETTING" jsonschema:"title=OMS Type,description=Order management system type,enum=NETTING"`
	AccountType     types.AccountType          `yaml:"account_type" json:"account_type" validate:"required,oneof=MARGIN CASH" jsonschema:"title=Account Type,description=Venue account type,enum=MARGIN,enum=CASH"`
	StartingBalance float64                    `yaml:"starting_balance" json:"starting_balance" validate:"gt=0" jsonschema:"title=Starting Balance,description=Starting account balance,minimum=0,default=100000"`
	BaseCurrency    string                     `yaml:"base_currency" json:"base_currency" validate:"required,len=3" jsonschema:"title=Base Currency,description=Account currency,default=USD"`
	Broker          commission_fee.Broker      `yaml:"broker" json:"broker" validate:"required" jsonschema:"title=Broker,description=The broker to use for commission calculations"`
	StartTime       optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the backtest period"`
	EndTime         optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the backtest period"`
	BarSpec         string                     `yaml:"bar_spec" json:"bar_spec" validate:"required" jsonschema:"title=Bar Specification,description=Bar specification appended to the instrument id,default=1-MINUTE-LAST-EXTERNAL"`
}

// UnmarshalYAML decodes over the current values so missing keys keep their defaults.
func (c *BacktestEngineV1Config) UnmarshalYAML(value *yaml.Node) error {
	type Config struct {
		Venue           types.Venue           `yaml:"venue"`
		OmsType         types.OmsType         `yaml:"oms_type"`
		AccountType     types.AccountType     `yaml:"account_type"`
		StartingBalance float64               `yaml:"starting_balance"`
		BaseCurrency    string                `yaml:"base_currency"`
		Broker          commission_fee.Broker `yaml:"broker"`
		StartTime       *time.Time            `yaml:"start_time"`
		EndTime         *time.Time            `yaml:"end_time"`
		BarSpec         string                `yaml:"bar_spec"`
	}

	config := Config{
		Venue:           c.Venue,
		OmsType:         c.OmsType,
		AccountType:     c.AccountType,
		StartingBalance: c.StartingBalance,
		BaseCurrency:    c.BaseCurrency,
		Broker:          c.Broker,
		BarSpec:         c.BarSpec,
	}

	if err := value.Decode(&config); err != nil {
		return err
	}

	c.Venue = config.Venue
	c.OmsType = config.OmsType
	c.AccountType = config.AccountType
	c.StartingBalance = config.StartingBalance
	c.BaseCurrency = config.BaseCurrency
	c.Broker = config.Broker
	c.BarSpec = config.BarSpec

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// Validate checks the struct tags, the broker and the bar specification.
func (c BacktestEngineV1Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest engine config", err)
	}

	if c.Broker != commission_fee.BrokerZero && c.Broker != commission_fee.BrokerInteractiveBroker {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported broker %q", c.Broker)
	}

	if _, err := types.NewBarType(types.InstrumentID{Symbol: "CHECK", Venue: c.Venue}, c.BarSpec); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidBarType, "invalid bar_spec", err)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && !c.EndTime.Unwrap().After(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidPeriod, "end_time must be after start_time")
	}

	return nil
}

// BarType returns the bar type of the instrument for the configured bar specification.
func (c BacktestEngineV1Config) BarType(id types.InstrumentID) (types.BarType, error) {
	barType, err := types.NewBarType(id, c.BarSpec)
	if err != nil {
		return types.BarType{}, errors.Wrap(errors.ErrCodeInvalidBarType, "invalid bar_spec", err)
	}

	return barType, nil
}

// SchemaMapper maps optional times and the broker enum for jsonschema reflectors
// of any struct embedding the engine config.
func SchemaMapper(t reflect.Type) *jsonschema.Schema {
	if t.String() == "optional.Option[time.Time]" {
		return &jsonschema.Schema{
			Type:   "string",
			Format: "date-time",
		}
	}

	if strings.Contains(t.String(), "commission_fee.Broker") {
		return &jsonschema.Schema{
			Type: "string",
			Enum: commission_fee.AllBrokers,
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper:                     SchemaMapper,
	}

	schema := reflector.Reflect(c)

	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// DefaultConfig is a SIM venue with a NETTING margin account of 100,000 USD.
func DefaultConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		Venue:           "SIM",
		OmsType:         types.OmsTypeNetting,
		AccountType:     types.AccountTypeMargin,
		StartingBalance: 100_000,
		BaseCurrency:    "USD",
		Broker:          commission_fee.BrokerZero,
		StartTime:       optional.None[time.Time](),
		EndTime:         optional.None[time.Time](),
		BarSpec:         DefaultBarSpec,
	}
}

func TestConfig(startTime time.Time, endTime time.Time, broker commission_fee.Broker) BacktestEngineV1Config {
	config := DefaultConfig()
	config.Broker = broker
	config.StartTime = optional.Some(startTime)
	config.EndTime = optional.Some(endTime)

	return config
}

// EmptyConfig returns a BacktestEngineV1Config with zero values
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		Broker:    commission_fee.BrokerZero,
		StartTime: optional.None[time.Time](),
		EndTime:   optional.None[time.Time](),
	}
}
