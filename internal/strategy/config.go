package strategy

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"gopkg.in/yaml.v3"
)

// InconsistencyPolicy decides what happens when open orders and positions disagree.
type InconsistencyPolicy string

const (
	// InconsistencyPolicyAlert logs the anomaly and dumps open orders and positions.
	InconsistencyPolicyAlert InconsistencyPolicy = "alert"
	// InconsistencyPolicyReconcile also cancels open orders and closes open positions of the instrument.
	InconsistencyPolicyReconcile InconsistencyPolicy = "reconcile"
)

// ZScoreMeanReversionConfig is immutable once the strategy is built.
type ZScoreMeanReversionConfig struct {
	InstrumentID        types.InstrumentID  `yaml:"-" json:"-"`
	BarType             types.BarType       `yaml:"-" json:"-"`
	ZLookback           int                 `yaml:"z_lookback" json:"z_lookback" jsonschema:"title=Z-Score Lookback,description=Number of closes in the z-score window,minimum=2,default=200" validate:"gte=2"`
	ZEntry              float64             `yaml:"z_entry" json:"z_entry" jsonschema:"title=Entry Threshold,description=Absolute z-score that opens a trade,default=2.0" validate:"gt=0"`
	ZExit               float64             `yaml:"z_exit" json:"z_exit" jsonschema:"title=Exit Threshold,description=Absolute z-score that closes a trade,default=0.5" validate:"gte=0,ltefield=ZEntry"`
	RiskPct             float64             `yaml:"risk_pct" json:"risk_pct" jsonschema:"title=Risk Percent,description=Percent of the account balance risked per trade,default=1.0" validate:"gt=0,lte=100"`
	ATRPeriod           int                 `yaml:"atr_period" json:"atr_period" jsonschema:"title=ATR Period,minimum=1,default=120" validate:"gte=1"`
	StopLossATRMultiple float64             `yaml:"stop_loss_atr_multiple" json:"stop_loss_atr_multiple" jsonschema:"title=Stop Loss ATR Multiple,description=Stop distance in ATRs,default=3.0" validate:"gt=0"`
	InconsistencyPolicy InconsistencyPolicy `yaml:"inconsistency_policy" json:"inconsistency_policy" jsonschema:"title=Inconsistency Policy,enum=alert,enum=reconcile,default=alert" validate:"oneof=alert reconcile"`
}

// DefaultZScoreMeanReversionConfig returns the default parameters for an instrument and bar type.
func DefaultZScoreMeanReversionConfig(instrumentID types.InstrumentID, barType types.BarType) ZScoreMeanReversionConfig {
	return ZScoreMeanReversionConfig{
		InstrumentID:        instrumentID,
		BarType:             barType,
		ZLookback:           200,
		ZEntry:              2.0,
		ZExit:               0.5,
		RiskPct:             1.0,
		ATRPeriod:           120,
		StopLossATRMultiple: 3.0,
		InconsistencyPolicy: InconsistencyPolicyAlert,
	}
}

// ParseZScoreMeanReversionConfig applies a YAML document on top of the defaults.
// An empty document yields the defaults.
func ParseZScoreMeanReversionConfig(instrumentID types.InstrumentID, barType types.BarType, raw string) (ZScoreMeanReversionConfig, error) {
	config := DefaultZScoreMeanReversionConfig(instrumentID, barType)

	if raw != "" {
		if err := yaml.Unmarshal([]byte(raw), &config); err != nil {
			return ZScoreMeanReversionConfig{}, errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to parse strategy config", err)
		}
	}

	if err := config.Validate(); err != nil {
		return ZScoreMeanReversionConfig{}, err
	}

	return config, nil
}

// Validate checks parameter ranges and that the bar type belongs to the instrument.
func (c ZScoreMeanReversionConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy config", err)
	}

	if c.BarType.InstrumentID != c.InstrumentID {
		return errors.Newf(errors.ErrCodeStrategyConfigError, "bar type %s does not belong to instrument %s", c.BarType, c.InstrumentID)
	}

	return nil
}
