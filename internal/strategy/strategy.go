package strategy

import (
	"github.com/rxtech-lab/argo-zscore/internal/runtime"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	pkgstrategy "github.com/rxtech-lab/argo-zscore/pkg/strategy"
)

// Kind selects a compiled-in strategy.
type Kind string

const (
	KindZScoreMeanReversion Kind = "zscore_mean_reversion"
)

// AllKinds lists every strategy that New can build.
var AllKinds = []any{
	KindZScoreMeanReversion,
}

// New builds the strategy selected by kind. rawConfig is a YAML document applied on top of the strategy defaults.
func New(kind Kind, instrumentID types.InstrumentID, barType types.BarType, rawConfig string, ctx runtime.RuntimeContext) (runtime.StrategyRuntime, error) {
	switch kind {
	case KindZScoreMeanReversion:
		config, err := ParseZScoreMeanReversionConfig(instrumentID, barType, rawConfig)
		if err != nil {
			return nil, err
		}

		strategy, err := NewZScoreMeanReversion(config, ctx)
		if err != nil {
			return nil, err
		}

		return strategy, nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy kind %q", kind)
	}
}

// ConfigSchema returns the JSON schema of the strategy parameters.
func ConfigSchema(kind Kind) (string, error) {
	switch kind {
	case KindZScoreMeanReversion:
		return pkgstrategy.ToJSONSchema(ZScoreMeanReversionConfig{})
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy kind %q", kind)
	}
}
