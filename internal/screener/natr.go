package screener

import (
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/thrasher-corp/gct-ta/indicators"
)

// DefaultNATRPeriod is the ATR length of the normalized ATR.
const DefaultNATRPeriod = 120

// NATR returns ATR(period) / close × 100 for every bar once the ATR has warmed up.
func NATR(high, low, closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "natr period must be positive, got %d", period)
	}

	if len(high) != len(closes) || len(low) != len(closes) {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "price series must have the same length")
	}

	if len(closes) <= period {
		return nil, errors.Newf(errors.ErrCodeInsufficientData, "natr needs more than %d bars, got %d", period, len(closes))
	}

	atr := indicators.ATR(high, low, closes, period)

	// the first period values are the warm up
	natr := make([]float64, 0, len(closes)-period)

	for i := period; i < len(atr); i++ {
		if closes[i] == 0 {
			continue
		}

		natr = append(natr, atr[i]/closes[i]*100)
	}

	return natr, nil
}
