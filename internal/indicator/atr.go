package indicator

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
)

// ATR is the simple moving average of the true range over period bars.
// The true range uses the previous close once one is available.
type ATR struct {
	period      int
	ranges      *RingBuffer
	prevClose   float64
	hasPrev     bool
	value       float64
	initialized bool
}

// NewATR creates an ATR over the given period.
func NewATR(period int) (*ATR, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return &ATR{
		period: period,
		ranges: NewRingBuffer(period),
	}, nil
}

func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

func (a *ATR) Period() int {
	return a.period
}

func (a *ATR) HandleBar(bar types.Bar) {
	a.Update(bar.High, bar.Low, bar.Close)
}

// Update feeds one high/low/close triple.
func (a *ATR) Update(high, low, close float64) {
	trueRange := high - low
	if a.hasPrev {
		trueRange = math.Max(high, a.prevClose) - math.Min(low, a.prevClose)
	}

	a.prevClose = close
	a.hasPrev = true

	a.ranges.Add(trueRange)

	if mean, err := stats.Mean(a.ranges.Values()); err == nil {
		a.value = mean
	}

	if a.ranges.Full() {
		a.initialized = true
	}
}

func (a *ATR) Value() float64 {
	return a.value
}

func (a *ATR) Initialized() bool {
	return a.initialized
}

func (a *ATR) Reset() {
	a.ranges.Reset()
	a.prevClose = 0
	a.hasPrev = false
	a.value = 0
	a.initialized = false
}
