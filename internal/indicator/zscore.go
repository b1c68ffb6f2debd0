package indicator

import (
	"github.com/montanaflynn/stats"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
)

// ZScore measures how many population standard deviations the latest close
// sits away from the mean of the last period closes.
type ZScore struct {
	period      int
	prices      *RingBuffer
	value       float64
	initialized bool
}

// NewZScore creates a ZScore over the given lookback period.
func NewZScore(period int) (*ZScore, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return &ZScore{
		period: period,
		prices: NewRingBuffer(period),
	}, nil
}

func (z *ZScore) Name() types.IndicatorType {
	return types.IndicatorTypeZScore
}

func (z *ZScore) Period() int {
	return z.period
}

func (z *ZScore) HandleBar(bar types.Bar) {
	z.Update(bar.Close)
}

// Update appends a price and recomputes the value once the window is full.
// A flat window keeps the previous value.
func (z *ZScore) Update(price float64) {
	z.prices.Add(price)

	if !z.prices.Full() {
		return
	}

	z.initialized = true

	window := z.prices.Values()

	// a flat window can still produce a tiny non-zero std from rounding in the mean
	lowest, err := stats.Min(window)
	if err != nil {
		return
	}

	highest, err := stats.Max(window)
	if err != nil || highest == lowest {
		return
	}

	mean, err := stats.Mean(window)
	if err != nil {
		return
	}

	std, err := stats.StandardDeviationPopulation(window)
	if err != nil || std == 0 {
		return
	}

	z.value = (price - mean) / std
}

func (z *ZScore) Value() float64 {
	return z.value
}

func (z *ZScore) Initialized() bool {
	return z.initialized
}

// Count returns the number of buffered prices.
func (z *ZScore) Count() int {
	return z.prices.Len()
}

func (z *ZScore) Reset() {
	z.prices.Reset()
	z.value = 0
	z.initialized = false
}
