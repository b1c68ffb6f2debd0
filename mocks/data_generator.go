package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// DataGenerator generates minute bars for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how market data is generated.
type GeneratorConfig struct {
	// Symbol is the trading symbol (e.g., "AAPL", "SPY")
	Symbol string
	// StartTime is the beginning of the data series
	StartTime time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of data points to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement per bar (0.002 = 0.2%)
	Volatility float64
	// MeanReversion pulls the price back to InitialPrice, 0 gives a random walk
	MeanReversion float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:        "TEST",
		StartTime:     time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC),
		Interval:      time.Minute,
		Count:         5000,
		InitialPrice:  100.0,
		Volatility:    0.002,
		MeanReversion: 0.0,
		VolumeBase:    10000,
	}
}

// Generate creates raw rows following an Ornstein-Uhlenbeck style walk around InitialPrice.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := range config.Count {
		open := currentPrice

		shock := config.Volatility * g.rng.NormFloat64()
		pull := config.MeanReversion * (config.InitialPrice - open) / open

		close := open * (1 + shock + pull)
		if close <= 0 {
			close = open * 0.99
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension

		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volume := config.VolumeBase * (0.7 + g.rng.Float64()*0.6)

		data[i] = types.MarketData{
			Symbol: config.Symbol,
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: roundToDecimals(volume, 0),
		}

		currentPrice = close
		currentTime = currentTime.Add(config.Interval)
	}

	return data
}

// BarsFromCloses builds one bar per close. Open is the previous close and the
// high/low extend spread beyond the body.
func BarsFromCloses(barType types.BarType, start time.Time, closes []float64, spread float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	interval := barType.Spec.Duration()

	for i, close := range closes {
		open := close
		if i > 0 {
			open = closes[i-1]
		}

		bars[i] = types.Bar{
			BarType: barType,
			Time:    start.Add(time.Duration(i) * interval),
			Open:    open,
			High:    math.Max(open, close) + spread,
			Low:     math.Min(open, close) - spread,
			Close:   close,
			Volume:  1000,
		}
	}

	return bars
}

// RiseThenFallCloses returns a flat segment, a linear rise and a linear fall back to the base.
func RiseThenFallCloses(base float64, flat, rise, fall int, step float64) []float64 {
	closes := make([]float64, 0, flat+rise+fall)

	for i := range flat {
		// small alternating wiggle so the window never has zero variance
		closes = append(closes, base+0.01*float64(i%2))
	}

	price := base
	for range rise {
		price += step
		closes = append(closes, roundToDecimals(price, 2))
	}

	fallStep := (price - base) / float64(fall)
	for range fall {
		price -= fallStep
		closes = append(closes, roundToDecimals(price, 2))
	}

	return closes
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
