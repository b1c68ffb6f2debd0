package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type BarAggregation string

type PriceType string

type AggregationSource string

const (
	BarAggregationSecond BarAggregation = "SECOND"
	BarAggregationMinute BarAggregation = "MINUTE"
	BarAggregationHour   BarAggregation = "HOUR"
	BarAggregationDay    BarAggregation = "DAY"
)

const (
	PriceTypeLast PriceType = "LAST"
	PriceTypeMid  PriceType = "MID"
)

const (
	AggregationSourceExternal AggregationSource = "EXTERNAL"
	AggregationSourceInternal AggregationSource = "INTERNAL"
)

// BarSpecification is the "<STEP>-<AGGREGATION>-<PRICE_TYPE>" part of a bar type.
type BarSpecification struct {
	Step        int
	Aggregation BarAggregation
	PriceType   PriceType
}

func (s BarSpecification) String() string {
	return fmt.Sprintf("%d-%s-%s", s.Step, s.Aggregation, s.PriceType)
}

// Duration returns the length of one bar.
func (s BarSpecification) Duration() time.Duration {
	var unit time.Duration

	switch s.Aggregation {
	case BarAggregationSecond:
		unit = time.Second
	case BarAggregationMinute:
		unit = time.Minute
	case BarAggregationHour:
		unit = time.Hour
	case BarAggregationDay:
		unit = 24 * time.Hour
	}

	return time.Duration(s.Step) * unit
}

// BarType identifies a bar subscription, e.g. "AAPL.SIM-1-MINUTE-LAST-EXTERNAL".
type BarType struct {
	InstrumentID InstrumentID
	Spec         BarSpecification
	Source       AggregationSource
}

func (b BarType) String() string {
	return fmt.Sprintf("%s-%s-%s", b.InstrumentID, b.Spec, b.Source)
}

// NewBarType builds a bar type for an instrument from a "<STEP>-<AGGREGATION>-<PRICE_TYPE>-<SOURCE>" spec.
func NewBarType(id InstrumentID, spec string) (BarType, error) {
	return ParseBarType(fmt.Sprintf("%s-%s", id, spec))
}

// ParseBarType parses "<SYMBOL>.<VENUE>-<STEP>-<AGGREGATION>-<PRICE_TYPE>-<SOURCE>".
// The four specification parts are taken from the right so symbols may contain dashes.
func ParseBarType(value string) (BarType, error) {
	parts := strings.Split(value, "-")
	if len(parts) < 5 {
		return BarType{}, fmt.Errorf("invalid bar type %q", value)
	}

	n := len(parts)

	id, err := ParseInstrumentID(strings.Join(parts[:n-4], "-"))
	if err != nil {
		return BarType{}, fmt.Errorf("invalid bar type %q: %w", value, err)
	}

	step, err := strconv.Atoi(parts[n-4])
	if err != nil || step <= 0 {
		return BarType{}, fmt.Errorf("invalid bar type %q: step must be a positive integer", value)
	}

	aggregation := BarAggregation(parts[n-3])
	switch aggregation {
	case BarAggregationSecond, BarAggregationMinute, BarAggregationHour, BarAggregationDay:
	default:
		return BarType{}, fmt.Errorf("invalid bar type %q: unsupported aggregation %s", value, aggregation)
	}

	priceType := PriceType(parts[n-2])
	switch priceType {
	case PriceTypeLast, PriceTypeMid:
	default:
		return BarType{}, fmt.Errorf("invalid bar type %q: unsupported price type %s", value, priceType)
	}

	source := AggregationSource(parts[n-1])
	switch source {
	case AggregationSourceExternal, AggregationSourceInternal:
	default:
		return BarType{}, fmt.Errorf("invalid bar type %q: unsupported aggregation source %s", value, source)
	}

	return BarType{
		InstrumentID: id,
		Spec: BarSpecification{
			Step:        step,
			Aggregation: aggregation,
			PriceType:   priceType,
		},
		Source: source,
	}, nil
}
