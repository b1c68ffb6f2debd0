package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Venue identifies a trading venue such as "SIM".
type Venue string

// AssetClass of an instrument.
type AssetClass string

const (
	AssetClassEquity AssetClass = "EQUITY"
)

// InstrumentID is the venue qualified identifier of an instrument, rendered as "<SYMBOL>.<VENUE>".
type InstrumentID struct {
	Symbol string `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	Venue  Venue  `yaml:"venue" json:"venue" csv:"venue" validate:"required"`
}

func (id InstrumentID) String() string {
	return fmt.Sprintf("%s.%s", id.Symbol, id.Venue)
}

// IsZero reports whether the id has not been set.
func (id InstrumentID) IsZero() bool {
	return id.Symbol == "" && id.Venue == ""
}

// ParseInstrumentID parses "<SYMBOL>.<VENUE>". The venue is taken after the last dot
// so symbols like "BRK.B" keep their dot.
func ParseInstrumentID(value string) (InstrumentID, error) {
	idx := strings.LastIndex(value, ".")
	if idx <= 0 || idx == len(value)-1 {
		return InstrumentID{}, fmt.Errorf("invalid instrument id %q, expected <SYMBOL>.<VENUE>", value)
	}

	return InstrumentID{Symbol: value[:idx], Venue: Venue(value[idx+1:])}, nil
}

// Instrument describes a tradable instrument and its precisions.
type Instrument struct {
	ID             InstrumentID `yaml:"id" json:"id"`
	AssetClass     AssetClass   `yaml:"asset_class" json:"asset_class"`
	Currency       string       `yaml:"currency" json:"currency"`
	PricePrecision int32        `yaml:"price_precision" json:"price_precision"`
	SizePrecision  int32        `yaml:"size_precision" json:"size_precision"`
}

// NewEquity creates a US equity instrument quoted in cents and traded in whole shares.
func NewEquity(symbol string, venue Venue) Instrument {
	return Instrument{
		ID:             InstrumentID{Symbol: symbol, Venue: venue},
		AssetClass:     AssetClassEquity,
		Currency:       "USD",
		PricePrecision: 2,
		SizePrecision:  0,
	}
}

// Symbol returns the resolved trading symbol.
func (i Instrument) Symbol() string {
	return i.ID.Symbol
}

// MakePrice rounds a raw price to the instrument's price precision.
func (i Instrument) MakePrice(value float64) float64 {
	return decimal.NewFromFloat(value).Round(i.PricePrecision).InexactFloat64()
}

// MakeQty rounds a raw quantity to the instrument's size precision.
func (i Instrument) MakeQty(value float64) float64 {
	return decimal.NewFromFloat(value).Round(i.SizePrecision).InexactFloat64()
}
