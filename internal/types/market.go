package types

import "time"

// MarketData is a raw OHLCV row as stored in the per-ticker parquet tables.
type MarketData struct {
	Id     string    `csv:"id" parquet:"id"`
	Symbol string    `csv:"symbol" parquet:"symbol"`
	Time   time.Time `csv:"time" parquet:"time"`
	Open   float64   `csv:"open" parquet:"open"`
	High   float64   `csv:"high" parquet:"high"`
	Low    float64   `csv:"low" parquet:"low"`
	Close  float64   `csv:"close" parquet:"close"`
	Volume float64   `csv:"volume" parquet:"volume"`
}

// Bar is an immutable OHLCV sample for one bar type.
type Bar struct {
	BarType BarType
	Time    time.Time
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  float64
}

// InstrumentID returns the instrument the bar belongs to.
func (b Bar) InstrumentID() InstrumentID {
	return b.BarType.InstrumentID
}
