package types

// ScreeningResult holds the stationarity and volatility statistics of one ticker.
// Column names follow the screening CSV consumed by the backtest batch.
type ScreeningResult struct {
	Ticker      string  `csv:"ticker" yaml:"ticker"`
	TotalVolume float64 `csv:"total_volume" yaml:"total_volume"`
	ADF         float64 `csv:"adf" yaml:"adf"`
	// ADFCritical10 is the 10% MacKinnon critical value.
	ADFCritical10 float64 `csv:"adf_10%_level" yaml:"adf_10_level"`
	Below10       bool    `csv:"below_10%" yaml:"below_10"`
	ADFPValue     float64 `csv:"adf_p" yaml:"adf_p"`
	NATRMin       float64 `csv:"natr_min" yaml:"natr_min"`
	NATRMean      float64 `csv:"natr_mean" yaml:"natr_mean"`
	MinPrice      float64 `csv:"min_price" yaml:"min_price"`
	MeanPrice     float64 `csv:"mean_price" yaml:"mean_price"`
	MaxPrice      float64 `csv:"max_price" yaml:"max_price"`
}
