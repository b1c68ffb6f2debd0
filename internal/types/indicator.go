package types

type IndicatorType string

const (
	IndicatorTypeZScore IndicatorType = "zscore"
	IndicatorTypeATR    IndicatorType = "atr"
)
