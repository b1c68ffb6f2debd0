package indicator

import (
	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// Indicator is a streaming indicator fed one bar at a time by the engine.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// HandleBar updates the indicator with a new bar
	HandleBar(bar types.Bar)
	// Value returns the current value of the indicator
	Value() float64
	// Initialized reports whether enough bars were seen to produce a value
	Initialized() bool
	// Reset restores the construction time state
	Reset()
}
