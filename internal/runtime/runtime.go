package runtime

import (
	"time"

	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/cache"
	"github.com/rxtech-lab/argo-zscore/internal/indicator"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/trading"
	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// StrategyRuntime is the lifecycle a strategy exposes to the engine.
// Hooks are invoked one at a time, never concurrently.
type StrategyRuntime interface {
	Name() string
	// OnStart subscribes to data and registers indicators
	OnStart() error
	// OnBar is called after the indicators registered for the bar type were updated
	OnBar(bar types.Bar) error
	// OnEvent receives order and position events in arrival order
	OnEvent(event types.Event) error
	// OnStop is called once the data is exhausted
	OnStop() error
	// OnReset restores indicator state between runs
	OnReset()
}

// Clock returns the current engine time.
type Clock interface {
	Now() time.Time
}

type RuntimeContext struct {
	// Cache is the read only view of instruments, orders and positions
	Cache cache.Cache
	// Trading is used to place and cancel orders
	Trading trading.TradingSystem
	// Portfolio gives access to account balances
	Portfolio trading.Portfolio
	// Data manages bar subscriptions
	Data trading.DataClient
	// IndicatorRegistry feeds registered indicators before OnBar
	IndicatorRegistry indicator.IndicatorRegistry
	// Clock is the engine clock
	Clock Clock
	// Logger is the run logger
	Logger *logger.Logger
}

// FixedClock is a Clock that always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
