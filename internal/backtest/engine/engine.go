package engine

import (
	"context"

	"github.com/rxtech-lab/argo-zscore/internal/runtime"
	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// Lifecycle callback types for a backtest run.
// Callbacks with an error return abort the run if they return an error.

// OnRunStartCallback is called once the strategies started and before the first bar.
// runID is a unique identifier for this run.
type OnRunStartCallback func(runID string, instrumentID types.InstrumentID, totalBars int) error

// OnRunEndCallback is called when the run ends (always called via defer).
type OnRunEndCallback func(runID string, err error)

// OnProcessDataCallback is called for each bar processed.
type OnProcessDataCallback func(current int, total int) error

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnRunStart    *OnRunStartCallback
	OnRunEnd      *OnRunEndCallback
	OnProcessData *OnProcessDataCallback
}

//nolint:interfacebloat // Engine is a core interface that naturally requires multiple methods
type Engine interface {
	// AddVenue opens the simulated venue account.
	AddVenue(venue types.Venue, omsType types.OmsType, accountType types.AccountType, currency string, startingBalance float64) error
	// AddInstrument registers an instrument traded on the venue.
	AddInstrument(instrument types.Instrument) error
	// AddData appends bars. Bars are replayed in time order.
	AddData(bars []types.Bar) error
	// AddStrategy adds a strategy built with the context returned by RuntimeContext.
	AddStrategy(strategy runtime.StrategyRuntime) error
	// RuntimeContext returns the handles strategies use to talk to this engine.
	RuntimeContext() runtime.RuntimeContext
	// Run replays the data through the strategies.
	// The context can be used to cancel the run between bars.
	Run(ctx context.Context, callbacks LifecycleCallbacks) error
	// Analyzer returns the performance statistics of the last run.
	Analyzer() types.PerformanceStats
	// AccountReport returns the balance snapshots of the last run.
	AccountReport() []types.BalanceSnapshot
	// WriteResults writes the ledger and statistics of the last run into the folder.
	WriteResults(folder string) error
	// Reset clears venues, instruments, data, strategies and results so the engine can be reused.
	Reset() error
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
	// Close releases the ledger database.
	Close() error
}
