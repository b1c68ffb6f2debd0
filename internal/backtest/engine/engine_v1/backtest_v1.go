package engine

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/cache"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-zscore/internal/indicator"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/runtime"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const eventTopic = "engine:events"

type BacktestEngineV1 struct {
	config            BacktestEngineV1Config
	log               *logger.Logger
	cache             *cache.CacheV1
	state             *BacktestState
	account           *BacktestAccount
	tradingSystem     *BacktestTrading
	dataClient        *BacktestDataClient
	indicatorRegistry indicator.IndicatorRegistry
	bus               EventBus.Bus
	strategies        []runtime.StrategyRuntime
	bars              []types.Bar
	currentTime       time.Time
	dispatchErr       error
	hasVenue          bool
}

var _ engine.Engine = (*BacktestEngineV1)(nil)

// NewBacktestEngineV1 validates the config and prepares an empty engine.
func NewBacktestEngineV1(config BacktestEngineV1Config, log *logger.Logger) (*BacktestEngineV1, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	state, err := NewBacktestState(log)
	if err != nil {
		return nil, err
	}

	if err := state.Initialize(); err != nil {
		return nil, err
	}

	b := &BacktestEngineV1{
		config:            config,
		log:               log,
		cache:             cache.NewCacheV1(),
		state:             state,
		account:           NewBacktestAccount(),
		dataClient:        NewBacktestDataClient(),
		indicatorRegistry: indicator.NewIndicatorRegistry(),
		bus:               EventBus.New(),
	}

	b.tradingSystem = NewBacktestTrading(
		b.cache,
		b.state,
		b.account,
		commission_fee.GetCommissionFeeHandler(config.Broker),
		&logger.Logger{Logger: log.Named("BacktestTrading")},
	)

	return b, nil
}

// SetLogger switches the run logger, e.g. to a per ticker log file. Call it before RuntimeContext.
func (b *BacktestEngineV1) SetLogger(log *logger.Logger) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	b.log = log
	b.state.logger = log
	b.tradingSystem.log = &logger.Logger{Logger: log.Named("BacktestTrading")}
}

func (b *BacktestEngineV1) Config() BacktestEngineV1Config {
	return b.config
}

// AddVenue implements engine.Engine.
func (b *BacktestEngineV1) AddVenue(venue types.Venue, omsType types.OmsType, accountType types.AccountType, currency string, startingBalance float64) error {
	if omsType != types.OmsTypeNetting {
		return errors.Newf(errors.ErrCodeBacktestConfigError, "unsupported oms type %s", omsType)
	}

	if startingBalance <= 0 {
		return errors.Newf(errors.ErrCodeBacktestConfigError, "starting balance must be positive, got %f", startingBalance)
	}

	b.account.Open(venue, accountType, currency, startingBalance)
	b.hasVenue = true

	b.log.Debug("Venue added",
		zap.String("venue", string(venue)),
		zap.String("account_type", string(accountType)),
		zap.Float64("starting_balance", startingBalance),
	)

	return nil
}

// AddInstrument implements engine.Engine.
func (b *BacktestEngineV1) AddInstrument(instrument types.Instrument) error {
	if !b.hasVenue {
		return errors.New(errors.ErrCodeBacktestNoVenue, "add a venue before adding instruments")
	}

	if _, ok := b.account.BalanceTotal(instrument.ID.Venue); !ok {
		return errors.Newf(errors.ErrCodeBacktestNoVenue, "venue %s not added", instrument.ID.Venue)
	}

	b.cache.AddInstrument(instrument)

	return nil
}

// AddData implements engine.Engine.
func (b *BacktestEngineV1) AddData(bars []types.Bar) error {
	for _, bar := range bars {
		if _, ok := b.cache.Instrument(bar.InstrumentID()); !ok {
			return errors.Newf(errors.ErrCodeBacktestNoInstrument, "instrument %s for bar type %s not added", bar.InstrumentID(), bar.BarType)
		}
	}

	b.bars = append(b.bars, bars...)
	sort.SliceStable(b.bars, func(i, j int) bool {
		return b.bars[i].Time.Before(b.bars[j].Time)
	})

	return nil
}

// AddStrategy implements engine.Engine.
func (b *BacktestEngineV1) AddStrategy(strategy runtime.StrategyRuntime) error {
	if strategy == nil {
		return errors.New(errors.ErrCodeBacktestNoStrategy, "strategy is nil")
	}

	b.strategies = append(b.strategies, strategy)
	b.log.Debug("Strategy loaded",
		zap.String("strategy", strategy.Name()),
		zap.Int("total_strategies", len(b.strategies)),
	)

	return nil
}

// RuntimeContext implements engine.Engine.
func (b *BacktestEngineV1) RuntimeContext() runtime.RuntimeContext {
	return runtime.RuntimeContext{
		Cache:             b.cache,
		Trading:           b.tradingSystem,
		Portfolio:         b.account,
		Data:              b.dataClient,
		IndicatorRegistry: b.indicatorRegistry,
		Clock:             b,
		Logger:            b.log,
	}
}

// Now implements runtime.Clock with the time of the bar being processed.
func (b *BacktestEngineV1) Now() time.Time {
	return b.currentTime
}

// Cache gives tests and the driver access to the full order and position history.
func (b *BacktestEngineV1) Cache() *cache.CacheV1 {
	return b.cache
}

// State returns the run ledger.
func (b *BacktestEngineV1) State() *BacktestState {
	return b.state
}

func (b *BacktestEngineV1) preRunCheck() error {
	if !b.hasVenue {
		return errors.New(errors.ErrCodeBacktestNoVenue, "no venue added")
	}

	if len(b.cache.Instruments()) == 0 {
		return errors.New(errors.ErrCodeBacktestNoInstrument, "no instruments added")
	}

	if len(b.strategies) == 0 {
		return errors.New(errors.ErrCodeBacktestNoStrategy, "no strategies loaded")
	}

	if len(b.bars) == 0 {
		return errors.New(errors.ErrCodeBacktestNoData, "no data loaded")
	}

	return nil
}

// barsInRange applies the optional start and end time of the config.
func (b *BacktestEngineV1) barsInRange() []types.Bar {
	if b.config.StartTime.IsNone() && b.config.EndTime.IsNone() {
		return b.bars
	}

	result := make([]types.Bar, 0, len(b.bars))

	for _, bar := range b.bars {
		if b.config.StartTime.IsSome() && bar.Time.Before(b.config.StartTime.Unwrap()) {
			continue
		}

		if b.config.EndTime.IsSome() && bar.Time.After(b.config.EndTime.Unwrap()) {
			continue
		}

		result = append(result, bar)
	}

	return result
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, callbacks engine.LifecycleCallbacks) (err error) {
	if err := b.preRunCheck(); err != nil {
		b.log.Error("Backtest cannot start", zap.Error(err))

		return err
	}

	runID := uuid.New().String()

	if callbacks.OnRunEnd != nil {
		defer func() {
			(*callbacks.OnRunEnd)(runID, err)
		}()
	}

	bars := b.barsInRange()
	if len(bars) == 0 {
		return errors.New(errors.ErrCodeBacktestNoData, "no data inside the configured time range")
	}

	b.currentTime = bars[0].Time

	for _, strategy := range b.strategies {
		if err := strategy.OnStart(); err != nil {
			return errors.Wrapf(errors.ErrCodeStrategyRuntimeError, err, "strategy %s failed to start", strategy.Name())
		}

		if err := b.subscribe(strategy); err != nil {
			return err
		}
	}

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(runID, bars[0].InstrumentID(), len(bars)); err != nil {
			return err
		}
	}

	b.log.Info("Backtest started",
		zap.String("run_id", runID),
		zap.Int("bars", len(bars)),
		zap.Int("strategies", len(b.strategies)),
		zap.Any("indicators", b.indicatorRegistry.ListIndicators()),
	)

	for i, bar := range bars {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest cancelled", err)
		}

		if err := b.processBar(bar); err != nil {
			return err
		}

		if callbacks.OnProcessData != nil {
			if err := (*callbacks.OnProcessData)(i+1, len(bars)); err != nil {
				return err
			}
		}
	}

	if err := b.stop(bars[len(bars)-1]); err != nil {
		return err
	}

	if err := b.state.RecordBalances(b.account.Snapshots()); err != nil {
		return err
	}

	b.log.Info("Backtest finished",
		zap.String("run_id", runID),
		zap.Float64("final_balance", b.account.Total()),
	)

	return nil
}

func (b *BacktestEngineV1) subscribe(strategy runtime.StrategyRuntime) error {
	handler := func(event types.Event) {
		if b.dispatchErr != nil {
			return
		}

		if err := strategy.OnEvent(event); err != nil {
			b.dispatchErr = err
		}
	}

	if err := b.bus.Subscribe(eventTopic, handler); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to subscribe strategy to events", err)
	}

	return nil
}

// drainEvents publishes queued events one at a time. Handlers only enqueue, so nothing is dispatched re-entrantly.
func (b *BacktestEngineV1) drainEvents() error {
	for b.tradingSystem.PendingEvents() {
		event, _ := b.tradingSystem.PopEvent()

		b.bus.Publish(eventTopic, event)

		if b.dispatchErr != nil {
			err := b.dispatchErr
			b.dispatchErr = nil

			b.log.Error("Strategy failed to handle event", zap.String("event", event.Name), zap.Error(err))

			return err
		}
	}

	return nil
}

// processBar triggers resting stops, updates indicators, calls OnBar and dispatches the resulting events.
func (b *BacktestEngineV1) processBar(bar types.Bar) error {
	b.currentTime = bar.Time

	if err := b.tradingSystem.UpdateCurrentBar(bar); err != nil {
		return err
	}

	if err := b.drainEvents(); err != nil {
		return err
	}

	b.indicatorRegistry.HandleBar(bar)

	if b.dataClient.IsSubscribed(bar.BarType) {
		for _, strategy := range b.strategies {
			if err := strategy.OnBar(bar); err != nil {
				b.log.Error("Strategy failed to handle bar",
					zap.String("strategy", strategy.Name()),
					zap.Time("time", bar.Time),
					zap.Error(err),
				)

				return err
			}

			if err := b.drainEvents(); err != nil {
				return err
			}
		}
	}

	b.account.Snapshot(bar.Time)

	return nil
}

// stop calls OnStop and flattens whatever is still open at the last close.
func (b *BacktestEngineV1) stop(last types.Bar) error {
	for _, strategy := range b.strategies {
		if err := strategy.OnStop(); err != nil {
			return err
		}

		if err := b.drainEvents(); err != nil {
			return err
		}
	}

	for _, instrument := range b.cache.Instruments() {
		if err := b.tradingSystem.CancelAllOrders(instrument.ID); err != nil {
			return err
		}

		if err := b.tradingSystem.CloseAllPositions(instrument.ID); err != nil {
			return err
		}
	}

	if err := b.drainEvents(); err != nil {
		return err
	}

	b.account.Snapshot(last.Time)

	return nil
}

// Analyzer implements engine.Engine.
func (b *BacktestEngineV1) Analyzer() types.PerformanceStats {
	return Analyze(b.account.StartingBalance(), b.account.Snapshots(), b.cache.Positions(), b.account.Commissions())
}

// AccountReport implements engine.Engine.
func (b *BacktestEngineV1) AccountReport() []types.BalanceSnapshot {
	return b.account.Snapshots()
}

// WriteResults implements engine.Engine.
func (b *BacktestEngineV1) WriteResults(folder string) error {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestResultsFailed, "failed to create results folder", err)
	}

	if err := b.state.Write(folder); err != nil {
		return err
	}

	data, err := yaml.Marshal(b.Analyzer())
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestResultsFailed, "failed to marshal stats", err)
	}

	if err := os.WriteFile(filepath.Join(folder, "stats.yaml"), data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestResultsFailed, "failed to write stats", err)
	}

	return nil
}

// Reset implements engine.Engine.
func (b *BacktestEngineV1) Reset() error {
	for _, strategy := range b.strategies {
		strategy.OnReset()
	}

	if err := b.state.Cleanup(); err != nil {
		return err
	}

	b.cache.Reset()
	b.account.Reset()
	b.tradingSystem.Reset()
	b.dataClient.Reset()
	b.indicatorRegistry.Clear()
	b.bus = EventBus.New()
	b.strategies = nil
	b.bars = nil
	b.currentTime = time.Time{}
	b.dispatchErr = nil
	b.hasVenue = false

	return nil
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to generate schema", err)
	}

	return schema, nil
}

// Close implements engine.Engine.
func (b *BacktestEngineV1) Close() error {
	return b.state.Close()
}
