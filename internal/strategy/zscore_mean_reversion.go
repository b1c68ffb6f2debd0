package strategy

import (
	"time"

	"github.com/rxtech-lab/argo-zscore/internal/indicator"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/runtime"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"go.uber.org/zap"
)

const (
	TagEntryLong     = "ENTRY_LONG"
	TagEntryShort    = "ENTRY_SHORT"
	TagLongStopLoss  = "LONG_STOP_LOSS"
	TagShortStopLoss = "SHORT_STOP_LOSS"
)

// ReduceOnlyBuyStopReason is the denial raised when a protective BUY stop races the close of its short.
const ReduceOnlyBuyStopReason = "REDUCE_ONLY STOP_MARKET BUY order would have increased position"

// TradeState is derived from the open order and open position counts.
type TradeState int

const (
	// StateFlat has no open orders and no open positions.
	StateFlat TradeState = iota
	// StateInTrade has one protective stop and one position.
	StateInTrade
	// StateInconsistent is any other combination.
	StateInconsistent
)

func (s TradeState) String() string {
	switch s {
	case StateFlat:
		return "FLAT"
	case StateInTrade:
		return "IN_TRADE"
	case StateInconsistent:
		return "INCONSISTENT"
	default:
		return "UNKNOWN"
	}
}

// ZScoreMeanReversion fades z-score extremes of the close and protects every
// position with a reduce-only stop placed a multiple of ATR away.
type ZScoreMeanReversion struct {
	config ZScoreMeanReversionConfig
	ctx    runtime.RuntimeContext
	log    *logger.Logger

	zscore     *indicator.ZScore
	atr        *indicator.ATR
	instrument types.Instrument

	currentClose float64
}

// NewZScoreMeanReversion creates the strategy. Indicators are created in OnStart.
func NewZScoreMeanReversion(config ZScoreMeanReversionConfig, ctx runtime.RuntimeContext) (*ZScoreMeanReversion, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	log := ctx.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ZScoreMeanReversion{
		config: config,
		ctx:    ctx,
		log:    &logger.Logger{Logger: log.Named("ZScoreMeanReversion")},
	}, nil
}

func (s *ZScoreMeanReversion) Name() string {
	return "ZScoreMeanReversion"
}

func (s *ZScoreMeanReversion) Config() ZScoreMeanReversionConfig {
	return s.config
}

// ZScore exposes the z-score indicator, nil before OnStart.
func (s *ZScoreMeanReversion) ZScore() *indicator.ZScore {
	return s.zscore
}

// ATR exposes the ATR indicator, nil before OnStart.
func (s *ZScoreMeanReversion) ATR() *indicator.ATR {
	return s.atr
}

func (s *ZScoreMeanReversion) OnStart() error {
	atr, err := indicator.NewATR(s.config.ATRPeriod)
	if err != nil {
		return err
	}

	zscore, err := indicator.NewZScore(s.config.ZLookback)
	if err != nil {
		return err
	}

	s.atr = atr
	s.zscore = zscore

	instrument, ok := s.ctx.Cache.Instrument(s.config.InstrumentID)
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidInstrument, "instrument %s not found in cache", s.config.InstrumentID)
	}

	s.instrument = instrument

	if err := s.ctx.Data.SubscribeBars(s.config.BarType); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyRuntimeError, "failed to subscribe bars", err)
	}

	if s.ctx.IndicatorRegistry != nil {
		if err := s.ctx.IndicatorRegistry.RegisterIndicator(s.config.BarType, s.zscore); err != nil {
			return err
		}

		if err := s.ctx.IndicatorRegistry.RegisterIndicator(s.config.BarType, s.atr); err != nil {
			return err
		}
	}

	return nil
}

func (s *ZScoreMeanReversion) indicatorsInitialized() bool {
	if s.zscore == nil || s.atr == nil {
		return false
	}

	if s.ctx.IndicatorRegistry != nil {
		return s.ctx.IndicatorRegistry.AllInitialized()
	}

	return s.zscore.Initialized() && s.atr.Initialized()
}

func (s *ZScoreMeanReversion) now() time.Time {
	if s.ctx.Clock == nil {
		return time.Time{}
	}

	return s.ctx.Clock.Now()
}

// State derives the trade state from the cache.
func (s *ZScoreMeanReversion) State() TradeState {
	orders := s.ctx.Cache.OrdersOpenCount()
	positions := s.ctx.Cache.PositionsOpenCount()

	switch {
	case orders == 0 && positions == 0:
		return StateFlat
	case orders == 1 && positions == 1:
		return StateInTrade
	default:
		return StateInconsistent
	}
}

func (s *ZScoreMeanReversion) OnBar(bar types.Bar) error {
	if !s.indicatorsInitialized() {
		return nil
	}

	s.currentClose = bar.Close
	z := s.zscore.Value()

	switch s.State() {
	case StateFlat:
		if z <= -s.config.ZEntry {
			return s.enter(types.PositionSideLong)
		}

		if z >= s.config.ZEntry {
			return s.enter(types.PositionSideShort)
		}

		return nil
	case StateInTrade:
		return s.maybeExit(z)
	case StateInconsistent:
		return s.handleInconsistent()
	}

	return nil
}

func (s *ZScoreMeanReversion) maybeExit(z float64) error {
	positions := s.ctx.Cache.PositionsOpen(s.config.InstrumentID)
	if len(positions) == 0 {
		return nil
	}

	position := positions[0]

	switch {
	case position.IsLong() && z >= -s.config.ZExit:
		s.log.Info("LONG exit signal", zap.Float64("z", z), zap.Float64("threshold", -s.config.ZExit))
	case position.IsShort() && z <= s.config.ZExit:
		s.log.Info("SHORT exit signal", zap.Float64("z", z), zap.Float64("threshold", s.config.ZExit))
	default:
		return nil
	}

	if err := s.ctx.Trading.ClosePosition(position); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyRuntimeError, "failed to close position", err)
	}

	return nil
}

func (s *ZScoreMeanReversion) handleInconsistent() error {
	s.log.Error("Incorrect number of positions or orders",
		zap.Time("time", s.now()),
		zap.Int("orders_open", s.ctx.Cache.OrdersOpenCount()),
		zap.Int("positions_open", s.ctx.Cache.PositionsOpenCount()),
	)
	s.showOrdersPositions()

	if s.config.InconsistencyPolicy != InconsistencyPolicyReconcile {
		return nil
	}

	s.log.Warn("Reconciling instrument", zap.String("instrument", s.config.InstrumentID.String()))

	if err := s.ctx.Trading.CancelAllOrders(s.config.InstrumentID); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyRuntimeError, "failed to cancel orders while reconciling", err)
	}

	if err := s.ctx.Trading.CloseAllPositions(s.config.InstrumentID); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyRuntimeError, "failed to close positions while reconciling", err)
	}

	return nil
}

// calcQuantity sizes against the current close for a prospective stop price.
func (s *ZScoreMeanReversion) calcQuantity(stopPrice float64) (SizingResult, error) {
	balance, ok := s.ctx.Portfolio.BalanceTotal(s.config.InstrumentID.Venue)
	if !ok {
		return SizingResult{}, errors.Newf(errors.ErrCodeAccountNotFound, "no account for venue %s", s.config.InstrumentID.Venue)
	}

	result := CalcQuantity(balance, s.config.RiskPct, s.currentClose, stopPrice, s.instrument)

	switch result.Outcome {
	case Sized:
		return result, nil
	case SkippedZeroDistance:
		s.log.Warn("Prevented float division by zero",
			zap.Float64("atr", s.atr.Value()),
			zap.Float64("atr_multiple", s.config.StopLossATRMultiple),
			zap.Float64("close", s.currentClose),
			zap.Float64("stop_price", stopPrice),
		)

		return result, nil
	case FatalUndersized:
		return result, errors.Newf(errors.ErrCodeUndersizedPosition,
			"could not size at least 1 quantity (risk %.2f, stop distance %.4f), adjust stop loss or risk_pct",
			result.RiskBudget, result.StopDistance)
	}

	return result, nil
}

func (s *ZScoreMeanReversion) calcStopLoss(side types.PositionSide) float64 {
	return CalcStopLoss(side, s.currentClose, s.atr.Value(), s.config.StopLossATRMultiple, s.instrument)
}

func (s *ZScoreMeanReversion) enter(side types.PositionSide) error {
	stopPrice := s.calcStopLoss(side)

	orderSide, tag := types.PurchaseTypeBuy, TagEntryLong
	if side == types.PositionSideShort {
		orderSide, tag = types.PurchaseTypeSell, TagEntryShort
	}

	s.log.Info("Entry signal",
		zap.String("side", string(side)),
		zap.Float64("z", s.zscore.Value()),
		zap.Float64("stop_price", stopPrice),
	)

	sizing, err := s.calcQuantity(stopPrice)
	if err != nil {
		return err
	}

	if sizing.Outcome != Sized {
		return nil
	}

	order := types.NewMarketOrder(s.config.InstrumentID, orderSide, sizing.Quantity, tag)
	order.StrategyID = s.Name()

	if err := s.ctx.Trading.SubmitOrder(order); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyRuntimeError, "failed to submit entry order", err)
	}

	return nil
}

// submitProtectiveStop places the reduce-only stop for a position of the given side.
func (s *ZScoreMeanReversion) submitProtectiveStop(side types.PositionSide) error {
	stopPrice := s.calcStopLoss(side)

	orderSide, tag := types.PurchaseTypeSell, TagLongStopLoss
	if side == types.PositionSideShort {
		orderSide, tag = types.PurchaseTypeBuy, TagShortStopLoss
	}

	sizing, err := s.calcQuantity(stopPrice)
	if err != nil {
		return err
	}

	if sizing.Outcome != Sized {
		s.log.Warn("Protective stop not placed", zap.String("outcome", sizing.Outcome.String()))

		return nil
	}

	order := types.NewStopMarketOrder(s.config.InstrumentID, orderSide, sizing.Quantity, stopPrice, true, tag)
	order.StrategyID = s.Name()

	if err := s.ctx.Trading.SubmitOrder(order); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyRuntimeError, "failed to submit stop order", err)
	}

	return nil
}

func (s *ZScoreMeanReversion) OnEvent(event types.Event) error {
	switch event.Kind {
	case types.EventKindPositionOpened:
		if event.InstrumentID != s.config.InstrumentID {
			return nil
		}

		switch event.Entry {
		case types.PurchaseTypeBuy:
			return s.submitProtectiveStop(types.PositionSideLong)
		case types.PurchaseTypeSell:
			return s.submitProtectiveStop(types.PositionSideShort)
		}
	case types.EventKindPositionClosed:
		if event.InstrumentID != s.config.InstrumentID {
			return nil
		}

		return s.cancelStopOrders()
	case types.EventKindOrderDenied, types.EventKindOrderRejected:
		if event.Reason == ReduceOnlyBuyStopReason {
			s.showOrdersPositions()
		}
	case types.EventKindOther:
	}

	return nil
}

func (s *ZScoreMeanReversion) cancelStopOrders() error {
	for _, order := range s.ctx.Cache.OrdersOpen(s.config.InstrumentID) {
		if order.OrderType != types.OrderTypeStopMarket {
			continue
		}

		if err := s.ctx.Trading.CancelOrder(order.OrderID); err != nil {
			return errors.Wrap(errors.ErrCodeStrategyRuntimeError, "failed to cancel stop order", err)
		}

		s.log.Info("Cancelled STOP_MARKET order", zap.String("order_id", order.OrderID))
		s.showOrdersPositions()
	}

	return nil
}

func (s *ZScoreMeanReversion) showOrdersPositions() {
	s.log.Info("Open positions and orders",
		zap.Any("positions", s.ctx.Cache.PositionsOpen(s.config.InstrumentID)),
		zap.Any("orders", s.ctx.Cache.OrdersOpen(s.config.InstrumentID)),
	)
}

func (s *ZScoreMeanReversion) OnStop() error {
	if err := s.ctx.Trading.CancelAllOrders(s.config.InstrumentID); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyRuntimeError, "failed to cancel orders on stop", err)
	}

	if err := s.ctx.Trading.CloseAllPositions(s.config.InstrumentID); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyRuntimeError, "failed to close positions on stop", err)
	}

	if err := s.ctx.Data.UnsubscribeBars(s.config.BarType); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyRuntimeError, "failed to unsubscribe bars", err)
	}

	return nil
}

func (s *ZScoreMeanReversion) OnReset() {
	if s.ctx.IndicatorRegistry != nil {
		s.ctx.IndicatorRegistry.ResetAll()

		return
	}

	if s.zscore != nil {
		s.zscore.Reset()
	}

	if s.atr != nil {
		s.atr.Reset()
	}
}
