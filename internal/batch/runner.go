package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	backtest "github.com/rxtech-lab/argo-zscore/internal/backtest/engine"
	engine "github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-zscore/internal/config"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/strategy"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoggerFactory builds the logger of one ticker run.
type LoggerFactory func(ticker string) (*logger.Logger, error)

// Runner backtests every ticker of a batch. Each worker owns one engine and resets it between tickers.
type Runner struct {
	config    config.RunConfig
	env       config.Environment
	log       *logger.Logger
	out       io.Writer
	newLogger LoggerFactory
}

type Option func(*Runner)

// WithOutput redirects the summary table and the progress bar.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLoggerFactory replaces the per ticker log files.
func WithLoggerFactory(factory LoggerFactory) Option {
	return func(r *Runner) {
		r.newLogger = factory
	}
}

func NewRunner(cfg config.RunConfig, env config.Environment, log *logger.Logger, opts ...Option) *Runner {
	if log == nil {
		log = logger.NewNopLogger()
	}

	r := &Runner{
		config: cfg,
		env:    env,
		log:    log,
		out:    os.Stdout,
	}
	r.newLogger = r.fileLogger

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// fileLogger writes WARN to the console and INFO to LOG_DIR/naut_bt_<TICKER>_<time>.log.
func (r *Runner) fileLogger(ticker string) (*logger.Logger, error) {
	consoleLevel, err := logger.ParseLevel(r.config.Batch.ConsoleLogLevel)
	if err != nil {
		return nil, err
	}

	fileLevel, err := logger.ParseLevel(r.config.Batch.FileLogLevel)
	if err != nil {
		return nil, err
	}

	return logger.NewLoggerWithConfig(logger.Config{
		ConsoleLevel: consoleLevel,
		Directory:    r.env.LogDir,
		FileName:     logger.RunLogFileName(ticker, time.Now()),
		FileLevel:    fileLevel,
	})
}

// Tickers resolves the ticker rows of the batch.
func (r *Runner) Tickers() ([]types.ScreeningResult, error) {
	if len(r.config.Batch.Tickers) > 0 {
		return TickersFromList(r.config.Batch.Tickers), nil
	}

	return LoadTickerTable(r.config.Batch.TickerTable, r.config.Batch.Below10Only)
}

// Run backtests every ticker, prints the summary table and writes summary.yaml and summary.csv.
// Summaries are returned in ticker order, also when the batch was aborted.
func (r *Runner) Run(ctx context.Context) ([]types.RunSummary, error) {
	rows, err := r.Tickers()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeBacktestNoData, "no tickers to backtest")
	}

	summaries := make([]*types.RunSummary, len(rows))
	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription("Backtesting"),
		progressbar.OptionShowCount(),
	)

	jobs := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)

		for i := range rows {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return nil
			}
		}

		return nil
	})

	var mu sync.Mutex

	for range min(r.config.Batch.Workers, len(rows)) {
		g.Go(func() error {
			e, err := engine.NewBacktestEngineV1(r.config.Engine, r.log)
			if err != nil {
				return err
			}
			defer e.Close()

			for i := range jobs {
				if err := gctx.Err(); err != nil {
					return errors.Wrap(errors.ErrCodeBacktestCancelled, "batch cancelled", err)
				}

				summary, runErr := r.runTicker(gctx, e, rows[i])

				if err := e.Reset(); err != nil {
					return err
				}

				_ = bar.Add(1)

				if runErr != nil {
					summary.Error = runErr.Error()

					mu.Lock()
					summaries[i] = &summary
					mu.Unlock()

					if r.shouldAbort(runErr) {
						return runErr
					}

					r.log.Warn("Skipping ticker", zap.String("ticker", rows[i].Ticker), zap.Error(runErr))

					continue
				}

				mu.Lock()
				summaries[i] = &summary
				mu.Unlock()
			}

			return nil
		})
	}

	runErr := g.Wait()
	if runErr == nil && ctx.Err() != nil {
		runErr = errors.Wrap(errors.ErrCodeBacktestCancelled, "batch cancelled", ctx.Err())
	}

	_ = bar.Finish()
	fmt.Fprintln(r.out)

	result := make([]types.RunSummary, 0, len(summaries))

	for _, summary := range summaries {
		if summary != nil {
			result = append(result, *summary)
		}
	}

	RenderSummaries(r.out, result)

	if err := WriteSummaries(r.config.Batch.ResultsDir, result); err != nil {
		return result, err
	}

	return result, runErr
}

func (r *Runner) shouldAbort(err error) bool {
	if errors.HasCode(err, errors.ErrCodeBacktestCancelled) {
		return true
	}

	return r.config.Batch.OnFatal == config.OnFatalAbortBatch
}

// runTicker backtests one ticker on e. The caller resets e afterwards.
func (r *Runner) runTicker(ctx context.Context, e *engine.BacktestEngineV1, row types.ScreeningResult) (types.RunSummary, error) {
	ticker := row.Ticker
	summary := types.RunSummary{
		Ticker:   ticker,
		ADF:      row.ADF,
		NATRMean: row.NATRMean,
	}

	log, err := r.newLogger(ticker)
	if err != nil {
		return summary, err
	}
	defer log.Sync() //nolint:errcheck

	e.SetLogger(log)

	cfg := r.config.Engine
	if err := e.AddVenue(cfg.Venue, cfg.OmsType, cfg.AccountType, cfg.BaseCurrency, cfg.StartingBalance); err != nil {
		return summary, err
	}

	instrument := types.NewEquity(ticker, cfg.Venue)
	if err := e.AddInstrument(instrument); err != nil {
		return summary, err
	}

	barType, err := cfg.BarType(instrument.ID)
	if err != nil {
		return summary, err
	}

	rows, err := r.loadRows(ticker, log)
	if err != nil {
		return summary, err
	}

	if err := VerifySymbol(ticker, instrument, rows); err != nil {
		return summary, err
	}

	bars, stats := datasource.Wrangle(barType, rows)

	log.Info("Loaded bars",
		zap.String("ticker", ticker),
		zap.Int("rows", stats.Input),
		zap.Int("invalid", stats.InvalidPrice),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("bars", stats.Output),
	)

	if err := e.AddData(bars); err != nil {
		return summary, err
	}

	rawConfig, err := r.config.Strategy.RawConfig()
	if err != nil {
		return summary, err
	}

	s, err := strategy.New(r.config.Strategy.Kind, instrument.ID, barType, rawConfig, e.RuntimeContext())
	if err != nil {
		return summary, err
	}

	if err := e.AddStrategy(s); err != nil {
		return summary, err
	}

	if err := e.Run(ctx, backtest.LifecycleCallbacks{}); err != nil {
		return summary, err
	}

	performance := e.Analyzer()
	summary.PnLPercent = performance.PnLPercent
	summary.Sharpe = performance.Sharpe252
	summary.LowestBalance = performance.LowestBalance

	if err := e.WriteResults(engine.ResultFolder(r.config.Batch.ResultsDir, instrument.ID, cfg)); err != nil {
		return summary, err
	}

	log.Info("Ticker finished",
		zap.String("ticker", ticker),
		zap.Float64("adf", summary.ADF),
		zap.Float64("natr_mean", summary.NATRMean),
		zap.Float64("pnl_pct", summary.PnLPercent),
		zap.Float64("sharpe", summary.Sharpe),
		zap.Float64("lowest_balance", summary.LowestBalance),
	)

	return summary, nil
}

func (r *Runner) loadRows(ticker string, log *logger.Logger) ([]types.MarketData, error) {
	ds, err := datasource.NewDataSource("", log)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	if err := ds.Initialize(datasource.TickerDataPath(r.env.DataDir, r.config.Batch.Dataset, ticker)); err != nil {
		return nil, err
	}

	return datasource.ReadRows(ds, r.config.Engine.StartTime, r.config.Engine.EndTime)
}

// VerifySymbol checks that the resolved instrument and the symbol column of the data belong to the requested ticker.
func VerifySymbol(ticker string, instrument types.Instrument, rows []types.MarketData) error {
	if instrument.Symbol() != ticker {
		return errors.Newf(errors.ErrCodeInstrumentMismatch, "mismatch between %s and %s", ticker, instrument.Symbol())
	}

	for _, row := range rows {
		if row.Symbol != "" && row.Symbol != ticker {
			return errors.Newf(errors.ErrCodeInstrumentMismatch, "mismatch between %s and %s", ticker, row.Symbol)
		}
	}

	return nil
}
