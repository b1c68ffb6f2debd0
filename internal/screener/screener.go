package screener

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-zscore/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TempDirName holds one result file per screened ticker under DATA_DIR.
const TempDirName = "screen_results_temp"

// Config of a screening run.
type Config struct {
	// DataDir is the DATA_DIR root.
	DataDir string `validate:"required"`
	// Dataset is the folder under DATA_DIR/stocks.
	Dataset string `validate:"required"`
	// OutputDir receives the aggregated results_1min_<time>.csv.
	OutputDir  string
	Workers    int `validate:"gte=1"`
	ADFMaxLag  int `validate:"gte=0"`
	NATRPeriod int `validate:"gte=1"`
}

func DefaultConfig(dataDir, dataset string) Config {
	return Config{
		DataDir:    dataDir,
		Dataset:    dataset,
		OutputDir:  ".",
		Workers:    1,
		ADFMaxLag:  DefaultADFMaxLag,
		NATRPeriod: DefaultNATRPeriod,
	}
}

// Screener computes the mean reversion statistics of every downloaded ticker.
type Screener struct {
	config Config
	log    *logger.Logger
	out    io.Writer
	now    func() time.Time
}

type Option func(*Screener)

// WithOutput redirects the progress bar and the completion message.
func WithOutput(w io.Writer) Option {
	return func(s *Screener) {
		s.out = w
	}
}

// WithClock replaces the clock used for the aggregate file name.
func WithClock(now func() time.Time) Option {
	return func(s *Screener) {
		s.now = now
	}
}

func NewScreener(config Config, log *logger.Logger, opts ...Option) (*Screener, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid screener configuration", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Screener{
		config: config,
		log:    log,
		out:    os.Stdout,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// TempDir returns DATA_DIR/screen_results_temp.
func (s *Screener) TempDir() string {
	return filepath.Join(s.config.DataDir, TempDirName)
}

// ResultFileName returns results_1min_<YYYY-MM-DD-HH:MM>.csv.
func ResultFileName(t time.Time) string {
	return fmt.Sprintf("results_1min_%s.csv", t.Format("2006-01-02-15:04"))
}

// Run screens every ticker that has no temp result yet and aggregates all temp results into one file.
// Tickers without enough bars are logged and left out.
func (s *Screener) Run(ctx context.Context) (string, []types.ScreeningResult, error) {
	started := time.Now()

	tickers, err := datasource.ListTickers(datasource.MinuteIntervalDir(s.config.DataDir, s.config.Dataset))
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeDataNotFound, "failed to list minute bar files", err)
	}

	if err := os.MkdirAll(s.TempDir(), 0755); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to create screening temp directory", err)
	}

	bar := progressbar.NewOptions(len(tickers),
		progressbar.OptionSetWriter(s.out),
		progressbar.OptionSetDescription("Screening"),
		progressbar.OptionShowCount(),
	)

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for _, ticker := range tickers {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			defer func() {
				mu.Lock()
				_ = bar.Add(1)
				mu.Unlock()
			}()

			if err := gctx.Err(); err != nil {
				return errors.Wrap(errors.ErrCodeScreeningFailed, "screening cancelled", err)
			}

			return s.screenOnce(ticker)
		})
	}

	if err := g.Wait(); err != nil {
		return "", nil, err
	}

	if err := ctx.Err(); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeScreeningFailed, "screening cancelled", err)
	}

	_ = bar.Finish()

	results, err := s.collect()
	if err != nil {
		return "", nil, err
	}

	path := filepath.Join(s.config.OutputDir, ResultFileName(s.now()))
	if err := writeResults(path, results); err != nil {
		return "", nil, err
	}

	fmt.Fprintf(s.out, "\nCompleted in %s.\n", time.Since(started))

	return path, results, nil
}

func (s *Screener) screenOnce(ticker string) error {
	tempPath := filepath.Join(s.TempDir(), ticker+".csv")
	if _, err := os.Stat(tempPath); err == nil {
		s.log.Info("Results already exist", zap.String("ticker", ticker))

		return nil
	}

	result, err := s.ScreenTicker(ticker)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeInsufficientData) {
			s.log.Warn("Skipping ticker", zap.String("ticker", ticker), zap.Error(err))

			return nil
		}

		return err
	}

	if err := writeResults(tempPath, []types.ScreeningResult{result}); err != nil {
		return err
	}

	s.log.Info("Processed", zap.String("ticker", ticker))

	return nil
}

// ScreenTicker reads the minute bars of ticker and computes its statistics.
func (s *Screener) ScreenTicker(ticker string) (types.ScreeningResult, error) {
	ds, err := datasource.NewDataSource("", s.log)
	if err != nil {
		return types.ScreeningResult{}, err
	}
	defer ds.Close()

	if err := ds.Initialize(datasource.TickerDataPath(s.config.DataDir, s.config.Dataset, ticker)); err != nil {
		return types.ScreeningResult{}, err
	}

	rows, err := datasource.ReadRows(ds, optional.None[time.Time](), optional.None[time.Time]())
	if err != nil {
		return types.ScreeningResult{}, err
	}

	barType, err := types.NewBarType(types.InstrumentID{Symbol: ticker, Venue: "SIM"}, "1-MINUTE-LAST-EXTERNAL")
	if err != nil {
		return types.ScreeningResult{}, errors.Wrap(errors.ErrCodeInvalidBarType, "failed to build bar type", err)
	}

	bars, _ := datasource.Wrangle(barType, rows)

	return Compute(ticker, bars, s.config.ADFMaxLag, s.config.NATRPeriod)
}

// Compute derives the screening statistics of one ticker from its bars.
func Compute(ticker string, bars []types.Bar, adfMaxLag int, natrPeriod int) (types.ScreeningResult, error) {
	if len(bars) == 0 {
		return types.ScreeningResult{}, errors.Newf(errors.ErrCodeInsufficientData, "no bars for %s", ticker)
	}

	high := make([]float64, len(bars))
	low := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	volume := make([]float64, len(bars))

	for i, bar := range bars {
		high[i] = bar.High
		low[i] = bar.Low
		closes[i] = bar.Close
		volume[i] = bar.Volume
	}

	adf, err := ADF(closes, adfMaxLag)
	if err != nil {
		return types.ScreeningResult{}, errors.Wrapf(errors.GetCode(err), err, "adf of %s", ticker)
	}

	natr, err := NATR(high, low, closes, natrPeriod)
	if err != nil {
		return types.ScreeningResult{}, errors.Wrapf(errors.GetCode(err), err, "natr of %s", ticker)
	}

	result := types.ScreeningResult{
		Ticker:        ticker,
		ADF:           adf.Statistic,
		ADFCritical10: adf.Critical10,
		Below10:       adf.Below10(),
		ADFPValue:     adf.PValue,
	}

	// the inputs are non empty so the stats calls cannot fail
	result.TotalVolume, _ = stats.Sum(volume)
	result.MinPrice, _ = stats.Min(closes)
	result.MeanPrice, _ = stats.Mean(closes)
	result.MaxPrice, _ = stats.Max(closes)
	result.NATRMin, _ = stats.Min(natr)
	result.NATRMean, _ = stats.Mean(natr)

	return result, nil
}

// collect reads every temp result, sorted by ticker.
func (s *Screener) collect() ([]types.ScreeningResult, error) {
	paths, err := filepath.Glob(filepath.Join(s.TempDir(), "*.csv"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeScreeningFailed, "failed to list screening results", err)
	}

	results := make([]types.ScreeningResult, 0, len(paths))

	for _, path := range paths {
		rows, err := readResults(path)
		if err != nil {
			return nil, err
		}

		results = append(results, rows...)
	}

	sort.Slice(results, func(i, j int) bool {
		return strings.Compare(results[i].Ticker, results[j].Ticker) < 0
	})

	return results, nil
}

func writeResults(path string, results []types.ScreeningResult) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataWriteFailed, err, "failed to create %s", path)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		return errors.Wrapf(errors.ErrCodeDataWriteFailed, err, "failed to write %s", path)
	}

	return nil
}

func readResults(path string) ([]types.ScreeningResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to open %s", path)
	}
	defer file.Close()

	var results []types.ScreeningResult
	if err := gocsv.UnmarshalFile(file, &results); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeScreeningFailed, err, "failed to parse %s", path)
	}

	return results, nil
}
