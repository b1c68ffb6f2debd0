package writer

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBWriter buffers rows in an in-memory DuckDB table inside one transaction
// and exports them to a parquet file with the columns the bar data source reads.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	sq         squirrel.StatementBuilderType
	outputPath string
	rows       int
	log        *logger.Logger
}

func NewDuckDBWriter(outputPath string, log *logger.Logger) MarketDataWriter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBWriter{
		outputPath: outputPath,
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		log:        log,
	}
}

func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS market_data (
			id TEXT,
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to begin transaction", err)
	}

	query, _, err := w.sq.Insert("market_data").
		Columns("id", "time", "symbol", "open", "high", "low", "close", "volume").
		Values("", nil, "", 0, 0, 0, 0, 0).
		ToSql()
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to build insert statement", err)
	}

	w.stmt, err = w.tx.Prepare(query)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to prepare statement", err)
	}

	return nil
}

func (w *DuckDBWriter) Write(data types.MarketData) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeDataWriteFailed, "writer not initialized")
	}

	id := data.Id
	if id == "" {
		id = uuid.New().String()
	}

	_, err := w.stmt.Exec(id, data.Time, data.Symbol, data.Open, data.High, data.Low, data.Close, data.Volume)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to insert data", err)
	}

	w.rows++

	return nil
}

func (w *DuckDBWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeDataWriteFailed, "writer not initialized")
	}

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	if err := os.MkdirAll(filepath.Dir(w.outputPath), 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to create output directory", err)
	}

	_, err := w.db.Exec("COPY (SELECT * FROM market_data ORDER BY time) TO '" + w.outputPath + "' (FORMAT PARQUET)")
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeDataWriteFailed, err, "failed to export %s", w.outputPath)
	}

	w.log.Info("Exported market data", zap.String("path", w.outputPath), zap.Int("rows", w.rows))

	return w.outputPath, nil
}

func (w *DuckDBWriter) Close() error {
	var firstErr error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			firstErr = errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to close statement", err)
		}

		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			w.log.Warn("Failed to rollback transaction during close", zap.Error(err))
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to close db connection", err)
		}

		w.db = nil
	}

	return firstErr
}

func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
