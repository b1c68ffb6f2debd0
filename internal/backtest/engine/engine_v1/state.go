package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-zscore/internal/logger"
	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"go.uber.org/zap"
)

// BacktestState is the run ledger: orders, fills and balance snapshots kept in an in-memory DuckDB.
type BacktestState struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

func NewBacktestState(logger *logger.Logger) (*BacktestState, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestStateFailed, "failed to open ledger database", err)
	}

	return &BacktestState{
		logger: logger,
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the ledger tables.
func (b *BacktestState) Initialize() error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			instrument_id TEXT,
			side TEXT,
			order_type TEXT,
			quantity DOUBLE,
			trigger_price DOUBLE,
			reduce_only BOOLEAN,
			tags TEXT,
			status TEXT,
			reason TEXT,
			timestamp TIMESTAMP,
			strategy_id TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestStateFailed, "failed to create orders table", err)
	}

	_, err = b.db.Exec(`
		CREATE TABLE IF NOT EXISTS fills (
			fill_id TEXT PRIMARY KEY,
			order_id TEXT,
			position_id TEXT,
			instrument_id TEXT,
			side TEXT,
			quantity DOUBLE,
			price DOUBLE,
			commission DOUBLE,
			realized_pnl DOUBLE,
			executed_at TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestStateFailed, "failed to create fills table", err)
	}

	_, err = b.db.Exec(`
		CREATE TABLE IF NOT EXISTS balances (
			time TIMESTAMP,
			total DOUBLE,
			currency TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestStateFailed, "failed to create balances table", err)
	}

	return nil
}

// RecordOrder inserts the order or replaces its status and reason.
func (b *BacktestState) RecordOrder(order types.Order) error {
	_, err := b.sq.
		Delete("orders").
		Where(squirrel.Eq{"order_id": order.OrderID}).
		RunWith(b.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to replace order", err)
	}

	_, err = b.sq.
		Insert("orders").
		Columns(
			"order_id", "instrument_id", "side", "order_type", "quantity", "trigger_price",
			"reduce_only", "tags", "status", "reason", "timestamp", "strategy_id",
		).
		Values(
			order.OrderID, order.InstrumentID.String(), string(order.Side), string(order.OrderType),
			order.Quantity, order.TriggerPrice, order.ReduceOnly, strings.Join(order.Tags, ","),
			string(order.Status), order.Reason, ledgerTime(order.Timestamp), order.StrategyID,
		).
		RunWith(b.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to insert order", err)
	}

	return nil
}

// RecordFill inserts one execution.
func (b *BacktestState) RecordFill(fill types.Fill) error {
	_, err := b.sq.
		Insert("fills").
		Columns(
			"fill_id", "order_id", "position_id", "instrument_id", "side", "quantity",
			"price", "commission", "realized_pnl", "executed_at",
		).
		Values(
			fill.FillID, fill.OrderID, fill.PositionID, fill.InstrumentID.String(), string(fill.Side),
			fill.Quantity, fill.Price, fill.Commission, fill.RealizedPnL, ledgerTime(fill.ExecutedAt),
		).
		RunWith(b.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to insert fill", err)
	}

	return nil
}

// RecordBalances inserts the balance snapshots in one transaction.
func (b *BacktestState) RecordBalances(snapshots []types.BalanceSnapshot) error {
	tx, err := b.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to begin transaction", err)
	}

	for _, snapshot := range snapshots {
		_, err := b.sq.
			Insert("balances").
			Columns("time", "total", "currency").
			Values(ledgerTime(snapshot.Time), snapshot.Total, snapshot.Currency).
			RunWith(tx).
			Exec()
		if err != nil {
			_ = tx.Rollback()

			return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to insert balance", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeDataWriteFailed, "failed to commit balances", err)
	}

	return nil
}

// GetAllOrders returns every recorded order by timestamp.
func (b *BacktestState) GetAllOrders() ([]types.Order, error) {
	rows, err := b.sq.
		Select(
			"order_id", "instrument_id", "side", "order_type", "quantity", "trigger_price",
			"reduce_only", "tags", "status", "reason", "timestamp", "strategy_id",
		).
		From("orders").
		OrderBy("timestamp ASC").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query orders", err)
	}
	defer rows.Close()

	var orders []types.Order

	for rows.Next() {
		var (
			order        types.Order
			instrumentID string
			tags         string
		)

		err := rows.Scan(
			&order.OrderID,
			&instrumentID,
			&order.Side,
			&order.OrderType,
			&order.Quantity,
			&order.TriggerPrice,
			&order.ReduceOnly,
			&tags,
			&order.Status,
			&order.Reason,
			&order.Timestamp,
			&order.StrategyID,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan order", err)
		}

		order.InstrumentID, _ = types.ParseInstrumentID(instrumentID)
		if tags != "" {
			order.Tags = strings.Split(tags, ",")
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating orders", err)
	}

	return orders, nil
}

// GetAllFills returns every fill by execution time.
func (b *BacktestState) GetAllFills() ([]types.Fill, error) {
	rows, err := b.sq.
		Select(
			"fill_id", "order_id", "position_id", "instrument_id", "side", "quantity",
			"price", "commission", "realized_pnl", "executed_at",
		).
		From("fills").
		OrderBy("executed_at ASC").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query fills", err)
	}
	defer rows.Close()

	var fills []types.Fill

	for rows.Next() {
		var (
			fill         types.Fill
			instrumentID string
		)

		err := rows.Scan(
			&fill.FillID,
			&fill.OrderID,
			&fill.PositionID,
			&instrumentID,
			&fill.Side,
			&fill.Quantity,
			&fill.Price,
			&fill.Commission,
			&fill.RealizedPnL,
			&fill.ExecutedAt,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan fill", err)
		}

		fill.InstrumentID, _ = types.ParseInstrumentID(instrumentID)
		fills = append(fills, fill)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating fills", err)
	}

	return fills, nil
}

// GetBalances returns the recorded balance snapshots in time order.
func (b *BacktestState) GetBalances() ([]types.BalanceSnapshot, error) {
	rows, err := b.sq.
		Select("time", "total", "currency").
		From("balances").
		OrderBy("time ASC").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query balances", err)
	}
	defer rows.Close()

	var snapshots []types.BalanceSnapshot

	for rows.Next() {
		var snapshot types.BalanceSnapshot
		if err := rows.Scan(&snapshot.Time, &snapshot.Total, &snapshot.Currency); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan balance", err)
		}

		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating balances", err)
	}

	return snapshots, nil
}

// TotalCommissions sums the commission column of the fills.
func (b *BacktestState) TotalCommissions() (float64, error) {
	var total sql.NullFloat64

	err := b.sq.
		Select("SUM(commission)").
		From("fills").
		RunWith(b.db).
		QueryRow().
		Scan(&total)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to sum commissions", err)
	}

	return total.Float64, nil
}

// Cleanup resets the database state
func (b *BacktestState) Cleanup() error {
	// Use raw SQL for dropping tables - Squirrel doesn't have DROP syntax
	_, err := b.db.Exec(`
		DROP TABLE IF EXISTS fills;
		DROP TABLE IF EXISTS orders;
		DROP TABLE IF EXISTS balances;
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestStateFailed, "failed to cleanup tables", err)
	}

	return b.Initialize()
}

// Close releases the database.
func (b *BacktestState) Close() error {
	return b.db.Close()
}

// Write exports orders, fills and balances to Parquet files in the directory.
func (b *BacktestState) Write(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestResultsFailed, "failed to create directory", err)
	}

	exports := map[string]string{
		"orders":   filepath.Join(path, "orders.parquet"),
		"fills":    filepath.Join(path, "fills.parquet"),
		"balances": filepath.Join(path, "balances.parquet"),
	}

	for _, table := range []string{"orders", "fills", "balances"} {
		target := strings.ReplaceAll(exports[table], "'", "''")

		// Squirrel doesn't support COPY
		_, err := b.db.Exec(fmt.Sprintf(`COPY %s TO '%s' (FORMAT PARQUET)`, table, target))
		if err != nil {
			return errors.Wrapf(errors.ErrCodeBacktestResultsFailed, err, "failed to export %s to Parquet", table)
		}
	}

	if b.logger != nil {
		b.logger.Info("Exported backtest ledger to Parquet files",
			zap.String("orders", exports["orders"]),
			zap.String("fills", exports["fills"]),
			zap.String("balances", exports["balances"]),
		)
	}

	return nil
}

// ledgerTime normalizes timestamps before they are written.
func ledgerTime(t time.Time) time.Time {
	return t.UTC()
}
