package mocks

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-zscore/internal/types"
)

// WriteParquet writes rows to a parquet file with the market_data layout
// (time, symbol, open, high, low, close, volume).
func WriteParquet(path string, rows []types.MarketData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return fmt.Errorf("failed to open DuckDB connection: %w", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE market_data (
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
		return fmt.Errorf("failed to create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	for _, d := range rows {
		_, err = tx.Exec(`INSERT INTO market_data VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.Time, d.Symbol, d.Open, d.High, d.Low, d.Close, d.Volume)
		if err != nil {
			_ = tx.Rollback()

			return fmt.Errorf("failed to insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	_, err = db.Exec(fmt.Sprintf(`COPY market_data TO '%s' (FORMAT PARQUET)`, path))
	if err != nil {
		return fmt.Errorf("failed to export to Parquet: %w", err)
	}

	return nil
}
