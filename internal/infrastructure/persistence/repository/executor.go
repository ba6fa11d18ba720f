// Package repository contains the sqlite implementations of the
// application's persistence ports. Monetary values are stored as TEXT
// decimals and converted at the scan boundary.
package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/Auckfmine/client-portal/internal/infrastructure/persistence/sqlite"
)

// executor covers both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// getExecutor returns the transaction carried by the context, or the plain
// connection when none is active.
func getExecutor(ctx context.Context, db *sql.DB) executor {
	if tx := sqlite.ExtractTx(ctx); tx != nil {
		return tx
	}
	return db
}

// scanDecimal converts a TEXT decimal column value to a decimal. NULL and
// empty scan as zero.
func scanDecimal(s sql.NullString) decimal.Decimal {
	if !s.Valid || s.String == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return decimal.Zero
	}
	return d
}
