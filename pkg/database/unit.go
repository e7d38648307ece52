package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
)

// Querier is the part of a transaction that data-access code needs.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Unit runs fn as one unit of work: a dedicated pooled connection, one
// transaction, and the configured schema on the search_path.
//
// The transaction commits when fn returns nil. Otherwise it is rolled back and
// fn's error is returned as is. A panic in fn rolls back and re-panics. The
// connection goes back to the pool in every case.
func (db *DB) Unit(ctx context.Context, fn func(q Querier) error) (err error) {
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(tx)
			panic(p)
		}
	}()

	if db.cfg.Schema != "" {
		if _, err := tx.ExecContext(ctx, "SET LOCAL search_path TO "+pq.QuoteIdentifier(db.cfg.Schema)); err != nil {
			rollback(tx)
			return fmt.Errorf("set search_path: %w", err)
		}
	}

	if err := fn(tx); err != nil {
		rollback(tx)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		slog.Warn("database: rollback failed", "err", err)
	}
}
