package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trainhub-api/core/constants"
	"trainhub-api/core/logger"

	"github.com/jmoiron/sqlx"
)

type TxFunc func(tx *sqlx.Tx) error

// RunInTx commits when fn returns nil and rolls back otherwise.
func (d *Database) RunInTx(ctx context.Context, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := d.sqlx.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Error("Database:RunInTx:Rollback", rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// RunSerializable runs fn at SERIALIZABLE isolation and replays it when
// Postgres aborts the transaction with a serialization failure.
func (d *Database) RunSerializable(ctx context.Context, fn TxFunc) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	return retrySerializable(ctx, constants.SerializableRetries, func() error {
		return d.RunInTx(ctx, opts, fn)
	})
}

func retrySerializable(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !IsSerializationFailure(err) {
			return err
		}
		logger.Warn("Database:RunSerializable:Retry", "attempt", i+1, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return err
}
