package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/repositories"
)

// withTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on error or panic.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", repositories.ClassifyError(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", repositories.ClassifyError(cErr))
		}
	}()

	return fn(tx)
}

// withReadTx runs fn in a read-only transaction. Every read inside fn sees the
// same snapshot: repeatable read on Postgres, a single WAL read transaction on SQLite.
func withReadTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to begin read transaction: %w", repositories.ClassifyError(err))
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit read transaction: %w", repositories.ClassifyError(err))
	}
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Publish(string, interface{}) {}
