package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(r *Repository) error) error
}

type SQLTransactor struct {
	db *sql.DB
}

func NewTransactor(db *sql.DB) *SQLTransactor { return &SQLTransactor{db: db} }

var _ Transactor = (*SQLTransactor)(nil)

func (t *SQLTransactor) WithinTx(ctx context.Context, fn func(r *Repository) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("begin tx: %w", err))
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(NewRepository(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}
