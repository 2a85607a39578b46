package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (r *BaseRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed
	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// nextNumber allocates the next gap-free document number for prefix within a financial year.
// The row lock it takes is held until the surrounding transaction ends.
func nextNumber(ctx context.Context, q querier, prefix, financialYear string) (string, error) {
	query := `
		INSERT INTO document_sequences (prefix, financial_year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, financial_year) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := q.QueryRow(ctx, query, prefix, financialYear).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, fmt.Sprintf("failed to allocate %s number for %s", prefix, financialYear), err)
	}
	return domain.FormatDocumentNumber(prefix, financialYear, seq), nil
}

// uniqueViolation reports whether err is a unique_violation, optionally on a specific constraint.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
