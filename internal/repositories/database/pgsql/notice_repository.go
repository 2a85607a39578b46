package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const noticeColumns = `
	notice_id, notice_number, demand_id, property_id, financial_year, notice_type, status,
	amount_due, penalty_amount, notice_date, due_date, previous_notice_id, triggered_by_visit_id,
	resolved_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxNoticeRepository struct {
	BaseRepository
}

func newPgxNoticeRepository(pool *pgxpool.Pool) portsrepo.NoticeRepositoryFacade {
	return &PgxNoticeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.NoticeRepositoryFacade = (*PgxNoticeRepository)(nil)

func scanNotice(row pgx.Row) (*domain.Notice, error) {
	var n domain.Notice
	err := row.Scan(
		&n.NoticeID, &n.NoticeNumber, &n.DemandID, &n.PropertyID, &n.FinancialYear, &n.NoticeType, &n.Status,
		&n.AmountDue, &n.PenaltyAmount, &n.NoticeDate, &n.DueDate, &n.PreviousNoticeID, &n.TriggeredByVisitID,
		&n.ResolvedAt, &n.CreatedAt, &n.CreatedBy, &n.LastUpdatedAt, &n.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func collectNotices(rows pgx.Rows) ([]domain.Notice, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notice, error) {
		n, err := scanNotice(row)
		if err != nil {
			return domain.Notice{}, err
		}
		return *n, nil
	})
}

func (r *PgxNoticeRepository) FindNoticeByID(ctx context.Context, noticeID string) (*domain.Notice, error) {
	n, err := scanNotice(r.Pool.QueryRow(ctx, `SELECT `+noticeColumns+` FROM notices WHERE notice_id = $1;`, noticeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("notice %s not found", noticeID))
		}
		return nil, apperrors.NewAppError(500, "failed to find notice "+noticeID, err)
	}
	return n, nil
}

func (r *PgxNoticeRepository) ListNoticesByDemand(ctx context.Context, demandID string) ([]domain.Notice, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+noticeColumns+` FROM notices WHERE demand_id = $1 ORDER BY created_at, notice_number;`, demandID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query notices for demand "+demandID, err)
	}
	notices, err := collectNotices(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan notices", err)
	}
	return notices, nil
}

func (r *PgxNoticeRepository) CreateNotice(ctx context.Context, n domain.Notice, escalates *string) (*domain.Notice, error) {
	var saved *domain.Notice
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		saved, err = insertNotice(ctx, tx, n, escalates)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// insertNotice escalates the superseded notice, numbers n and inserts it inside tx.
func insertNotice(ctx context.Context, tx pgx.Tx, n domain.Notice, escalates *string) (*domain.Notice, error) {
	if escalates != nil {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE notices
			SET status = 'escalated', last_updated_at = $2, last_updated_by = $3
			WHERE notice_id = $1 AND status IN ('generated', 'sent', 'viewed');
		`, *escalates, n.CreatedAt, n.CreatedBy)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to escalate notice "+*escalates, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("notice %s is no longer open", *escalates), apperrors.ErrConflict)
		}
	}
	number, err := nextNumber(ctx, tx, domain.NoticeNumberPrefix, n.FinancialYear)
	if err != nil {
		return nil, err
	}
	n.NoticeNumber = number
	_, err = tx.Exec(ctx, `
		INSERT INTO notices (`+noticeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`, n.NoticeID, n.NoticeNumber, n.DemandID, n.PropertyID, n.FinancialYear, n.NoticeType, n.Status,
		n.AmountDue, n.PenaltyAmount, n.NoticeDate, n.DueDate, n.PreviousNoticeID, n.TriggeredByVisitID,
		n.ResolvedAt, n.CreatedAt, n.CreatedBy, n.LastUpdatedAt, n.LastUpdatedBy)
	if err != nil {
		if uniqueViolation(err, "notices_one_outstanding_idx") {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("a %s notice is already outstanding on this demand", n.NoticeType), apperrors.ErrConflict)
		}
		return nil, apperrors.NewAppError(500, "failed to insert notice "+n.NoticeID, err)
	}
	return &n, nil
}

func (r *PgxNoticeRepository) UpdateNoticeStatus(ctx context.Context, noticeID string, from, to domain.NoticeStatus, userID string, at time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE notices
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE notice_id = $1 AND status = $2;
	`, noticeID, from, to, at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update notice "+noticeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		current, err := r.FindNoticeByID(ctx, noticeID)
		if err != nil {
			return err
		}
		return apperrors.NewInvalidStateError(fmt.Sprintf("notice %s is %s, expected %s", current.NoticeNumber, current.Status, from))
	}
	return nil
}

func (r *PgxNoticeRepository) ResolveOpenNotices(ctx context.Context, demandID, userID string, at time.Time) ([]domain.Notice, error) {
	rows, err := r.Pool.Query(ctx, `
		UPDATE notices
		SET status = 'resolved', resolved_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE demand_id = $1 AND status IN ('generated', 'sent', 'viewed')
		RETURNING `+noticeColumns+`;
	`, demandID, at, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to resolve notices on demand "+demandID, err)
	}
	resolved, err := collectNotices(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan resolved notices", err)
	}
	return resolved, nil
}
