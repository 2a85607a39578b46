package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	"github.com/SscSPs/municipal_tax_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const demandColumns = `
	demand_id, demand_number, service_type, property_id, financial_year, due_date, items,
	base_amount, penalty_amount, interest_amount, total_amount, paid_amount, balance_amount,
	status, assessment_ids, unified_group_id, voided_at, void_reason,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxDemandRepository struct {
	BaseRepository
}

func newPgxDemandRepository(pool *pgxpool.Pool) portsrepo.DemandRepositoryFacade {
	return &PgxDemandRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DemandRepositoryFacade = (*PgxDemandRepository)(nil)

func scanDemand(row pgx.Row) (*domain.Demand, error) {
	var d domain.Demand
	err := row.Scan(
		&d.DemandID, &d.DemandNumber, &d.ServiceType, &d.PropertyID, &d.FinancialYear, &d.DueDate, &d.Items,
		&d.BaseAmount, &d.PenaltyAmount, &d.InterestAmount, &d.TotalAmount, &d.PaidAmount, &d.BalanceAmount,
		&d.Status, &d.AssessmentIDs, &d.UnifiedGroupID, &d.VoidedAt, &d.VoidReason,
		&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// findDemand loads a demand through q, which may be the pool or an open transaction.
func findDemand(ctx context.Context, q querier, demandID string) (*domain.Demand, error) {
	d, err := scanDemand(q.QueryRow(ctx, `SELECT `+demandColumns+` FROM demands WHERE demand_id = $1;`, demandID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("demand %s not found", demandID))
		}
		return nil, apperrors.NewAppError(500, "failed to find demand "+demandID, err)
	}
	return d, nil
}

func (r *PgxDemandRepository) FindDemandByID(ctx context.Context, demandID string) (*domain.Demand, error) {
	return findDemand(ctx, r.Pool, demandID)
}

func (r *PgxDemandRepository) ListDemandsByProperty(ctx context.Context, propertyID string, limit int, nextToken *string) ([]domain.Demand, *string, error) {
	args := []any{propertyID}
	query := `SELECT ` + demandColumns + ` FROM demands WHERE property_id = $1`
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
		query += ` AND (due_date, created_at, demand_id) < ($2, $3, $4)`
		args = append(args, cursor.SortTime, cursor.CreatedAt, cursor.ID)
	}
	// one extra row tells us whether another page exists
	query += fmt.Sprintf(` ORDER BY due_date DESC, created_at DESC, demand_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query demands for property "+propertyID, err)
	}
	demands, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Demand, error) {
		d, err := scanDemand(row)
		if err != nil {
			return domain.Demand{}, err
		}
		return *d, nil
	})
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan demands", err)
	}

	var next *string
	if len(demands) > limit {
		demands = demands[:limit]
		last := demands[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{SortTime: last.DueDate, CreatedAt: last.CreatedAt, ID: last.DemandID})
		next = &token
	}
	return demands, next, nil
}

// errKeyHeld aborts the claiming transaction; the holder is reloaded afterwards.
var errKeyHeld = errors.New("billing key held")

func (r *PgxDemandRepository) CreateDemand(ctx context.Context, d domain.Demand) (*domain.Demand, bool, error) {
	var holder string
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		number, err := nextNumber(ctx, tx, domain.DemandNumberPrefix, d.FinancialYear)
		if err != nil {
			return err
		}
		d.DemandNumber = number
		query := `
			INSERT INTO demands (` + demandColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
		`
		_, err = tx.Exec(ctx, query,
			d.DemandID, d.DemandNumber, d.ServiceType, d.PropertyID, d.FinancialYear, d.DueDate, d.Items,
			d.BaseAmount, d.PenaltyAmount, d.InterestAmount, d.TotalAmount, d.PaidAmount, d.BalanceAmount,
			d.Status, orEmpty(d.AssessmentIDs), d.UnifiedGroupID, d.VoidedAt, d.VoidReason,
			d.CreatedAt, d.CreatedBy, d.LastUpdatedAt, d.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert demand "+d.DemandID, err)
		}

		batch := &pgx.Batch{}
		keyQuery := `
			WITH claimed AS (
				INSERT INTO demand_billing_keys (property_id, financial_year, service_type, subject_id, demand_id)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT DO NOTHING
				RETURNING demand_id
			)
			SELECT demand_id FROM claimed
			UNION ALL
			SELECT demand_id FROM demand_billing_keys
			WHERE property_id = $1 AND financial_year = $2 AND service_type = $3 AND subject_id = $4
			  AND NOT EXISTS (SELECT 1 FROM claimed);
		`
		for _, k := range d.BillingKeys() {
			batch.Queue(keyQuery, k.PropertyID, k.FinancialYear, k.ServiceType, k.SubjectID, d.DemandID)
		}
		results := tx.SendBatch(ctx, batch)
		var unseen []domain.BillingKey
		for _, k := range d.BillingKeys() {
			var owner string
			if err := results.QueryRow().Scan(&owner); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					// claimed by a writer that committed after this statement's snapshot
					unseen = append(unseen, k)
					continue
				}
				results.Close()
				return apperrors.NewAppError(500, "failed to claim billing key "+k.String(), err)
			}
			if owner != d.DemandID && holder == "" {
				holder = owner
			}
		}
		if err := results.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to claim billing keys", err)
		}
		if holder == "" && len(unseen) > 0 {
			k := unseen[0]
			err := tx.QueryRow(ctx, `
				SELECT demand_id FROM demand_billing_keys
				WHERE property_id = $1 AND financial_year = $2 AND service_type = $3 AND subject_id = $4;
			`, k.PropertyID, k.FinancialYear, k.ServiceType, k.SubjectID).Scan(&holder)
			if err != nil {
				return apperrors.NewAppError(500, "failed to find holder of billing key "+k.String(), err)
			}
		}
		if holder != "" {
			return errKeyHeld
		}
		return nil
	})
	if errors.Is(err, errKeyHeld) {
		existing, err := findDemand(ctx, r.Pool, holder)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &d, true, nil
}

func (r *PgxDemandRepository) VoidDemand(ctx context.Context, demandID, reason, userID string, at time.Time) (*domain.Demand, error) {
	var voided *domain.Demand
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE demands
			SET voided_at = $2, void_reason = $3, last_updated_at = $2, last_updated_by = $4
			WHERE demand_id = $1 AND voided_at IS NULL AND paid_amount = 0
			RETURNING ` + demandColumns + `;
		`
		d, err := scanDemand(tx.QueryRow(ctx, query, demandID, at, reason, userID))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewAppError(500, "failed to void demand "+demandID, err)
			}
			current, err := findDemand(ctx, tx, demandID)
			if err != nil {
				return err
			}
			if current.IsVoided() {
				return apperrors.NewInvalidStateError(fmt.Sprintf("demand %s is already voided", current.DemandNumber))
			}
			return apperrors.NewInvalidStateError(fmt.Sprintf("demand %s has payments and cannot be voided", current.DemandNumber))
		}
		if _, err := tx.Exec(ctx, `DELETE FROM demand_billing_keys WHERE demand_id = $1;`, demandID); err != nil {
			return apperrors.NewAppError(500, "failed to release billing keys of demand "+demandID, err)
		}
		voided = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return voided, nil
}

func (r *PgxDemandRepository) RefreshOverdueStatuses(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE demands
		SET status = 'overdue', last_updated_at = $1
		WHERE voided_at IS NULL AND balance_amount > 0 AND due_date < $1 AND status <> 'overdue';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, now)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to refresh overdue demands", err)
	}
	return cmdTag.RowsAffected(), nil
}

// orEmpty keeps NOT NULL array columns from receiving a nil slice.
func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
