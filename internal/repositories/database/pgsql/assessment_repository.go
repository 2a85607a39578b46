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

const assessmentColumns = `
	assessment_id, assessment_number, service_type, property_id, water_connection_id, shop_id,
	assessment_year, financial_year, assessed_value, land_value, building_value, depreciation,
	exemption_amount, tax_rate, net_assessed_value, annual_tax_amount, status, revision_number,
	revision_of, superseded_at, assessor_id, approver_id, approval_date, rejection_remarks,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAssessmentRepository struct {
	BaseRepository
}

func newPgxAssessmentRepository(pool *pgxpool.Pool) portsrepo.AssessmentRepositoryFacade {
	return &PgxAssessmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AssessmentRepositoryFacade = (*PgxAssessmentRepository)(nil)

func scanAssessment(row pgx.Row) (*domain.Assessment, error) {
	var a domain.Assessment
	err := row.Scan(
		&a.AssessmentID, &a.AssessmentNumber, &a.ServiceType, &a.PropertyID, &a.WaterConnectionID, &a.ShopID,
		&a.AssessmentYear, &a.FinancialYear, &a.AssessedValue, &a.LandValue, &a.BuildingValue, &a.Depreciation,
		&a.ExemptionAmount, &a.TaxRate, &a.NetAssessedValue, &a.AnnualTaxAmount, &a.Status, &a.RevisionNumber,
		&a.RevisionOf, &a.SupersededAt, &a.AssessorID, &a.ApproverID, &a.ApprovalDate, &a.RejectionRemarks,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxAssessmentRepository) collect(ctx context.Context, query string, args ...any) ([]domain.Assessment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assessments", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Assessment, error) {
		a, err := scanAssessment(row)
		if err != nil {
			return domain.Assessment{}, err
		}
		return *a, nil
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan assessments", err)
	}
	return list, nil
}

func (r *PgxAssessmentRepository) FindAssessmentByID(ctx context.Context, assessmentID string) (*domain.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE assessment_id = $1;`
	a, err := scanAssessment(r.Pool.QueryRow(ctx, query, assessmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("assessment %s not found", assessmentID))
		}
		return nil, apperrors.NewAppError(500, "failed to find assessment "+assessmentID, err)
	}
	return a, nil
}

func (r *PgxAssessmentRepository) ListAssessmentsByProperty(ctx context.Context, propertyID string, financialYear *string) ([]domain.Assessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM assessments
		WHERE property_id = $1 AND ($2::TEXT IS NULL OR financial_year = $2)
		ORDER BY financial_year DESC, created_at DESC;
	`
	return r.collect(ctx, query, propertyID, financialYear)
}

func (r *PgxAssessmentRepository) FindBillableAssessments(ctx context.Context, propertyID, financialYear string, serviceType domain.AssessmentServiceType) ([]domain.Assessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM assessments
		WHERE property_id = $1 AND financial_year = $2 AND service_type = $3
		  AND status = 'approved' AND superseded_at IS NULL
		ORDER BY revision_number DESC, created_at DESC;
	`
	return r.collect(ctx, query, propertyID, financialYear, serviceType)
}

func (r *PgxAssessmentRepository) CreateAssessment(ctx context.Context, a domain.Assessment) (*domain.Assessment, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		number, err := nextNumber(ctx, tx, domain.AssessmentNumberPrefix, a.FinancialYear)
		if err != nil {
			return err
		}
		a.AssessmentNumber = number
		query := `
			INSERT INTO assessments (` + assessmentColumns + `, subject_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29);
		`
		_, err = tx.Exec(ctx, query,
			a.AssessmentID, a.AssessmentNumber, a.ServiceType, a.PropertyID, a.WaterConnectionID, a.ShopID,
			a.AssessmentYear, a.FinancialYear, a.AssessedValue, a.LandValue, a.BuildingValue, a.Depreciation,
			a.ExemptionAmount, a.TaxRate, a.NetAssessedValue, a.AnnualTaxAmount, a.Status, a.RevisionNumber,
			a.RevisionOf, a.SupersededAt, a.AssessorID, a.ApproverID, a.ApprovalDate, a.RejectionRemarks,
			a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy, a.SubjectID(),
		)
		if err != nil {
			if uniqueViolation(err, "assessments_pkey") {
				return apperrors.NewAppError(409, "assessment "+a.AssessmentID+" already exists", apperrors.ErrDuplicate)
			}
			return apperrors.NewAppError(500, "failed to insert assessment "+a.AssessmentID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// stateError explains why a guarded update touched no rows.
func (r *PgxAssessmentRepository) stateError(ctx context.Context, q querier, assessmentID string, onMismatch func(*domain.Assessment) error) error {
	current, err := scanAssessment(q.QueryRow(ctx, `SELECT `+assessmentColumns+` FROM assessments WHERE assessment_id = $1;`, assessmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("assessment %s not found", assessmentID))
		}
		return apperrors.NewAppError(500, "failed to reload assessment "+assessmentID, err)
	}
	return onMismatch(current)
}

func (r *PgxAssessmentRepository) UpdateAssessmentValuation(ctx context.Context, a domain.Assessment) error {
	query := `
		UPDATE assessments
		SET assessed_value = $2, land_value = $3, building_value = $4, depreciation = $5,
		    exemption_amount = $6, tax_rate = $7, net_assessed_value = $8, annual_tax_amount = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE assessment_id = $1 AND status = 'draft';
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		a.AssessmentID, a.AssessedValue, a.LandValue, a.BuildingValue, a.Depreciation,
		a.ExemptionAmount, a.TaxRate, a.NetAssessedValue, a.AnnualTaxAmount,
		a.LastUpdatedAt, a.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update assessment "+a.AssessmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.stateError(ctx, r.Pool, a.AssessmentID, func(current *domain.Assessment) error {
			return current.EnsureEditable()
		})
	}
	return nil
}

func (r *PgxAssessmentRepository) SubmitAssessment(ctx context.Context, a domain.Assessment, supersedes *string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if supersedes != nil {
			cmdTag, err := tx.Exec(ctx, `
				UPDATE assessments
				SET superseded_at = $2, last_updated_at = $2, last_updated_by = $3
				WHERE assessment_id = $1 AND status = 'approved' AND superseded_at IS NULL;
			`, *supersedes, a.LastUpdatedAt, a.LastUpdatedBy)
			if err != nil {
				return apperrors.NewAppError(500, "failed to supersede assessment "+*supersedes, err)
			}
			if cmdTag.RowsAffected() == 0 {
				return apperrors.NewAppError(409, fmt.Sprintf("assessment %s is no longer the active approved revision", *supersedes), apperrors.ErrConflict)
			}
		}
		cmdTag, err := tx.Exec(ctx, `
			UPDATE assessments
			SET status = 'pending', last_updated_at = $2, last_updated_by = $3
			WHERE assessment_id = $1 AND status = 'draft';
		`, a.AssessmentID, a.LastUpdatedAt, a.LastUpdatedBy)
		if err != nil {
			if uniqueViolation(err, "assessments_one_active_idx") {
				return apperrors.NewAppError(409, fmt.Sprintf("another active %s assessment exists for %s in %d", a.ServiceType, a.SubjectID(), a.AssessmentYear), apperrors.ErrDuplicateActiveAssessment)
			}
			return apperrors.NewAppError(500, "failed to submit assessment "+a.AssessmentID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return r.stateError(ctx, tx, a.AssessmentID, func(current *domain.Assessment) error {
				return apperrors.NewInvalidStateError(fmt.Sprintf("assessment %s is %s, only draft can be submitted", current.AssessmentNumber, current.Status))
			})
		}
		return nil
	})
}

func (r *PgxAssessmentRepository) ApproveAssessment(ctx context.Context, a domain.Assessment) error {
	query := `
		UPDATE assessments
		SET status = 'approved', approver_id = $2, approval_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE assessment_id = $1 AND status = 'pending';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, a.AssessmentID, a.ApproverID, a.ApprovalDate, a.LastUpdatedAt, a.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to approve assessment "+a.AssessmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.stateError(ctx, r.Pool, a.AssessmentID, func(current *domain.Assessment) error {
			return apperrors.NewInvalidStateError(fmt.Sprintf("assessment %s is %s, only pending can be approved", current.AssessmentNumber, current.Status))
		})
	}
	return nil
}

func (r *PgxAssessmentRepository) RejectAssessment(ctx context.Context, a domain.Assessment, restores *string, restoredAt time.Time) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE assessments
			SET status = 'rejected', rejection_remarks = $2, last_updated_at = $3, last_updated_by = $4
			WHERE assessment_id = $1 AND status = 'pending';
		`, a.AssessmentID, a.RejectionRemarks, a.LastUpdatedAt, a.LastUpdatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to reject assessment "+a.AssessmentID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return r.stateError(ctx, tx, a.AssessmentID, func(current *domain.Assessment) error {
				return apperrors.NewInvalidStateError(fmt.Sprintf("assessment %s is %s, only pending can be rejected", current.AssessmentNumber, current.Status))
			})
		}
		if restores == nil {
			return nil
		}
		// the rejected revision has left the active slot, so the predecessor can take it back
		_, err = tx.Exec(ctx, `
			UPDATE assessments
			SET superseded_at = NULL, last_updated_at = $2, last_updated_by = $3
			WHERE assessment_id = $1 AND status = 'approved' AND superseded_at IS NOT NULL;
		`, *restores, restoredAt, a.LastUpdatedBy)
		if err != nil {
			if uniqueViolation(err, "assessments_one_active_idx") {
				return apperrors.NewAppError(409, "assessment "+*restores+" cannot be restored while another revision is active", apperrors.ErrConflict)
			}
			return apperrors.NewAppError(500, "failed to restore assessment "+*restores, err)
		}
		return nil
	})
}
