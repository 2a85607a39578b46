package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const visitColumns = `
	visit_id, demand_id, collector_id, follow_up_id, visit_number, visit_type, citizen_response,
	expected_payment_date, remarks, latitude, longitude, proof_photo_url, proof_note,
	visited_at, created_at, created_by`

type PgxFieldVisitRepository struct {
	BaseRepository
}

func newPgxFieldVisitRepository(pool *pgxpool.Pool) portsrepo.FieldVisitRepositoryFacade {
	return &PgxFieldVisitRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FieldVisitRepositoryFacade = (*PgxFieldVisitRepository)(nil)

func (r *PgxFieldVisitRepository) FindFollowUp(ctx context.Context, demandID, collectorID string) (*domain.FollowUp, error) {
	query := `
		SELECT follow_up_id, demand_id, collector_id, visit_count, last_visit_date, escalation_status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM follow_ups
		WHERE demand_id = $1 AND collector_id = $2;
	`
	var f domain.FollowUp
	err := r.Pool.QueryRow(ctx, query, demandID, collectorID).Scan(
		&f.FollowUpID, &f.DemandID, &f.CollectorID, &f.VisitCount, &f.LastVisitDate, &f.EscalationStatus,
		&f.CreatedAt, &f.CreatedBy, &f.LastUpdatedAt, &f.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no follow-up for collector %s on demand %s", collectorID, demandID))
		}
		return nil, apperrors.NewAppError(500, "failed to find follow-up", err)
	}
	return &f, nil
}

func (r *PgxFieldVisitRepository) ListVisitsByDemand(ctx context.Context, demandID string) ([]domain.FieldVisit, error) {
	query := `SELECT ` + visitColumns + ` FROM field_visits WHERE demand_id = $1 ORDER BY visited_at, visit_number;`
	rows, err := r.Pool.Query(ctx, query, demandID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query visits for demand "+demandID, err)
	}
	visits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FieldVisit, error) {
		var v domain.FieldVisit
		var lat, lng *float64
		err := row.Scan(
			&v.VisitID, &v.DemandID, &v.CollectorID, &v.FollowUpID, &v.VisitNumber, &v.VisitType, &v.CitizenResponse,
			&v.ExpectedPaymentDate, &v.Remarks, &lat, &lng, &v.ProofPhotoURL, &v.ProofNote,
			&v.VisitedAt, &v.CreatedAt, &v.CreatedBy,
		)
		if lat != nil && lng != nil {
			v.Location = &domain.GeoPoint{Latitude: *lat, Longitude: *lng}
		}
		return v, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan visits", err)
	}
	return visits, nil
}

func (r *PgxFieldVisitRepository) RecordVisit(ctx context.Context, record domain.VisitRecord) (*domain.VisitRecord, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		f := record.FollowUp
		var cmdTag pgconn.CommandTag
		var err error
		if record.ExpectedCount == 0 {
			cmdTag, err = tx.Exec(ctx, `
				INSERT INTO follow_ups (
					follow_up_id, demand_id, collector_id, visit_count, last_visit_date, escalation_status,
					created_at, created_by, last_updated_at, last_updated_by
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				ON CONFLICT (demand_id, collector_id) DO NOTHING;
			`, f.FollowUpID, f.DemandID, f.CollectorID, f.VisitCount, f.LastVisitDate, f.EscalationStatus,
				f.CreatedAt, f.CreatedBy, f.LastUpdatedAt, f.LastUpdatedBy)
		} else {
			// optimistic check: visit_count must still be what the caller read
			cmdTag, err = tx.Exec(ctx, `
				UPDATE follow_ups
				SET visit_count = $3, last_visit_date = $4, escalation_status = $5,
				    last_updated_at = $6, last_updated_by = $7
				WHERE follow_up_id = $1 AND visit_count = $2;
			`, f.FollowUpID, record.ExpectedCount, f.VisitCount, f.LastVisitDate, f.EscalationStatus,
				f.LastUpdatedAt, f.LastUpdatedBy)
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to save follow-up "+f.FollowUpID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.NewAppError(409, "another visit was recorded for this follow-up, reload and retry", apperrors.ErrConflict)
		}

		v := record.Visit
		var lat, lng *float64
		if v.Location != nil {
			lat, lng = &v.Location.Latitude, &v.Location.Longitude
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO field_visits (`+visitColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
		`, v.VisitID, v.DemandID, v.CollectorID, v.FollowUpID, v.VisitNumber, v.VisitType, v.CitizenResponse,
			v.ExpectedPaymentDate, v.Remarks, lat, lng, v.ProofPhotoURL, v.ProofNote,
			v.VisitedAt, v.CreatedAt, v.CreatedBy)
		if err != nil {
			if uniqueViolation(err, "field_visits_follow_up_id_visit_number_key") {
				return apperrors.NewAppError(409, "another visit was recorded for this follow-up, reload and retry", apperrors.ErrConflict)
			}
			return apperrors.NewAppError(500, "failed to insert visit "+v.VisitID, err)
		}

		if record.Notice != nil {
			saved, err := insertNotice(ctx, tx, *record.Notice, record.EscalatedNotice)
			if err != nil {
				return err
			}
			record.Notice = saved
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
