package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `
	payment_id, receipt_number, demand_id, amount, payment_mode, payment_date,
	cheque_number, cheque_date, bank_name, transaction_id, cashier_id, remarks,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func (r *PgxPaymentRepository) ListPaymentsByDemand(ctx context.Context, demandID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE demand_id = $1 ORDER BY created_at, receipt_number;`
	rows, err := r.Pool.Query(ctx, query, demandID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for demand "+demandID, err)
	}
	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Payment, error) {
		var p domain.Payment
		err := row.Scan(
			&p.PaymentID, &p.ReceiptNumber, &p.DemandID, &p.Amount, &p.PaymentMode, &p.PaymentDate,
			&p.ChequeNumber, &p.ChequeDate, &p.BankName, &p.TransactionID, &p.CashierID, &p.Remarks,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		)
		return p, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan payments", err)
	}
	return payments, nil
}

// ApplyPayment credits the demand with a single conditional UPDATE so that two cashiers
// racing on the same demand can never drive the balance below zero.
func (r *PgxPaymentRepository) ApplyPayment(ctx context.Context, p domain.Payment) (*domain.Payment, *domain.Demand, error) {
	var demand *domain.Demand
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		creditQuery := `
			UPDATE demands
			SET paid_amount = paid_amount + $2,
			    balance_amount = balance_amount - $2,
			    status = CASE
			        WHEN balance_amount - $2 = 0 THEN 'paid'
			        WHEN due_date < $3 THEN 'overdue'
			        ELSE 'partially_paid'
			    END,
			    last_updated_at = $3,
			    last_updated_by = $4
			WHERE demand_id = $1 AND voided_at IS NULL AND balance_amount >= $2
			RETURNING ` + demandColumns + `;
		`
		d, err := scanDemand(tx.QueryRow(ctx, creditQuery, p.DemandID, p.Amount, p.CreatedAt, p.CashierID))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewAppError(500, "failed to credit demand "+p.DemandID, err)
			}
			current, err := findDemand(ctx, tx, p.DemandID)
			if err != nil {
				return err
			}
			if current.IsVoided() {
				return apperrors.NewInvalidStateError(fmt.Sprintf("demand %s has been voided", current.DemandNumber))
			}
			return current.ValidateAmount(p.Amount)
		}
		if err := d.CheckBalance(); err != nil {
			return apperrors.NewAppError(500, "balance invariant violated", err)
		}

		number, err := nextNumber(ctx, tx, domain.ReceiptNumberPrefix, domain.FinancialYearOf(p.PaymentDate))
		if err != nil {
			return err
		}
		p.ReceiptNumber = number
		insertQuery := `
			INSERT INTO payments (` + paymentColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
		`
		_, err = tx.Exec(ctx, insertQuery,
			p.PaymentID, p.ReceiptNumber, p.DemandID, p.Amount, p.PaymentMode, p.PaymentDate,
			p.ChequeNumber, p.ChequeDate, p.BankName, p.TransactionID, p.CashierID, p.Remarks,
			p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert payment "+p.PaymentID, err)
		}
		demand = d
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &p, demand, nil
}
