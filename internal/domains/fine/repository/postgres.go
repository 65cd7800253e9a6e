package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/fine/model"
)

type fineRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL fine repository
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &fineRepository{db: db}
}

const fineColumns = `id, lending_id, member_id, item_barcode, days_overdue, amount, status, assessed_at, paid_at, created_at, updated_at`

func (r *fineRepository) Create(ctx context.Context, fine *model.Fine) error {
	query := `
		INSERT INTO fines (id, lending_id, member_id, item_barcode, days_overdue, amount, status, assessed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		fine.ID, fine.LendingID, fine.MemberID, fine.ItemBarcode,
		fine.DaysOverdue, fine.Amount, fine.Status, fine.AssessedAt,
	).Scan(&fine.CreatedAt, &fine.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create fine: %w", err)
	}
	return nil
}

func (r *fineRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE id = $1`

	fine, err := r.scanFine(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewFineNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get fine: %w", err)
	}
	return fine, nil
}

// LatestUnpaidByBarcode returns the most recently assessed unpaid fine
// for the item, which is the one payFine settles.
func (r *fineRepository) LatestUnpaidByBarcode(ctx context.Context, barcode string) (*model.Fine, error) {
	query := `
		SELECT ` + fineColumns + `
		FROM fines
		WHERE item_barcode = $1 AND status = $2
		ORDER BY assessed_at DESC
		LIMIT 1`

	fine, err := r.scanFine(r.db.QueryRow(ctx, query, barcode, model.FineStatusUnpaid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewNoUnpaidFineError(barcode)
		}
		return nil, fmt.Errorf("failed to get unpaid fine: %w", err)
	}
	return fine, nil
}

func (r *fineRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	query := `
		UPDATE fines
		SET status = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4`

	tag, err := r.db.Exec(ctx, query, id, model.FineStatusPaid, paidAt, model.FineStatusUnpaid)
	if err != nil {
		return fmt.Errorf("failed to mark fine paid: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return model.ErrFineAlreadyPaid
}

func (r *fineRepository) List(ctx context.Context) ([]model.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines ORDER BY assessed_at DESC`
	return r.queryFines(ctx, query)
}

func (r *fineRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE member_id = $1 ORDER BY assessed_at DESC`
	return r.queryFines(ctx, query, memberID)
}

func (r *fineRepository) ListUnpaidByMember(ctx context.Context, memberID uuid.UUID) ([]model.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE member_id = $1 AND status = $2 ORDER BY assessed_at DESC`
	return r.queryFines(ctx, query, memberID, model.FineStatusUnpaid)
}

func (r *fineRepository) queryFines(ctx context.Context, query string, args ...interface{}) ([]model.Fine, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fines: %w", err)
	}
	defer rows.Close()

	fines := make([]model.Fine, 0)
	for rows.Next() {
		var f model.Fine
		if err := rows.Scan(
			&f.ID, &f.LendingID, &f.MemberID, &f.ItemBarcode, &f.DaysOverdue,
			&f.Amount, &f.Status, &f.AssessedAt, &f.PaidAt, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fine: %w", err)
		}
		fines = append(fines, f)
	}
	return fines, rows.Err()
}

func (r *fineRepository) scanFine(row pgx.Row) (*model.Fine, error) {
	var f model.Fine
	err := row.Scan(
		&f.ID, &f.LendingID, &f.MemberID, &f.ItemBarcode, &f.DaysOverdue,
		&f.Amount, &f.Status, &f.AssessedAt, &f.PaidAt, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
