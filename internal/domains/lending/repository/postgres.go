package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/lending/model"
)

type lendingRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL lending repository
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &lendingRepository{db: db}
}

const lendingColumns = `id, item_barcode, member_id, checked_out_at, due_date, returned_at, renewals, created_at, updated_at`

func (r *lendingRepository) Create(ctx context.Context, lending *model.Lending) error {
	query := `
		INSERT INTO lendings (id, item_barcode, member_id, checked_out_at, due_date, renewals, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		lending.ID, lending.ItemBarcode, lending.MemberID,
		lending.CheckedOutAt, lending.DueDate, lending.Renewals,
	).Scan(&lending.CreatedAt, &lending.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lending: %w", err)
	}
	return nil
}

func (r *lendingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lending, error) {
	query := `SELECT ` + lendingColumns + ` FROM lendings WHERE id = $1`

	lending, err := r.scanLending(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewLendingNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get lending: %w", err)
	}
	return lending, nil
}

func (r *lendingRepository) OpenByBarcode(ctx context.Context, barcode string) (*model.Lending, error) {
	query := `SELECT ` + lendingColumns + ` FROM lendings WHERE item_barcode = $1 AND returned_at IS NULL`

	lending, err := r.scanLending(r.db.QueryRow(ctx, query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewNoOpenLendingError(barcode)
		}
		return nil, fmt.Errorf("failed to get open lending: %w", err)
	}
	return lending, nil
}

func (r *lendingRepository) Close(ctx context.Context, id uuid.UUID, returnedAt time.Time) error {
	query := `
		UPDATE lendings
		SET returned_at = $2, updated_at = NOW()
		WHERE id = $1 AND returned_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id, returnedAt)
	if err != nil {
		return fmt.Errorf("failed to close lending: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewLendingNotFoundError(id)
	}
	return nil
}

func (r *lendingRepository) ExtendDueDate(ctx context.Context, id uuid.UUID, dueDate time.Time) error {
	query := `
		UPDATE lendings
		SET due_date = $2, renewals = renewals + 1, updated_at = NOW()
		WHERE id = $1 AND returned_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id, dueDate)
	if err != nil {
		return fmt.Errorf("failed to extend due date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewLendingNotFoundError(id)
	}
	return nil
}

func (r *lendingRepository) List(ctx context.Context) ([]model.Lending, error) {
	query := `SELECT ` + lendingColumns + ` FROM lendings ORDER BY checked_out_at DESC`
	return r.queryLendings(ctx, query)
}

func (r *lendingRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Lending, error) {
	query := `SELECT ` + lendingColumns + ` FROM lendings WHERE member_id = $1 ORDER BY checked_out_at DESC`
	return r.queryLendings(ctx, query, memberID)
}

func (r *lendingRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]model.Lending, error) {
	query := `
		SELECT ` + lendingColumns + `
		FROM lendings
		WHERE returned_at IS NULL AND due_date < $1
		ORDER BY due_date ASC`
	return r.queryLendings(ctx, query, asOf)
}

func (r *lendingRepository) queryLendings(ctx context.Context, query string, args ...interface{}) ([]model.Lending, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list lendings: %w", err)
	}
	defer rows.Close()

	lendings := make([]model.Lending, 0)
	for rows.Next() {
		var l model.Lending
		if err := rows.Scan(
			&l.ID, &l.ItemBarcode, &l.MemberID, &l.CheckedOutAt,
			&l.DueDate, &l.ReturnedAt, &l.Renewals, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lending: %w", err)
		}
		lendings = append(lendings, l)
	}
	return lendings, rows.Err()
}

func (r *lendingRepository) scanLending(row pgx.Row) (*model.Lending, error) {
	var l model.Lending
	err := row.Scan(
		&l.ID, &l.ItemBarcode, &l.MemberID, &l.CheckedOutAt,
		&l.DueDate, &l.ReturnedAt, &l.Renewals, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
