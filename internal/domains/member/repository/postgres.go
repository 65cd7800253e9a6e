package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/member/model"
)

type memberRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL member repository
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	query := `
		INSERT INTO members (id, email, password_hash, full_name, phone, address, role, status, outstanding_loans, registered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		member.ID, member.Email, member.PasswordHash, member.FullName,
		member.Phone, member.Address, member.Role, member.Status,
		member.OutstandingLoans, member.RegisteredAt,
	).Scan(&member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	query := `
		SELECT id, email, password_hash, full_name, phone, address, role, status, outstanding_loans, registered_at, created_at, updated_at
		FROM members WHERE id = $1`

	member, err := r.scanMember(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewMemberNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	query := `
		SELECT id, email, password_hash, full_name, phone, address, role, status, outstanding_loans, registered_at, created_at, updated_at
		FROM members WHERE email = $1`

	member, err := r.scanMember(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by email: %w", err)
	}
	return member, nil
}

func (r *memberRepository) List(ctx context.Context) ([]model.Member, error) {
	query := `
		SELECT id, email, password_hash, full_name, phone, address, role, status, outstanding_loans, registered_at, created_at, updated_at
		FROM members ORDER BY registered_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]model.Member, 0)
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(
			&m.ID, &m.Email, &m.PasswordHash, &m.FullName, &m.Phone, &m.Address,
			&m.Role, &m.Status, &m.OutstandingLoans, &m.RegisteredAt, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) error {
	query := `UPDATE members SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update member status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewMemberNotFoundError(id)
	}
	return nil
}

// IncrementOutstanding bumps the open-lending counter only when the
// account is ACTIVE and below the limit. The conditional update is a
// single statement, so concurrent checkouts serialize on the row.
func (r *memberRepository) IncrementOutstanding(ctx context.Context, id uuid.UUID, limit int) error {
	query := `
		UPDATE members
		SET outstanding_loans = outstanding_loans + 1, updated_at = NOW()
		WHERE id = $1 AND status = $2 AND outstanding_loans < $3`

	tag, err := r.db.Exec(ctx, query, id, model.AccountStatusActive, limit)
	if err != nil {
		return fmt.Errorf("failed to increment outstanding loans: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: look at the current state to pick the right error.
	member, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !member.Eligible() {
		return model.NewMemberNotEligibleError(member.Status)
	}
	return model.NewBorrowLimitExceededError(limit)
}

// DecrementOutstanding releases one loan slot. Decrementing a counter
// that is already at zero is a no-op, not an error, so compensation
// paths can call this without first reading the member.
func (r *memberRepository) DecrementOutstanding(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE members
		SET outstanding_loans = outstanding_loans - 1, updated_at = NOW()
		WHERE id = $1 AND outstanding_loans > 0`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to decrement outstanding loans: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the member is unknown or the counter is already
	// at zero. Only the former is an error.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM members WHERE id = $1 AND outstanding_loans = 0`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return model.ErrMemberHasOpenLoans
}

func (r *memberRepository) scanMember(row pgx.Row) (*model.Member, error) {
	var m model.Member
	err := row.Scan(
		&m.ID, &m.Email, &m.PasswordHash, &m.FullName, &m.Phone, &m.Address,
		&m.Role, &m.Status, &m.OutstandingLoans, &m.RegisteredAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
