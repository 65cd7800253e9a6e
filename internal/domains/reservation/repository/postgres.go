package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/reservation/model"
)

type reservationRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL reservation repository
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, item_barcode, member_id, status, reserved_at, resolved_at, created_at, updated_at`

func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	query := `
		INSERT INTO reservations (id, item_barcode, member_id, status, reserved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		reservation.ID, reservation.ItemBarcode, reservation.MemberID,
		reservation.Status, reservation.ReservedAt,
	).Scan(&reservation.CreatedAt, &reservation.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := r.scanReservation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return res, nil
}

// ActiveByBarcode returns the single WAITING or PENDING reservation for
// an item, if any.
func (r *reservationRepository) ActiveByBarcode(ctx context.Context, barcode string) (*model.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE item_barcode = $1 AND status IN ($2, $3)
		ORDER BY reserved_at DESC
		LIMIT 1`

	res, err := r.scanReservation(r.db.QueryRow(ctx, query, barcode, model.StatusWaiting, model.StatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewNoActiveReservationError(barcode)
		}
		return nil, fmt.Errorf("failed to get active reservation: %w", err)
	}
	return res, nil
}

func (r *reservationRepository) Resolve(ctx context.Context, id uuid.UUID, status model.ReservationStatus, resolvedAt time.Time) error {
	query := `
		UPDATE reservations
		SET status = $2, resolved_at = $3, updated_at = NOW()
		WHERE id = $1 AND status IN ($4, $5)`

	tag, err := r.db.Exec(ctx, query, id, status, resolvedAt, model.StatusWaiting, model.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to resolve reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReservationNotFound
	}
	return nil
}

func (r *reservationRepository) List(ctx context.Context) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY reserved_at DESC`
	return r.queryReservations(ctx, query)
}

func (r *reservationRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE member_id = $1 ORDER BY reserved_at DESC`
	return r.queryReservations(ctx, query, memberID)
}

func (r *reservationRepository) queryReservations(ctx context.Context, query string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(
			&res.ID, &res.ItemBarcode, &res.MemberID, &res.Status,
			&res.ReservedAt, &res.ResolvedAt, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *reservationRepository) scanReservation(row pgx.Row) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(
		&res.ID, &res.ItemBarcode, &res.MemberID, &res.Status,
		&res.ReservedAt, &res.ResolvedAt, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
