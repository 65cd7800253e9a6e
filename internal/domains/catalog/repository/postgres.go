package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"library-backend/internal/domains/catalog/model"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
)

const (
	bookCacheTTL     = 5 * time.Minute
	bookListCacheKey = "catalog:books:all"
)

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewRepository creates a new PostgreSQL catalog repository
func NewRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func bookCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("catalog:book:%s", id)
}

// invalidateBookCache drops cached reads after any catalog mutation
func (r *postgresRepository) invalidateBookCache(ctx context.Context, id uuid.UUID) {
	// Cache failures are non-critical; a stale entry expires with its TTL
	_ = r.cache.Delete(ctx, bookCacheKey(id), bookListCacheKey)
}

// CreateBook implements RepositoryInterface.CreateBook
func (r *postgresRepository) CreateBook(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, isbn, title, subject, publisher, language, pages,
			authors, publication_date, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.ISBN,
		book.Title,
		book.Subject,
		book.Publisher,
		book.Language,
		book.Pages,
		pq.Array(book.Authors),
		book.PublicationDate,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrDuplicateISBN
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}

	r.invalidateBookCache(ctx, book.ID)
	return nil
}

// GetBook implements RepositoryInterface.GetBook with a read-through cache
func (r *postgresRepository) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var cached model.Book
	if found, err := r.cache.Get(ctx, bookCacheKey(id), &cached); err == nil && found {
		return &cached, nil
	}

	query := `
		SELECT
			id, isbn, title, subject, publisher, language, pages,
			authors, publication_date, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var book model.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.ISBN,
		&book.Title,
		&book.Subject,
		&book.Publisher,
		&book.Language,
		&book.Pages,
		pq.Array(&book.Authors),
		&book.PublicationDate,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	_ = r.cache.Set(ctx, bookCacheKey(id), &book, bookCacheTTL)
	return &book, nil
}

// ListBooks implements RepositoryInterface.ListBooks
func (r *postgresRepository) ListBooks(ctx context.Context) ([]model.Book, error) {
	var cached []model.Book
	if found, err := r.cache.Get(ctx, bookListCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	query := `
		SELECT
			id, isbn, title, subject, publisher, language, pages,
			authors, publication_date, created_at, updated_at
		FROM books
		ORDER BY title ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, 64)
	for rows.Next() {
		var book model.Book
		err := rows.Scan(
			&book.ID,
			&book.ISBN,
			&book.Title,
			&book.Subject,
			&book.Publisher,
			&book.Language,
			&book.Pages,
			pq.Array(&book.Authors),
			&book.PublicationDate,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	_ = r.cache.Set(ctx, bookListCacheKey, books, time.Minute)
	return books, nil
}

// CreateItem implements RepositoryInterface.CreateItem
func (r *postgresRepository) CreateItem(ctx context.Context, item *model.BookItem) error {
	query := `
		INSERT INTO book_items (
			barcode, book_id, status, rack, price, format,
			is_reference_only, purchase_date, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err := r.pool.Exec(ctx, query,
		item.Barcode,
		item.BookID,
		item.Status,
		item.Rack,
		item.Price,
		item.Format,
		item.IsReferenceOnly,
		item.PurchaseDate,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return model.ErrDuplicateBarcode
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return model.NewBookNotFoundError(item.BookID)
			}
		}
		return fmt.Errorf("failed to insert book item: %w", err)
	}

	r.invalidateBookCache(ctx, item.BookID)
	return nil
}

// GetItem implements RepositoryInterface.GetItem
func (r *postgresRepository) GetItem(ctx context.Context, barcode string) (*model.BookItem, error) {
	query := `
		SELECT
			barcode, book_id, status, rack, price, format,
			is_reference_only, purchase_date, created_at, updated_at
		FROM book_items
		WHERE barcode = $1
	`

	var item model.BookItem
	err := r.pool.QueryRow(ctx, query, barcode).Scan(
		&item.Barcode,
		&item.BookID,
		&item.Status,
		&item.Rack,
		&item.Price,
		&item.Format,
		&item.IsReferenceOnly,
		&item.PurchaseDate,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewItemNotFoundError(barcode)
		}
		return nil, fmt.Errorf("failed to get book item: %w", err)
	}

	return &item, nil
}

// ListItemsByBook implements RepositoryInterface.ListItemsByBook
func (r *postgresRepository) ListItemsByBook(ctx context.Context, bookID uuid.UUID) ([]model.BookItem, error) {
	query := `
		SELECT
			barcode, book_id, status, rack, price, format,
			is_reference_only, purchase_date, created_at, updated_at
		FROM book_items
		WHERE book_id = $1
		ORDER BY barcode ASC
	`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list book items: %w", err)
	}
	defer rows.Close()

	items := make([]model.BookItem, 0, 8)
	for rows.Next() {
		var item model.BookItem
		err := rows.Scan(
			&item.Barcode,
			&item.BookID,
			&item.Status,
			&item.Rack,
			&item.Price,
			&item.Format,
			&item.IsReferenceOnly,
			&item.PurchaseDate,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book item rows: %w", err)
	}

	return items, nil
}

// CountItemsByBook implements RepositoryInterface.CountItemsByBook
func (r *postgresRepository) CountItemsByBook(ctx context.Context, bookID uuid.UUID) (int, int, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'AVAILABLE')
		FROM book_items
		WHERE book_id = $1
	`

	var total, available int
	err := r.pool.QueryRow(ctx, query, bookID).Scan(&total, &available)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count book items: %w", err)
	}

	return total, available, nil
}

// UpdateItemStatus implements the compare-and-set status transition.
// The WHERE clause carries the expected status so a concurrent writer
// that got there first makes this update match zero rows.
func (r *postgresRepository) UpdateItemStatus(ctx context.Context, barcode string, expected, next model.ItemStatus) error {
	if !model.IsValidTransition(expected, next) {
		return model.NewInvalidTransitionError(expected, next)
	}

	query := `
		UPDATE book_items
		SET status = $3, updated_at = NOW()
		WHERE barcode = $1 AND status = $2
	`

	result, err := r.pool.Exec(ctx, query, barcode, expected, next)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Zero rows means either the barcode is unknown or the status
		// no longer equals expected. Distinguish the two.
		var exists bool
		checkQuery := "SELECT EXISTS(SELECT 1 FROM book_items WHERE barcode = $1)"
		if checkErr := r.pool.QueryRow(ctx, checkQuery, barcode).Scan(&exists); checkErr != nil {
			return fmt.Errorf("failed to check item existence: %w", checkErr)
		}

		if !exists {
			return model.NewItemNotFoundError(barcode)
		}

		return model.NewStatusConflictError(barcode, expected, next)
	}

	return nil
}

// RemoveAvailableItems implements RepositoryInterface.RemoveAvailableItems
// inside a transaction with row-level locking so a copy cannot be checked
// out and removed at the same time.
func (r *postgresRepository) RemoveAvailableItems(ctx context.Context, bookID uuid.UUID, n int) ([]string, error) {
	barcodes, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]string, error) {
		selectQuery := `
			SELECT barcode
			FROM book_items
			WHERE book_id = $1 AND status = 'AVAILABLE'
			ORDER BY barcode ASC
			LIMIT $2
			FOR UPDATE
		`

		rows, err := tx.Query(ctx, selectQuery, bookID, n)
		if err != nil {
			return nil, fmt.Errorf("failed to lock available items: %w", err)
		}

		barcodes := make([]string, 0, n)
		for rows.Next() {
			var barcode string
			if err := rows.Scan(&barcode); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan barcode: %w", err)
			}
			barcodes = append(barcodes, barcode)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating barcodes: %w", err)
		}

		if len(barcodes) < n {
			return nil, fmt.Errorf("%w: requested=%d, available=%d", model.ErrNotEnoughCopies, n, len(barcodes))
		}

		deleteQuery := "DELETE FROM book_items WHERE barcode = ANY($1)"
		result, err := tx.Exec(ctx, deleteQuery, barcodes)
		if err != nil {
			return nil, fmt.Errorf("failed to delete items: %w", err)
		}
		if result.RowsAffected() != int64(n) {
			return nil, fmt.Errorf("expected to delete %d items, deleted %d", n, result.RowsAffected())
		}

		return barcodes, nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidateBookCache(ctx, bookID)
	return barcodes, nil
}
