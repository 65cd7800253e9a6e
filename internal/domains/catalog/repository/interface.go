package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
)

// RepositoryInterface defines catalog data access.
//
// UpdateItemStatus is the linchpin of circulation correctness: it is the
// only way any component may change a copy's status, and it only succeeds
// when the stored status still equals expected (compare-and-set). Two
// concurrent operations on one barcode therefore cannot both win.
type RepositoryInterface interface {
	// Books
	CreateBook(ctx context.Context, book *model.Book) error
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)

	// Items
	CreateItem(ctx context.Context, item *model.BookItem) error
	GetItem(ctx context.Context, barcode string) (*model.BookItem, error)
	ListItemsByBook(ctx context.Context, bookID uuid.UUID) ([]model.BookItem, error)
	CountItemsByBook(ctx context.Context, bookID uuid.UUID) (total int, available int, err error)

	// UpdateItemStatus atomically moves barcode from expected to next.
	// Returns ErrItemNotFound if the barcode is unknown and
	// ErrStatusConflict if the stored status no longer equals expected.
	UpdateItemStatus(ctx context.Context, barcode string, expected, next model.ItemStatus) error

	// RemoveAvailableItems deletes n AVAILABLE copies of a book and returns
	// their barcodes. Returns ErrNotEnoughCopies if fewer than n copies
	// are AVAILABLE.
	RemoveAvailableItems(ctx context.Context, bookID uuid.UUID, n int) ([]string, error)
}
