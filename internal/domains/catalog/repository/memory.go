package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
)

// memoryRepository is an in-memory RepositoryInterface used by tests and
// local development. The mutex gives the same at-most-one-winner guarantee
// for UpdateItemStatus that the SQL compare-and-set provides.
type memoryRepository struct {
	mu    sync.RWMutex
	books map[uuid.UUID]model.Book
	items map[string]model.BookItem
}

// NewMemoryRepository creates an empty in-memory catalog repository
func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		books: make(map[uuid.UUID]model.Book),
		items: make(map[string]model.BookItem),
	}
}

func (r *memoryRepository) CreateBook(_ context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.books {
		if b.ISBN == book.ISBN {
			return model.ErrDuplicateISBN
		}
	}

	r.books[book.ID] = *book
	return nil
}

func (r *memoryRepository) GetBook(_ context.Context, id uuid.UUID) (*model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[id]
	if !ok {
		return nil, model.NewBookNotFoundError(id)
	}
	return &book, nil
}

func (r *memoryRepository) ListBooks(_ context.Context) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

func (r *memoryRepository) CreateItem(_ context.Context, item *model.BookItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.Barcode]; ok {
		return model.ErrDuplicateBarcode
	}
	if _, ok := r.books[item.BookID]; !ok {
		return model.NewBookNotFoundError(item.BookID)
	}

	r.items[item.Barcode] = *item
	return nil
}

func (r *memoryRepository) GetItem(_ context.Context, barcode string) (*model.BookItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[barcode]
	if !ok {
		return nil, model.NewItemNotFoundError(barcode)
	}
	return &item, nil
}

func (r *memoryRepository) ListItemsByBook(_ context.Context, bookID uuid.UUID) ([]model.BookItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.BookItem, 0, 8)
	for _, item := range r.items {
		if item.BookID == bookID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Barcode < items[j].Barcode })
	return items, nil
}

func (r *memoryRepository) CountItemsByBook(_ context.Context, bookID uuid.UUID) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total, available int
	for _, item := range r.items {
		if item.BookID != bookID {
			continue
		}
		total++
		if item.Status == model.ItemStatusAvailable {
			available++
		}
	}
	return total, available, nil
}

func (r *memoryRepository) UpdateItemStatus(_ context.Context, barcode string, expected, next model.ItemStatus) error {
	if !model.IsValidTransition(expected, next) {
		return model.NewInvalidTransitionError(expected, next)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[barcode]
	if !ok {
		return model.NewItemNotFoundError(barcode)
	}

	if item.Status != expected {
		return model.NewStatusConflictError(barcode, expected, next)
	}

	item.Status = next
	r.items[barcode] = item
	return nil
}

func (r *memoryRepository) RemoveAvailableItems(_ context.Context, bookID uuid.UUID, n int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	available := make([]string, 0, n)
	for barcode, item := range r.items {
		if item.BookID == bookID && item.Status == model.ItemStatusAvailable {
			available = append(available, barcode)
		}
	}
	sort.Strings(available)

	if len(available) < n {
		return nil, model.ErrNotEnoughCopies
	}

	removed := available[:n]
	for _, barcode := range removed {
		delete(r.items, barcode)
	}
	return removed, nil
}
