package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
)

// ServiceInterface defines catalog business logic
type ServiceInterface interface {
	AddBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
	ListBooks(ctx context.Context) ([]model.BookResponse, error)

	AddItem(ctx context.Context, bookID uuid.UUID, req model.AddItemRequest) (*model.ItemResponse, error)
	GetItem(ctx context.Context, barcode string) (*model.ItemResponse, error)
	ItemsForBook(ctx context.Context, bookID uuid.UUID) ([]model.ItemResponse, error)

	AdjustInventory(ctx context.Context, bookID uuid.UUID, req model.AdjustInventoryRequest) (*model.AdjustInventoryResponse, error)
	MarkLost(ctx context.Context, barcode string) (*model.ItemResponse, error)
}
