package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/repository"
)

type CatalogService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

// NewService creates a new catalog service
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &CatalogService{
		repo: repo,
		now:  time.Now,
	}
}

// newBarcode generates a fresh globally unique barcode for a copy
func newBarcode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ITM-" + strings.ToUpper(raw[:12])
}

// AddBook implements ServiceInterface.AddBook
func (s *CatalogService) AddBook(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	book := model.Book{
		ID:              uuid.New(),
		ISBN:            req.ISBN,
		Title:           req.Title,
		Subject:         req.Subject,
		Publisher:       req.Publisher,
		Language:        req.Language,
		Pages:           req.Pages,
		Authors:         req.Authors,
		PublicationDate: req.PublicationDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateBook(ctx, &book); err != nil {
		return nil, err
	}

	return s.toBookResponse(ctx, &book)
}

// GetBook implements ServiceInterface.GetBook
func (s *CatalogService) GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.toBookResponse(ctx, book)
}

// ListBooks implements ServiceInterface.ListBooks
func (s *CatalogService) ListBooks(ctx context.Context) ([]model.BookResponse, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	responses := make([]model.BookResponse, 0, len(books))
	for i := range books {
		resp, err := s.toBookResponse(ctx, &books[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return responses, nil
}

// AddItem implements ServiceInterface.AddItem
func (s *CatalogService) AddItem(ctx context.Context, bookID uuid.UUID, req model.AddItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Reject unknown books up front for a clean NotFound instead of an FK error
	if _, err := s.repo.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	now := s.now()
	item := model.BookItem{
		Barcode:         newBarcode(),
		BookID:          bookID,
		Status:          model.ItemStatusAvailable,
		Rack:            req.Rack,
		Price:           req.Price,
		Format:          model.ItemFormat(req.Format),
		IsReferenceOnly: req.IsReferenceOnly,
		PurchaseDate:    req.PurchaseDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}

	resp := item.ToResponse()
	return &resp, nil
}

// GetItem implements ServiceInterface.GetItem
func (s *CatalogService) GetItem(ctx context.Context, barcode string) (*model.ItemResponse, error) {
	item, err := s.repo.GetItem(ctx, barcode)
	if err != nil {
		return nil, err
	}

	resp := item.ToResponse()
	return &resp, nil
}

// ItemsForBook implements ServiceInterface.ItemsForBook
func (s *CatalogService) ItemsForBook(ctx context.Context, bookID uuid.UUID) ([]model.ItemResponse, error) {
	if _, err := s.repo.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return model.ToItemResponseList(items), nil
}

// AdjustInventory implements ServiceInterface.AdjustInventory.
// increase adds n fresh AVAILABLE copies; decrease removes n copies and
// fails if fewer than n copies are currently AVAILABLE.
func (s *CatalogService) AdjustInventory(ctx context.Context, bookID uuid.UUID, req model.AdjustInventoryRequest) (*model.AdjustInventoryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	var barcodes []string

	switch req.Operation {
	case model.AdjustOperationIncrease:
		now := s.now()
		barcodes = make([]string, 0, req.Quantity)
		for i := 0; i < req.Quantity; i++ {
			item := model.BookItem{
				Barcode:   newBarcode(),
				BookID:    bookID,
				Status:    model.ItemStatusAvailable,
				Format:    model.ItemFormatPaperback,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repo.CreateItem(ctx, &item); err != nil {
				return nil, fmt.Errorf("failed to add copy %d of %d: %w", i+1, req.Quantity, err)
			}
			barcodes = append(barcodes, item.Barcode)
		}

	case model.AdjustOperationDecrease:
		removed, err := s.repo.RemoveAvailableItems(ctx, bookID, req.Quantity)
		if err != nil {
			return nil, err
		}
		barcodes = removed
	}

	total, available, err := s.repo.CountItemsByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return &model.AdjustInventoryResponse{
		BookID:          bookID,
		Operation:       req.Operation,
		Quantity:        req.Quantity,
		Barcodes:        barcodes,
		TotalCopies:     total,
		AvailableCopies: available,
	}, nil
}

// MarkLost implements ServiceInterface.MarkLost. LOST is a terminal manual
// override reachable from any status; the compare-and-set still guards
// against a concurrent transition between the read and the update.
func (s *CatalogService) MarkLost(ctx context.Context, barcode string) (*model.ItemResponse, error) {
	item, err := s.repo.GetItem(ctx, barcode)
	if err != nil {
		return nil, err
	}

	if item.Status == model.ItemStatusLost {
		return nil, model.NewInvalidTransitionError(model.ItemStatusLost, model.ItemStatusLost)
	}

	if err := s.repo.UpdateItemStatus(ctx, barcode, item.Status, model.ItemStatusLost); err != nil {
		return nil, err
	}

	item.Status = model.ItemStatusLost
	resp := item.ToResponse()
	return &resp, nil
}

// toBookResponse decorates a book with its copy counts
func (s *CatalogService) toBookResponse(ctx context.Context, book *model.Book) (*model.BookResponse, error) {
	total, available, err := s.repo.CountItemsByBook(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	return &model.BookResponse{
		ID:              book.ID,
		ISBN:            book.ISBN,
		Title:           book.Title,
		Subject:         book.Subject,
		Publisher:       book.Publisher,
		Language:        book.Language,
		Pages:           book.Pages,
		Authors:         book.Authors,
		PublicationDate: book.PublicationDate,
		TotalCopies:     total,
		AvailableCopies: available,
		CreatedAt:       book.CreatedAt,
	}, nil
}
