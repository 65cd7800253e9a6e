package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// CREATE BOOK REQUEST
// =====================================================
type CreateBookRequest struct {
	ISBN            string     `json:"isbn" binding:"required"`
	Title           string     `json:"title" binding:"required"`
	Subject         string     `json:"subject"`
	Publisher       string     `json:"publisher"`
	Language        string     `json:"language"`
	Pages           int        `json:"pages"`
	Authors         []string   `json:"authors" binding:"required"`
	PublicationDate *time.Time `json:"publication_date"`
}

// Validate validates CreateBookRequest
func (req CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ISBN, validation.Required, is.ISBN),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.Authors, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Pages, validation.Min(0)),
	)
}

// =====================================================
// ADD ITEM REQUEST
// =====================================================
type AddItemRequest struct {
	Rack            string          `json:"rack"`
	Price           decimal.Decimal `json:"price"`
	Format          string          `json:"format" binding:"required"`
	IsReferenceOnly bool            `json:"is_reference_only"`
	PurchaseDate    *time.Time      `json:"purchase_date"`
}

// Validate validates AddItemRequest
func (req AddItemRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Format, validation.Required, validation.In(
			ItemFormatPaperback.String(),
			ItemFormatHardcover.String(),
			ItemFormatAudiobook.String(),
		)),
	)
}

// =====================================================
// ADJUST INVENTORY REQUEST
// =====================================================

const (
	AdjustOperationIncrease = "increase"
	AdjustOperationDecrease = "decrease"
)

type AdjustInventoryRequest struct {
	Quantity  int    `json:"quantity" binding:"required"`
	Operation string `json:"operation" binding:"required"`
}

// Validate validates AdjustInventoryRequest
func (req AdjustInventoryRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.Operation, validation.Required, validation.In(
			AdjustOperationIncrease,
			AdjustOperationDecrease,
		)),
	)
}

// =====================================================
// RESPONSES
// =====================================================

type BookResponse struct {
	ID              uuid.UUID  `json:"id"`
	ISBN            string     `json:"isbn"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject"`
	Publisher       string     `json:"publisher"`
	Language        string     `json:"language"`
	Pages           int        `json:"pages"`
	Authors         []string   `json:"authors"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	TotalCopies     int        `json:"total_copies"`
	AvailableCopies int        `json:"available_copies"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ItemResponse struct {
	Barcode         string          `json:"barcode"`
	BookID          uuid.UUID       `json:"book_id"`
	Status          string          `json:"status"`
	Rack            string          `json:"rack"`
	Price           decimal.Decimal `json:"price"`
	Format          string          `json:"format"`
	IsReferenceOnly bool            `json:"is_reference_only"`
	PurchaseDate    *time.Time      `json:"purchase_date,omitempty"`
}

type AdjustInventoryResponse struct {
	BookID          uuid.UUID `json:"book_id"`
	Operation       string    `json:"operation"`
	Quantity        int       `json:"quantity"`
	Barcodes        []string  `json:"barcodes"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
}

// ToResponse converts a BookItem to its API representation
func (i *BookItem) ToResponse() ItemResponse {
	return ItemResponse{
		Barcode:         i.Barcode,
		BookID:          i.BookID,
		Status:          i.Status.String(),
		Rack:            i.Rack,
		Price:           i.Price,
		Format:          i.Format.String(),
		IsReferenceOnly: i.IsReferenceOnly,
		PurchaseDate:    i.PurchaseDate,
	}
}

// ToItemResponseList converts a slice of items to response DTOs
func ToItemResponseList(items []BookItem) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, items[i].ToResponse())
	}
	return responses
}
