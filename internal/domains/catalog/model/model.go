package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus represents the circulation status of a physical copy.
// It is the single source of truth for circulation eligibility; every
// change must go through the compare-and-set update in the repository.
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "AVAILABLE"
	ItemStatusReserved  ItemStatus = "RESERVED"
	ItemStatusLoaned    ItemStatus = "LOANED"
	ItemStatusLost      ItemStatus = "LOST"
)

func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusAvailable, ItemStatusReserved, ItemStatusLoaned, ItemStatusLost:
		return true
	}
	return false
}

func (s ItemStatus) String() string {
	return string(s)
}

// IsValidTransition reports whether from -> to is a legal circulation move.
// LOST is terminal and reachable from anywhere (manual override only).
func IsValidTransition(from, to ItemStatus) bool {
	if to == ItemStatusLost {
		return from != ItemStatusLost
	}

	switch from {
	case ItemStatusAvailable:
		return to == ItemStatusLoaned || to == ItemStatusReserved
	case ItemStatusReserved:
		return to == ItemStatusLoaned || to == ItemStatusAvailable
	case ItemStatusLoaned:
		return to == ItemStatusAvailable
	}
	return false
}

// ItemFormat represents valid physical copy formats
type ItemFormat string

const (
	ItemFormatPaperback ItemFormat = "paperback"
	ItemFormatHardcover ItemFormat = "hardcover"
	ItemFormatAudiobook ItemFormat = "audiobook"
)

func (f ItemFormat) IsValid() bool {
	switch f {
	case ItemFormatPaperback, ItemFormatHardcover, ItemFormatAudiobook:
		return true
	}
	return false
}

func (f ItemFormat) String() string {
	return string(f)
}

// Book represents a catalog entry. Immutable after creation except for
// its owned collection of BookItem copies.
type Book struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	ISBN            string     `json:"isbn" db:"isbn"`
	Title           string     `json:"title" db:"title"`
	Subject         string     `json:"subject" db:"subject"`
	Publisher       string     `json:"publisher" db:"publisher"`
	Language        string     `json:"language" db:"language"`
	Pages           int        `json:"pages" db:"pages"`
	Authors         []string   `json:"authors" db:"authors"`
	PublicationDate *time.Time `json:"publication_date" db:"publication_date"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// BookItem represents one physical copy. The barcode is globally unique,
// immutable, and is the primary identity for circulation.
type BookItem struct {
	Barcode         string          `json:"barcode" db:"barcode"`
	BookID          uuid.UUID       `json:"book_id" db:"book_id"`
	Status          ItemStatus      `json:"status" db:"status"`
	Rack            string          `json:"rack" db:"rack"`
	Price           decimal.Decimal `json:"price" db:"price"`
	Format          ItemFormat      `json:"format" db:"format"`
	IsReferenceOnly bool            `json:"is_reference_only" db:"is_reference_only"`
	PurchaseDate    *time.Time      `json:"purchase_date" db:"purchase_date"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Loanable reports whether the copy may ever be checked out.
// Reference-only copies are viewable in the library but never loanable.
func (i *BookItem) Loanable() bool {
	return !i.IsReferenceOnly
}
