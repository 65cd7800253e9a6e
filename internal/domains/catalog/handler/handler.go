package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new catalog handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// AddBook handles POST /api/v1/books
func (h *Handler) AddBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.AddBook(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicateISBN):
			response.Conflict(c, err.Error())
		default:
			h.mapError(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// GetBook handles GET /api/v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book ID format")
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// ListBooks handles GET /api/v1/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}

// AddItem handles POST /api/v1/books/:id/items
func (h *Handler) AddItem(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book ID format")
		return
	}

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), bookID, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, item)
}

// ListItems handles GET /api/v1/books/:id/items
func (h *Handler) ListItems(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book ID format")
		return
	}

	items, err := h.service.ItemsForBook(c.Request.Context(), bookID)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// GetItem handles GET /api/v1/items/:barcode
func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// AdjustInventory handles POST /api/v1/books/:id/inventory
func (h *Handler) AdjustInventory(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book ID format")
		return
	}

	var req model.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AdjustInventory(c.Request.Context(), bookID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotEnoughCopies):
			response.Conflict(c, err.Error())
		default:
			h.mapError(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// MarkLost handles POST /api/v1/items/:barcode/lost
func (h *Handler) MarkLost(c *gin.Context) {
	item, err := h.service.MarkLost(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// mapError maps catalog domain errors to HTTP responses
func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case model.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case model.IsConflictError(err):
		response.Conflict(c, err.Error())
	case model.IsTransitionError(err):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, model.ErrInvalidQuantity):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
