package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogmodel "library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/circulation/service"
	finemodel "library-backend/internal/domains/fine/model"
	lendingmodel "library-backend/internal/domains/lending/model"
	membermodel "library-backend/internal/domains/member/model"
	reservationmodel "library-backend/internal/domains/reservation/model"
	"library-backend/internal/shared/response"
)

// Handler exposes the front-desk endpoints. It owns a single error
// mapping across all circulation domains, so desk clients see one
// consistent error surface.
type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new circulation handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Checkout handles POST /api/v1/circulation/checkout
func (h *Handler) Checkout(c *gin.Context) {
	var req lendingmodel.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	lending, err := h.service.Checkout(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, lending)
}

// Return handles POST /api/v1/circulation/return
func (h *Handler) Return(c *gin.Context) {
	var req lendingmodel.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ReturnItem(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Renew handles POST /api/v1/circulation/renew
func (h *Handler) Renew(c *gin.Context) {
	var req lendingmodel.RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	lending, err := h.service.Renew(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, lending)
}

// Reserve handles POST /api/v1/circulation/reserve
func (h *Handler) Reserve(c *gin.Context) {
	var req reservationmodel.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.service.Reserve(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, reservation)
}

// CompleteReservation handles POST /api/v1/circulation/reserve/complete
func (h *Handler) CompleteReservation(c *gin.Context) {
	var req reservationmodel.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.service.CompleteReservation(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reservation)
}

// CancelReservation handles POST /api/v1/circulation/reserve/cancel
func (h *Handler) CancelReservation(c *gin.Context) {
	var req reservationmodel.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.service.CancelReservation(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reservation)
}

// PayFine handles POST /api/v1/circulation/fines/:barcode/pay
func (h *Handler) PayFine(c *gin.Context) {
	fine, err := h.service.PayFine(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, fine)
}

// AdjustInventory handles POST /api/v1/circulation/books/:id/inventory
func (h *Handler) AdjustInventory(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book ID format")
		return
	}

	var req catalogmodel.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AdjustInventory(c.Request.Context(), bookID, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// MarkLost handles POST /api/v1/circulation/items/:barcode/lost
func (h *Handler) MarkLost(c *gin.Context) {
	item, err := h.service.MarkLost(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// ItemSummary handles GET /api/v1/circulation/items/:barcode
func (h *Handler) ItemSummary(c *gin.Context) {
	summary, err := h.service.ItemSummary(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case catalogmodel.IsNotFoundError(err),
		membermodel.IsNotFoundError(err),
		lendingmodel.IsNotFoundError(err),
		reservationmodel.IsNotFoundError(err),
		finemodel.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case errors.Is(err, catalogmodel.ErrItemNotAvailable),
		errors.Is(err, catalogmodel.ErrItemNotReservable),
		errors.Is(err, catalogmodel.ErrNotEnoughCopies),
		errors.Is(err, finemodel.ErrFineAlreadyPaid),
		catalogmodel.IsConflictError(err):
		response.Conflict(c, err.Error())
	case membermodel.IsEligibilityError(err):
		response.UnprocessableEntity(c, err.Error())
	case catalogmodel.IsTransitionError(err):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, lendingmodel.ErrNotBorrower),
		errors.Is(err, reservationmodel.ErrNotReservationHolder):
		response.Forbidden(c, err.Error())
	case errors.Is(err, catalogmodel.ErrInvalidQuantity):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
