package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogmodel "library-backend/internal/domains/catalog/model"
	membermodel "library-backend/internal/domains/member/model"
	"library-backend/internal/domains/reservation/model"
	"library-backend/internal/domains/reservation/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new reservation handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Reserve handles POST /api/v1/reservations
func (h *Handler) Reserve(c *gin.Context) {
	var req model.ReserveRequest
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

// Complete handles POST /api/v1/reservations/complete
func (h *Handler) Complete(c *gin.Context) {
	var req model.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.service.Complete(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reservation)
}

// Cancel handles POST /api/v1/reservations/cancel
func (h *Handler) Cancel(c *gin.Context) {
	var req model.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.service.Cancel(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reservation)
}

// ItemStatus handles GET /api/v1/items/:barcode/reservation
func (h *Handler) ItemStatus(c *gin.Context) {
	status, err := h.service.StatusForItem(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": status})
}

// ListReservations handles GET /api/v1/reservations
func (h *Handler) ListReservations(c *gin.Context) {
	reservations, err := h.service.ListReservations(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reservations)
}

// ListMemberReservations handles GET /api/v1/members/:id/reservations
func (h *Handler) ListMemberReservations(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member ID format")
		return
	}

	reservations, err := h.service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reservations)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case model.IsNotFoundError(err), catalogmodel.IsNotFoundError(err), membermodel.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case errors.Is(err, catalogmodel.ErrItemNotReservable):
		response.Conflict(c, err.Error())
	case catalogmodel.IsConflictError(err):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrNotReservationHolder):
		response.Forbidden(c, err.Error())
	case membermodel.IsEligibilityError(err):
		response.UnprocessableEntity(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
