package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogmodel "library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/lending/model"
	"library-backend/internal/domains/lending/service"
	membermodel "library-backend/internal/domains/member/model"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new lending handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Checkout handles POST /api/v1/lendings/checkout
func (h *Handler) Checkout(c *gin.Context) {
	var req model.CheckoutRequest
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

// Return handles POST /api/v1/lendings/return
func (h *Handler) Return(c *gin.Context) {
	var req model.ReturnRequest
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

// Renew handles POST /api/v1/lendings/renew
func (h *Handler) Renew(c *gin.Context) {
	var req model.RenewRequest
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

// OpenLending handles GET /api/v1/items/:barcode/lending
func (h *Handler) OpenLending(c *gin.Context) {
	lending, err := h.service.OpenLending(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, lending)
}

// ListLendings handles GET /api/v1/lendings
func (h *Handler) ListLendings(c *gin.Context) {
	if asOf := c.Query("overdue_as_of"); asOf != "" {
		ref, err := time.Parse(time.RFC3339, asOf)
		if err != nil {
			response.BadRequest(c, "overdue_as_of must be RFC 3339")
			return
		}
		lendings, err := h.service.ListOverdue(c.Request.Context(), ref)
		if err != nil {
			h.mapError(c, err)
			return
		}
		response.Success(c, http.StatusOK, lendings)
		return
	}

	lendings, err := h.service.ListLendings(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, lendings)
}

// ListMemberLendings handles GET /api/v1/members/:id/lendings
func (h *Handler) ListMemberLendings(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member ID format")
		return
	}

	lendings, err := h.service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, lendings)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case model.IsNotFoundError(err), catalogmodel.IsNotFoundError(err), membermodel.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case errors.Is(err, catalogmodel.ErrItemNotAvailable), catalogmodel.IsConflictError(err):
		response.Conflict(c, err.Error())
	case membermodel.IsEligibilityError(err):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, model.ErrNotBorrower):
		response.Forbidden(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
