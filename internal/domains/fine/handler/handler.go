package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/fine/model"
	"library-backend/internal/domains/fine/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new fine handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// PayFine handles POST /api/v1/fines/pay/:barcode
func (h *Handler) PayFine(c *gin.Context) {
	fine, err := h.service.PayByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, fine)
}

// ListFines handles GET /api/v1/fines
func (h *Handler) ListFines(c *gin.Context) {
	fines, err := h.service.ListFines(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, fines)
}

// ListMemberFines handles GET /api/v1/members/:id/fines.
// ?unpaid=true narrows the list to outstanding fines.
func (h *Handler) ListMemberFines(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member ID format")
		return
	}

	var fines []model.FineResponse
	if c.Query("unpaid") == "true" {
		fines, err = h.service.ListUnpaidByMember(c.Request.Context(), memberID)
	} else {
		fines, err = h.service.ListByMember(c.Request.Context(), memberID)
	}
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, fines)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case model.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrFineAlreadyPaid):
		response.Conflict(c, err.Error())
	default:
		response.InternalServerError(c, err.Error())
	}
}
