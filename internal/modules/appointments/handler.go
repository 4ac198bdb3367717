package appointments

import (
	"net/http"
	"strconv"

	"openstage/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/appointments", h.Book)
	rg.POST("/appointments/:id/cancel", h.Cancel)
	rg.GET("/appointments", h.ListMine)
}

func (h *Handler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Book(c.Request.Context(), req.ServiceID, c.GetInt64("user_id"), req.AppointmentTime)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"appointment": a})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID")
		return
	}

	a, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": a})
}

func (h *Handler) ListMine(c *gin.Context) {
	out, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load appointments")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointments": out})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrServiceNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Appointment time must be in the future")
	case ErrConflict:
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Time slot already booked")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Appointment does not belong to you")
	case ErrNotCancellable:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Appointment can no longer be cancelled")
	case ErrTxTimeout:
		response.Error(c, http.StatusServiceUnavailable, "RETRY_LATER", "Temporarily unavailable, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process appointment")
	}
}
