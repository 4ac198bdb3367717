package slots

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

// RegisterPublicRoutes attaches the unauthenticated read endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/:id/slots", h.GetAvailableSlots)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/slots/:id/claim", h.ClaimSlot)
	rg.POST("/slots/:id/unclaim", h.UnclaimSlot)
}

func (h *Handler) ClaimSlot(c *gin.Context) {
	slotID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid slot ID")
		return
	}

	slot, err := h.service.Claim(c.Request.Context(), slotID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

func (h *Handler) UnclaimSlot(c *gin.Context) {
	slotID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid slot ID")
		return
	}

	slot, err := h.service.Unclaim(c.Request.Context(), slotID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

func (h *Handler) GetAvailableSlots(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
		return
	}

	out, err := h.service.GetAvailable(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load slots")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": out})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Slot not available")
	case ErrNotAvailable:
		response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "Slot not available")
	case ErrAlreadyInEvent:
		response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "Slot not available: you already have a slot for this event")
	case ErrNotYours:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Slot does not belong to you")
	case ErrShowcase:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Showcase slots are assigned by the host")
	case ErrTxTimeout:
		response.Error(c, http.StatusServiceUnavailable, "RETRY_LATER", "Temporarily unavailable, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update slot")
	}
}
