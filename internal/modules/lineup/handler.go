package lineup

import (
	"errors"
	"net/http"
	"strconv"

	"openstage/internal/middleware"
	"openstage/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/:id/lineup", h.GetLineup)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/events/:id/lineup", h.SetLineup)
}

func (h *Handler) SetLineup(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
		return
	}

	var req SetLineupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor := middleware.PrincipalFromContext(c)
	out, err := h.service.SetLineup(c.Request.Context(), eventID, actor, req.PerformerIDs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": out})
}

func (h *Handler) GetLineup(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
		return
	}

	out, err := h.service.GetLineup(c.Request.Context(), eventID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": out})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var sce *SlotCountError
	if errors.As(err, &sce) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Slot "+strconv.Itoa(sce.Index)+" does not exist for this event")
		return
	}

	switch err {
	case ErrEventNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
	case ErrNotShowcase:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "This operation only works for showcase events")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only admins or event host may set the lineup")
	case ErrDuplicatePerformers:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Duplicate performer IDs")
	case ErrUnknownPerformers:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "One or more performer IDs do not exist")
	case ErrTxTimeout:
		response.Error(c, http.StatusServiceUnavailable, "RETRY_LATER", "Temporarily unavailable, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to set lineup")
	}
}
