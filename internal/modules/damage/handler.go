package damage

import (
	"net/http"
	"strconv"

	"renthub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/damage-report", h.Report)
	rg.GET("/bookings/:id/damage-report", h.Get)
}

type reportBody struct {
	Description string `json:"description" binding:"required"`
}

func (h *Handler) Report(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var body reportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "description is required")
		return
	}

	d, err := h.service.Report(c.Request.Context(), id, c.GetInt64("user_id"), body.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"damage_report": d})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	d, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"damage_report": d})
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or report not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the item owner or renter may access the damage report")
	case ErrBookingNotLive:
		response.Error(c, http.StatusConflict, "BOOKING_NOT_LIVE", "Damage reports require an active or completed booking")
	case ErrAlreadyReported:
		response.Error(c, http.StatusConflict, "ALREADY_REPORTED", "A damage report already exists for this booking")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
