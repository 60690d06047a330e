package booking

import (
	"net/http"
	"strconv"
	"time"

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
	rg.POST("/items/:id/bookings", h.RequestBooking)
	rg.GET("/items/:id/availability", h.CheckAvailability)
	rg.GET("/bookings/my", h.MyBookings)
	rg.GET("/bookings/owner", h.OwnerBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id/dates", h.UpdateDates)
	rg.POST("/bookings/:id/approve", h.Approve)
	rg.POST("/bookings/:id/reject", h.Reject)
	rg.POST("/bookings/:id/return", h.Return)
	rg.DELETE("/bookings/:id", h.Cancel)
}

func (h *Handler) RequestBooking(c *gin.Context) {
	itemID, ok := paramID(c)
	if !ok {
		return
	}

	var body dateRangeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	start, end, ok := parseRange(c, body)
	if !ok {
		return
	}

	b, err := h.service.RequestBooking(c.Request.Context(), CreateBookingRequest{
		ItemID:    itemID,
		RenterID:  c.GetInt64("user_id"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	itemID, ok := paramID(c)
	if !ok {
		return
	}
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end must be YYYY-MM-DD")
		return
	}

	free, err := h.service.Calendar().IsFree(c.Request.Context(), itemID, DateOnly(start), DateOnly(end))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item_id": itemID, "is_free": free})
}

func (h *Handler) MyBookings(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.service.GetMyBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) OwnerBookings(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.service.GetOwnerBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateDates(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var body dateRangeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	start, end, ok := parseRange(c, body)
	if !ok {
		return
	}

	b, err := h.service.UpdateDates(c.Request.Context(), id, c.GetInt64("user_id"), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.service.Approve(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var body rejectBody
	_ = c.ShouldBindJSON(&body)

	b, err := h.service.Reject(c.Request.Context(), id, c.GetInt64("user_id"), body.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Return(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.service.Complete(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	_, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "booking cancelled"})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseRange(c *gin.Context, body dateRangeBody) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", body.EndDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end_date must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func writeServiceError(c *gin.Context, err error) {
	switch err {
	case ErrDateRange:
		response.Error(c, http.StatusBadRequest, "INVALID_DATE_RANGE", "Invalid booking date range")
	case ErrItemUnavailable:
		response.Error(c, http.StatusConflict, "ITEM_UNAVAILABLE", "Item is not available for booking")
	case ErrInvalidTransition:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking is not in a state that permits this action")
	case ErrConcurrency:
		response.Error(c, http.StatusConflict, "CONCURRENCY_CONFLICT", "Another operation on this item is in progress, retry")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or item not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
