package payment

import (
	"net/http"
	"strconv"

	"renthub/internal/modules/booking"
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
	rg.POST("/payments/orders", h.CreateOrder)
	rg.POST("/payments/:order_id/settle", h.Settle)
	rg.GET("/bookings/:id/payments", h.BookingPayments)
}

type createOrderBody struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type settleBody struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var body createOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "booking_id is required")
		return
	}

	p, err := h.service.CreateOrder(c.Request.Context(), body.BookingID, c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

func (h *Handler) Settle(c *gin.Context) {
	var body settleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Settle(c.Request.Context(), c.Param("order_id"), body.Success, body.TransactionID, body.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

func (h *Handler) BookingPayments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	list, err := h.service.GetBookingPayments(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": list})
}

func writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment or booking not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action")
	case ErrNotPayable:
		response.Error(c, http.StatusConflict, "NOT_PAYABLE", "Booking is not awaiting payment")
	case ErrAlreadySettled:
		response.Error(c, http.StatusConflict, "ALREADY_SETTLED", "Payment was already settled")
	case ErrSettlementConflict:
		response.Error(c, http.StatusConflict, "SETTLEMENT_CONFLICT", "Payment outcome recorded, but the booking already left the payable state")
	case booking.ErrConcurrency:
		response.Error(c, http.StatusConflict, "CONCURRENCY_CONFLICT", "Another operation on this item is in progress, retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
