package catalog

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/items", h.ListItems)
	rg.GET("/items/:id", h.GetItem)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/items", h.CreateItem)
	rg.GET("/items/mine", h.MyItems)
	rg.PUT("/items/:id", h.UpdateItem)
	rg.POST("/items/:id/delist", h.Delist)
	rg.POST("/items/:id/relist", h.Relist)
	rg.DELETE("/items/:id", h.DeleteItem)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) GetItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": item})
}

func (h *Handler) ListItems(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.ListItems(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) MyItems(c *gin.Context) {
	items, err := h.service.MyItems(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": item})
}

func (h *Handler) Delist(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.service.Delist(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "item delisted"})
}

func (h *Handler) Relist(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.service.Relist(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "item relisted"})
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteItem(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "item deleted"})
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item id")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item data")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this item")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Item not found")
	case ErrItemHasRents:
		response.Error(c, http.StatusConflict, "ITEM_HAS_RENTS", "Item has approved or active bookings")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
