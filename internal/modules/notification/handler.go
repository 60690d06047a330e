package notification

import (
	"log"
	"net/http"
	"strconv"

	"renthub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
	rg.POST("/notifications/:id/read", h.MarkRead)
	rg.POST("/notifications/read-all", h.MarkAllRead)
	rg.GET("/ws", h.WebSocket)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, unread, err := h.service.GetUserNotifications(c.Request.Context(), c.GetInt64("user_id"), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"unread_count":  unread,
	})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}
	if err := h.service.MarkAsRead(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notification")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "ok"})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllAsRead(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mark notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "ok"})
}

func (h *Handler) WebSocket(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if err := h.hub.ServeWS(c.Writer, c.Request, userID); err != nil {
		log.Printf("notification: websocket upgrade failed user_id=%d error=%v", userID, err)
	}
}
