package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sociogram/internal/repository"
	"sociogram/internal/services"
	"sociogram/internal/utils"
	"sociogram/pkg/logger"
)

// NotificationHandler exposes the notification center and preference endpoints.
type NotificationHandler struct {
	notificationService services.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger.NewComponentLogger("NotificationHandler"),
	}
}

type updatePreferencesRequest struct {
	Settings map[string]bool `json:"settings" binding:"required"`
}

// GetNotifications handles GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := &repository.NotificationFilter{
		Type:       c.Query("type"),
		UnreadOnly: c.Query("unread") == "true",
	}
	params := utils.GetPaginationParams(c)

	result, err := h.notificationService.GetNotifications(c.Request.Context(), userID, filter, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, http.StatusOK, "Notifications retrieved", result.Data, &utils.Meta{
		Pagination: result.Pagination,
		Total:      result.TotalCount,
	})
}

// GetCounts handles GET /notifications/counts
func (h *NotificationHandler) GetCounts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	counts, err := h.notificationService.GetNotificationCounts(c.Request.Context(), userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Counts retrieved", counts)
}

// MarkAsRead handles PUT /notifications/:notification_id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notificationID, err := primitive.ObjectIDFromHex(c.Param("notification_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkAsRead(c.Request.Context(), notificationID, userID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllAsRead handles PUT /notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All notifications marked as read", gin.H{"updated": updated})
}

// DeleteNotification handles DELETE /notifications/:notification_id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notificationID, err := primitive.ObjectIDFromHex(c.Param("notification_id"))
	if err != nil {
		utils.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.DeleteNotification(c.Request.Context(), notificationID, userID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification deleted", nil)
}

// ClearAll handles DELETE /notifications
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	deleted, err := h.notificationService.ClearAll(c.Request.Context(), userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notifications cleared", gin.H{"deleted": deleted})
}

// GetPreferences handles GET /notifications/preferences
func (h *NotificationHandler) GetPreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	prefs, err := h.notificationService.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Preferences retrieved", prefs)
}

// UpdatePreferences handles PUT /notifications/preferences
func (h *NotificationHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Settings are required")
		return
	}

	prefs, err := h.notificationService.UpdatePreferences(c.Request.Context(), userID, req.Settings)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Preferences updated", prefs)
}
