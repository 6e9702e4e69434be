package controllers

import (
	"context"
	"net/http"
	"strconv"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/models"

	"github.com/gin-gonic/gin"
)

type NotificationService interface {
	ListForMaster(ctx context.Context, masterID int64, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

// GetNotifications lists a master's inbox; ?unread=true hides read entries.
func GetNotifications(svc NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		masterID, err := strconv.ParseInt(c.Param("master_id"), 10, 64)
		if err != nil {
			respondError(c, apperrors.NewValidation("master_id", "Invalid master_id: "+c.Param("master_id")))
			return
		}
		unread, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))

		items, err := svc.ListForMaster(c.Request.Context(), masterID, unread)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "notifications": items})
	}
}

func MarkNotificationRead(svc NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkRead(c.Request.Context(), c.Param("notification_id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
	}
}
