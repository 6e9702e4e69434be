package routes

import (
	"boutique-tailoring/controllers"

	"github.com/gin-gonic/gin"
)

func NotificationRoutes(incomingRoutes *gin.Engine, svc controllers.NotificationService) {
	incomingRoutes.GET("/notifications/master/:master_id", controllers.GetNotifications(svc))
	incomingRoutes.PATCH("/notifications/read/:notification_id", controllers.MarkNotificationRead(svc))
}
