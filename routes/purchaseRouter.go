package routes

import (
	"boutique-tailoring/controllers"

	"github.com/gin-gonic/gin"
)

func PurchaseRoutes(incomingRoutes *gin.Engine, svc controllers.PurchaseService) {
	purchase := incomingRoutes.Group("/purchase")
	purchase.POST("/addPurchases", controllers.CreatePurchase(svc))
	purchase.GET("/viewPurchases", controllers.ViewPurchases(svc))
}
