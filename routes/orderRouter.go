package routes

import (
	"net/http"

	"boutique-tailoring/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine, svc controllers.OrderService) {
	orders := incomingRoutes.Group("/orders")
	orders.POST("/addCustomer", controllers.CreateOrder(svc))
	handleMethods(orders, []string{http.MethodGet, http.MethodPost}, "/getOrdersById", controllers.GetOrder(svc))
	orders.GET("/getOrders", controllers.GetOrders(svc))
	orders.GET("/getCustomerData", controllers.GetCustomerData(svc))
	orders.POST("/updateOrderField", controllers.UpdateOrderField(svc))
	orders.POST("/updateParticulars", controllers.UpdateParticular(svc))
}
