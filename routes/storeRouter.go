package routes

import (
	"net/http"

	"boutique-tailoring/controllers"

	"github.com/gin-gonic/gin"
)

func StoreRoutes(incomingRoutes *gin.Engine, svc controllers.StoreService) {
	stores := incomingRoutes.Group("/stores")
	stores.POST("/addStore", controllers.AddStore(svc))
	stores.GET("/getStores", controllers.GetStores(svc))
	handleMethods(stores, []string{http.MethodPut, http.MethodPost}, "/updateStore", controllers.UpdateStore(svc))
	handleMethods(stores, []string{http.MethodDelete, http.MethodGet}, "/deleteStore", controllers.DeleteStore(svc))
}
