package routes

import (
	"net/http"

	controller "boutique-tailoring/controllers"

	"github.com/gin-gonic/gin"
)

// PublicUserRoutes are reachable without a token.
func PublicUserRoutes(incomingRoutes *gin.Engine, auth controller.AuthService, hub controller.WebsocketServer) {
	incomingRoutes.POST("/login", controller.Login(auth))
	incomingRoutes.GET("/ws", controller.HandleWebSocket(hub))
}

func UserRoutes(incomingRoutes *gin.Engine, svc controller.MasterService) {
	incomingRoutes.POST("/addMaster", controller.AddMaster(svc))
	incomingRoutes.GET("/getUsers", controller.GetUsers(svc))
	incomingRoutes.GET("/getUser", controller.GetUser(svc))
	handleMethods(incomingRoutes, []string{http.MethodPost, http.MethodPut}, "/updateUser", controller.UpdateUser(svc))
	handleMethods(incomingRoutes, []string{http.MethodDelete, http.MethodGet}, "/deleteUser", controller.DeleteUser(svc))
}
