package routes

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/controllers"
	"boutique-tailoring/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies is everything the HTTP surface needs.
type Dependencies struct {
	Log           *slog.Logger
	Orders        controllers.OrderService
	Purchases     controllers.PurchaseService
	Stores        controllers.StoreService
	Masters       controllers.MasterService
	Auth          controllers.AuthService
	Notifications controllers.NotificationService
	Hub           controllers.WebsocketServer
	// Tokens is nil when authentication is disabled.
	Tokens       middleware.TokenValidator
	UploadDir    string
	AllowOrigins []string
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(cors.New(corsConfig(deps.AllowOrigins)))

	router.Static("/uploads", deps.UploadDir)
	router.Static("/orders/uploads", filepath.Join(deps.UploadDir, "orders"))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Page not found", "errors": []apperrors.FieldError{}})
	})

	PublicUserRoutes(router, deps.Auth, deps.Hub)
	if deps.Tokens != nil {
		router.Use(middleware.Authentication(deps.Tokens))
	}
	OrderRoutes(router, deps.Orders)
	PurchaseRoutes(router, deps.Purchases)
	StoreRoutes(router, deps.Stores)
	UserRoutes(router, deps.Masters)
	NotificationRoutes(router, deps.Notifications)
	return router
}

// handleMethods registers one handler under several methods, for endpoints
// the admin app calls with more than one verb.
func handleMethods(r gin.IRoutes, methods []string, path string, h gin.HandlerFunc) {
	for _, m := range methods {
		r.Handle(m, path, h)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "token", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
