package routes

import (
	"time"

	"github.com/Fausto-Grilo/VulnWebApp/config"
	orderControllers "github.com/Fausto-Grilo/VulnWebApp/controllers/order"
	"github.com/Fausto-Grilo/VulnWebApp/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter builds the engine with logging, recovery, request ids and CORS.
func NewRouter(db *gorm.DB, cfg *config.Config, hub *orderControllers.Hub) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	SetupRoutes(r, db, cfg, hub)
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.AdminHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// reflect whatever origin asked
		c.AllowOriginFunc = func(string) bool { return true }
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// SetupRoutes is the single entry-point that wires up user, product and order routes.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *orderControllers.Hub) {
	requireAdmin := middleware.RequireAdmin(cfg.AdminMarker, cfg.JWTSecret)

	// 1️⃣ Public account routes
	SetupUserRoutes(r, db, cfg)

	// 2️⃣ Catalog; mutations are admin-gated
	SetupProductRoutes(r, db, requireAdmin)

	// 3️⃣ Checkout and admin order views
	SetupOrderRoutes(r, db, hub, requireAdmin)
}
