package routes

import (
	"github.com/Fausto-Grilo/VulnWebApp/config"
	userControllers "github.com/Fausto-Grilo/VulnWebApp/controllers/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/users/*" endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	users := r.Group("/users")
	{
		users.POST("/login", userControllers.Login(db, cfg.JWTSecret))
		users.POST("/register", userControllers.Register(db))
		users.POST("/logout", userControllers.Logout)
	}
}
