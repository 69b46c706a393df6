package routes

import (
	orderControllers "github.com/Fausto-Grilo/VulnWebApp/controllers/order"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, hub *orderControllers.Hub, requireAdmin gin.HandlerFunc) {
	orders := r.Group("/orders")
	{
		// Create a new order (checkout)
		orders.POST("", orderControllers.PlaceOrderHandler(db, hub))

		// ─────────── Admin ───────────
		orders.GET("", requireAdmin, orderControllers.GetAllOrdersHandler(db))
		orders.GET("/export", requireAdmin, orderControllers.ExportOrdersToExcel(db))
		// websocket endpoint for real-time order updates
		orders.GET("/ws", requireAdmin, hub.OrderWebSocketHandler())
	}
}
