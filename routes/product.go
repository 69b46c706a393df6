package routes

import (
	productcontroller "github.com/Fausto-Grilo/VulnWebApp/controllers/product"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupProductRoutes registers all "/products/*" endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB, requireAdmin gin.HandlerFunc) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))

		// ─────────── Admin ───────────
		products.POST("", requireAdmin, productcontroller.CreateProduct(db))
		products.PUT("/:id", requireAdmin, productcontroller.UpdateProduct(db))
		products.DELETE("/:id", requireAdmin, productcontroller.DeleteProduct(db))
		products.GET("/export", requireAdmin, productcontroller.ExportProductsToExcel(db))
		products.POST("/import", requireAdmin, productcontroller.ImportProductsFromExcel(db))
	}
}
