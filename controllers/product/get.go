package productcontroller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Fausto-Grilo/VulnWebApp/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /products
// Newest first.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := []models.Product{}
		if err := db.Order("id DESC").Find(&products).Error; err != nil {
			log.Println("❌ Failed to fetch products:", err)
			c.String(http.StatusInternalServerError, "Failed to load products")
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid product ID")
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.String(http.StatusNotFound, "Product not found")
			} else {
				c.String(http.StatusInternalServerError, "Failed to retrieve product")
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
