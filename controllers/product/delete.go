package productcontroller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Fausto-Grilo/VulnWebApp/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DELETE /products/:id (admin)
// Deleting an unknown id still answers "Deleted".
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid product ID")
			return
		}

		if err := db.Delete(&models.Product{}, id).Error; err != nil {
			log.Println("❌ Failed to delete product:", err)
			c.String(http.StatusInternalServerError, "Failed to delete product")
			return
		}
		c.String(http.StatusOK, "Deleted")
	}
}
