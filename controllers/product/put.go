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

// PUT /products/:id (admin)
// Every column is overwritten; missing img/tag become empty strings.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid product ID")
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.String(http.StatusBadRequest, "Invalid product body")
			return
		}

		var product models.Product
		if err := db.Select("id").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.String(http.StatusNotFound, "Product not found")
			} else {
				c.String(http.StatusInternalServerError, "Failed to update product")
			}
			return
		}

		if err := db.Model(&product).Updates(map[string]interface{}{
			"name":  input.Name,
			"price": input.Price,
			"img":   input.Img,
			"tag":   input.Tag,
		}).Error; err != nil {
			log.Println("❌ Failed to update product:", err)
			c.String(http.StatusInternalServerError, "Failed to update product")
			return
		}
		c.String(http.StatusOK, "Updated")
	}
}
