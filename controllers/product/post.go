package productcontroller

import (
	"log"
	"net/http"

	"github.com/Fausto-Grilo/VulnWebApp/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProductInput is the admin create/update body.
type ProductInput struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Img   string `json:"img"`
	Tag   string `json:"tag"`
}

// POST /products (admin)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" || input.Price == "" {
			c.String(http.StatusBadRequest, "name and price required")
			return
		}

		product := models.Product{
			Name:  input.Name,
			Price: input.Price,
			Img:   input.Img,
			Tag:   input.Tag,
		}
		if err := db.Create(&product).Error; err != nil {
			log.Println("❌ Failed to create product:", err)
			c.String(http.StatusInternalServerError, "Failed to create product")
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": product.ID})
	}
}
