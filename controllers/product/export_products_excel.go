package productcontroller

import (
	"log"
	"net/http"

	"github.com/Fausto-Grilo/VulnWebApp/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// Column order shared by export and import.
var productColumns = []string{"ID", "Name", "Price", "Img", "Tag"}

// GET /products/export (admin)
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("id DESC").Find(&products).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to create Excel sheet")
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range productColumns {
			headerRow.AddCell().SetString(h)
		}
		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetInt(int(p.ID))
			row.AddCell().SetString(p.Name)
			row.AddCell().SetString(p.Price)
			row.AddCell().SetString(p.Img)
			row.AddCell().SetString(p.Tag)
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Println("❌ Failed to write products workbook:", err)
		}
	}
}
