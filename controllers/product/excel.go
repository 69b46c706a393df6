package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Fausto-Grilo/VulnWebApp/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// POST /products/import (admin)
// Reads a workbook laid out like the export. Rows with a known ID update
// that product; other rows are inserted. Rows without name or price are skipped.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.String(http.StatusBadRequest, "Excel file is required")
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to open Excel file")
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.String(http.StatusBadRequest, "Failed to parse Excel file")
			return
		}
		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.String(http.StatusBadRequest, "Excel file is empty or missing header row")
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < len(sheet.Rows); i++ {
			row := sheet.Rows[i]
			get := func(index int) string {
				if row != nil && index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			product := models.Product{
				Name:  get(1),
				Price: get(2),
				Img:   get(3),
				Tag:   get(4),
			}
			if product.Name == "" || product.Price == "" {
				skippedCount++
				continue
			}

			if id, err := strconv.ParseUint(get(0), 10, 64); err == nil {
				var existing models.Product
				if err := db.Select("id").First(&existing, id).Error; err == nil {
					product.ID = existing.ID
					if err := db.Save(&product).Error; err == nil {
						updatedCount++
					} else {
						skippedCount++
					}
					continue
				}
			}

			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
