package orderControllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Fausto-Grilo/VulnWebApp/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// -------- Request Structs --------

// PlaceOrderRequest mirrors the checkout payload. Items are stored as sent.
type PlaceOrderRequest struct {
	Email string             `json:"email"`
	Items *[]json.RawMessage `json:"items"`
	Total json.RawMessage    `json:"total"`
}

// -------- Helpers --------

// parseTotal accepts a JSON number or numeric string; anything else is 0.
func parseTotal(raw json.RawMessage) float64 {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return 0
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// -------- Handlers --------

// POST /orders
func PlaceOrderHandler(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Items == nil {
			c.String(http.StatusBadRequest, "email and items required")
			return
		}

		itemsJSON, err := json.Marshal(*req.Items)
		if err != nil {
			c.String(http.StatusBadRequest, "email and items required")
			return
		}

		order := models.Order{
			Email:     req.Email,
			Items:     string(itemsJSON),
			Total:     parseTotal(req.Total),
			CreatedAt: models.OrderTimestamp(time.Now()),
		}
		if err := db.Create(&order).Error; err != nil {
			log.Println("❌ Failed to save order:", err)
			c.String(http.StatusInternalServerError, "Failed to save order")
			return
		}

		if hub != nil {
			hub.BroadcastNewOrder(order.View())
		}
		c.JSON(http.StatusOK, gin.H{"id": order.ID, "created_at": order.CreatedAt})
	}
}

// GET /orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Order("id DESC").Find(&orders).Error; err != nil {
			log.Println("❌ Failed to load orders:", err)
			c.String(http.StatusInternalServerError, "Failed to load orders")
			return
		}

		views := make([]models.OrderView, 0, len(orders))
		for _, o := range orders {
			views = append(views, o.View())
		}
		c.JSON(http.StatusOK, views)
	}
}

// GET /orders/export (admin)
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Order("id DESC").Find(&orders).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load orders")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to create Excel sheet")
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range []string{"ID", "Email", "Items", "Total", "CreatedAt"} {
			headerRow.AddCell().SetString(h)
		}
		for _, o := range orders {
			v := o.View()
			row := sheet.AddRow()
			row.AddCell().SetInt(int(v.ID))
			row.AddCell().SetString(v.Email)
			row.AddCell().SetString(string(v.Items))
			row.AddCell().SetFloat(v.Total)
			row.AddCell().SetString(v.CreatedAt)
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Println("❌ Failed to write orders workbook:", err)
		}
	}
}
