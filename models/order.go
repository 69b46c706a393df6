package models

import (
	"encoding/json"
	"time"
)

// OrderTimeLayout matches the millisecond UTC timestamps written at checkout.
const OrderTimeLayout = "2006-01-02T15:04:05.000Z"

// Order rows keep the line items as an opaque JSON document.
type Order struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Email     string  `json:"email"`
	Items     string  `gorm:"type:text" json:"-"`
	Total     float64 `json:"total"`
	CreatedAt string  `gorm:"column:created_at" json:"created_at"`
}

// OrderView is an order with its items decoded for the admin listing.
type OrderView struct {
	ID        uint            `json:"id"`
	Email     string          `json:"email"`
	Items     json.RawMessage `json:"items"`
	Total     float64         `json:"total"`
	CreatedAt string          `json:"created_at"`
}

// View decodes Items best-effort; anything that is not valid JSON reads as an empty list.
func (o Order) View() OrderView {
	items := json.RawMessage("[]")
	if o.Items != "" && json.Valid([]byte(o.Items)) {
		items = json.RawMessage(o.Items)
	}
	return OrderView{
		ID:        o.ID,
		Email:     o.Email,
		Items:     items,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
}

// OrderTimestamp formats t the way order rows store created_at.
func OrderTimestamp(t time.Time) string {
	return t.UTC().Format(OrderTimeLayout)
}
