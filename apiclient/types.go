package apiclient

import (
	"encoding/json"
	"strings"
)

// AdminFlag decodes the users.is_admin column, which arrives as 0/1 or as a bool.
type AdminFlag bool

func (f *AdminFlag) UnmarshalJSON(data []byte) error {
	switch strings.Trim(strings.TrimSpace(string(data)), `"`) {
	case "1", "true":
		*f = true
	default:
		*f = false
	}
	return nil
}

type User struct {
	ID      uint      `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin AdminFlag `json:"is_admin"`
	Token   string    `json:"token,omitempty"`
}

type Product struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Img   string `json:"img,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

type ProductInput struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Img   string `json:"img"`
	Tag   string `json:"tag"`
}

type OrderItem struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Qty   int    `json:"qty"`
}

type OrderRequest struct {
	Email string      `json:"email"`
	Items []OrderItem `json:"items"`
	Total float64     `json:"total"`
}

type OrderReceipt struct {
	ID        uint   `json:"id"`
	CreatedAt string `json:"created_at"`
}

// Order is an admin view of a stored order. Items are kept raw because
// they are whatever the checkout client sent.
type Order struct {
	ID        uint            `json:"id"`
	Email     string          `json:"email"`
	Items     json.RawMessage `json:"items"`
	Total     float64         `json:"total"`
	CreatedAt string          `json:"created_at"`
}

// LineItems decodes Items as checkout line items, returning nil when they
// have another shape.
func (o Order) LineItems() []OrderItem {
	var items []OrderItem
	if err := json.Unmarshal(o.Items, &items); err != nil {
		return nil
	}
	return items
}
