package storefront

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/Fausto-Grilo/VulnWebApp/apiclient"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Img   string `json:"img,omitempty"`
	Qty   int    `json:"qty"`
}

// Cart is the list of pending line items, one per product id. Every
// mutation is written through to CartKey.
type Cart struct {
	mu      sync.Mutex
	items   []CartItem
	store   Storage
	notices *Notifier
}

// NewCart rehydrates the cart from store. Absent or unreadable data gives an
// empty cart.
func NewCart(store Storage, notices *Notifier) *Cart {
	c := &Cart{store: store, notices: notices}
	c.items = loadCart(store)
	return c
}

func loadCart(store Storage) []CartItem {
	raw, ok := store.Get(CartKey)
	if !ok {
		return nil
	}
	var items []CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	kept := items[:0]
	for _, it := range items {
		if it.Qty >= 1 {
			kept = append(kept, it)
		}
	}
	return kept
}

// Add merges qty of p into the cart. Quantities below one count as one.
func (c *Cart) Add(p apiclient.Product, qty int) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, CartItem{ID: p.ID, Name: p.Name, Price: p.Price, Img: p.Img, Qty: qty})
	}
	c.persistLocked()
	c.mu.Unlock()

	if c.notices != nil {
		c.notices.Show(p.Name + " added to cart")
	}
}

// ChangeQuantity sets the quantity of id; qty <= 0 removes it.
func (c *Cart) ChangeQuantity(id uint, qty int) {
	if qty <= 0 {
		c.Remove(id)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Qty = qty
		}
	}
	c.persistLocked()
}

func (c *Cart) Remove(id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, it := range c.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.persistLocked()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persistLocked()
}

// purge empties the cart and drops its stored copy.
func (c *Cart) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	_ = c.store.Remove(CartKey)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		n += it.Qty
	}
	return n
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalOf(c.items)
}

func totalOf(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(PriceValue(it.Price).Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return total
}

// PriceValue reads the number in a free-text price such as "$24.50".
// Everything except digits and dots is dropped first; what is left must
// parse as a decimal or the price counts as zero.
func PriceValue(price string) decimal.Decimal {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, price)
	v, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// persistLocked writes the cart; storage errors leave the in-memory cart
// authoritative.
func (c *Cart) persistLocked() {
	items := c.items
	if items == nil {
		items = []CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.store.Set(CartKey, string(data))
}
