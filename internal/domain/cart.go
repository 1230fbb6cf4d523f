package domain

import "time"

// Cart is a per-terminal-session cart. It is never authoritative for stock;
// stock is re-checked against the catalog on every mutation and at checkout.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is a single cart line. Name, brand, and price are snapshotted from
// the catalog when the item is added.
type CartItem struct {
	MedicineID string `json:"medicine_id"`
	Name       string `json:"name"`
	Brand      string `json:"brand,omitempty"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// TotalCents calculates the cart total at the captured prices.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

// TotalQuantity returns the total number of units in the cart.
func (c *Cart) TotalQuantity() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the line for the given medicine,
// or -1 if the cart has none.
func (c *Cart) FindItemIndex(medicineID string) int {
	for i := range c.Items {
		if c.Items[i].MedicineID == medicineID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
