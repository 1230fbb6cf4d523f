package domain

import "time"

// DefaultLowStockThreshold is the stock level below which a medicine counts
// as low stock.
const DefaultLowStockThreshold = 10

// DefaultExpiryHorizon is how far ahead the expiring-soon window looks.
const DefaultExpiryHorizon = 30 * 24 * time.Hour

// TotalStock sums the quantities of all medicines.
func TotalStock(medicines []Medicine) int {
	var total int
	for _, m := range medicines {
		total += m.Quantity
	}
	return total
}

// LowStock returns the medicines whose quantity is strictly below threshold.
// A record at exactly the threshold is not low.
func LowStock(medicines []Medicine, threshold int) []Medicine {
	var low []Medicine
	for _, m := range medicines {
		if m.Quantity < threshold {
			low = append(low, m)
		}
	}
	return low
}

// InventoryValueCents sums quantity times unit price across the catalog.
func InventoryValueCents(medicines []Medicine) int64 {
	var total int64
	for _, m := range medicines {
		total += int64(m.Quantity) * m.PriceCents
	}
	return total
}

// ExpiringSoon returns the medicines with an expiry date at or before
// now+horizon. Already-expired records are included; the dashboard treats
// anything past or near its date as needing attention.
func ExpiringSoon(medicines []Medicine, now time.Time, horizon time.Duration) []Medicine {
	cutoff := now.Add(horizon)
	var expiring []Medicine
	for _, m := range medicines {
		if m.ExpiryDate == nil {
			continue
		}
		if !m.ExpiryDate.After(cutoff) {
			expiring = append(expiring, m)
		}
	}
	return expiring
}
