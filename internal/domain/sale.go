package domain

// Commit modes for the sale processor.
const (
	// CommitModeSequential applies lines one at a time in request order and
	// stops at the first failure, leaving earlier lines applied.
	CommitModeSequential = "sequential"
	// CommitModeAtomic applies all lines in a single transaction.
	CommitModeAtomic = "atomic"
)

// SaleRequest is an ordered list of lines to sell, with optional customer
// details carried through untouched.
type SaleRequest struct {
	Lines         []SaleLine `json:"lines"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
}

// SaleLine is one line of a sale. PriceCents is the price captured when the
// item entered the cart, not the current catalog price.
type SaleLine struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// SaleSummary reports a completed sale.
type SaleSummary struct {
	SaleID     string           `json:"sale_id"`
	TotalItems int              `json:"total_items"`
	TotalCents int64            `json:"total_cents"`
	Lines      []SaleResultLine `json:"lines"`
	CommitMode string           `json:"commit_mode"`
}

// SaleResultLine is one applied line with the stock level it left behind.
type SaleResultLine struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
	Remaining  int    `json:"remaining"`
}

// TotalItems sums the requested quantities.
func (r *SaleRequest) TotalItems() int {
	var total int
	for _, l := range r.Lines {
		total += l.Quantity
	}
	return total
}

// TotalCents sums price times quantity at the captured prices.
func (r *SaleRequest) TotalCents() int64 {
	var total int64
	for _, l := range r.Lines {
		total += l.PriceCents * int64(l.Quantity)
	}
	return total
}
