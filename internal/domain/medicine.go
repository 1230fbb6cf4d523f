package domain

import "time"

// Suggested medicine categories. The catalog accepts free text; these cover
// the common shelves a small pharmacy stocks.
const (
	CategoryAntibiotics = "Antibiotics"
	CategoryPainRelief  = "Pain Relief"
	CategoryVitamins    = "Vitamins"
	CategoryColdFlu     = "Cold & Flu"
	CategoryDigestive   = "Digestive Health"
	CategoryHeartBP     = "Heart & Blood Pressure"
	CategoryDiabetes    = "Diabetes"
	CategorySkinCare    = "Skin Care"
	CategoryEyeCare     = "Eye Care"
	CategoryOther       = "Other"
)

// SuggestedCategories returns the category values the catalog UI offers.
// The set is advisory, not enforced.
func SuggestedCategories() []string {
	return []string{
		CategoryAntibiotics, CategoryPainRelief, CategoryVitamins, CategoryColdFlu,
		CategoryDigestive, CategoryHeartBP, CategoryDiabetes, CategorySkinCare,
		CategoryEyeCare, CategoryOther,
	}
}

// Medicine is a catalog record. Quantity is the persisted stock level and is
// never negative after any operation.
type Medicine struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Brand      string     `json:"brand,omitempty"`
	Category   string     `json:"category,omitempty"`
	Quantity   int        `json:"quantity"`
	PriceCents int64      `json:"price_cents"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ExpiryState classifies a medicine's expiry date relative to a point in time.
type ExpiryState string

const (
	ExpiryExpired  ExpiryState = "expired"
	ExpiryExpiring ExpiryState = "expiring"
	ExpiryFresh    ExpiryState = "fresh"
	ExpiryNone     ExpiryState = "none"
)

// ExpiryStatus returns the per-record expiry classification used by the
// catalog table: expired when the date is before now, expiring when it falls
// within the horizon (inclusive), fresh beyond it, none without a date.
//
// Note the dashboard's ExpiringSoon set deliberately disagrees with this
// view: it includes already-expired records.
func (m *Medicine) ExpiryStatus(now time.Time, horizon time.Duration) ExpiryState {
	if m.ExpiryDate == nil {
		return ExpiryNone
	}
	switch {
	case m.ExpiryDate.Before(now):
		return ExpiryExpired
	case m.ExpiryDate.After(now.Add(horizon)):
		return ExpiryFresh
	default:
		return ExpiryExpiring
	}
}
