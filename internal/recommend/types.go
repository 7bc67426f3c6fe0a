package recommend

import (
	"github.com/festivo/festivo-backend/internal/catalog"
)

// Criteria describes the event the customer is planning.
type Criteria struct {
	EventType            string   `json:"event_type"`
	EventDate            string   `json:"event_date"`
	GuestCount           int      `json:"guest_count"`
	BudgetCents          int64    `json:"budget_cents"`
	Location             string   `json:"location"`
	SelectedServiceSlugs []string `json:"selected_service_slugs"`
}

// VendorOffer is the canonical offer shape after ingestion. The category id
// fallback is resolved exactly once, in NormalizeOffer; nothing downstream
// re-reads the raw payload.
type VendorOffer struct {
	ID             string   `json:"id"`
	VendorID       string   `json:"vendor_id"`
	VendorName     string   `json:"vendor_name"`
	CategoryID     string   `json:"category_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	BasePriceCents int      `json:"base_price_cents"`
	AvgRating      float64  `json:"avg_rating"`
	ReviewCount    int      `json:"review_count"`
	MaxCapacity    int      `json:"max_capacity"`
	ServiceAreas   []string `json:"service_areas,omitempty"`
	Featured       bool     `json:"featured"`
	MatchPercent   int      `json:"match_percent"`
	MatchReasons   []string `json:"match_reasons,omitempty"`
}

// CategoryRecommendations is one ranked bucket of offers.
type CategoryRecommendations struct {
	Category       catalog.ServiceCategory `json:"category"`
	Vendors        []VendorOffer           `json:"vendors"`
	Total          int                     `json:"total"`
	TotalAvailable int                     `json:"total_available"`
}

// ResultSet maps category slugs to their ranked offers. Key presence drives
// which category tabs the frontend shows, so empty buckets are never kept.
type ResultSet map[string]CategoryRecommendations
