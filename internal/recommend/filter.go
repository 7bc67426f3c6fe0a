package recommend

import "strings"

// Filters are the user-adjustable constraints applied to a result set.
// PriceMaxCents <= 0 means no upper bound.
type Filters struct {
	MinRating     float64 `json:"min_rating"`
	PriceMinCents int     `json:"price_min_cents"`
	PriceMaxCents int     `json:"price_max_cents"`
	Search        string  `json:"search"`
	Location      string  `json:"location"`
}

// ApplyFilters returns a new result set containing only offers that satisfy
// every filter. Categories left with zero offers are dropped from the mapping
// entirely; the frontend keys tab visibility off map presence.
func ApplyFilters(set ResultSet, filters Filters) ResultSet {
	if len(set) == 0 {
		return ResultSet{}
	}

	search := strings.ToLower(strings.TrimSpace(filters.Search))
	location := strings.ToLower(strings.TrimSpace(filters.Location))

	filtered := make(ResultSet, len(set))
	for slug, bucket := range set {
		var keep []VendorOffer
		for _, offer := range bucket.Vendors {
			if !matches(offer, filters, search, location) {
				continue
			}
			keep = append(keep, offer)
		}
		if len(keep) == 0 {
			continue
		}
		filtered[slug] = CategoryRecommendations{
			Category:       bucket.Category,
			Vendors:        keep,
			Total:          len(keep),
			TotalAvailable: bucket.TotalAvailable,
		}
	}
	return filtered
}

func matches(offer VendorOffer, filters Filters, search, location string) bool {
	if offer.AvgRating < filters.MinRating {
		return false
	}
	if offer.BasePriceCents < filters.PriceMinCents {
		return false
	}
	if filters.PriceMaxCents > 0 && offer.BasePriceCents > filters.PriceMaxCents {
		return false
	}
	if search != "" {
		title := strings.ToLower(offer.Title)
		vendor := strings.ToLower(offer.VendorName)
		if !strings.Contains(title, search) && !strings.Contains(vendor, search) {
			return false
		}
	}
	if location != "" && !servesLocation(offer.ServiceAreas, location) {
		return false
	}
	return true
}

func servesLocation(areas []string, location string) bool {
	for _, area := range areas {
		if strings.Contains(strings.ToLower(area), location) {
			return true
		}
	}
	return false
}

// FindOffer searches every category bucket for an offer id. Drag payloads only
// carry the id, so the category is recovered by scanning the full mapping.
func (s ResultSet) FindOffer(offerID string) (VendorOffer, CategoryRecommendations, bool) {
	for _, bucket := range s {
		for _, offer := range bucket.Vendors {
			if offer.ID == offerID {
				return offer, bucket, true
			}
		}
	}
	return VendorOffer{}, CategoryRecommendations{}, false
}
