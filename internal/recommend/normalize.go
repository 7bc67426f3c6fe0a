package recommend

import (
	"strings"

	"github.com/festivo/festivo-backend/internal/catalog"
)

// UnknownCategoryID is the sentinel used when the upstream payload carries no
// resolvable category identifier at all.
const UnknownCategoryID = "unknown"

// RawOffer mirrors the loose shape the recommendation service emits. Category
// identity arrives in one of two places depending on which upstream code path
// produced the offer, hence the fallback in ResolveCategoryID.
type RawOffer struct {
	ID             string       `json:"id"`
	VendorID       string       `json:"vendor_id"`
	VendorName     string       `json:"vendor_name"`
	Category       *RawCategory `json:"category,omitempty"`
	CategoryID     string       `json:"category_id,omitempty"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	BasePriceCents int          `json:"base_price_cents"`
	AvgRating      float64      `json:"avg_rating"`
	ReviewCount    int          `json:"review_count"`
	MaxCapacity    int          `json:"max_capacity"`
	ServiceAreas   []string     `json:"service_areas,omitempty"`
	Featured       bool         `json:"featured"`
	MatchPercent   int          `json:"match_percent"`
	MatchReasons   []string     `json:"match_reasons,omitempty"`
}

// RawCategory is the optional nested category object on an offer payload.
type RawCategory struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// ResolveCategoryID applies the three-tier fallback: nested category object id,
// then the offer's own category_id field, then the unknown sentinel.
func ResolveCategoryID(raw RawOffer) string {
	if raw.Category != nil && strings.TrimSpace(raw.Category.ID) != "" {
		return strings.TrimSpace(raw.Category.ID)
	}
	if trimmed := strings.TrimSpace(raw.CategoryID); trimmed != "" {
		return trimmed
	}
	return UnknownCategoryID
}

// NormalizeOffer converts an upstream offer into the canonical shape.
func NormalizeOffer(raw RawOffer) VendorOffer {
	return VendorOffer{
		ID:             raw.ID,
		VendorID:       raw.VendorID,
		VendorName:     raw.VendorName,
		CategoryID:     ResolveCategoryID(raw),
		Title:          raw.Title,
		Description:    raw.Description,
		BasePriceCents: raw.BasePriceCents,
		AvgRating:      raw.AvgRating,
		ReviewCount:    raw.ReviewCount,
		MaxCapacity:    raw.MaxCapacity,
		ServiceAreas:   raw.ServiceAreas,
		Featured:       raw.Featured,
		MatchPercent:   raw.MatchPercent,
		MatchReasons:   raw.MatchReasons,
	}
}

// CategoryFromRaw builds the best-available category object for an offer,
// used when the offer is selected outside a fetched result set.
func CategoryFromRaw(raw RawOffer) catalog.ServiceCategory {
	resolved := ResolveCategoryID(raw)
	cat := catalog.ServiceCategory{ID: resolved}
	if raw.Category != nil {
		cat.Name = raw.Category.Name
		cat.Slug = raw.Category.Slug
	}
	return cat
}
