package recommend

import "testing"

func TestResolveCategoryIDPrefersNestedObject(t *testing.T) {
	t.Parallel()

	raw := RawOffer{
		Category:   &RawCategory{ID: "cat-nested"},
		CategoryID: "cat-flat",
	}
	if got := ResolveCategoryID(raw); got != "cat-nested" {
		t.Fatalf("expected nested id, got %s", got)
	}
}

func TestResolveCategoryIDFallsBackToFlatField(t *testing.T) {
	t.Parallel()

	raw := RawOffer{Category: &RawCategory{ID: "  "}, CategoryID: "cat-flat"}
	if got := ResolveCategoryID(raw); got != "cat-flat" {
		t.Fatalf("expected flat id, got %s", got)
	}
}

func TestResolveCategoryIDSentinel(t *testing.T) {
	t.Parallel()

	if got := ResolveCategoryID(RawOffer{}); got != UnknownCategoryID {
		t.Fatalf("expected sentinel, got %s", got)
	}
}

func TestNormalizeOfferResolvesOnce(t *testing.T) {
	t.Parallel()

	raw := RawOffer{
		ID:             "offer-1",
		VendorID:       "vendor-1",
		VendorName:     "Bloom Decor",
		CategoryID:     "cat-decor",
		Title:          "Floral Styling",
		BasePriceCents: 45000,
		AvgRating:      4.2,
		MatchPercent:   87,
		MatchReasons:   []string{"within budget", "serves your city"},
	}
	offer := NormalizeOffer(raw)
	if offer.CategoryID != "cat-decor" {
		t.Fatalf("unexpected category id: %s", offer.CategoryID)
	}
	if offer.MatchPercent != 87 || len(offer.MatchReasons) != 2 {
		t.Fatalf("match annotations lost: %+v", offer)
	}
}

func TestCategoryFromRawKeepsNames(t *testing.T) {
	t.Parallel()

	raw := RawOffer{Category: &RawCategory{ID: "cat-1", Name: "Venue & Location", Slug: "venue"}}
	cat := CategoryFromRaw(raw)
	if cat.ID != "cat-1" || cat.Name != "Venue & Location" || cat.Slug != "venue" {
		t.Fatalf("unexpected category: %+v", cat)
	}

	if got := CategoryFromRaw(RawOffer{}); got.ID != UnknownCategoryID {
		t.Fatalf("expected sentinel category, got %+v", got)
	}
}
