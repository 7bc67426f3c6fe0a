package packages

import (
	"time"

	"github.com/google/uuid"

	"github.com/festivo/festivo-backend/internal/catalog"
	"github.com/festivo/festivo-backend/internal/pricing"
	"github.com/festivo/festivo-backend/internal/recommend"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

// PackageItem is one chosen offer bound to its category.
type PackageItem struct {
	ID             uuid.UUID         `json:"id"`
	CategoryID     string            `json:"category_id"`
	CategoryName   string            `json:"category_name,omitempty"`
	OfferID        string            `json:"offer_id"`
	VendorID       string            `json:"vendor_id,omitempty"`
	VendorName     string            `json:"vendor_name,omitempty"`
	Title          string            `json:"title"`
	UnitPriceCents int               `json:"unit_price_cents"`
	Quantity       int               `json:"quantity"`
	LineTotalCents int               `json:"line_total_cents"`
	Customizations map[string]string `json:"customizations,omitempty"`
	AddedAt        time.Time         `json:"added_at"`
}

// Package aggregates the selected items and their derived totals.
type Package struct {
	ID        uuid.UUID      `json:"id"`
	Items     []PackageItem  `json:"items"`
	Totals    pricing.Totals `json:"totals"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store owns the mutable state of one in-progress package. It is not safe for
// concurrent use; the owning service serializes access.
type Store struct {
	policy pricing.Policy
	pkg    Package
}

// NewStore creates an empty package.
func NewStore(policy pricing.Policy) *Store {
	now := time.Now().UTC()
	return &Store{
		policy: policy,
		pkg: Package{
			ID:        uuid.New(),
			Items:     []PackageItem{},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// AddItem selects an offer for its category. An existing item for the same
// category is removed first, so the package never holds two items for one
// category; the replacement lands at the end of the item list.
func (s *Store) AddItem(offer recommend.VendorOffer, category catalog.ServiceCategory) (Package, error) {
	if offer.ID == "" {
		return Package{}, pkgerrors.New(pkgerrors.CodeInvalidArgument, "offer is required")
	}
	if category.ID == "" {
		return Package{}, pkgerrors.New(pkgerrors.CodeInvalidArgument, "category is required")
	}

	lineTotal, err := pricing.LineTotalCents(offer.BasePriceCents, 1)
	if err != nil {
		return Package{}, err
	}

	kept := s.pkg.Items[:0]
	for _, item := range s.pkg.Items {
		if item.CategoryID != category.ID {
			kept = append(kept, item)
		}
	}

	item := PackageItem{
		ID:             uuid.New(),
		CategoryID:     category.ID,
		CategoryName:   category.Name,
		OfferID:        offer.ID,
		VendorID:       offer.VendorID,
		VendorName:     offer.VendorName,
		Title:          offer.Title,
		UnitPriceCents: offer.BasePriceCents,
		Quantity:       1,
		LineTotalCents: lineTotal,
		AddedAt:        time.Now().UTC(),
	}
	s.pkg.Items = append(kept, item)
	s.recompute()
	return s.Snapshot(), nil
}

// RemoveItem deletes the item with the given id. Removing an absent item is a
// no-op, not an error.
func (s *Store) RemoveItem(itemID uuid.UUID) Package {
	kept := s.pkg.Items[:0]
	for _, item := range s.pkg.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.pkg.Items = kept
	s.recompute()
	return s.Snapshot()
}

// Clear empties the package.
func (s *Store) Clear() Package {
	s.pkg.Items = s.pkg.Items[:0]
	s.recompute()
	return s.Snapshot()
}

// Snapshot returns a copy safe to hand to callers.
func (s *Store) Snapshot() Package {
	out := s.pkg
	out.Items = make([]PackageItem, len(s.pkg.Items))
	copy(out.Items, s.pkg.Items)
	return out
}

// ID returns the package id.
func (s *Store) ID() uuid.UUID {
	return s.pkg.ID
}

// Totals are recomputed from scratch on every mutation; nothing increments
// them in place.
func (s *Store) recompute() {
	lines := make([]int, len(s.pkg.Items))
	for i, item := range s.pkg.Items {
		lines[i] = item.LineTotalCents
	}
	s.pkg.Totals = s.policy.Compute(lines)
	s.pkg.UpdatedAt = time.Now().UTC()
}
