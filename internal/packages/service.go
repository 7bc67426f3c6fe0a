package packages

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/festivo/festivo-backend/internal/catalog"
	"github.com/festivo/festivo-backend/internal/pricing"
	"github.com/festivo/festivo-backend/internal/recommend"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

// Service owns the live package stores and the recommendation view feeding
// them. One instance serves the API process; packages are in-memory state,
// with an optional snapshot cache preserving the last written copy.
type Service interface {
	CreatePackage(ctx context.Context) Package
	GetPackage(ctx context.Context, id uuid.UUID) (Package, error)
	SelectOffer(ctx context.Context, packageID uuid.UUID, raw recommend.RawOffer) (Package, error)
	DropOffer(ctx context.Context, packageID uuid.UUID, offerID string) (Package, error)
	RemoveItem(ctx context.Context, packageID, itemID uuid.UUID) (Package, error)
	ClearItems(ctx context.Context, packageID uuid.UUID) (Package, error)
	Search(ctx context.Context, criteria recommend.Criteria, filters recommend.Filters) (recommend.ResultSet, error)
	Retry(ctx context.Context, filters recommend.Filters) (recommend.ResultSet, error)
}

// SnapshotCache persists package snapshots outside the process so a restarted
// API can still show the last known state of a package. Writes are best effort;
// the in-memory registry stays authoritative for mutations.
type SnapshotCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	PackageKey(packageID string) string
}

const snapshotCacheTTL = 24 * time.Hour

type service struct {
	policy  pricing.Policy
	fetcher *recommend.Fetcher
	cache   SnapshotCache

	mu     sync.Mutex
	stores map[uuid.UUID]*Store
}

// Option configures optional service behavior.
type Option func(*service)

// WithSnapshotCache enables snapshot persistence.
func WithSnapshotCache(cache SnapshotCache) Option {
	return func(s *service) {
		s.cache = cache
	}
}

// NewService builds the package-builder service.
func NewService(policy pricing.Policy, fetcher *recommend.Fetcher, opts ...Option) (Service, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("recommendation fetcher required")
	}
	svc := &service{
		policy:  policy,
		fetcher: fetcher,
		stores:  map[uuid.UUID]*Store{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

func (s *service) CreatePackage(ctx context.Context) Package {
	s.mu.Lock()
	store := NewStore(s.policy)
	s.stores[store.ID()] = store
	pkg := store.Snapshot()
	s.mu.Unlock()

	s.cacheSnapshot(ctx, pkg)
	return pkg
}

// GetPackage serves from the live registry; when the package is unknown, for
// example after a restart, the cached snapshot is returned read-only.
func (s *service) GetPackage(ctx context.Context, id uuid.UUID) (Package, error) {
	s.mu.Lock()
	store, ok := s.stores[id]
	s.mu.Unlock()
	if ok {
		return store.Snapshot(), nil
	}

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, s.cache.PackageKey(id.String()))
		if err == nil {
			var pkg Package
			if decodeErr := json.Unmarshal([]byte(raw), &pkg); decodeErr == nil {
				return pkg, nil
			}
		}
	}
	return Package{}, pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
}

// SelectOffer adds the offer to the package. The category is resolved from the
// raw payload by the normalization adapter; when the current recommendation
// view knows the category it supplies the richer catalog object.
func (s *service) SelectOffer(ctx context.Context, packageID uuid.UUID, raw recommend.RawOffer) (Package, error) {
	offer := recommend.NormalizeOffer(raw)
	category := s.resolveCategory(raw, offer)

	s.mu.Lock()
	store, ok := s.stores[packageID]
	if !ok {
		s.mu.Unlock()
		return Package{}, pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
	}
	pkg, err := store.AddItem(offer, category)
	s.mu.Unlock()
	if err != nil {
		return Package{}, err
	}

	s.cacheSnapshot(ctx, pkg)
	return pkg, nil
}

// DropOffer resolves a drag-and-drop payload, which carries only the offer id,
// by scanning every category bucket in the current view.
func (s *service) DropOffer(ctx context.Context, packageID uuid.UUID, offerID string) (Package, error) {
	offer, bucket, ok := s.fetcher.FindOffer(offerID)
	if !ok {
		return Package{}, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found in current recommendations")
	}

	s.mu.Lock()
	store, found := s.stores[packageID]
	if !found {
		s.mu.Unlock()
		return Package{}, pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
	}
	pkg, err := store.AddItem(offer, bucket.Category)
	s.mu.Unlock()
	if err != nil {
		return Package{}, err
	}

	s.cacheSnapshot(ctx, pkg)
	return pkg, nil
}

func (s *service) RemoveItem(ctx context.Context, packageID, itemID uuid.UUID) (Package, error) {
	s.mu.Lock()
	store, ok := s.stores[packageID]
	if !ok {
		s.mu.Unlock()
		return Package{}, pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
	}
	pkg := store.RemoveItem(itemID)
	s.mu.Unlock()

	s.cacheSnapshot(ctx, pkg)
	return pkg, nil
}

func (s *service) ClearItems(ctx context.Context, packageID uuid.UUID) (Package, error) {
	s.mu.Lock()
	store, ok := s.stores[packageID]
	if !ok {
		s.mu.Unlock()
		return Package{}, pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
	}
	pkg := store.Clear()
	s.mu.Unlock()

	s.cacheSnapshot(ctx, pkg)
	return pkg, nil
}

// Search refreshes the recommendation view for the criteria and applies the
// user filters to it.
func (s *service) Search(ctx context.Context, criteria recommend.Criteria, filters recommend.Filters) (recommend.ResultSet, error) {
	set, err := s.fetcher.Refresh(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return recommend.ApplyFilters(set, filters), nil
}

// Retry re-runs the last search, preserving the retry affordance the UI shows
// on an empty or failed view.
func (s *service) Retry(ctx context.Context, filters recommend.Filters) (recommend.ResultSet, error) {
	set, err := s.fetcher.Retry(ctx)
	if err != nil {
		return nil, err
	}
	return recommend.ApplyFilters(set, filters), nil
}

// cacheSnapshot writes the snapshot through to the cache. A failed write is
// dropped; the registry copy is still correct.
func (s *service) cacheSnapshot(ctx context.Context, pkg Package) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(pkg)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, s.cache.PackageKey(pkg.ID.String()), payload, snapshotCacheTTL)
}

func (s *service) resolveCategory(raw recommend.RawOffer, offer recommend.VendorOffer) catalog.ServiceCategory {
	if view, err := s.fetcher.View(); err == nil {
		for _, bucket := range view {
			if bucket.Category.ID == offer.CategoryID {
				return bucket.Category
			}
		}
	}
	return recommend.CategoryFromRaw(raw)
}
