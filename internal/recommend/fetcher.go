package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
	"github.com/festivo/festivo-backend/pkg/metrics"
)

// Fetcher serializes access to the latest recommendation view. Every Refresh
// bumps a generation counter; a response whose generation is no longer current
// by the time it lands is discarded so stale data never clobbers a newer view.
type Fetcher struct {
	source Source
	met    *metrics.RecommendationMetrics

	mu       sync.Mutex
	gen      uint64
	view     ResultSet
	viewErr  error
	criteria Criteria
	haveCrit bool
}

// NewFetcher builds the fetcher around a source. Metrics may be nil.
func NewFetcher(source Source, met *metrics.RecommendationMetrics) (*Fetcher, error) {
	if source == nil {
		return nil, fmt.Errorf("recommendation source required")
	}
	return &Fetcher{source: source, met: met, view: ResultSet{}}, nil
}

// ErrSuperseded marks a fetch whose result lost the race to a newer fetch.
var ErrSuperseded = pkgerrors.New(pkgerrors.CodeConflict, "recommendation fetch superseded")

// Refresh fetches recommendations for the criteria and installs them as the
// current view. On source failure the view is emptied and the error retained
// so callers surface an explicit empty state with a retry affordance.
func (f *Fetcher) Refresh(ctx context.Context, criteria Criteria) (ResultSet, error) {
	f.mu.Lock()
	f.gen++
	myGen := f.gen
	f.criteria = criteria
	f.haveCrit = true
	f.mu.Unlock()

	start := time.Now()
	set, err := f.source.GetRecommendations(ctx, criteria)
	f.met.ObserveDuration(criteria.EventType, time.Since(start))

	f.mu.Lock()
	defer f.mu.Unlock()

	if myGen != f.gen {
		f.met.IncStaleDiscard()
		return nil, ErrSuperseded
	}

	if err != nil {
		f.met.IncFailure(criteria.EventType)
		f.view = ResultSet{}
		f.viewErr = err
		return nil, err
	}

	f.met.IncSuccess(criteria.EventType)
	if set == nil {
		set = ResultSet{}
	}
	f.view = set
	f.viewErr = nil
	return set, nil
}

// Retry re-invokes the source with the last criteria.
func (f *Fetcher) Retry(ctx context.Context) (ResultSet, error) {
	f.mu.Lock()
	if !f.haveCrit {
		f.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no criteria to retry")
	}
	criteria := f.criteria
	f.mu.Unlock()
	return f.Refresh(ctx, criteria)
}

// View returns the current result set and the last fetch error, if any.
func (f *Fetcher) View() (ResultSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view, f.viewErr
}

// FindOffer locates an offer by id in the current view.
func (f *Fetcher) FindOffer(offerID string) (VendorOffer, CategoryRecommendations, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view.FindOffer(offerID)
}
