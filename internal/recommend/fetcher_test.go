package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/festivo/festivo-backend/internal/catalog"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

type stubSource struct {
	mu      sync.Mutex
	results []func() (ResultSet, error)
	calls   int
}

func (s *stubSource) GetRecommendations(ctx context.Context, criteria Criteria) (ResultSet, error) {
	s.mu.Lock()
	fn := s.results[s.calls]
	s.calls++
	s.mu.Unlock()
	return fn()
}

func singleBucket(slug string) ResultSet {
	return ResultSet{
		slug: {
			Category: catalog.ServiceCategory{ID: "cat-" + slug, Slug: slug},
			Vendors:  []VendorOffer{{ID: "offer-" + slug, CategoryID: "cat-" + slug}},
			Total:    1,
		},
	}
}

func TestRefreshInstallsView(t *testing.T) {
	t.Parallel()

	src := &stubSource{results: []func() (ResultSet, error){
		func() (ResultSet, error) { return singleBucket("venue"), nil },
	}}
	f, err := NewFetcher(src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set, err := f.Refresh(context.Background(), Criteria{EventType: "wedding"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := set["venue"]; !ok {
		t.Fatalf("unexpected set: %+v", set)
	}

	view, viewErr := f.View()
	if viewErr != nil || len(view) != 1 {
		t.Fatalf("unexpected view: %+v %v", view, viewErr)
	}
}

func TestRefreshFailureEmptiesViewAndRetains(t *testing.T) {
	t.Parallel()

	boom := errors.New("upstream down")
	src := &stubSource{results: []func() (ResultSet, error){
		func() (ResultSet, error) { return singleBucket("venue"), nil },
		func() (ResultSet, error) { return nil, boom },
		func() (ResultSet, error) { return singleBucket("catering"), nil },
	}}
	f, _ := NewFetcher(src, nil)

	if _, err := f.Refresh(context.Background(), Criteria{EventType: "wedding"}); err != nil {
		t.Fatalf("seed refresh failed: %v", err)
	}
	if _, err := f.Refresh(context.Background(), Criteria{EventType: "wedding"}); !errors.Is(err, boom) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	view, viewErr := f.View()
	if len(view) != 0 {
		t.Fatalf("failed fetch must empty the view, got %+v", view)
	}
	if viewErr == nil {
		t.Fatal("view error must be retained for the empty state")
	}

	// Retry re-invokes with the same criteria and repairs the view.
	set, err := f.Retry(context.Background())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if _, ok := set["catering"]; !ok {
		t.Fatalf("unexpected set after retry: %+v", set)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	src := &stubSource{results: []func() (ResultSet, error){
		func() (ResultSet, error) {
			<-release
			return singleBucket("stale"), nil
		},
		func() (ResultSet, error) { return singleBucket("fresh"), nil },
	}}
	f, _ := NewFetcher(src, nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.Refresh(context.Background(), Criteria{EventType: "old"})
		done <- err
	}()

	// Wait until the slow fetch has registered its generation.
	for {
		src.mu.Lock()
		started := src.calls == 1
		src.mu.Unlock()
		if started {
			break
		}
	}

	if _, err := f.Refresh(context.Background(), Criteria{EventType: "new"}); err != nil {
		t.Fatalf("fresh refresh failed: %v", err)
	}
	close(release)

	err := <-done
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected superseded error, got %v", err)
	}

	view, _ := f.View()
	if _, ok := view["fresh"]; !ok {
		t.Fatalf("fresh view must win: %+v", view)
	}
	if _, ok := view["stale"]; ok {
		t.Fatal("stale response must never clobber a newer view")
	}
}

func TestRetryWithoutCriteria(t *testing.T) {
	t.Parallel()

	f, _ := NewFetcher(&stubSource{}, nil)
	if _, err := f.Retry(context.Background()); err == nil {
		t.Fatal("expected error without prior criteria")
	}
}
