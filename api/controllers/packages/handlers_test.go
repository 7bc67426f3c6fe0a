package packages

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	packagesvc "github.com/festivo/festivo-backend/internal/packages"
	"github.com/festivo/festivo-backend/internal/recommend"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

type stubService struct {
	pkg       packagesvc.Package
	err       error
	lastOffer recommend.RawOffer
	lastDrop  string
}

func (s *stubService) CreatePackage(ctx context.Context) packagesvc.Package {
	return s.pkg
}

func (s *stubService) GetPackage(ctx context.Context, id uuid.UUID) (packagesvc.Package, error) {
	return s.pkg, s.err
}

func (s *stubService) SelectOffer(ctx context.Context, packageID uuid.UUID, raw recommend.RawOffer) (packagesvc.Package, error) {
	s.lastOffer = raw
	return s.pkg, s.err
}

func (s *stubService) DropOffer(ctx context.Context, packageID uuid.UUID, offerID string) (packagesvc.Package, error) {
	s.lastDrop = offerID
	return s.pkg, s.err
}

func (s *stubService) RemoveItem(ctx context.Context, packageID, itemID uuid.UUID) (packagesvc.Package, error) {
	return s.pkg, s.err
}

func (s *stubService) ClearItems(ctx context.Context, packageID uuid.UUID) (packagesvc.Package, error) {
	return s.pkg, s.err
}

func (s *stubService) Search(ctx context.Context, criteria recommend.Criteria, filters recommend.Filters) (recommend.ResultSet, error) {
	return nil, s.err
}

func (s *stubService) Retry(ctx context.Context, filters recommend.Filters) (recommend.ResultSet, error) {
	return nil, s.err
}

func testRouter(svc packagesvc.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/packages", Create(svc, nil))
	r.Get("/packages/{packageId}", Fetch(svc, nil))
	r.Post("/packages/{packageId}/items", SelectOffer(svc, nil))
	r.Post("/packages/{packageId}/items/drop", DropOffer(svc, nil))
	r.Delete("/packages/{packageId}/items/{itemId}", RemoveItem(svc, nil))
	r.Delete("/packages/{packageId}/items", ClearItems(svc, nil))
	return r
}

func TestCreateReturns201(t *testing.T) {
	t.Parallel()

	svc := &stubService{pkg: packagesvc.Package{ID: uuid.New()}}
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/packages", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestFetchInvalidIDIs400(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packages/not-a-uuid", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestFetchNotFoundIs404(t *testing.T) {
	t.Parallel()

	svc := &stubService{err: pkgerrors.New(pkgerrors.CodeNotFound, "package not found")}
	rec := httptest.NewRecorder()
	url := "/packages/" + uuid.NewString()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestSelectOfferDecodesBody(t *testing.T) {
	t.Parallel()

	svc := &stubService{pkg: packagesvc.Package{ID: uuid.New()}}
	body := `{"offer":{"id":"offer-hall","title":"Hall","base_price_cents":250000,"category_id":"cat-venue"}}`
	req := httptest.NewRequest(http.MethodPost, "/packages/"+uuid.NewString()+"/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	if svc.lastOffer.ID != "offer-hall" || svc.lastOffer.CategoryID != "cat-venue" {
		t.Fatalf("offer not passed through: %+v", svc.lastOffer)
	}
}

func TestDropOfferRequiresOfferID(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	url := "/packages/" + uuid.NewString() + "/items/drop"
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"offer_id":"offer-dj"}`))
	rec = httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	if svc.lastDrop != "offer-dj" {
		t.Fatalf("offer id not passed through: %q", svc.lastDrop)
	}
}

func TestFetchEnvelopesPayload(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &stubService{pkg: packagesvc.Package{ID: id}}
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/packages/"+id.String(), nil))

	var envelope struct {
		Data packagesvc.Package `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.ID != id {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}
