package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/festivo/festivo-backend/internal/catalog"
	"github.com/festivo/festivo-backend/internal/packages"
	"github.com/festivo/festivo-backend/internal/pricing"
	"github.com/festivo/festivo-backend/internal/recommend"
	"github.com/festivo/festivo-backend/internal/wizard"
	"github.com/festivo/festivo-backend/internal/wizard/forms"
	"github.com/festivo/festivo-backend/pkg/config"
	"github.com/festivo/festivo-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubLister struct{}

func (stubLister) ListCategories(ctx context.Context) ([]catalog.ServiceCategory, error) {
	return []catalog.ServiceCategory{{ID: "cat-venue", Name: "Venue & Location", Slug: "venue"}}, nil
}

type stubSource struct{}

func (stubSource) GetRecommendations(ctx context.Context, criteria recommend.Criteria) (recommend.ResultSet, error) {
	return recommend.ResultSet{}, nil
}

func testHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{App: config.AppConfig{Env: "dev", Port: "8080"}}
	logg := logger.New(logger.Options{ServiceName: "test"})

	fetcher, err := recommend.NewFetcher(stubSource{}, nil)
	if err != nil {
		t.Fatalf("fetcher: %v", err)
	}
	packageService, err := packages.NewService(pricing.NewPolicy(cfg.Pricing), fetcher)
	if err != nil {
		t.Fatalf("package service: %v", err)
	}
	wizardService, err := wizard.NewService(forms.Factory, nil, nil)
	if err != nil {
		t.Fatalf("wizard service: %v", err)
	}

	return NewRouter(cfg, logg, stubPinger{}, stubLister{}, packageService, wizardService)
}

func TestHealthRoutes(t *testing.T) {
	t.Parallel()

	router := testHandler(t)
	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, rec.Code)
		}
		if got := rec.Header().Get("X-Festivo-Env"); got != "dev" {
			t.Fatalf("%s missing env header: %q", path, got)
		}
	}
}

func TestPublicPingRoute(t *testing.T) {
	t.Parallel()

	router := testHandler(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/public/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestCategoriesRoute(t *testing.T) {
	t.Parallel()

	router := testHandler(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Categories []catalog.ServiceCategory `json:"categories"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data.Categories) != 1 || envelope.Data.Categories[0].Name != "Venue & Location" {
		t.Fatalf("categories not proxied: %s", rec.Body.String())
	}
}

func TestMetricsRoute(t *testing.T) {
	t.Parallel()

	router := testHandler(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestPackageLifecycleRoutes(t *testing.T) {
	t.Parallel()

	router := testHandler(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/packages", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWizardStartRoute(t *testing.T) {
	t.Parallel()

	router := testHandler(t)
	body := strings.NewReader(`{"kind":"service_card","owner_id":"vendor-1"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/wizards", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("start returned %d: %s", rec.Code, rec.Body.String())
	}
}
