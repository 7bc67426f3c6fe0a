package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/festivo/festivo-backend/api/controllers"
	packagecontrollers "github.com/festivo/festivo-backend/api/controllers/packages"
	wizardcontrollers "github.com/festivo/festivo-backend/api/controllers/wizards"
	"github.com/festivo/festivo-backend/api/middleware"
	"github.com/festivo/festivo-backend/internal/catalog"
	"github.com/festivo/festivo-backend/internal/packages"
	"github.com/festivo/festivo-backend/internal/wizard"
	"github.com/festivo/festivo-backend/pkg/config"
	"github.com/festivo/festivo-backend/pkg/logger"
	"github.com/festivo/festivo-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisP redis.Pinger,
	catalogClient catalog.Lister,
	packageService packages.Service,
	wizardService wizard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.ListCategories(catalogClient, logg))

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/search", controllers.RecommendationsSearch(packageService, logg))
			r.Post("/retry", controllers.RecommendationsRetry(packageService, logg))
		})

		r.Route("/packages", func(r chi.Router) {
			r.Post("/", packagecontrollers.Create(packageService, logg))
			r.Route("/{packageId}", func(r chi.Router) {
				r.Get("/", packagecontrollers.Fetch(packageService, logg))
				r.Post("/items", packagecontrollers.SelectOffer(packageService, logg))
				r.Post("/items/drop", packagecontrollers.DropOffer(packageService, logg))
				r.Delete("/items", packagecontrollers.ClearItems(packageService, logg))
				r.Delete("/items/{itemId}", packagecontrollers.RemoveItem(packageService, logg))
			})
		})

		r.Route("/wizards", func(r chi.Router) {
			r.Post("/", wizardcontrollers.Start(wizardService, logg))
			r.Route("/{wizardId}", func(r chi.Router) {
				r.Get("/", wizardcontrollers.Fetch(wizardService, logg))
				r.Post("/next", wizardcontrollers.Next(wizardService, logg))
				r.Post("/previous", wizardcontrollers.Previous(wizardService, logg))
				r.Post("/goto", wizardcontrollers.GoTo(wizardService, logg))
				r.Patch("/fields", wizardcontrollers.UpdateField(wizardService, logg))
				r.Post("/attachments", wizardcontrollers.AddAttachment(wizardService, logg))
				r.Post("/draft", wizardcontrollers.SaveDraft(wizardService, logg))
				r.Get("/draft", wizardcontrollers.RestoreDraft(wizardService, logg))
				r.Post("/submit", wizardcontrollers.Submit(wizardService, logg))
			})
		})
	})

	return r
}
