package controllers

import (
	"net/http"

	"github.com/festivo/festivo-backend/api/responses"
	"github.com/festivo/festivo-backend/api/validators"
	"github.com/festivo/festivo-backend/internal/packages"
	"github.com/festivo/festivo-backend/internal/recommend"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
	"github.com/festivo/festivo-backend/pkg/logger"
)

type recommendationSearchRequest struct {
	Criteria recommend.Criteria `json:"criteria"`
	Filters  recommend.Filters  `json:"filters"`
}

type recommendationRetryRequest struct {
	Filters recommend.Filters `json:"filters"`
}

// RecommendationsSearch fetches a fresh recommendation view for the event
// criteria and returns it with the user filters applied.
func RecommendationsSearch(svc packages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		var payload recommendationSearchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		set, err := svc.Search(r.Context(), payload.Criteria, payload.Filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"recommendations": set})
	}
}

// RecommendationsRetry re-runs the last search after a failed or empty view.
func RecommendationsRetry(svc packages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		var payload recommendationRetryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		set, err := svc.Retry(r.Context(), payload.Filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"recommendations": set})
	}
}
