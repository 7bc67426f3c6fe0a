package controllers

import (
	"net/http"

	"github.com/festivo/festivo-backend/api/responses"
	"github.com/festivo/festivo-backend/internal/catalog"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
	"github.com/festivo/festivo-backend/pkg/logger"
)

// ListCategories proxies the service category catalog for the frontend.
func ListCategories(lister catalog.Lister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lister == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		categories, err := lister.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}
