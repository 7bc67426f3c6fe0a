package packages

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/festivo/festivo-backend/internal/recommend"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

type selectOfferRequest struct {
	Offer recommend.RawOffer `json:"offer"`
}

type dropOfferRequest struct {
	OfferID string `json:"offer_id" validate:"required"`
}

func packageIDFromRequest(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "packageId"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid package id")
	}
	return id, nil
}

func itemIDFromRequest(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item id")
	}
	return id, nil
}
