package wizards

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/festivo/festivo-backend/internal/wizard"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

type startRequest struct {
	Kind    string `json:"kind" validate:"required"`
	OwnerID string `json:"owner_id" validate:"required"`
}

type goToRequest struct {
	Step int `json:"step"`
}

type updateFieldRequest struct {
	Key   string `json:"key" validate:"required"`
	Value any    `json:"value"`
}

type addAttachmentRequest struct {
	Attachment wizard.Attachment `json:"attachment"`
}

func wizardIDFromRequest(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "wizardId"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid wizard id")
	}
	return id, nil
}
