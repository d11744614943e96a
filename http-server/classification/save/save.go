package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"roi-engine/http-server/response"
	"roi-engine/internal/service"
	"roi-engine/internal/storage"
)

type ClassificationSaver interface {
	SaveClassification(ctx context.Context, c storage.CostClassification) error
}

type Request struct {
	HardCosts []string `json:"hard_costs"`
	SoftCosts []string `json:"soft_costs"`
}

// SaveClassification upserts the classification of {orgID}. Missing lists
// are rejected, not defaulted.
func SaveClassification(log *slog.Logger, saver ClassificationSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.classification.SaveClassification"

		orgID := chi.URLParam(r, "orgID")

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := saver.SaveClassification(ctx, storage.CostClassification{
			OrgID:     orgID,
			HardCosts: req.HardCosts,
			SoftCosts: req.SoftCosts,
		})
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				log.Warn("classification rejected", slog.String("op", op), slog.String("org_id", orgID), slog.String("error", err.Error()))
				response.Error(w, r, http.StatusBadRequest, err.Error())
				return
			}
			log.Error("failed to save classification", slog.String("op", op), slog.String("org_id", orgID), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		render.JSON(w, r, response.Response{Status: response.StatusOK})
	}
}
