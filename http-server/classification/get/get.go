package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"roi-engine/http-server/response"
	"roi-engine/internal/storage"
)

type ClassificationProvider interface {
	GetClassification(ctx context.Context, orgID string) (*storage.CostClassification, error)
}

func GetClassification(log *slog.Logger, provider ClassificationProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.classification.GetClassification"

		orgID := chi.URLParam(r, "orgID")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		c, err := provider.GetClassification(ctx, orgID)
		if err != nil {
			if errors.Is(err, storage.ErrClassificationNotFound) {
				log.With(slog.String("op", op), slog.String("org_id", orgID)).Warn("classification not found")
				response.Error(w, r, http.StatusNotFound, "classification not found")
				return
			}

			log.With(
				slog.String("op", op),
				slog.String("org_id", orgID),
				slog.String("error", err.Error()),
			).Error("failed to fetch classification")
			response.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		render.JSON(w, r, c)
	}
}
