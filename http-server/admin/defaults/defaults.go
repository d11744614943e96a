package defaults

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

type DefaultsSaver interface {
	SaveGlobalDefaults(ctx context.Context, orgID string, d storage.GlobalDefaults) error
}

func SaveDefaults(log *slog.Logger, saver DefaultsSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.SaveDefaults"

		orgID := chi.URLParam(r, "orgID")

		var req storage.GlobalDefaults
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveGlobalDefaults(ctx, orgID, req); err != nil {
			if errors.Is(err, service.ErrValidation) {
				response.Error(w, r, http.StatusBadRequest, err.Error())
				return
			}
			log.Error("failed to save global defaults", slog.String("op", op), slog.String("org_id", orgID), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		render.JSON(w, r, response.Response{Status: response.StatusOK})
	}
}
