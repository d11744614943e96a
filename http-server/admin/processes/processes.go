package processes

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

type ProcessSaver interface {
	SaveProcess(ctx context.Context, orgID string, p storage.Process) error
}

func SaveProcess(log *slog.Logger, saver ProcessSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.SaveProcess"

		orgID := chi.URLParam(r, "orgID")

		var req storage.Process
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.SaveProcess(ctx, orgID, req); err != nil {
			if errors.Is(err, service.ErrValidation) || errors.Is(err, storage.ErrInvalidRecord) {
				response.Error(w, r, http.StatusBadRequest, err.Error())
				return
			}
			log.Error("failed to save process", slog.String("op", op), slog.String("org_id", orgID), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Response{Status: response.StatusOK})
	}
}
