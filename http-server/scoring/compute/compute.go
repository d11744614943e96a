package compute

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"roi-engine/http-server/response"
	"roi-engine/internal/service/scoring"
)

// Compute runs the scoring model on explicit parameters. It needs no stored
// data and is therefore not gated.
func Compute(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.scoring.Compute"

		var in scoring.Input
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			log.Warn("failed to decode request body", slog.String("op", op), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusBadRequest, "invalid JSON")
			return
		}
		if in.InitialCost < 0 || in.EstimatedCost < 0 || in.EstimatedTimeWeeks < 0 {
			response.Error(w, r, http.StatusBadRequest, "costs and time must not be negative")
			return
		}

		render.JSON(w, r, scoring.Compute(in))
	}
}
