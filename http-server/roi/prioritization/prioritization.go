package prioritization

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"roi-engine/http-server/response"
	"roi-engine/internal/service/roi"
	"roi-engine/internal/service/scoring"
)

type Prioritizer interface {
	Prioritize(ctx context.Context, orgID string) (roi.ROIResults, []scoring.Prioritization, error)
}

type Response struct {
	Status    string                   `json:"status"`
	RunID     string                   `json:"run_id"`
	Processes []scoring.Prioritization `json:"processes"`
}

func GetPrioritization(log *slog.Logger, p Prioritizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.roi.GetPrioritization"

		orgID := chi.URLParam(r, "orgID")

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		res, prio, err := p.Prioritize(ctx, orgID)
		if err != nil {
			response.CalculationError(w, r, log.With(slog.String("op", op), slog.String("org_id", orgID)), err)
			return
		}
		if res.Blocked {
			response.Blocked(w, r, res.Blockers)
			return
		}

		render.JSON(w, r, Response{
			Status:    response.StatusOK,
			RunID:     res.RunID,
			Processes: prio,
		})
	}
}
