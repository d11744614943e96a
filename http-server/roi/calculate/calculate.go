package calculate

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"roi-engine/http-server/response"
	"roi-engine/internal/service"
	"roi-engine/internal/service/roi"
	"roi-engine/internal/storage"
)

type ROICalculator interface {
	Calculate(ctx context.Context, orgID string, horizon int) (service.Outcome, error)
	CalculateInput(ctx context.Context, orgID string, data storage.InputData, horizon int) (service.Outcome, error)
}

type Request struct {
	OrgID             string            `json:"org_id"`
	TimeHorizonMonths int               `json:"time_horizon_months,omitempty"`
	Input             storage.InputData `json:"input"`
}

type Response struct {
	Status  string         `json:"status"`
	Fresh   bool           `json:"fresh"`
	Results roi.ROIResults `json:"results"`
}

// CalculateROI runs the engine on the input posted in the body.
func CalculateROI(log *slog.Logger, calc ROICalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.roi.CalculateROI"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Warn("failed to decode request body", slog.String("error", err.Error()))
			response.Error(w, r, http.StatusBadRequest, "invalid JSON")
			return
		}
		if req.OrgID == "" {
			response.Error(w, r, http.StatusBadRequest, "org_id is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		out, err := calc.CalculateInput(ctx, req.OrgID, req.Input, req.TimeHorizonMonths)
		respond(w, r, log, out, err)
	}
}

// GetROI recalculates the stored portfolio of {orgID}.
func GetROI(log *slog.Logger, calc ROICalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.roi.GetROI"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		orgID := chi.URLParam(r, "orgID")
		if orgID == "" {
			response.Error(w, r, http.StatusBadRequest, "missing org id")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		out, err := calc.Calculate(ctx, orgID, 0)
		respond(w, r, log, out, err)
	}
}

func respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, out service.Outcome, err error) {
	if err != nil {
		response.CalculationError(w, r, log, err)
		return
	}

	if out.Empty {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if out.Results.Blocked {
		response.Blocked(w, r, out.Results.Blockers)
		return
	}

	render.JSON(w, r, Response{
		Status:  response.StatusOK,
		Fresh:   out.Fresh,
		Results: out.Results,
	})
}
