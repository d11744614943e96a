package cashflow

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"roi-engine/http-server/response"
	"roi-engine/internal/service"
	"roi-engine/internal/service/roi"
)

type CashflowProvider interface {
	Calculate(ctx context.Context, orgID string, horizon int) (service.Outcome, error)
}

type Response struct {
	Status              string             `json:"status"`
	Fresh               bool               `json:"fresh"`
	TimeHorizonMonths   int                `json:"time_horizon_months"`
	PaybackPeriodMonths float64            `json:"payback_period_months"`
	Cashflow            []roi.CashflowData `json:"cashflow"`
}

// GetCashflow returns the monthly cash-flow series. ?months= overrides the
// configured horizon.
func GetCashflow(log *slog.Logger, provider CashflowProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.roi.GetCashflow"

		orgID := chi.URLParam(r, "orgID")

		var horizon int
		if s := r.URL.Query().Get("months"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				response.Error(w, r, http.StatusBadRequest, "months must be an integer")
				return
			}
			horizon = roi.ClampTimeHorizon(v)
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		out, err := provider.Calculate(ctx, orgID, horizon)
		if err != nil {
			response.CalculationError(w, r, log.With(slog.String("op", op), slog.String("org_id", orgID)), err)
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
			Status:              response.StatusOK,
			Fresh:               out.Fresh,
			TimeHorizonMonths:   out.Results.TimeHorizonMonths,
			PaybackPeriodMonths: out.Results.PaybackPeriodMonths,
			Cashflow:            out.Results.Cashflow,
		})
	}
}
