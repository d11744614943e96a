package generate_excel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"roi-engine/http-server/response"
	"roi-engine/internal/guard"
)

type ExcelGenerator interface {
	GenerateExcel(ctx context.Context, orgID string) ([]byte, error)
}

func GenerateReportExcel(log *slog.Logger, gen ExcelGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GenerateReportExcel"

		orgID := chi.URLParam(r, "orgID")

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, orgID)
		if err != nil {
			if errors.Is(err, guard.ErrBlocked) {
				log.Warn("report blocked", slog.String("op", op), slog.String("org_id", orgID), slog.String("error", err.Error()))
				response.Blocked(w, r, []string{err.Error()})
				return
			}
			log.Error("failed to generate excel", slog.String("op", op), slog.String("org_id", orgID), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		fileName := fmt.Sprintf("ROI_Report_%s_%s.xlsx", orgID, time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
