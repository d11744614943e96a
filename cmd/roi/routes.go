package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	admindefaults "roi-engine/http-server/admin/defaults"
	admingroups "roi-engine/http-server/admin/groups"
	adminprocesses "roi-engine/http-server/admin/processes"
	getclassification "roi-engine/http-server/classification/get"
	saveclassification "roi-engine/http-server/classification/save"
	generate_excel "roi-engine/http-server/generate-report/generate-excel"
	"roi-engine/http-server/roi/calculate"
	"roi-engine/http-server/roi/cashflow"
	"roi-engine/http-server/roi/prioritization"
	"roi-engine/http-server/scoring/compute"
	"roi-engine/internal/config"
	"roi-engine/internal/middleware/auth"
	"roi-engine/internal/service"
	"roi-engine/internal/service/report"
)

const frontendDir = "./frontend-dist"

func routes(cfg config.Config, log *slog.Logger, roiService *service.ROIService, adminService *service.AdminService, reportService *report.ReportService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Post("/api/roi/calculate", calculate.CalculateROI(log, roiService))
	router.Get("/api/roi/{orgID}", calculate.GetROI(log, roiService))
	router.Get("/api/roi/{orgID}/cashflow", cashflow.GetCashflow(log, roiService))
	router.Get("/api/roi/{orgID}/prioritization", prioritization.GetPrioritization(log, roiService))
	router.Get("/api/roi/{orgID}/report/excel", generate_excel.GenerateReportExcel(log, reportService))

	router.Post("/api/scoring", compute.Compute(log))

	router.Get("/api/classification/{orgID}", getclassification.GetClassification(log, adminService))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Put("/classification/{orgID}", saveclassification.SaveClassification(log, adminService))
	adminRouter.Put("/defaults/{orgID}", admindefaults.SaveDefaults(log, adminService))
	adminRouter.Post("/processes/{orgID}", adminprocesses.SaveProcess(log, adminService))
	adminRouter.Post("/groups/{orgID}", admingroups.SaveGroup(log, adminService))

	router.Mount("/api/admin", adminRouter)

	if _, err := os.Stat(frontendDir); err != nil {
		log.Info("frontend not found, serving API only", slog.String("path", frontendDir))
		return router
	}

	fileServer := http.FileServer(http.Dir(frontendDir))
	router.Handle("/assets/*", fileServer)

	// SPA fallback: unknown paths get index.html.
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
