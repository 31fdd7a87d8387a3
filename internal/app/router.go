package app

import (
	"database/sql"
	"net/http"
	"time"

	"licsim/internal/app/observability"
	"licsim/internal/assistant"
	"licsim/internal/auth"
	"licsim/internal/exam"
	"licsim/internal/licencias"
	"licsim/internal/overlay"
	"licsim/internal/report"
	"licsim/internal/store"
	"licsim/internal/tramite"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg Config, conn *sql.DB) http.Handler {
	r := chi.NewRouter()

	collector := observability.NewCollector(conn)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(collector.Middleware)
	r.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimitPerMin, time.Minute)))
	r.Use(CSRFMiddleware(cfg.CSRFEnforced))

	mailer := auth.NewSMTPMailer(auth.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	mgr := auth.NewManager(auth.ManagerConfig{
		SessionSecret:     cfg.SessionSecret,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
		SecureCookies:     cfg.AppEnv == "production",
	})
	authHandler := auth.NewHandler(mgr)

	registryClient := store.NewClient(cfg.RegistryBaseURL, store.StaticTokens{
		Citizen: cfg.RegistryCitizenToken,
		Admin:   cfg.RegistryAdminToken,
	})
	registry := tramite.NewRegistry(registryClient)
	caseSvc := tramite.NewService(registry, mailer)
	caseHandler := tramite.NewHandler(caseSvc, mgr)

	ov := overlay.NewStore(conn)
	bank := exam.NewBank(exam.Catalog(), ov)
	examSvc := exam.NewService(conn, bank, exam.NewSelector(nil), caseSvc, cfg.DefaultExamMinutes)
	examHandler := exam.NewHandler(examSvc, bank)

	licSvc := licencias.NewService(ov)
	licHandler := licencias.NewHandler(licSvc)

	assistantHandler := assistant.NewHandler(assistant.NewService(assistant.ServiceConfig{
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		Model:        cfg.OpenAIModel,
	}))

	reportHandler := report.NewHandler(report.NewService(caseSvc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Get("/metrics", collector.MetricsHandler)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/licencias", licHandler.List)
		api.Post("/tramites", caseHandler.Create)
		api.Get("/tramites/buscar", caseHandler.Search)
		api.Post("/auth/admin/login", authHandler.AdminLogin)

		api.Group(func(citizen chi.Router) {
			citizen.Use(mgr.RequireCitizen)
			citizen.Get("/tramites/actual", caseHandler.Current)
			citizen.Get("/tramites/actual/pasos/{step}", caseHandler.StepAccess)
			citizen.Put("/tramites/actual/tipo-licencia", caseHandler.SelectLicenseType)
			citizen.Get("/citas/disponibilidad", caseHandler.Availability)
			citizen.Post("/citas", caseHandler.BookAppointment)

			citizen.Post("/examen/iniciar", examHandler.Start)
			citizen.Get("/examen/sesiones/{id}", examHandler.GetSession)
			citizen.Put("/examen/sesiones/{id}/respuestas/{questionID}", examHandler.SaveAnswer)
			citizen.Post("/examen/sesiones/{id}/entregar", examHandler.Submit)
			citizen.Get("/examen/sesiones/{id}/resultado", examHandler.Result)
		})

		api.Group(func(admin chi.Router) {
			admin.Use(mgr.RequireAdmin)
			admin.Post("/auth/logout", authHandler.Logout)

			admin.Get("/admin/tramites", caseHandler.List)
			admin.Get("/admin/tramites/{id}", caseHandler.Get)
			admin.Post("/admin/tramites/{id}/simulador", caseHandler.RecordSimulatorResult)
			admin.Post("/admin/tramites/{id}/finalizar", caseHandler.Finalize)

			admin.Get("/admin/banco-preguntas", examHandler.ListQuestions)
			admin.Post("/admin/banco-preguntas", examHandler.AddQuestion)
			admin.Put("/admin/banco-preguntas/{id}", examHandler.EditQuestion)
			admin.Delete("/admin/banco-preguntas/{id}", examHandler.DeleteQuestion)
			admin.Post("/admin/banco-preguntas/reset", examHandler.ResetQuestions)

			admin.Put("/admin/licencias/{id}", licHandler.Edit)
			admin.Post("/admin/licencias/reset", licHandler.Reset)

			admin.Post("/admin/asistente/explicacion", assistantHandler.DraftExplanation)

			admin.Get("/admin/reportes/resumen", reportHandler.Summary)
			admin.Get("/admin/reportes/export", reportHandler.ExportExcel)
		})
	})

	return r
}
