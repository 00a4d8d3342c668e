package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"heart-triage-agent/internal/agent"
	"heart-triage-agent/internal/config"
	"heart-triage-agent/internal/logging"
	"heart-triage-agent/internal/platform/telegram"
	"heart-triage-agent/internal/report"
	"heart-triage-agent/internal/triage"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	patient, err := config.LoadPatient(cfg.ProfilePath)
	if err != nil {
		logger.Fatal("could not load patient profile", zap.Error(err))
	}

	// 2. Services
	analyzers := agent.NewAnalyzers(cfg.ECGMode, agent.NewRandomSource(cfg.Seed))
	triageSvc := triage.NewService(analyzers, patient, logger)

	var notifier triage.Notifier
	if cfg.ReportsEnabled() {
		tgClient := telegram.NewClient(cfg.TelegramToken)
		notifier = report.NewService(tgClient, cfg.DoctorChatID, logger, cfg.FontPath)
	} else {
		logger.Warn("TELEGRAM_BOT_TOKEN or DOCTOR_CHAT_ID not set, reports will not be sent")
	}
	triageHandler := triage.NewHandler(triageSvc, notifier, logger)

	// 3. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
	}).Handler)

	r.Get("/healthz", triageHandler.Healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		triage.RegisterRoutes(r, triageHandler)
	})

	logger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("ecg_mode", string(cfg.ECGMode)),
		zap.Bool("reports", notifier != nil),
	)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
