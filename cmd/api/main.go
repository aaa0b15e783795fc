package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vadjik31/procto-bo/internal/config"
	"github.com/vadjik31/procto-bo/internal/infra/bot"
	"github.com/vadjik31/procto-bo/internal/infra/database"
	"github.com/vadjik31/procto-bo/internal/infra/http/handlers"
	"github.com/vadjik31/procto-bo/internal/infra/http/middleware"
	"github.com/vadjik31/procto-bo/internal/infra/integration/skillspace"
	"github.com/vadjik31/procto-bo/internal/infra/integration/telegram"
	"github.com/vadjik31/procto-bo/internal/infra/mail"
	"github.com/vadjik31/procto-bo/internal/infra/worker"
	"github.com/vadjik31/procto-bo/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Store
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ database: %v", err)
	}
	defer db.Close()

	leadRepo := database.NewLeadRepository(db)
	if err := leadRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("❌ schema: %v", err)
	}

	// 2. Integrations
	inviter := skillspace.NewClient(cfg.SkillspaceAPIKey, cfg.SkillspaceBaseURL, cfg.SkillspaceCourseID, cfg.SkillspaceGroupID)
	tg := telegram.NewClient(cfg.TelegramToken)

	var alerts usecase.EmailService
	if cfg.MailConfigured() {
		alerts = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.AdminEmail)
	}

	// 3. Use cases, one locker shared by both write paths
	locker := usecase.NewLeadLocker()
	registerUC := usecase.NewRegisterLeadUseCase(leadRepo, inviter, alerts, locker, cfg)
	processUC := usecase.NewProcessEventUseCase(leadRepo, tg, locker, cfg)

	// 4. Intake bot
	form := bot.NewFormService(tg, bot.NewMemorySessionStore(), func(ctx context.Context, profile usecase.LeadProfile) (string, error) {
		reply, err := registerUC.Execute(ctx, profile)
		if err == nil {
			middleware.RecordLeadRegistered()
		}
		return reply, err
	})
	go bot.NewPoller(tg, form).Run(ctx)

	// 5. Background workers
	go worker.NewStageMetricsWorker(leadRepo).Start(ctx)

	// 6. Handlers
	webhookHandler := handlers.NewSkillspaceWebhookHandler(processUC, cfg.WebhookSecret)
	healthHandler := handlers.NewHealthHandler(db, cfg)
	statsHandler := handlers.NewFunnelStatsHandler(leadRepo)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/", healthHandler.Handle)
	r.Post("/skillspace-webhook", webhookHandler.Handle)
	r.Get("/funnel/stats", statsHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("🔥 funnel service listening on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
