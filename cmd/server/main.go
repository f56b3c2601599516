package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hanseilab/hansei-backend/internal/config"
	"github.com/hanseilab/hansei-backend/internal/handler"
	"github.com/hanseilab/hansei-backend/internal/logger"
	"github.com/hanseilab/hansei-backend/internal/repository"
	"github.com/hanseilab/hansei-backend/internal/router"
	"github.com/hanseilab/hansei-backend/internal/service"
	"github.com/hanseilab/hansei-backend/internal/store"
	"github.com/hanseilab/hansei-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("workbook", cfg.WorkbookPath).
		Str("auth_mode", cfg.AuthMode).
		Msg("Starting Hansei Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Open Workbook Store ───────────────────────────────────────────
	st, err := store.OpenWorkbook(cfg.WorkbookPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open workbook")
	}
	defer st.Close()

	if err := repository.EnsureSchema(st); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure workbook schema")
	}

	loc := cfg.Location()
	locks := store.NewKeyedMutex()

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(st)
	reflectionRepo := repository.NewReflectionRepository(st, loc)
	feedbackRepo := repository.NewFeedbackRepository(st, locks)
	codeRepo := repository.NewCodeRepository(st)
	metaRepo := repository.NewMetaRepository(st, locks)
	sessionRepo := repository.NewSessionRepository(st)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, studentRepo, metaRepo, sessionRepo, log)
	reflectionService := service.NewReflectionService(reflectionRepo, feedbackRepo, metaRepo, cfg.AllowDuplicateReflections, loc, log)
	annotationService := service.NewAnnotationService(feedbackRepo, codeRepo, metaRepo, log)
	dashboardService := service.NewDashboardService(studentRepo, reflectionRepo, feedbackRepo, loc, log)
	codeService := service.NewCodeService(codeRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	dispatcher := handler.NewDispatcher(
		authService,
		handler.NewAuthHandler(authService),
		handler.NewStudentHandler(reflectionService),
		handler.NewTeacherHandler(dashboardService, annotationService, codeService),
		log,
	)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(dispatcher, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}
