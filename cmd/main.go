package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/naeemnh/tournamint-api/brackets"
	"github.com/naeemnh/tournamint-api/config"
	"github.com/naeemnh/tournamint-api/db"
	"github.com/naeemnh/tournamint-api/handlers"
	"github.com/naeemnh/tournamint-api/middleware"
	"github.com/naeemnh/tournamint-api/repositories"
	api "github.com/naeemnh/tournamint-api/routes"
	"github.com/naeemnh/tournamint-api/services"
	"github.com/naeemnh/tournamint-api/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	categoryRepo := repositories.NewPostgresCategoryRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	bracketRepo := repositories.NewPostgresBracketRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	logger.Info("repositories initialized")

	scopeLocks := services.NewScopeLocker()

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey)
	tournamentService := services.NewTournamentService(tournamentRepo, categoryRepo, participantRepo, uploader)
	bracketService := services.NewBracketService(
		dbConn, tournamentRepo, participantRepo, matchRepo, bracketRepo, wsHub, scopeLocks, logger,
	)
	standingsService := services.NewStandingsService(
		dbConn, participantRepo, matchRepo, bracketRepo, standingRepo, wsHub, scopeLocks, logger,
	)
	matchService := services.NewMatchService(
		dbConn, matchRepo, bracketRepo, standingsService, wsHub, scopeLocks, logger,
	)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	matchHandler := handlers.NewMatchHandler(matchService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		authHandler,
		tournamentHandler,
		bracketHandler,
		matchHandler,
		standingsHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shut down gracefully")
		}
	}
}
