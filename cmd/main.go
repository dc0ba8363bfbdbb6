package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/config"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/repositories"
	api "github.com/Dosada05/swiss-tournament/routes"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/Dosada05/swiss-tournament/storage"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// @title Swiss Tournament API
// @version 1.0
// @description Player registration, match results, standings and Swiss pairings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort), slog.String("db_driver", cfg.Database.Driver))

	dbConn, err := db.Connect(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.Database.AutoProvision {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
		err := db.InitializeTables(ctx, dbConn, cfg.Database.Driver)
		cancel()
		if err != nil {
			logger.Error("failed to provision tables", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("tables provisioned")
	}

	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewR2Uploader(context.Background(), storage.R2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2.BucketName))
	} else {
		logger.Info("R2 not configured, standings snapshots disabled")
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()
	logger.Info("WebSocket Hub started")

	playerRepo := repositories.NewPlayerRepository(dbConn, cfg.Database.Driver)
	matchRepo := repositories.NewMatchRepository(dbConn, cfg.Database.Driver)
	standingRepo := repositories.NewStandingRepository(dbConn, cfg.Database.Driver)

	authService := services.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecretKey)
	tournamentService := services.NewTournamentService(
		dbConn,
		playerRepo,
		matchRepo,
		standingRepo,
		brackets.NewSwissGenerator(),
		wsHub,
		uploader,
		logger,
	)

	authHandler := handlers.NewAuthHandler(authService, logger)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, logger)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.CORSAllowedOrigins,
		authService,
		authHandler,
		tournamentHandler,
		webSocketHandler,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			return server.Close()
		}
		logger.Info("server shutdown complete")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
	}
	logger.Info("application exited")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
