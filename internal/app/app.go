package app

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

	"six-cities-api/internal/config"
	"six-cities-api/internal/database"
	"six-cities-api/internal/handler"
	"six-cities-api/internal/middleware"
	"six-cities-api/internal/repository"
	"six-cities-api/internal/router"
	"six-cities-api/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.Connect(context.Background(), cfg.DatabaseURL,
		cfg.DBMaxConns, cfg.DBMinConns, cfg.DBConnectRetry, cfg.DBConnectDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	offerRepo := repository.NewOfferRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)
	slog.Info("database ready")

	authService := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.Salt, cfg.DefaultPassword)
	favoritesService := service.NewFavoritesService(favoriteRepo, offerRepo)
	offerService := service.NewOfferService(offerRepo, favoriteRepo)
	commentService := service.NewCommentService(commentRepo, offerRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		User:    handler.NewUserHandler(authService, favoritesService, offerService),
		Offer:   handler.NewOfferHandler(offerService),
		Comment: handler.NewCommentHandler(commentService, offerService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()
	slog.Info("server stopped")
	return nil
}
