package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	magazineHTTP "magazine/internal/controller/http"
	"magazine/internal/permission"
	"magazine/internal/repo/persistent"
	"magazine/internal/usecase"
	"magazine/pkg/cache"
	"magazine/pkg/config"
	"magazine/pkg/database"
	"magazine/pkg/jwt"
	"magazine/pkg/logger"
	"magazine/pkg/s3"
	"magazine/pkg/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"
)

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set in environment variables")

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	media       usecase.MediaStorage
	jwtService  *jwt.Service
	httpServer  *http.Server
	serverErr   chan error
}

func NewApp(cfg *config.Config) (*App, error) {
	if cfg.JWTSecret == config.DefaultJWTSecret || cfg.JWTSecret == "" {
		return nil, ErrDefaultJWTSecret
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Redis only backs refresh token reuse detection
		log.Warn("Failed to connect to redis: %v (continuing without refresh token reuse detection)", err)
		redisClient = nil
	}

	media, err := NewMediaStorage(cfg)
	if err != nil {
		log.Error("Failed to set up media storage: %v", err)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		media:       media,
		jwtService:  jwt.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		serverErr:   make(chan error, 1),
	}, nil
}

// NewMediaStorage picks the backend named by MEDIA_BACKEND.
func NewMediaStorage(cfg *config.Config) (usecase.MediaStorage, error) {
	switch cfg.MediaBackend {
	case MediaBackendLocal, "":
		return storage.NewFileSystem(cfg.MediaRoot, cfg.MediaURL), nil
	case MediaBackendS3:
		client, err := s3.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
	}
}

// UseCases builds the use case layer over db. cmd/seed reuses it.
func UseCases(db *gorm.DB, media usecase.MediaStorage, jwtService *jwt.Service, tokenStore usecase.RefreshTokenStore, log *logger.Logger) (usecase.AuthUseCase, usecase.PostUseCase, usecase.InteractionUseCase, usecase.ProfileUseCase) {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	profileRepo := persistent.NewProfileRepository(db)
	postRepo := persistent.NewPostRepository(db)
	interactionRepo := persistent.NewInteractionRepository(db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, tokenStore, log)
	postUseCase := usecase.NewPostUseCase(postRepo, media, permission.OwnerOrReadOnly, log)
	interactionUseCase := usecase.NewInteractionUseCase(interactionRepo, postRepo, log)
	profileUseCase := usecase.NewProfileUseCase(profileRepo)

	return authUseCase, postUseCase, interactionUseCase, profileUseCase
}

func (a *App) Run() error {
	var tokenStore usecase.RefreshTokenStore
	if a.redisClient != nil {
		tokenStore = cache.NewTokenDenylist(a.redisClient)
	}

	authUseCase, postUseCase, interactionUseCase, profileUseCase := UseCases(a.db, a.media, a.jwtService, tokenStore, a.log)

	// Initialize HTTP handlers
	handlers := magazineHTTP.Handlers{
		Auth:        magazineHTTP.NewAuthHandler(authUseCase, a.log),
		Post:        magazineHTTP.NewPostHandler(postUseCase, a.log),
		Interaction: magazineHTTP.NewInteractionHandler(interactionUseCase, a.log),
		Profile:     magazineHTTP.NewProfileHandler(profileUseCase, a.log),
	}

	opts := magazineHTTP.RouterOptions{
		AllowedOrigins: a.cfg.CORSAllowedOrigins,
		MaxUploadBytes: a.cfg.MaxUploadMB << 20,
	}
	if fs, ok := a.media.(*storage.FileSystem); ok {
		opts.MediaURL = a.cfg.MediaURL
		opts.MediaRoot = fs.Root()
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           magazineHTTP.NewRouter(handlers, a.jwtService, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Magazine API starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Failed to start server: %v", err)
			a.serverErr <- err
		}
	}()

	return nil
}

// Wait blocks until an interrupt arrives or the listener fails. The listener
// error is returned so the caller can still run Shutdown.
func (a *App) Wait() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		a.log.Info("Shutting down magazine API...")
		return nil
	case err := <-a.serverErr:
		a.log.Info("Shutting down magazine API after server error...")
		return err
	}
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server
	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if shutdownErr == nil {
		a.log.Info("Magazine API exited")
	}
	return shutdownErr
}
