package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"signals-hub.backend/internal/config"
	"signals-hub.backend/internal/infrastructure/jobs"
	"signals-hub.backend/internal/infrastructure/repositories"
	"signals-hub.backend/internal/interfaces/http/handlers"
	"signals-hub.backend/internal/interfaces/http/middleware"
	"signals-hub.backend/internal/usecases"
	"signals-hub.backend/pkg/jwt"
	"signals-hub.backend/pkg/logger"
	"signals-hub.backend/pkg/mail"
	"signals-hub.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	userTokenRepo := repositories.NewUserTokenRepository(db)
	signalRepo := repositories.NewSignalRepository(db)
	placementRepo := repositories.NewPlacementRepository(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	var mailer mail.Mailer = mail.NopMailer{}
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			BaseURL:  cfg.SMTP.BaseURL,
		})
	}

	// Initialize usecases
	tokenRegistry := usecases.NewTokenRegistryUsecase(userTokenRepo, userRepo)
	guard := usecases.NewGuardUsecase(userRepo)
	authUsecase := usecases.NewAuthUsecase(userRepo, tokenRegistry, jwtService, mailer, cfg.Tokens.ActivationTTL, cfg.Tokens.ResetTTL)
	ratingUsecase := usecases.NewRatingUsecase(placementRepo, signalRepo, guard)
	signalUsecase := usecases.NewSignalUsecase(signalRepo, userRepo, guard, ratingUsecase)
	registrarUsecase := usecases.NewRegistrarUsecase(userRepo, guard)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase, sessionStore, cfg.Security.SessionTTL)
	signalHandler := handlers.NewSignalHandler(signalUsecase)
	placementHandler := handlers.NewPlacementHandler(ratingUsecase)
	registrarHandler := handlers.NewRegistrarHandler(registrarUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService, sessionStore)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	purgeJob := jobs.NewTokenPurgeJob(userTokenRepo, cfg.Tokens.PurgeInterval)
	go purgeJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, sqlDB)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:      authHandler,
		signalHandler:    signalHandler,
		placementHandler: placementHandler,
		registrarHandler: registrarHandler,
		authMiddleware:   authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		purgeJob.Stop()
		cancel()
	}()

	log.Printf("🚀 Signals-Hub Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
