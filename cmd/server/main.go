package main

import (
	"log"
	"net/http"
	"os"

	_ "gearshare/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gearshare/internal/auth"
	"gearshare/internal/cache"
	"gearshare/internal/config"
	"gearshare/internal/db"
	"gearshare/internal/handler"
	"gearshare/internal/metrics"
	"gearshare/internal/model"
	"gearshare/internal/repository"
	"gearshare/internal/router"
	"gearshare/internal/service"
)

// @title Gearshare API
// @version 1.0
// @description Peer-to-peer gear rental marketplace API with JWT sessions and Google OAuth login.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Booking{},
			&model.Gear{},
			&model.Identity{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Identity{},
		&model.Gear{},
		&model.Booking{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	identityRepo := repository.NewIdentityRepository(gormDB)
	gearRepo := repository.NewGearRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	googleProvider := auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleSecret, cfg.OAuthRedirectURL)
	if !googleProvider.Configured() {
		log.Println("Google OAuth credentials not set; OAuth login endpoints will fail until configured")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, identityRepo, jwtService, tokenStore, googleProvider)
	userService := service.NewUserService(userRepo, cacheClient)
	gearService := service.NewGearService(gearRepo, cacheClient)
	bookingService := service.NewBookingService(gearService, bookingRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	gearHandler := handler.NewGearHandler(gearService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	collector := metrics.NewCollector()

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		userService,
		collector,
		authHandler,
		userHandler,
		gearHandler,
		bookingHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
