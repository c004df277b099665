package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"pickwise/app/echo-server/router"
	addressService "pickwise/business/address"
	cartService "pickwise/business/cart"
	conversationService "pickwise/business/conversation"
	laptopService "pickwise/business/laptop"
	ordersService "pickwise/business/orders"
	preferenceService "pickwise/business/preference"
	"pickwise/business/recommend"
	userService "pickwise/business/user"
	"pickwise/internal/middleware"
	"pickwise/internal/repository/gemini"
	"pickwise/internal/repository/notification"
	psqlRepo "pickwise/internal/repository/postgres"
	redisRepo "pickwise/internal/repository/redis"
	"pickwise/internal/rest"
	"pickwise/pkg/config"
	"pickwise/pkg/database"
	redisdb "pickwise/pkg/database/redis"
	"pickwise/pkg/logger"
	"pickwise/pkg/metrics"
	"pickwise/pkg/utils"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Pickwise", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)
	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	laptopRepo := psqlRepo.NewLaptopRepository(db)
	prefRepo := psqlRepo.NewPreferenceRepository(db)
	convRepo := psqlRepo.NewConversationRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	addressRepo := psqlRepo.NewAddressRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init gemini + vector index
	geminiClient := gemini.NewClient(cfg.Gemini)
	laptopIndex := redisRepo.NewLaptopIndex(redisClient, geminiClient, cfg.Redis.VectorIndexName)

	// Init recommendation engine
	recoCfg := recommend.DefaultConfig()
	rangeCache := recommend.NewRangeCache(laptopRepo, recoCfg.RangeTTL)
	scoreEngine := recommend.NewScoreEngine(rangeCache, recoCfg.UnknownFactorPolicy)
	merger := recommend.NewMerger(laptopRepo, laptopIndex, recoCfg)
	chatService := recommend.NewService(convRepo, prefRepo, geminiClient, merger, scoreEngine, recoCfg)

	// Init service
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	lapService := laptopService.NewLaptopService(laptopRepo, laptopIndex, rangeCache, validate)
	prfService := preferenceService.NewPreferenceService(prefRepo)
	cnvService := conversationService.NewConversationService(convRepo)
	crtService := cartService.NewCartService(cartRepo, laptopRepo)
	ordService := ordersService.NewOrdersService(ordersRepo, cartRepo, laptopRepo, addressRepo)
	adrService := addressService.NewAddressService(addressRepo, validate)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	laptopHandler := rest.NewLaptopHandler(lapService)
	chatHandler := rest.NewChatHandler(chatService)
	prefHandler := rest.NewPreferenceHandler(prfService)
	convHandler := rest.NewConversationHandler(cnvService)
	cartHandler := rest.NewCartHandler(crtService)
	ordersHandler := rest.NewOrdersHandler(ordService)
	addressHandler := rest.NewAddressHandler(adrService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(tokenRepo)
	adminOnly := middleware.AdminOnly()
	selfOrAdmin := middleware.SelfOrAdmin()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly, selfOrAdmin)
	router.SetupLaptopRoutes(api, laptopHandler, authRequired, adminOnly)
	router.SetupChatRoutes(api, chatHandler, authRequired)
	router.SetupConversationRoutes(api, convHandler, authRequired)
	router.SetupPreferenceRoutes(api, prefHandler, authRequired)
	router.SetupCartRoutes(api, cartHandler, authRequired)
	router.SetupOrdersRoutes(api, ordersHandler, authRequired, adminOnly)
	router.SetupAddressRoutes(api, addressHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
