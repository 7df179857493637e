package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oneshot/internal/config"
	"oneshot/internal/handler"
	"oneshot/internal/mq"
	"oneshot/internal/repository"
	"oneshot/internal/service"
	"oneshot/internal/store"
	"oneshot/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title One Shot Analytics API
// @version 1.0
// @description Multi-tenant pageview ingestion and metrics aggregation
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.example.com/support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @host localhost:8080
// @BasePath /
func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env")
	}

	// Load configuration
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Server.Mode)

	loc, err := cfg.Analytics.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid analytics timezone")
	}

	// Initialize repositories
	redisRepo := repository.NewRedisRepository(&cfg.Database.Redis)
	defer redisRepo.Close()

	mysqlRepo := repository.NewMySQLRepository(&cfg.Database.MySQL)
	defer mysqlRepo.Close()

	// Per-site event stores
	registry := store.NewRegistry(&cfg.Store)
	defer registry.Close()

	// Initialize services
	bloomSvc := service.NewBloomService(redisRepo.GetClient(), &cfg.Bloom)
	warmBloom(bloomSvc, mysqlRepo)

	// Rewarm while the Bloom pre-check is disabled
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(bloomRewarmSchedule, func() {
		if !bloomSvc.Ready() {
			warmBloom(bloomSvc, mysqlRepo)
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule Bloom Filter rewarm")
	}
	scheduler.Start()
	defer scheduler.Stop()

	directorySvc := service.NewDirectoryService(mysqlRepo, redisRepo, bloomSvc, redisRepo.SiteTTL())
	resolver := service.NewCredentialResolver()
	ingestSvc := service.NewIngestService(directorySvc, resolver, registry, redisRepo)
	aggregationSvc := service.NewAggregationService(directorySvc, resolver, registry, cfg.Analytics.TopN, loc)

	// Initialize MQ (optional, can be nil)
	var mqProducer *mq.Producer
	if cfg.RocketMQ.NameServer != "" {
		mqProducer, err = mq.NewProducer(&cfg.RocketMQ)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize RocketMQ producer, purging inline")
		}
	}
	siteSvc := service.NewSiteService(mysqlRepo, redisRepo, bloomSvc, directorySvc, registry, mqProducer)

	// Setup Gin
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Middleware
	router.Use(middleware.Logger("/health", "/metrics"))
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	// Tracking snippet endpoint
	ingestHandler := handler.NewIngestHandler(ingestSvc)
	router.POST("/api/analytics", middleware.BearerToken(), ingestHandler.Ingest)
	router.OPTIONS("/api/analytics", ingestHandler.Preflight)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		siteHandler := handler.NewSiteHandler(siteSvc)
		v1.POST("/sites", siteHandler.Create)
		v1.GET("/sites/:id", siteHandler.Get)
		v1.PUT("/sites/:id/store", siteHandler.AttachStore)
		v1.DELETE("/sites/:id", siteHandler.Delete)
		v1.POST("/store/verify", siteHandler.VerifyStore)

		metricsHandler := handler.NewMetricsHandler(aggregationSvc)
		v1.GET("/sites/:id/metrics", metricsHandler.Metrics)
	}

	// Swagger documentation
	setupSwagger(router)

	// Prometheus
	router.GET("/metrics", middleware.MetricsHandler())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"time":         time.Now().Format(time.RFC3339),
			"bloom":        bloomSvc.Ready(),
			"bloom_module": bloomSvc.IsAvailable(c.Request.Context()),
			"stores":       registry.Len(),
		})
	})

	// Start MQ consumer if configured
	var mqConsumer *mq.Consumer
	if cfg.RocketMQ.NameServer != "" {
		// Purges the events of deleted sites
		mqConsumer, err = mq.NewConsumer(&cfg.RocketMQ, siteSvc.PurgeEvents)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize RocketMQ consumer")
		} else {
			go func() {
				if err := mqConsumer.Subscribe(); err != nil {
					log.Error().Err(err).Msg("Failed to subscribe to RocketMQ")
				}
			}()
			defer mqConsumer.Close()
		}
	}

	// Start server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("Starting server on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Close producer after in-flight deletes have finished
	if mqProducer != nil {
		mqProducer.Close()
	}

	log.Info().Msg("Server exited")
}

const bloomRewarmSchedule = "@every 5m"

// configPath returns the config file, overridable with ONESHOT_CONFIG
func configPath() string {
	if p := os.Getenv("ONESHOT_CONFIG"); p != "" {
		return p
	}
	return "configs/config.yaml"
}

// setupLogger configures the logger
func setupLogger(mode string) {
	if mode == "release" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	// Use console writer for pretty output
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

// warmBloom loads every site id into the Bloom Filter. Until it succeeds
// lookups skip the Bloom pre-check.
func warmBloom(bloomSvc *service.BloomService, mysqlRepo *repository.MySQLRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids, err := mysqlRepo.ListSiteIDs(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to list sites, Bloom pre-check disabled")
		return
	}
	if err := bloomSvc.Warm(ctx, ids); err != nil {
		log.Warn().Err(err).Msg("Failed to warm Bloom Filter, pre-check disabled")
	}
}

// setupSwagger sets up Swagger UI
func setupSwagger(router *gin.Engine) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
