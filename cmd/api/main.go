package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/kingrain94/school-tenancy-api/docs"
	"github.com/kingrain94/school-tenancy-api/internal/api"
	"github.com/kingrain94/school-tenancy-api/internal/cache"
	"github.com/kingrain94/school-tenancy-api/internal/config"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/middleware"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
	"github.com/kingrain94/school-tenancy-api/internal/repository/composite"
	"github.com/kingrain94/school-tenancy-api/internal/repository/postgres"
	"github.com/kingrain94/school-tenancy-api/internal/service"
	"github.com/kingrain94/school-tenancy-api/internal/service/pubsub"
	"github.com/kingrain94/school-tenancy-api/internal/service/queue"
	"github.com/kingrain94/school-tenancy-api/internal/tenancy"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

// @title           School Tenancy API
// @version         1.0
// @description     Tenant resolution and isolation for a multi-institution school platform.

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		appLogger.Fatal("Failed to load database config", err)
	}
	if err := postgres.RunMigrations(dbConfig.Writer.URL(), cfg.MigrationsDir); err != nil {
		appLogger.Fatal("Failed to migrate directory database", err)
	}
	dbConnections, err := config.NewDatabaseConnections(dbConfig, cfg.AppEnv)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()
	appLogger.Info("Directory database connections established - writer and reader connected")

	osConfig, err := config.LoadOpenSearchConfig()
	if err != nil {
		appLogger.Fatal("Failed to load OpenSearch config", err)
	}
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}

	redisConfig, err := config.LoadRedisConfig()
	if err != nil {
		appLogger.Fatal("Failed to load Redis config", err)
	}
	redisClient, err := redisConfig.GetClient(ctx)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient)
	redisPubSub := pubsub.NewRedisPubSub(redisClient, appLogger)
	defer redisPubSub.Close()

	sqsConfig, err := config.LoadSQSConfig()
	if err != nil {
		appLogger.Fatal("Failed to load SQS config", err)
	}
	sqsClient, err := sqsConfig.GetClient(ctx)
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	tenantStoreConfig, err := config.LoadTenantStoreConfig()
	if err != nil {
		appLogger.Fatal("Failed to load tenant store config", err)
	}

	repo := composite.NewCompositeRepository(dbConnections, osClient, osConfig)

	// Tenancy
	tenancyLogger := appLogger.Named("tenancy")
	directory, err := tenancy.NewCachedDirectory(
		tenancy.NewDirectory(repo.Tenant(), repo.Subscription(), repository.ErrNotFound),
		redisCache,
		cfg.Tenancy.CacheTTL,
		tenancyLogger,
	)
	if err != nil {
		appLogger.Fatal("Failed to build tenant directory", err)
	}
	binder := tenancy.NewBinder(postgres.NewTenantStoreOpener(tenantStoreConfig, cfg.AppEnv), tenancyLogger)
	defer binder.Close()

	err = redisPubSub.SubscribeTenantEvents(ctx, func(event *pubsub.TenantEvent) {
		tenant := &domain.Tenant{ID: event.TenantID, Code: event.Code, Status: event.Status}
		if err := directory.Invalidate(ctx, tenant); err != nil {
			tenancyLogger.Warn("failed to invalidate tenant cache", zap.Error(err), zap.String("tenant_code", event.Code))
		}
		if event.Type == pubsub.TenantEventStatusChanged && !tenant.IsActive() {
			if err := binder.Evict(event.TenantID); err != nil {
				tenancyLogger.Warn("failed to evict tenant pools", zap.Error(err), zap.String("tenant_code", event.Code))
			}
		}
	})
	if err != nil {
		appLogger.Fatal("Failed to subscribe to tenant events", err)
	}

	// Services
	tenantService := service.NewTenantService(repo, directory, redisPubSub, appLogger)
	subscriptionService := service.NewSubscriptionService(repo, directory, redisPubSub, cfg.Tenancy.Location(), appLogger)
	securityEventService := service.NewSecurityEventService(repo, sqsService, redisPubSub, appLogger)

	pipeline := tenancy.NewPipeline(
		tenancy.NewResolver(tenancy.ResolverConfig{
			Header:          cfg.Tenancy.Header,
			ReservedLabels:  cfg.Tenancy.ReservedLabels,
			BaseDomain:      cfg.Tenancy.BaseDomain,
			QueryParam:      cfg.Tenancy.DevQueryParam,
			AllowQueryParam: !cfg.IsProduction(),
		}, directory),
		binder,
		directory,
		tenancy.NewGate(cfg.Tenancy.Location()),
		tenancy.NewGuard(securityEventService, tenancyLogger),
	)
	appLogger.Info("Tenancy pipeline ready", zap.Strings("stages", pipeline.Stages()))

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisCache, cfg, appLogger)
	requestMiddleware := middleware.NewRequestMiddleware(appLogger)
	tenancyMiddleware := middleware.NewTenancyMiddleware(pipeline, tenancy.NewLocalizer(cfg.Tenancy.DefaultLocale), tenancyLogger)

	server := api.NewServer(
		tenantService,
		subscriptionService,
		securityEventService,
		authMiddleware,
		rateLimitMiddleware,
		requestMiddleware,
		tenancyMiddleware,
		appLogger,
		redisPubSub,
	)
	server.StartWebSocketHub()
	defer server.StopWebSocketHub()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.ServerPort)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "tenant_pools": binder.OpenPools()})
	})

	apiGroup := router.Group("/api/v1")
	server.SetupRoutes(apiGroup)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", err)
		}
	}()
	appLogger.Infof("Server listening on :%d", cfg.ServerPort)

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
