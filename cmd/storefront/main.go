package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authapp "github.com/agrigrow/storefront/internal/auth/application"
	authdomain "github.com/agrigrow/storefront/internal/auth/domain"
	authmysql "github.com/agrigrow/storefront/internal/auth/infrastructure/persistence/mysql"
	authredis "github.com/agrigrow/storefront/internal/auth/infrastructure/persistence/redis"
	authhttp "github.com/agrigrow/storefront/internal/auth/interfaces/http"
	cartapp "github.com/agrigrow/storefront/internal/cart/application"
	cartcatalog "github.com/agrigrow/storefront/internal/cart/infrastructure/catalog"
	cartmsg "github.com/agrigrow/storefront/internal/cart/infrastructure/messaging"
	cartredis "github.com/agrigrow/storefront/internal/cart/infrastructure/persistence/redis"
	carthttp "github.com/agrigrow/storefront/internal/cart/interfaces/http"
	catalogapp "github.com/agrigrow/storefront/internal/catalog/application"
	catalogdomain "github.com/agrigrow/storefront/internal/catalog/domain"
	catalogmsg "github.com/agrigrow/storefront/internal/catalog/infrastructure/messaging"
	catalogmysql "github.com/agrigrow/storefront/internal/catalog/infrastructure/persistence/mysql"
	catalogcache "github.com/agrigrow/storefront/internal/catalog/infrastructure/persistence/redis"
	cataloghttp "github.com/agrigrow/storefront/internal/catalog/interfaces/http"
	checkoutapp "github.com/agrigrow/storefront/internal/checkout/application"
	"github.com/agrigrow/storefront/internal/checkout/infrastructure/gateway"
	checkouthttp "github.com/agrigrow/storefront/internal/checkout/interfaces/http"
	orderapp "github.com/agrigrow/storefront/internal/order/application"
	orderdomain "github.com/agrigrow/storefront/internal/order/domain"
	ordermsg "github.com/agrigrow/storefront/internal/order/infrastructure/messaging"
	ordermysql "github.com/agrigrow/storefront/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/agrigrow/storefront/internal/order/interfaces/http"
	"github.com/agrigrow/storefront/pkg/cache"
	"github.com/agrigrow/storefront/pkg/config"
	"github.com/agrigrow/storefront/pkg/db"
	"github.com/agrigrow/storefront/pkg/idgen"
	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/agrigrow/storefront/pkg/metrics"
	"github.com/agrigrow/storefront/pkg/middleware"
	"github.com/agrigrow/storefront/pkg/mq"
	"github.com/agrigrow/storefront/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	var nodeID int64
	flag.StringVar(&configPath, "config", "configs/storefront/config.toml", "path to config file")
	flag.Int64Var(&nodeID, "node", 1, "snowflake node id")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}

	ctx := context.Background()

	database, err := db.Init(cfg.Database)
	if err != nil {
		logger.Fatal(ctx, "failed to connect database", "error", err)
	}
	defer database.Close()
	if err := database.AutoMigrate(
		&authdomain.User{},
		&catalogdomain.Fertilizer{},
		&orderdomain.Order{},
	); err != nil {
		logger.Fatal(ctx, "failed to migrate database", "error", err)
	}

	redisCache, err := cache.New(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "failed to connect redis", "error", err)
	}
	defer redisCache.Close()

	producer := mq.NewProducer(cfg.Kafka)
	defer producer.Close()

	idGenerator, err := idgen.New(nodeID)
	if err != nil {
		logger.Fatal(ctx, "failed to create id generator", "error", err)
	}

	m := metrics.New("storefront")
	if cfg.Metrics.Enabled {
		metrics.Serve(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// 商品目录
	fertilizerRepo := catalogcache.NewCachedRepository(catalogmysql.NewFertilizerRepository(database.DB), redisCache)
	catalogService := catalogapp.NewCatalogApplicationService(fertilizerRepo, catalogmsg.NewKafkaPublisher(producer))
	if err := catalogService.SeedDefaults(ctx); err != nil {
		logger.Warn(ctx, "failed to seed fertilizer catalog", "error", err)
	}

	// 购物车
	cartService := cartapp.NewCartApplicationService(
		cartredis.NewCartRepository(redisCache),
		cartcatalog.NewAdapter(catalogService.CatalogQueryService),
		cartmsg.NewKafkaPublisher(producer),
		m,
	)

	// 认证
	authService := authapp.NewAuthApplicationService(
		authmysql.NewUserRepository(database.DB),
		authredis.NewSessionRepository(redisCache.GetClient()),
		cartService,
	)

	// 订单
	orderService := orderapp.NewOrderApplicationService(
		ordermysql.NewOrderRepository(database.DB),
		ordermsg.NewKafkaPublisher(producer),
		idGenerator,
		m,
	)

	// 结算
	checkoutService := checkoutapp.NewCheckoutService(
		gateway.NewCartGateway(cartService),
		gateway.NewBreakerSubmitter(gateway.NewOrderSubmitter(orderService)),
		idGenerator,
		time.Duration(cfg.Checkout.SubmitTimeout)*time.Second,
		m,
	)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.Metrics(m),
		middleware.RateLimit(ratelimit.NewRedisRateLimiter(redisCache.GetClient()), cfg.RateLimit),
	)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("")
	authhttp.NewAuthHandler(authService).RegisterRoutes(public)
	cataloghttp.NewCatalogHandler(catalogService).RegisterRoutes(public)

	protected := router.Group("", authhttp.RequireAuth(authService))
	carthttp.NewCartHandler(cartService).RegisterRoutes(protected)
	orderhttp.NewOrderHandler(orderService).RegisterRoutes(protected)
	checkouthttp.NewCheckoutHandler(checkoutService).RegisterRoutes(protected)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}
	go func() {
		logger.Info(ctx, "storefront server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "shutting down storefront server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server shutdown failed", "error", err)
	}
}
