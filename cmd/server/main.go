package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog-gateway/internal/config"
	"catalog-gateway/internal/controller"
	"catalog-gateway/internal/database"
	"catalog-gateway/internal/dialect"
	"catalog-gateway/internal/mcp"
	"catalog-gateway/internal/middleware"
	"catalog-gateway/internal/repository"
	"catalog-gateway/internal/service"
	"catalog-gateway/pkg/response"
)

const version = "1.0.0"

func main() {
	mcpMode := flag.Bool("mcp", false, "serve MCP over stdio instead of HTTP")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Infrastructure
	datasourceRepo := repository.NewDataSourceRepository(cfg.BuildDataSources())
	connPool := database.NewConnectionPool()
	defer connPool.CloseAll()
	healthChecker := database.NewHealthChecker(connPool)
	dialects := dialect.NewRegistry()

	// Services
	catalogService := service.NewCatalogService(datasourceRepo, connPool, dialects, &cfg.Catalog)
	queryService := service.NewQueryService(datasourceRepo, connPool, dialects, &cfg.Catalog)

	if *mcpMode {
		mcpServer := mcp.NewMCPServer(catalogService, queryService, version)
		if err := mcpServer.StartStdio(); err != nil {
			log.Fatal("MCP server error:", err)
		}
		return
	}

	middleware.InitMetrics()

	poolCtx, poolCancel := context.WithCancel(context.Background())
	defer poolCancel()
	go service.NewPoolMetricsPublisher(connPool, datasourceRepo, 15*time.Second).Start(poolCtx)

	// Controllers
	catalogController := controller.NewCatalogController(catalogService, queryService)
	healthController := controller.NewHealthController(datasourceRepo, healthChecker, version)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPM:             cfg.Security.RateLimitPerMinute,
		Burst:           cfg.Security.RateLimitBurst,
		CleanupInterval: 5 * time.Minute,
	})

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.Cors())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.PrometheusMiddleware())
	if cfg.Security.EnableRateLimit {
		router.Use(rateLimiter.RateLimit())
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.NotFoundResponse(
			"route not found: "+c.Request.URL.Path,
			middleware.GetCorrelationID(c),
		))
	})

	router.GET("/health", healthController.HealthCheck)
	router.GET("/health/databases", healthController.DatabaseHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/databases", catalogController.ListDatabases)
		api.GET("/databases/:database/tables", catalogController.ListTables)
		api.GET("/databases/:database/tables/:table", catalogController.DescribeTable)
		api.GET("/databases/:database/tables/:table/sample", catalogController.SampleTable)
		api.POST("/databases/:database/test", catalogController.TestConnection)
		api.POST("/query", catalogController.ExecuteQuery)
		api.GET("/stats", catalogController.QueryStats)
	}

	log.Printf("Starting server on port %s", cfg.Server.Port)
	log.Printf("Health check available at: http://localhost:%s/health", cfg.Server.Port)

	if err := router.Run(cfg.Server.Host + ":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
