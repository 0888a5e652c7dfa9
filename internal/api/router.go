package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jengzang/metro-live-backend-go/internal/config"
	"github.com/jengzang/metro-live-backend-go/internal/handler"
	"github.com/jengzang/metro-live-backend-go/internal/live"
	"github.com/jengzang/metro-live-backend-go/internal/middleware"
	"github.com/jengzang/metro-live-backend-go/internal/repository"
	"github.com/jengzang/metro-live-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, db *sql.DB, hub *live.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.Auth(cfg.JWTSecret))

	// 依赖装配
	stationRepo := repository.NewStationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	routeService := service.NewRouteService(stationRepo, cfg.DatasetCacheTTL)
	stationService := service.NewStationService(stationRepo)
	crowdService := service.NewCrowdService(stationRepo, reportRepo, cfg.MapProfile, cfg.DetailProfile)
	reportService := service.NewReportService(reportRepo, crowdService, hub)

	routeHandler := handler.NewRouteHandler(routeService)
	reportHandler := handler.NewReportHandler(reportService)
	stationHandler := handler.NewStationHandler(stationService, crowdService)
	liveHandler := handler.NewLiveHandler(hub, 25*time.Second)

	limiter := middleware.NewRateLimiter(cfg.ReportRateLimit, cfg.ReportRateWindow)
	if cfg.ReportRateWindow > 0 {
		go limiter.Run(nil)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		status, dbStatus := http.StatusOK, "ok"
		if err := db.PingContext(c.Request.Context()); err != nil {
			status, dbStatus = http.StatusServiceUnavailable, err.Error()
		}
		c.JSON(status, gin.H{
			"status":   http.StatusText(status),
			"database": dbStatus,
			"message":  "Metro Live Backend API is running",
		})
	})

	// API 路由组
	api := r.Group("/api")
	{
		// 最短路径
		api.POST("/routes/shortest", routeHandler.ShortestRoute)

		// 社区拥挤度报告
		reports := api.Group("/reports")
		{
			reports.POST("/submit", middleware.RateLimit(limiter), reportHandler.SubmitReport)
			reports.GET("/all", reportHandler.GetReports)
			reports.GET("/station/:station", reportHandler.GetStationReports)
			reports.GET("/summary", reportHandler.GetSummary)
			reports.POST("/:id/like", reportHandler.LikeReport)
			reports.DELETE("/:id", middleware.RequireUser(), reportHandler.DeleteReport)
		}

		// 实时地图
		metroMap := api.Group("/metro-map")
		{
			metroMap.GET("/live-data", stationHandler.GetLiveMap)
			metroMap.GET("/stations/:stationId/details", stationHandler.GetStationDetails)
			metroMap.GET("/nearby", stationHandler.GetNearby)
		}

		// 站点
		stations := api.Group("/stations")
		{
			stations.GET("", stationHandler.GetStations)
			stations.GET("/live/stats", stationHandler.GetLiveStats)
			stations.GET("/:id", stationHandler.GetStation)
			stations.GET("/:id/trends", stationHandler.GetTrends)
		}

		// 实时推送
		api.GET("/live/stream", liveHandler.Stream)
	}

	return r
}
