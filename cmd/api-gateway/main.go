package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Bitshala/admin/api/swagger"
	"github.com/Bitshala/admin/internal/handler"
	"github.com/Bitshala/admin/internal/middleware"
	"github.com/Bitshala/admin/internal/repository"
	"github.com/Bitshala/admin/internal/service"
	"github.com/Bitshala/admin/pkg/cache"
	"github.com/Bitshala/admin/pkg/config"
	"github.com/Bitshala/admin/pkg/database"
	"github.com/Bitshala/admin/pkg/logger"
	corsmiddleware "github.com/Bitshala/admin/pkg/middleware/cors"
	reqidmiddleware "github.com/Bitshala/admin/pkg/middleware/requestid"
)

// @title Bitshala Cohort Admin API
// @version 0.1.0
// @description Weekly roster, scoring and leaderboard service for cohort administration
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	weekRepo := repository.NewWeekRecordRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Leaderboard.CacheTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.Cohort.Name,
	})
	rosterSvc := service.NewRosterService(weekRepo, submissionRepo, cacheSvc, metricsSvc, cfg.Cohort, logr)
	leaderboardSvc := service.NewLeaderboardService(weekRepo, cacheSvc, cfg.Leaderboard, logr)
	studentSvc := service.NewStudentService(weekRepo, participantRepo, submissionRepo, logr)
	exportSvc := service.NewExportService(rosterSvc, cfg.Exports, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc, validate)
	studentHandler := handler.NewStudentHandler(studentSvc)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	r.POST("/auth/login", authHandler.Login)

	authed := r.Group("/", middleware.JWT(authSvc))
	{
		authed.GET("/weekly_data/:week", rosterHandler.GetWeek)
		authed.POST("/weekly_data/:week", rosterHandler.SaveWeek)
		authed.POST("/weekly_data/:week/delete", rosterHandler.DeleteRecord)
		authed.GET("/weekly_data/:week/export.csv", exportHandler.WeekCSV)
		authed.GET("/weekly_data/:week/export.pdf", exportHandler.WeekPDF)

		authed.GET("/attendance/weekly_counts/:week", rosterHandler.WeeklyAttendance)

		authed.GET("/students/count", rosterHandler.StudentCount)
		authed.GET("/students/total_scores", leaderboardHandler.TotalScores)
		authed.GET("/students/background", studentHandler.Background)
		authed.GET("/students/:name/history", studentHandler.History)
		authed.GET("/students/:name/submission", studentHandler.Submission)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "cohort", cfg.Cohort.Name)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
