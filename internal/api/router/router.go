package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"edusync/backend/config"
	"edusync/backend/internal/api/handler"
	"edusync/backend/internal/api/middleware"
	"edusync/backend/internal/model"
	"edusync/backend/pkg/jwt"
	"edusync/backend/pkg/metrics"
	"edusync/backend/pkg/redis"
)

// defaultBodyLimit applies to every JSON endpoint.
const defaultBodyLimit = 1 << 20

// multipartOverhead is added to the media size limit for form boundaries and
// headers.
const multipartOverhead = 1 << 20

const uploadMediaPath = "/api/Courses/upload-media"

// Setup builds the gin engine. rdb may be nil, which disables rate limiting.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(defaultBodyLimit, map[string]int64{
		uploadMediaPath: cfg.Storage.MaxUploadBytes + multipartOverhead,
	}))

	// ── health & metrics ──
	r.GET("/health", healthHandler(db, rdb))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}
	authLimit := middleware.RateLimit(limiter, cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow, logger)

	authRequired := middleware.JWTAuth(jwtMgr)
	authOptional := middleware.OptionalJWTAuth(jwtMgr)
	instructorOnly := middleware.RoleAuth(model.RoleInstructor)
	studentOnly := middleware.RoleAuth(model.RoleStudent)

	api := r.Group("/api")
	{
		auth := api.Group("/Auth")
		{
			auth.POST("/register", authLimit, h.Auth.Register)
			auth.POST("/login", authLimit, h.Auth.Login)
			auth.GET("/me", authRequired, h.Auth.Me)
		}

		users := api.Group("/Users", authRequired)
		{
			users.GET("", h.User.List)
			users.GET("/:id", h.User.Get)
			users.POST("", instructorOnly, h.User.Create)
			users.PUT("/:id", h.User.Update) // self only, checked in the service
			users.DELETE("/:id", h.User.Delete)
		}

		courses := api.Group("/Courses")
		{
			courses.GET("", authOptional, h.Course.List)
			courses.GET("/:id", authOptional, h.Course.Get)
			courses.POST("", authRequired, instructorOnly, h.Course.Create)
			courses.PUT("/:id", authRequired, instructorOnly, h.Course.Update)
			courses.DELETE("/:id", authRequired, instructorOnly, h.Course.Delete)

			courses.POST("/upload-media", authRequired, instructorOnly, h.Media.Upload)
			courses.GET("/test-blob", authRequired, instructorOnly, h.Media.CheckStorage)
			courses.POST("/test-youtube", h.Media.CheckYouTube)
			courses.GET("/:id/results/export", authRequired, instructorOnly, h.Export.CourseResults)
		}

		assessments := api.Group("/Assessments")
		{
			assessments.GET("", authOptional, h.Assessment.List)
			assessments.GET("/:id", authOptional, h.Assessment.Get)
			assessments.POST("", authRequired, instructorOnly, h.Assessment.Create)
			assessments.PUT("/:id", authRequired, instructorOnly, h.Assessment.Update)
			assessments.DELETE("/:id", authRequired, instructorOnly, h.Assessment.Delete)
		}

		results := api.Group("/Results", authRequired)
		{
			results.GET("", h.Result.List)
			results.GET("/:id", h.Result.Get)
			results.POST("", studentOnly, h.Result.Create)
			results.PUT("/:id", instructorOnly, h.Result.Update)
			results.DELETE("/:id", instructorOnly, h.Result.Delete)
		}
	}

	return r
}

// healthHandler reports database and Redis reachability. Redis is optional;
// only a database failure makes the service unhealthy.
func healthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := gin.H{"status": "ok", "database": "ok", "redis": "disabled"}

		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["database"] = "unreachable"
			}
		}

		if rdb != nil {
			body["redis"] = "ok"
			if err := rdb.Ping(ctx); err != nil {
				body["redis"] = "unreachable"
			}
		}

		c.JSON(status, body)
	}
}
