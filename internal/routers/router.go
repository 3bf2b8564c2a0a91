package routers

import (
	"github.com/haierkeys/simple-note-service/internal/app"
	"github.com/haierkeys/simple-note-service/internal/middleware"
	"github.com/haierkeys/simple-note-service/internal/routers/api_router"
	"github.com/haierkeys/simple-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRouter 创建对外 API 路由
// The method filter runs first and the content-type filter second; both are engine level
// so they also cover paths that match no route.
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	r := gin.New()
	// 尾部斜杠重定向在中间件之前执行，关闭后 /notes/ 交给 NoRoute
	r.RedirectTrailingSlash = false
	r.Use(middleware.AllowMethods(middleware.DefaultAllowedMethods...))
	r.Use(middleware.RequireJSON())

	r.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
	r.Use(middleware.AccessLogWithLogger(lg))
	r.Use(middleware.NewMetrics(prometheus.DefaultRegisterer).Handler())
	r.Use(middleware.RecoveryWithLogger(lg))
	r.Use(middleware.LangWithTranslator(uni))

	r.GET("/", api_router.Root)

	// 创建 Handlers（注入 App Container）
	noteHandler := api_router.NewNoteHandler(appContainer)

	notes := r.Group("/notes")
	if cfg.Server.RateLimit.Enabled {
		notes.Use(middleware.RateLimiter(limiter.NewClientLimiter(cfg.GetRateLimitRule())))
	}
	notes.Use(middleware.DBSession(appContainer.Dao, lg))
	{
		notes.GET("", noteHandler.List)
		notes.POST("", noteHandler.Create)
		notes.GET("/:id", noteHandler.Get)
		notes.PUT("/:id", noteHandler.Update)
		notes.DELETE("/:id", noteHandler.Delete)
	}

	r.NoRoute(middleware.NoFound())

	return r
}
