package routers

import (
	"net/http"
	"net/http/pprof"

	"github.com/haierkeys/simple-note-service/internal/app"
	"github.com/haierkeys/simple-note-service/internal/middleware"
	"github.com/haierkeys/simple-note-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultPrefix url prefix of pprof
	DefaultPrefix = "/pprof"
)

// NewPrivateRouterWithApp creates the private router: metrics, expvar, health, version and pprof in debug mode
// NewPrivateRouterWithApp 创建私有路由（监控、健康检查，debug 模式下开启 pprof）
func NewPrivateRouterWithApp(appContainer *app.App) *gin.Engine {
	runMode := appContainer.Config().Server.RunMode

	r := gin.New()

	if runMode == gin.DebugMode {
		r.Use(gin.Recovery())
	} else {
		r.Use(middleware.RecoveryWithLogger(appContainer.Logger()))
	}

	// prom监控
	r.GET("/debug/vars", api_router.Expvar())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/health", api_router.NewHealthHandler(appContainer).Check)
	r.GET("/version", api_router.NewVersionHandler(appContainer).ServerVersion)

	if runMode == gin.DebugMode {
		p := r.Group(DefaultPrefix)
		{
			p.GET("/", pprofHandler(pprof.Index))
			p.GET("/cmdline", pprofHandler(pprof.Cmdline))
			p.GET("/profile", pprofHandler(pprof.Profile))
			p.POST("/symbol", pprofHandler(pprof.Symbol))
			p.GET("/symbol", pprofHandler(pprof.Symbol))
			p.GET("/trace", pprofHandler(pprof.Trace))
			p.GET("/allocs", pprofHandler(pprof.Handler("allocs").ServeHTTP))
			p.GET("/block", pprofHandler(pprof.Handler("block").ServeHTTP))
			p.GET("/goroutine", pprofHandler(pprof.Handler("goroutine").ServeHTTP))
			p.GET("/heap", pprofHandler(pprof.Handler("heap").ServeHTTP))
			p.GET("/mutex", pprofHandler(pprof.Handler("mutex").ServeHTTP))
			p.GET("/threadcreate", pprofHandler(pprof.Handler("threadcreate").ServeHTTP))
		}
	}

	r.NoRoute(middleware.NoFound())

	return r
}

func pprofHandler(h http.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
