package router

import (
	"Forum/config"
	"Forum/socket/handler"
	"net/http/pprof"

	"github.com/gin-gonic/gin"
)

// Register websocket 入口；调试模式下附带 pprof
func Register(r gin.IRouter, conf *config.Config, handle *handler.Handler) {
	handle.RegisterRouter(r)

	if !conf.Debug() {
		return
	}
	debug := r.Group("/debug/pprof")
	{
		debug.GET("/", gin.WrapF(pprof.Index))
		debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		debug.GET("/profile", gin.WrapF(pprof.Profile))
		debug.POST("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/trace", gin.WrapF(pprof.Trace))
		debug.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		debug.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		debug.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}
}
