package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type Options struct {
	Name     string
	Mode     string // gin.DebugMode / gin.ReleaseMode / gin.TestMode
	Tracing  bool
	Recovery gin.HandlerFunc // 为空时用 ginzap 默认的
}

// ModeFor 按环境名选择 gin 模式
func ModeFor(env string) string {
	switch env {
	case gin.ReleaseMode, "prod", "production":
		return gin.ReleaseMode
	case gin.TestMode:
		return gin.TestMode
	}
	return gin.DebugMode
}

func NewRouter(l *zap.Logger, o Options) *gin.Engine {
	if o.Mode != "" {
		gin.SetMode(o.Mode)
	}
	r := gin.New()
	if o.Recovery != nil {
		r.Use(o.Recovery)
	} else {
		r.Use(ginzap.RecoveryWithZap(l, true))
	}
	r.Use(cors.Default())
	if o.Tracing {
		r.Use(otelgin.Middleware(o.Name))
	}
	return r
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20,
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
