package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gin-gorm-shop/internal/core/auth"
	"gin-gorm-shop/internal/core/config"
	"gin-gorm-shop/internal/core/server"
	"gin-gorm-shop/internal/service"
	"gin-gorm-shop/internal/transport/http/ez"
	"gin-gorm-shop/internal/transport/http/handler"
	mdw "gin-gorm-shop/internal/transport/http/middleware"
	resp "gin-gorm-shop/internal/transport/http/response"
)

// HealthCheck 依赖探活，比如 db / redis
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Log       *zap.Logger
	JWT       *auth.JWTer
	Products  *service.ProductService
	Users     *service.UserService
	Purchases *service.PurchaseService
	Auth      *service.AuthService
	HTTP      config.HTTP
	Server    server.Options
	Checks    map[string]HealthCheck
}

func (d Deps) limits() config.HTTP {
	h := d.HTTP
	if h.RequestTimeoutSec <= 0 {
		h.RequestTimeoutSec = 10
	}
	if h.RateLimitRPS <= 0 {
		h.RateLimitRPS = 200
	}
	if h.RateLimitBurst <= 0 {
		h.RateLimitBurst = 400
	}
	if h.MaxInFlight <= 0 {
		h.MaxInFlight = 300
	}
	if h.MaxBodyMB <= 0 {
		h.MaxBodyMB = 16
	}
	return h
}

func NewAPIEngine(d Deps) *gin.Engine {
	l := d.Log
	if l == nil {
		l = zap.NewNop()
	}
	lim := d.limits()

	o := d.Server
	o.Recovery = mdw.Recovery(l)
	r := server.NewRouter(l, o)
	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Metrics(),
		mdw.RateLimitPerIP(rate.Limit(lim.RateLimitRPS), lim.RateLimitBurst),
		mdw.Timeout(time.Duration(lim.RequestTimeoutSec)*time.Second),
		mdw.ConcurrencyLimit(lim.MaxInFlight),
		mdw.MaxBodyBytes(lim.MaxBodyMB<<20),
	)

	r.GET("/health", health(d.Checks))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var reg Registry
	reg.Register(
		handler.NewAuthHandler(d.Auth),
		handler.NewProductHandler(d.Products),
		handler.NewUserHandler(d.Users),
		handler.NewPurchaseHandler(d.Purchases, mdw.AuthJWT(d.JWT)),
	)
	reg.MountAll(ez.New(&r.RouterGroup, l))
	return r
}

func health(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{}
		code := resp.CodeOK
		for name, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				status[name] = err.Error()
				code = resp.CodeServiceUnavailable
				continue
			}
			status[name] = "ok"
		}
		if code != resp.CodeOK {
			c.JSON(resp.Status(code), resp.New(code, resp.CodeMsgMap[code], status))
			return
		}
		c.JSON(http.StatusOK, resp.OK(status))
	}
}
