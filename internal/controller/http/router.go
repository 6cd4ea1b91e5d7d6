package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig параметры HTTP-слоя из конфигурации приложения
type RouterConfig struct {
	CORSOrigins  []string
	RateLimitRPS int // 0 - без ограничения
	Production   bool
}

// NewRouter собирает gin-движок: middleware и маршруты /api/v1
func NewRouter(scheduler SchedulerService, booking BookingService, cfg RouterConfig, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(RequestLogger(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(corsConfig))

	h := NewHandler(scheduler, booking)
	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	if cfg.RateLimitRPS > 0 {
		v1.Use(NewRateLimiter(cfg.RateLimitRPS).Middleware())
	}
	RegisterRoutes(v1, h)

	return r, nil
}
