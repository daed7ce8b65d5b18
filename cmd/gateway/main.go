package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dpereira/storefront/internal/adapter/gateway"
	"github.com/dpereira/storefront/internal/adapter/handler"
	"github.com/dpereira/storefront/internal/adapter/storage"
	"github.com/dpereira/storefront/internal/config"
	"github.com/dpereira/storefront/internal/logging"
)

func main() {
	cfg := config.LoadGateway()
	log := logging.MustNew("api-gateway")
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		// Rate limiting fails open, so a missing Redis only costs the quota.
		log.Warn("redis unreachable, rate limiting degraded", zap.Error(err))
	}
	limiter := storage.NewRedisRateLimiter(rdb, cfg.RateLimit, cfg.RateWindow)

	gw := gateway.New(cfg.AccountsURL, cfg.CatalogURL, cfg.OrdersURL, cfg.ForwardTimeout, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestID(), handler.RequestLogger(log), handler.RateLimit(limiter, log))
	gw.Register(r)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("http server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
	rdb.Close()
}
