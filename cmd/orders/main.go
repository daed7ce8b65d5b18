package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/dpereira/storefront/internal/adapter/client"
	"github.com/dpereira/storefront/internal/adapter/handler"
	"github.com/dpereira/storefront/internal/adapter/storage"
	"github.com/dpereira/storefront/internal/config"
	"github.com/dpereira/storefront/internal/core/service"
	"github.com/dpereira/storefront/internal/logging"
)

func main() {
	cfg := config.LoadOrders()
	log := logging.MustNew("order-service")
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		log.Fatal("open mysql", zap.Error(err))
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := storage.WaitForDB(ctx, db, log); err != nil {
		log.Fatal("database unreachable", zap.Error(err))
	}
	if err := storage.EnsureOrderSchema(ctx, db); err != nil {
		log.Fatal("schema init", zap.Error(err))
	}
	log.Info("database ready")

	directory := client.NewAccountClient(cfg.AccountsURL, cfg.UpstreamTimeout)
	catalog := client.NewCatalogClient(cfg.CatalogURL, cfg.UpstreamTimeout)
	ledger := storage.NewOrderMySQL(db)
	svc := service.NewOrderService(directory, catalog, ledger, cfg.UpstreamTimeout, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestID(), handler.RequestLogger(log))
	handler.NewOrderHandler(svc).Register(r)

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
	db.Close()
}
