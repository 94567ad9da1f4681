package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arkumar/ecommerce-backend/internal/config"
	"github.com/arkumar/ecommerce-backend/internal/es"
	"github.com/arkumar/ecommerce-backend/internal/events"
	"github.com/arkumar/ecommerce-backend/internal/httpserver"
	"github.com/arkumar/ecommerce-backend/internal/models"
	"github.com/arkumar/ecommerce-backend/internal/repo"
	"github.com/arkumar/ecommerce-backend/internal/search"
	"github.com/arkumar/ecommerce-backend/internal/seed"
	"github.com/arkumar/ecommerce-backend/internal/service"
	"github.com/arkumar/ecommerce-backend/pkg/db"
	"github.com/arkumar/ecommerce-backend/pkg/logging"
	"github.com/arkumar/ecommerce-backend/pkg/metrics"
	loggingmw "github.com/arkumar/ecommerce-backend/pkg/middleware/logging"
)

func main() {
	cfg := config.Load().Require()

	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gormDB.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	r := repo.New(gormDB)

	seedCtx := logging.IntoContext(context.Background(), logger)
	if err := seed.Run(seedCtx, r, cfg.SeedDemoProducts); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	var indexer *search.Indexer
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(es.Options{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			// The shop stays usable without search; log and move on.
			logger.Error("elasticsearch unavailable", "error", err)
		} else {
			indexer = search.NewIndexer(esClient, cfg.ESIndex)
		}
	}

	m := metrics.NewServerMetrics("backend")

	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		Producer:      producer,
	}
	cartSvc := &service.CartService{Repo: r}
	checkoutSvc := &service.CheckoutService{Repo: r, Producer: producer}
	catalogSvc := &service.CatalogService{Repo: r, Producer: producer, Indexer: indexer}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:     &httpserver.AuthHTTP{Svc: authSvc},
		CartHandler:     &httpserver.CartHTTP{Svc: cartSvc},
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: checkoutSvc},
		ProductHandler:  &httpserver.ProductHTTP{Svc: catalogSvc},
		JWTSecret:       cfg.JWTAccessSecret,
		Metrics:         m,
		SearchEnabled:   indexer != nil,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
