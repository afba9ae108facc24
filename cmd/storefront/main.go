package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/ratelimit"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/seed"
	"github.com/Skotchmaster/storefront/internal/service"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/logging"
	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
)

var build = "develop"

type store interface {
	service.CartStore
	service.CatalogStore
	seed.Store
	Ping(ctx context.Context) error
}

func main() {
	cfg, help, err := config.Load(build)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if help != "" {
		fmt.Println(help)
		return
	}

	log := logging.New(cfg.Log.Level)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("startup", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting storefront", "build", build, "driver", cfg.Store.Driver)

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	st, closeStore, err := openStore(initCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("close store", "error", err)
		}
	}()

	var publisher events.Publisher = events.Nop{}
	if cfg.KafkaEnabled() {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		publisher = kp
		log.Info("kafka publisher enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close publisher", "error", err)
		}
	}()

	catalog := &service.CatalogService{Repo: st}
	var indexer seed.Indexer
	if cfg.SearchEnabled() {
		es, err := search.NewClient(cfg.Search.URL, cfg.Search.Username, cfg.Search.Password)
		if err != nil {
			log.Error("search_disabled", "url", cfg.Search.URL, "error", err)
		} else {
			ix := search.NewIndex(es, cfg.Search.Index)
			catalog.Search = ix
			indexer = ix
		}
	}

	seedCtx, cancel := context.WithTimeout(ctx, cfg.Seed.Timeout+30*time.Second)
	seed.NewSeeder(st, indexer, cfg.Seed.URL, cfg.Seed.Enabled, cfg.Seed.Timeout, log).Run(seedCtx)
	cancel()

	cart := &service.CartService{
		Repo:     st,
		Catalog:  st,
		Events:   publisher,
		Currency: cfg.Currency().String(),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.Web.ReadTimeout
	e.Server.WriteTimeout = cfg.Web.WriteTimeout
	e.Server.ReadHeaderTimeout = cfg.Web.ReadHeaderTimeout

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.Web.CORSOrigins}))
	if cfg.RateLimit.RPS > 0 {
		limiter := ratelimit.New(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Expiry)
		e.Use(limiter.Middleware())
	}

	httpserver.Register(e, &httpserver.Deps{
		ProductHandler: &httpserver.ProductHTTP{Svc: catalog},
		CartHandler:    &httpserver.CartHTTP{Svc: cart},
		UserID:         cfg.Demo.UserID,
		Ready:          st.Ping,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info("listening", "address", cfg.Web.Address)
		if err := e.Start(cfg.Web.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("echo start: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("echo shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (store, func() error, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, mdb, err := pkgdb.OpenMongo(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		r := &repo.MongoRepo{DB: mdb}
		if err := r.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return r, func() error { return client.Disconnect(context.Background()) }, nil
	default:
		gdb, err := pkgdb.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		r := &repo.GormRepo{DB: gdb}
		if err := r.Migrate(ctx); err != nil {
			_ = pkgdb.Close(gdb)
			return nil, nil, err
		}
		return r, func() error { return pkgdb.Close(gdb) }, nil
	}
}
