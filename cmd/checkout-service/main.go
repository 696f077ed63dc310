package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sejalm1919/E-Commerce/internal/cache"
	"github.com/sejalm1919/E-Commerce/internal/catalog"
	"github.com/sejalm1919/E-Commerce/internal/config"
	checkoutgrpc "github.com/sejalm1919/E-Commerce/internal/grpc"
	h "github.com/sejalm1919/E-Commerce/internal/http"
	"github.com/sejalm1919/E-Commerce/internal/logger"
	"github.com/sejalm1919/E-Commerce/internal/payment"
	"github.com/sejalm1919/E-Commerce/internal/publisher"
	"github.com/sejalm1919/E-Commerce/internal/repository"
	"github.com/sejalm1919/E-Commerce/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "checkout-service: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Service: "checkout-service",
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "checkout-service: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("checkout-service stopped with error")
	}
	log.Info().Msg("checkout-service stopped")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	products, err := catalog.NewRepository(cfg.Catalog.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer products.Close()

	if err := products.RunMigrations(cfg.Catalog.MigrationsPath); err != nil {
		return fmt.Errorf("catalog migrations: %w", err)
	}
	log.Info().Str("path", cfg.Catalog.DBPath).Msg("catalog ready")

	store, outbox, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	log.Info().Str("driver", cfg.Store.Driver).Msg("order store ready")

	grpcServer := checkoutgrpc.NewServer(log)

	lookup := catalog.NewBreakerLookup(products, catalog.BreakerSettings{
		Name:        "catalog",
		MaxFailures: cfg.Checkout.BreakerMaxFailures,
		OpenTimeout: cfg.Checkout.BreakerOpenTimeout,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			grpcServer.SetCheckoutServing(to != gobreaker.StateOpen)
		},
	})

	var orderCache cache.OrderCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		orderCache = cache.NewRedisCache(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("order cache enabled")
	}

	checkoutService := service.NewCheckoutService(
		service.NewStoreHandler(store, cfg.Checkout.StoreTimeout),
		service.NewProductHandler(lookup, cfg.Checkout.LookupTimeout),
		payment.NewSimulator(),
		orderCache,
		log,
	)

	httpServer := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: h.NewRouter(checkoutService, h.RouterConfig{
			RequestTimeout:     cfg.RequestTimeout,
			MaxRequestBodySize: cfg.MaxRequestBodySize,
		}, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen on grpc port %s: %w", cfg.GRPCPort, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Msg("http server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info().Str("port", cfg.GRPCPort).Msg("grpc health server starting")
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	if len(cfg.Kafka.Brokers) > 0 {
		poller := publisher.NewOutboxPoller(outbox, log, cfg.Kafka.Brokers...)
		g.Go(func() error {
			log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", publisher.TopicOrderPlaced).Msg("outbox poller starting")
			poller.Run(gctx)
			return poller.Close()
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// openStore returns the order store together with the outbox it writes to.
func openStore(cfg *config.Config) (repository.OrderRepository, repository.OutboxRepository, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		store := repository.NewMemoryStore()
		return store, store, nil
	}

	creds := &repository.Credentials{
		Host:              cfg.Store.Host,
		Port:              cfg.Store.Port,
		User:              cfg.Store.User,
		Password:          cfg.Store.Password,
		DBName:            cfg.Store.DBName,
		MigrationsDirPath: cfg.Store.MigrationsPath,
	}

	repo, err := repository.NewPostgresRepository(creds)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := repo.RunMigrations(creds); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("order store migrations: %w", err)
	}
	return repo, repo, nil
}
