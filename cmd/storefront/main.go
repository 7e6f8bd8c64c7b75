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

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/cart"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/checkout"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/config"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/events"
	h "github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/http"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/logger"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/media"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/payment"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/repository"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/storage"
	"github.com/Nareshkumarbalamurugan-freelance/ecommerceproject/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	shutdownTracing := telemetry.Setup("storefront")

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open snapshot store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("snapshot store ready", "backend", cfg.StoreBackend)

	products := repository.NewProductRepository(store, log)
	orders := repository.NewOrderRepository(store)
	if _, err := products.Load(ctx); err != nil {
		log.Error("failed to load products", "error", err)
		os.Exit(1)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaEnabled() {
		publisher = events.NewBreakerPublisher(events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...), log)
		log.Info("publishing order events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	defer publisher.Close()

	var images h.ImageUploader
	if cfg.MinioEnabled() {
		uploader, err := media.NewImageUploader(media.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.Error("failed to configure image storage", "error", err)
			os.Exit(1)
		}
		if err := uploader.EnsureBucket(ctx); err != nil {
			log.Warn("image bucket unavailable", "bucket", cfg.MinioBucket, "error", err)
		}
		images = uploader
	}

	carts := cart.NewRegistry(cfg.CartIdleTimeout)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go carts.Run(sweepCtx, cfg.CartSweepInterval)
	svc := checkout.NewService(products, orders, publisher, log)
	qr := payment.NewQRGenerator(cfg.PaymentUPIID, cfg.PaymentPayee)

	router := h.NewRouter(h.Handlers{
		Products: h.NewProductHandler(products, cfg.RequestTimeout),
		Cart:     h.NewCartHandler(carts, products, cfg.RequestTimeout),
		Checkout: h.NewCheckoutHandler(svc, carts, cfg.RequestTimeout),
		Orders:   h.NewOrdersHandler(svc, qr, cfg.RequestTimeout),
		Admin:    h.NewAdminHandler(products, svc, images, cfg.RequestTimeout),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	stopSweep()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("failed to stop tracer provider", "error", err)
	}

	log.Info("server exited")
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return storage.NewRedisStore(client), nil

	case config.BackendSQLite, config.BackendPostgres:
		var s *storage.SQLStore
		var err error
		if cfg.StoreBackend == config.BackendSQLite {
			s, err = storage.NewSQLiteStore(cfg.SQLitePath)
		} else {
			s, err = storage.NewPostgresStore(&storage.Credentials{
				Host:     cfg.DBHost,
				Port:     cfg.DBPort,
				User:     cfg.DBUser,
				Password: cfg.DBPassword,
				DBName:   cfg.DBName,
			})
		}
		if err != nil {
			return nil, err
		}
		if err := s.RunMigrations(); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil

	case config.BackendMongo:
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		return storage.NewMongoStore(db), nil

	default:
		return storage.NewMemoryStore(), nil
	}
}
