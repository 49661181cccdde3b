package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coolfootwear/storefront/internal/catalog"
	"github.com/coolfootwear/storefront/internal/config"
	deliveryHttp "github.com/coolfootwear/storefront/internal/delivery/http"
	"github.com/coolfootwear/storefront/internal/messaging"
	"github.com/coolfootwear/storefront/internal/messaging/kafka"
	"github.com/coolfootwear/storefront/internal/messaging/watermill"
	"github.com/coolfootwear/storefront/internal/payment"
	"github.com/coolfootwear/storefront/internal/repository"
	"github.com/coolfootwear/storefront/internal/repository/memory"
	"github.com/coolfootwear/storefront/internal/repository/postgres"
	"github.com/coolfootwear/storefront/internal/service"
	"github.com/coolfootwear/storefront/internal/session"
	"github.com/coolfootwear/storefront/internal/storage"
)

// inMemoryDatabase as DATABASE_URL keeps every repository in process.
const inMemoryDatabase = "memory"

type repositories struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	events   repository.EventStore
}

type broker interface {
	messaging.Publisher
	messaging.Subscriber
	io.Closer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Database ---
	repos, closeDB, err := openRepositories(cfg)
	if err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}
	defer closeDB()

	if cfg.SeedCatalog {
		if err := repos.products.Seed(ctx, catalog.SeedProducts()); err != nil {
			slog.Error("Failed to seed products", "err", err)
			os.Exit(1)
		}
	}

	// --- Catalog ---
	var source catalog.Source = repos.products
	if cfg.CatalogAPIURL != "" {
		slog.Warn("Reading catalog from remote API; admin product edits are disabled", "url", cfg.CatalogAPIURL)
		source = catalog.NewRemoteSource(cfg.CatalogAPIURL, &http.Client{Timeout: 10 * time.Second})
	}
	products := catalog.NewCache(source)

	// --- Cart & wishlist storage ---
	store, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to init storage", "err", err)
		os.Exit(1)
	}
	defer closeStore()

	// --- Messaging ---
	bus := openBroker(cfg)
	defer bus.Close()

	// --- Services ---
	location, err := time.LoadLocation(cfg.OrderTimeZone)
	if err != nil {
		slog.Error("Invalid order time zone", "zone", cfg.OrderTimeZone, "err", err)
		os.Exit(1)
	}
	sessions, err := session.NewManager(session.Config{
		Key:      cfg.SessionKey,
		Lifetime: cfg.SessionLifetime,
		Secure:   cfg.SessionSecure,
	})
	if err != nil {
		slog.Error("Failed to init sessions", "err", err)
		os.Exit(1)
	}

	carts := service.NewCartService(store, products)
	wishlists := service.NewWishlistService(store)
	orders := service.NewOrderService(repos.orders, repos.events, bus)
	accounts := service.NewAccountService(repos.users, carts, wishlists, service.AdminCredentials{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	})
	checkout := service.NewCheckoutService(store, carts, orders, payment.Merchant{
		Key:         cfg.RazorpayKey,
		ImageURL:    cfg.PaymentImageURL,
		CallbackURL: cfg.PaymentCallbackURL,
	}, location)

	// --- HTTP API ---
	handler := deliveryHttp.NewHandler(deliveryHttp.Deps{
		Catalog:       products,
		Products:      repos.products,
		Carts:         carts,
		Wishlists:     wishlists,
		Accounts:      accounts,
		Orders:        orders,
		Checkout:      checkout,
		Sessions:      sessions,
		RemoteCatalog: cfg.CatalogAPIURL != "",
		SecureCookies: cfg.SessionSecure,
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           deliveryHttp.EnableCORS(cfg.AllowedCORSOrigin, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Start everything ---
	for _, sub := range orders.Subscriptions() {
		go bus.Consume(ctx, sub.Topic, sub.GroupID, sub.Handler)
	}
	slog.Info("🔄 Order consumers started")

	go func() {
		slog.Info("🚀 HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown", "err", err)
	}
}

func openRepositories(cfg *config.Config) (repositories, func(), error) {
	if cfg.DatabaseURL == inMemoryDatabase {
		slog.Warn("Using in-memory repositories; data is lost on restart")
		return repositories{
			products: memory.NewProductRepository(),
			orders:   memory.NewOrderRepository(),
			users:    memory.NewUserRepository(),
			events:   memory.NewEventStore(),
		}, func() {}, nil
	}

	db, err := postgres.InitDB(cfg.DatabaseURL)
	if err != nil {
		return repositories{}, nil, err
	}
	return repositories{
		products: postgres.NewProductRepository(db),
		orders:   postgres.NewOrderRepository(db),
		users:    postgres.NewUserRepository(db),
		events:   postgres.NewEventStore(db),
	}, func() { db.Close() }, nil
}

func openStore(cfg *config.Config) (storage.Store, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR not set; carts are kept in memory")
		return storage.NewMemoryStore(), func() {}, nil
	}

	client, err := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	store := storage.NewRedisStore(client)
	return store, func() { store.Close() }, nil
}

func openBroker(cfg *config.Config) broker {
	if len(cfg.KafkaBrokers) == 0 {
		slog.Info("KAFKA_BROKERS not set; order events use the in-process bus")
		return watermill.NewBroker(slog.Default())
	}
	slog.Info("Publishing order events to Kafka", "brokers", cfg.KafkaBrokers)
	return kafka.NewBroker(cfg.KafkaBrokers)
}
