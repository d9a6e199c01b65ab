package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/identity"
	"github.com/nikolayk812/storefront/internal/payment"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/pricing"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/server"
	"github.com/nikolayk812/storefront/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	seedPath := flag.String("seed", "", "replace the product catalog from a YAML file and exit")
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for the given password and exit")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *hashPassword != "" {
		hash, err := identity.HashPassword(*hashPassword)
		if err != nil {
			logger.Fatal("hash password", zap.Error(err))
		}
		fmt.Println(hash)
		return
	}

	if err := run(*configPath, *seedPath, logger); err != nil {
		logger.Fatal("storefront exited", zap.Error(err))
	}
}

func run(configPath, seedPath string, logger *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	products := repository.NewProduct(pool)
	contacts := repository.NewContact(pool)

	if seedPath != "" {
		return seedCatalog(ctx, products, seedPath, logger)
	}

	cartStore, closeStore, err := buildCartStore(cfg)
	if err != nil {
		return fmt.Errorf("buildCartStore: %w", err)
	}
	defer closeStore()

	manager := cart.NewManager(cartStore, logger)

	unit, err := currency.ParseISO(cfg.CurrencyCode)
	if err != nil {
		return fmt.Errorf("currency.ParseISO(%q): %w", cfg.CurrencyCode, err)
	}
	policy := pricing.Policy{
		FreeShippingThresholdCents: cfg.FreeShippingThresholdCents,
		FlatShippingFeeCents:       cfg.FlatShippingFeeCents,
		Currency:                   unit,
	}

	payments := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentAPIKey, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	builder := checkout.NewBuilder(payments, cfg.CurrencyCode, logger)

	tokens, err := identity.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("identity.NewTokens: %w", err)
	}
	login := identity.NewLogin(cfg.AdminPasswordHash, tokens)

	srv := server.New(products, contacts, manager, builder, policy, tokens, login, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening",
			zap.Int("port", cfg.HTTPPort),
			zap.String("cart_backend", cfg.CartBackend))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("httpServer.Shutdown: %w", err)
		}

		// drain pending cart writes before the store closes
		manager.Flush()
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	logger.Info("storefront stopped")
	return nil
}

func buildCartStore(cfg config.Config) (port.CartStore, func(), error) {
	switch cfg.CartBackend {
	case config.CartBackendMemory:
		return store.NewMemory(), func() {}, nil

	case config.CartBackendSQLite:
		s, err := store.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("store.NewSQLite: %w", err)
		}
		return s, func() { _ = s.Close() }, nil

	case config.CartBackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis.ParseURL: %w", err)
		}
		client := redis.NewClient(opts)
		return store.NewRedis(client, cfg.CartTTL), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown cart backend %q", cfg.CartBackend)
	}
}

// seedFile mirrors the YAML schema accepted by the -seed flag.
type seedFile struct {
	Products []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		PriceCents  int64  `yaml:"price_cents"`
		ImageURL    string `yaml:"image_url"`
	} `yaml:"products"`
}

// seedCatalog atomically replaces the catalog with the file contents.
func seedCatalog(ctx context.Context, products port.ProductRepository, path string, logger *zap.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	catalog := make([]domain.Product, 0, len(f.Products))
	for _, p := range f.Products {
		catalog = append(catalog, domain.Product{
			Name:        p.Name,
			Description: p.Description,
			PriceCents:  p.PriceCents,
			ImageURL:    p.ImageURL,
		})
	}

	if err := products.ReplaceProducts(ctx, catalog); err != nil {
		return fmt.Errorf("products.ReplaceProducts: %w", err)
	}

	logger.Info("catalog seeded", zap.Int("products", len(catalog)))
	return nil
}
