package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/adebayo-ng/nairamart-backend/api/routes"
	"github.com/adebayo-ng/nairamart-backend/internal/checkout"
	coupon "github.com/adebayo-ng/nairamart-backend/internal/coupons"
	"github.com/adebayo-ng/nairamart-backend/internal/orders"
	"github.com/adebayo-ng/nairamart-backend/internal/rates"
	"github.com/adebayo-ng/nairamart-backend/internal/referrals"
	"github.com/adebayo-ng/nairamart-backend/internal/wallet"
	"github.com/adebayo-ng/nairamart-backend/pkg/config"
	"github.com/adebayo-ng/nairamart-backend/pkg/db"
	"github.com/adebayo-ng/nairamart-backend/pkg/logger"
	"github.com/adebayo-ng/nairamart-backend/pkg/metrics"
	"github.com/adebayo-ng/nairamart-backend/pkg/migrate"
	"github.com/adebayo-ng/nairamart-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	walletService, err := wallet.NewService(wallet.NewRepository(dbClient.DB()), dbClient, cfg.PIN)
	if err != nil {
		logg.Error(context.Background(), "failed to create wallet service", err)
		os.Exit(1)
	}
	couponService, err := coupon.NewService(coupon.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create coupon service", err)
		os.Exit(1)
	}
	ratesService, err := rates.NewService(rates.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create rates service", err)
		os.Exit(1)
	}
	referralsService, err := referrals.NewService(referrals.NewRepository(dbClient.DB()), walletService, cfg.Referral)
	if err != nil {
		logg.Error(context.Background(), "failed to create referrals service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, couponService, walletService, referralsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	checkoutService, err := checkout.NewService(couponService)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}
	guard, err := checkout.NewGuard(redisClient, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create submission guard", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,
			Registry:    registry,
			Rates:       ratesService,
			Coupons:     couponService,
			Checkout:    checkoutService,
			Guard:       guard,
			Orders:      ordersService,
			Wallet:      walletService,
			Referrals:   referralsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
