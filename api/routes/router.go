package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adebayo-ng/nairamart-backend/api/controllers"
	"github.com/adebayo-ng/nairamart-backend/api/middleware"
	"github.com/adebayo-ng/nairamart-backend/internal/checkout"
	coupon "github.com/adebayo-ng/nairamart-backend/internal/coupons"
	"github.com/adebayo-ng/nairamart-backend/internal/orders"
	"github.com/adebayo-ng/nairamart-backend/internal/rates"
	"github.com/adebayo-ng/nairamart-backend/internal/referrals"
	"github.com/adebayo-ng/nairamart-backend/internal/wallet"
	"github.com/adebayo-ng/nairamart-backend/pkg/config"
	"github.com/adebayo-ng/nairamart-backend/pkg/db"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
	"github.com/adebayo-ng/nairamart-backend/pkg/logger"
	"github.com/adebayo-ng/nairamart-backend/pkg/metrics"
	"github.com/adebayo-ng/nairamart-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Rates     rates.Service
	Coupons   coupon.Service
	Checkout  checkout.Service
	Guard     *checkout.Guard
	Orders    orders.Service
	Wallet    wallet.Service
	Referrals referrals.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/shipping-fees", controllers.ListShippingFees(deps.Rates, logg))
		r.Post("/shipping/resolve", controllers.ResolveShipping(logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/v1", func(r chi.Router) {
			r.Post("/coupons/validate", controllers.ValidateCoupon(deps.Coupons, logg))
			r.Post("/checkout/quote", controllers.QuoteCheckout(deps.Checkout, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.CreateOrder(deps.Orders, deps.Checkout, deps.Guard, logg))
				r.Get("/", controllers.ListMyOrders(deps.Orders, logg))
				r.Get("/{orderId}", controllers.GetOrder(deps.Orders, logg))
				r.Post("/{orderId}/cancel", controllers.CancelOrder(deps.Orders, logg))
			})

			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", controllers.GetWallet(deps.Wallet, logg))
				r.Post("/pin", controllers.SetWalletPIN(deps.Wallet, logg))
				r.Post("/topup", controllers.TopUpWallet(deps.Wallet, logg))
			})

			r.Get("/referrals/summary", controllers.ReferralSummary(deps.Referrals, logg))

			r.Route("/vendor", func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.MemberRoleVendor.String(), logg))
				r.Get("/orders", controllers.ListVendorOrders(deps.Orders, logg))
				r.Post("/orders/{orderId}/decision", controllers.VendorDecision(deps.Orders, logg))
				r.Post("/orders/{orderId}/ship", controllers.ShipOrder(deps.Orders, logg))
			})

			r.Route("/agent", func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.MemberRoleAgent.String(), logg))
				r.Get("/deliveries", controllers.ListAgentDeliveries(deps.Orders, logg))
				r.Post("/deliveries/{orderId}/deliver", controllers.DeliverOrder(deps.Orders, logg))
			})
		})
	})

	return r
}
