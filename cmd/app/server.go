package main

import (
	"net/http"

	"GearGodAPI/external/abstractapi"
	"GearGodAPI/external/midtrans"
	"GearGodAPI/external/resend"
	"GearGodAPI/internal/cart"
	"GearGodAPI/internal/config"
	"GearGodAPI/internal/middleware"
	"GearGodAPI/internal/realtime"
	"GearGodAPI/internal/repository"
	"GearGodAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type app struct {
	auth     *services.AuthService
	products *services.ProductService
	lookups  *services.LookupService
	carts    *services.CartService
	coupons  *services.CouponService
	orders   *services.OrderService
	payments *services.PaymentService // nil when Midtrans is not configured
	reports  *services.ReportService
	hub      *realtime.Hub
}

func newCartStore(backend string, pool repository.Pool) (cart.Store, error) {
	switch backend {
	case "", "memory":
		return cart.NewMemoryStore(), nil
	case "postgres":
		return cart.NewPostgresStore(repository.NewCartRepository(pool)), nil
	}
	return nil, errors.Errorf("unknown CART_BACKEND %q", backend)
}

// buildApp wires repositories, externals and services.
func buildApp(cfg *config.Config, pool repository.Pool, log *zap.Logger) (*app, error) {
	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator
	if cfg.AbstractEmailAPIKey != "" {
		v, err := abstractapi.NewAbstractReputationValidator(cfg.AbstractEmailAPIKey)
		if err != nil {
			return nil, err
		}
		emailValidator = v
	} else {
		emailValidator = services.NewLocalValidator()
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	lookupRepo := repository.NewLookupRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	store, err := newCartStore(cfg.CartBackend, pool)
	if err != nil {
		return nil, err
	}

	// ======================
	// SERVICES
	// ======================
	a := &app{
		auth:     services.NewAuthService(userRepo, emailValidator),
		products: services.NewProductService(productRepo, lookupRepo, cfg.UploadDir, log),
		lookups:  services.NewLookupService(lookupRepo, productRepo),
		carts:    services.NewCartService(store, productRepo, lookupRepo),
		coupons:  services.NewCouponService(couponRepo),
		reports:  services.NewReportService(reportRepo, couponRepo, orderRepo),
		hub:      realtime.NewHub(log),
	}
	a.orders = services.NewOrderService(orderRepo, a.coupons, store, log)
	a.orders.Events = a.hub

	if cfg.ResendAPIKey != "" {
		mailer, err := resend.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
		if err != nil {
			return nil, err
		}
		a.orders.Mailer = mailer
	}
	if cfg.MidtransServerKey != "" {
		snapClient := midtrans.NewSnapClient(cfg.MidtransServerKey, cfg.MidtransEnv)
		a.payments = services.NewPaymentService(paymentRepo, orderRepo, snapClient, cfg.MidtransServerKey, log)
		a.orders.Payments = a.payments
	}
	return a, nil
}

func newServer(cfg *config.Config, a *app, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	adminOnly := []echo.MiddlewareFunc{middleware.JWTMiddleware(), middleware.AdminOnly}
	admin := api.Group("/admin", adminOnly...)

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, a.auth)
	registerLookupRoutes(api, a.lookups)
	registerProductRoutes(api, adminOnly, a.products)
	registerCartRoutes(api, a.carts)
	registerCouponRoutes(api, admin, a.coupons)
	registerOrderRoutes(api, admin, a.orders, a.hub)
	registerReportRoutes(admin, a.reports)
	if a.payments != nil {
		registerPaymentRoutes(api, a.payments)
	}

	return e
}
