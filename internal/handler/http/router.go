package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/search"
	"github.com/Humanoid-1/Web-backend/internal/service"
	"github.com/Humanoid-1/Web-backend/pkg/health"
	"github.com/Humanoid-1/Web-backend/pkg/middleware"
)

const (
	laptopListLimit  = 12
	catalogListLimit = 10
	catalogCacheAge  = 60
)

// Services groups everything the router serves.
type Services struct {
	Search      *search.Service
	Laptops     *service.LaptopService
	Accessories *service.AccessoryService
	Parts       *service.PartService
	Brands      *service.BrandService
	Sliders     *service.SliderService
	Contacts    *service.ContactService
	Users       *service.UserService
	Orders      *service.OrderService
	Payments    *service.PaymentService
}

// RouterConfig holds the cross-cutting HTTP settings.
type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	PprofCIDRs     []string
	RequestTimeout time.Duration
	// Per-IP limits for contact and auth submissions.
	LimitEvery time.Duration
	LimitBurst int
}

// NewRouter creates a chi router with every API route registered.
func NewRouter(
	svc Services,
	tokens middleware.TokenValidator,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Sentry)
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	authenticated := middleware.Auth(tokens)
	admin := middleware.RequireRole(middleware.RoleAdmin)
	limited := middleware.RateLimit(cfg.LimitEvery, cfg.LimitBurst, logger)

	searchHandler := NewSearchHandler(svc.Search, logger)
	laptops := NewCatalogHandler(svc.Laptops, nil, laptopListLimit, logger)
	accessories := NewCatalogHandler(svc.Accessories, func() domain.Accessory {
		return domain.Accessory{InStock: true}
	}, catalogListLimit, logger)
	parts := NewCatalogHandler(svc.Parts, nil, catalogListLimit, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search/{entity}", searchHandler.ByEntity)

		r.Route("/laptops", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.CacheControl(catalogCacheAge))
				r.Get("/", laptops.List)
				r.Get("/search", searchHandler.Entity(domain.EntityLaptop))
				r.Get("/cpus", laptops.Facet("cpu"))
				r.Get("/rams", laptops.Facet("ram"))
				r.Get("/storages", laptops.Facet("storage"))
				r.Get("/brand/{brand}", laptops.ListWhere(search.ParamBrand, "brand"))
				r.Get("/{id}", laptops.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(authenticated, admin)
				r.Post("/", laptops.Create)
				r.Put("/{id}", laptops.Update)
				r.Delete("/{id}", laptops.Delete)
			})
		})

		r.Route("/accessories", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.CacheControl(catalogCacheAge))
				r.Get("/", accessories.List)
				r.Get("/search", searchHandler.Entity(domain.EntityAccessory))
				r.Get("/brands", accessories.Facet("brand"))
				r.Get("/categories", accessories.Facet("category"))
				r.Get("/{id}", accessories.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(authenticated, admin)
				r.Post("/", accessories.Create)
				r.Put("/{id}", accessories.Update)
				r.Delete("/{id}", accessories.Delete)
			})
		})

		r.Route("/parts", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.CacheControl(catalogCacheAge))
				r.Get("/", parts.List)
				r.Get("/search", searchHandler.Entity(domain.EntityPart))
				r.Get("/brands", parts.Facet("brand"))
				r.Get("/categories", parts.Facet("category"))
				r.Get("/category/{category}", parts.FilterBy(search.ParamCategory, "category"))
				r.Get("/{id}", parts.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(authenticated, admin)
				r.Post("/", parts.Create)
				r.Put("/{id}", parts.Update)
				r.Delete("/{id}", parts.Delete)
			})
		})

		brands := NewBrandHandler(svc.Brands, logger)
		r.Get("/brands", brands.List)
		r.With(authenticated, admin).Post("/brands", brands.Create)

		sliders := NewSliderHandler(svc.Sliders, logger)
		r.Get("/sliders", sliders.List)
		r.With(authenticated, admin).Post("/sliders", sliders.Create)

		contact := NewContactHandler(svc.Contacts, logger)
		r.With(limited).Post("/contact", contact.Submit)

		users := NewUserHandler(svc.Users, logger)
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(limited)
				r.Post("/register", users.Register)
				r.Post("/login", users.Login)
				r.Post("/forgot-password", users.ForgotPassword)
				r.Post("/reset-password", users.ResetPassword)
			})
			r.Post("/logout", users.Logout)
			r.With(authenticated).Put("/change-password", users.ChangePassword)
		})

		r.Route("/users/me", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/", users.Me)
			r.Put("/", users.UpdateMe)
			r.Get("/addresses", users.Addresses)
			r.Post("/addresses", users.AddAddress)
			r.Delete("/addresses/{id}", users.DeleteAddress)
		})

		orders := NewOrderHandler(svc.Orders, logger)
		r.Route("/orders", func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/", orders.Save)
			r.Get("/mine", orders.Mine)
			r.Get("/{id}", orders.Get)
			r.With(admin).Put("/{id}/status", orders.UpdateStatus)
		})

		payments := NewPaymentHandler(svc.Payments, logger)
		r.Route("/payments", func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/orders", payments.CreateOrder)
			r.Post("/verify", payments.Verify)
		})
	})

	return r
}
