package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/Humanoid-1/Web-backend/internal/auth"
	"github.com/Humanoid-1/Web-backend/internal/cache"
	"github.com/Humanoid-1/Web-backend/internal/config"
	"github.com/Humanoid-1/Web-backend/internal/domain"
	"github.com/Humanoid-1/Web-backend/internal/event"
	handler "github.com/Humanoid-1/Web-backend/internal/handler/http"
	"github.com/Humanoid-1/Web-backend/internal/media"
	"github.com/Humanoid-1/Web-backend/internal/payment"
	"github.com/Humanoid-1/Web-backend/internal/payment/mock"
	"github.com/Humanoid-1/Web-backend/internal/payment/razorpay"
	"github.com/Humanoid-1/Web-backend/internal/repository/postgres"
	"github.com/Humanoid-1/Web-backend/internal/search"
	"github.com/Humanoid-1/Web-backend/internal/service"
	"github.com/Humanoid-1/Web-backend/internal/telemetry"
	"github.com/Humanoid-1/Web-backend/migrations"
	"github.com/Humanoid-1/Web-backend/pkg/database"
	"github.com/Humanoid-1/Web-backend/pkg/health"
	"github.com/Humanoid-1/Web-backend/pkg/httpclient"
	pkgkafka "github.com/Humanoid-1/Web-backend/pkg/kafka"
	"github.com/Humanoid-1/Web-backend/pkg/tracing"
)

// ServiceName labels logs, metrics, traces and events.
const ServiceName = "web-backend"

// Version is set at build time.
var Version = "0.1.0"

// App wires together all dependencies and runs the web backend.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	infra          *infra
	consumers      []*pkgkafka.Consumer
	dlq            *pkgkafka.DeadLetterQueue
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
	sentryFlush    func()
}

// infra holds the connections shared by the serve and seed commands.
type infra struct {
	pool     *pgxpool.Pool
	redis    *redis.Client // nil when redis is unreachable
	producer *pkgkafka.Producer
	events   *event.Producer
}

func (i *infra) close(logger *slog.Logger) []error {
	var errs []error
	if i.producer != nil {
		if err := i.producer.Close(); err != nil {
			logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	i.pool.Close()
	return errs
}

// connect opens postgres (required), redis and, when enabled, the kafka producer.
func connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*infra, error) {
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)
	}

	in := &infra{pool: pool}

	rdb, err := database.NewRedisClient(ctx, cfg.Redis(), logger)
	if err != nil {
		logger.Warn("facet cache disabled", slog.String("error", err.Error()))
	} else {
		in.redis = rdb
	}

	// An untyped nil publisher keeps event.Producer a no-op.
	var publisher event.Publisher
	if cfg.KafkaEnabled {
		in.producer = pkgkafka.NewProducer(pkgkafka.ProducerConfig{
			Brokers:                cfg.KafkaBrokers,
			AllowAutoTopicCreation: true,
		}, logger)
		publisher = in.producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	in.events = event.NewProducer(publisher, logger)

	return in, nil
}

// catalog is the set of catalog services over postgres.
type catalog struct {
	search      *search.Service
	laptops     *service.LaptopService
	accessories *service.AccessoryService
	parts       *service.PartService
	brands      *service.BrandService
	facets      *cache.FacetCache
}

func newCatalog(cfg *config.Config, in *infra, logger *slog.Logger) *catalog {
	resolver := media.NewResolver(cfg.PublicBaseURL)

	// A nil *FacetCache must not reach the services as a non-nil interface.
	var facets service.FacetCache
	var facetCache *cache.FacetCache
	if in.redis != nil {
		facetCache = cache.NewFacetCache(in.redis, cfg.FacetCacheTTL, logger)
		facets = facetCache
	}

	laptopStore := postgres.NewLaptopStore(in.pool)
	accessoryStore := postgres.NewAccessoryStore(in.pool)
	partStore := postgres.NewPartStore(in.pool)

	laptopEngine := search.NewEngine(search.LaptopSchema, laptopStore, logger,
		search.WithDecorator(service.LaptopImages(resolver)))
	accessoryEngine := search.NewEngine(search.AccessorySchema, accessoryStore, logger,
		search.WithDecorator(service.AccessoryImages(resolver)))
	partEngine := search.NewEngine(search.PartSchema, partStore, logger)

	return &catalog{
		search: search.NewService(laptopEngine, accessoryEngine, partEngine),
		laptops: service.NewCatalogService[domain.Laptop](service.CatalogDeps[domain.Laptop]{
			Entity:   domain.EntityLaptop,
			Repo:     laptopStore,
			Engine:   laptopEngine,
			Facets:   facets,
			Producer: in.events,
			Decorate: service.LaptopImages(resolver),
			Logger:   logger,
		}),
		accessories: service.NewCatalogService[domain.Accessory](service.CatalogDeps[domain.Accessory]{
			Entity:   domain.EntityAccessory,
			Repo:     accessoryStore,
			Engine:   accessoryEngine,
			Facets:   facets,
			Producer: in.events,
			Decorate: service.AccessoryImages(resolver),
			Logger:   logger,
		}),
		parts: service.NewCatalogService[domain.Part](service.CatalogDeps[domain.Part]{
			Entity:   domain.EntityPart,
			Repo:     partStore,
			Engine:   partEngine,
			Facets:   facets,
			Producer: in.events,
			Logger:   logger,
		}),
		brands: service.NewBrandService(postgres.NewBrandRepository(in.pool), logger),
		facets: facetCache,
	}
}

// NewPaymentProvider selects the gateway named by PAYMENT_PROVIDER.
func NewPaymentProvider(cfg *config.Config, logger *slog.Logger) payment.Provider {
	if cfg.PaymentProvider != config.PaymentRazorpay {
		return mock.NewProvider()
	}
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.RazorpayTimeout
	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("razorpay"),
		logger,
	)
	return razorpay.NewProvider(client, razorpay.Config{
		BaseURL:   cfg.RazorpayBaseURL,
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
	}, logger)
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    ServiceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	sentryFlush, err := telemetry.Init(telemetry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          ServiceName + "@" + Version,
		ServerName:       ServiceName,
		TracesSampleRate: cfg.SentrySampleRate,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}

	in, err := connect(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, in.pool, ServiceName); err != nil {
		logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
	}

	cat := newCatalog(cfg, in, logger)
	resolver := media.NewResolver(cfg.PublicBaseURL)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiry)

	services := handler.Services{
		Search:      cat.search,
		Laptops:     cat.laptops,
		Accessories: cat.accessories,
		Parts:       cat.parts,
		Brands:      cat.brands,
		Sliders:     service.NewSliderService(postgres.NewSliderRepository(in.pool), resolver, logger),
		Contacts:    service.NewContactService(postgres.NewContactRepository(in.pool), in.events, logger),
		Users: service.NewUserService(
			postgres.NewUserRepository(in.pool),
			postgres.NewAddressRepository(in.pool),
			tokens,
			in.events,
			cfg.BcryptCost,
			logger,
		),
		Orders:   service.NewOrderService(postgres.NewOrderRepository(in.pool), in.events, logger),
		Payments: service.NewPaymentService(NewPaymentProvider(cfg, logger), cfg.PaymentSecret(), logger),
	}

	a := &App{
		cfg:            cfg,
		logger:         logger,
		infra:          in,
		tracerShutdown: tracerShutdown,
		sentryFlush:    sentryFlush,
	}

	// Other instances publish catalog changes; drop our cached facets when they do.
	if cfg.KafkaEnabled && cat.facets != nil {
		a.dlq = pkgkafka.NewDeadLetterQueue(cfg.KafkaBrokers, logger)
		a.consumers = append(a.consumers, event.NewCatalogConsumer(
			pkgkafka.ConsumerConfig{
				Brokers:      cfg.KafkaBrokers,
				GroupID:      cfg.KafkaGroupID,
				MaxAttempts:  3,
				RetryBackoff: 500 * time.Millisecond,
			},
			cat.facets,
			cache.NewIdempotencyStore(in.redis, 24*time.Hour),
			a.dlq,
			logger,
		))
		logger.Info("kafka consumers initialized", slog.Int("count", len(a.consumers)))
	}

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return in.pool.Ping(ctx)
	})
	if in.redis != nil {
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return in.redis.Ping(ctx).Err()
		})
	}
	if in.producer != nil {
		healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
			return in.producer.Ping(ctx)
		})
	}

	router := handler.NewRouter(services, tokens.Validate, healthHandler, handler.RouterConfig{
		ServiceName:    ServiceName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
		RequestTimeout: cfg.RequestTimeout,
		LimitEvery:     cfg.ContactRateLimitEvery,
		LimitBurst:     cfg.ContactRateLimitBurst,
	}, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// Run starts the HTTP server and Kafka consumers, blocking until the context
// is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	for _, c := range a.consumers {
		go func() {
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case runErr = <-errCh:
		a.logger.Error("component failed", slog.String("error", runErr.Error()))
	}

	return errors.Join(runErr, a.Shutdown())
}

// Shutdown stops the HTTP server first so in-flight requests can still
// publish, then consumers, telemetry and connections.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if a.dlq != nil {
		if err := a.dlq.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if a.sentryFlush != nil {
		a.sentryFlush()
	}

	errs = append(errs, a.infra.close(a.logger)...)

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
