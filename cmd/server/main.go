package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/antaeus/billing/docs"
	appbilling "github.com/antaeus/billing/internal/application/billing"
	"github.com/antaeus/billing/internal/infrastructure/config"
	"github.com/antaeus/billing/internal/infrastructure/event"
	"github.com/antaeus/billing/internal/infrastructure/logger"
	"github.com/antaeus/billing/internal/infrastructure/migration"
	"github.com/antaeus/billing/internal/infrastructure/payment"
	"github.com/antaeus/billing/internal/infrastructure/persistence"
	"github.com/antaeus/billing/internal/infrastructure/scheduler"
	"github.com/antaeus/billing/internal/infrastructure/telemetry"
	"github.com/antaeus/billing/internal/interfaces/http/handler"
	"github.com/antaeus/billing/internal/interfaces/http/middleware"
	"github.com/antaeus/billing/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	maxBodySize       = 1 << 20
	meterName         = "github.com/antaeus/billing"
	componentShutdown = 5 * time.Second
)

//	@title			Antaeus Billing API
//	@version		1.0
//	@description	Monthly invoice billing: charges pending invoices through a payment provider and marks unpaid ones overdue.

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()
	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}

	// Telemetry: traces, metrics, log bridge, profiling
	collector := telemetry.Collector{
		Endpoint:    cfg.Telemetry.CollectorEndpoint,
		Insecure:    cfg.Telemetry.Insecure,
		ServiceName: serviceName,
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Collector:     collector,
		Enabled:       cfg.Telemetry.Enabled,
		SamplingRatio: cfg.Telemetry.SamplingRatio,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Collector:      collector,
		Enabled:        cfg.Telemetry.MetricsEnabled,
		ExportInterval: cfg.Telemetry.MetricsExportInterval,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)

	level, _ := logger.ParseLevel(cfg.Log.Level)
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Collector: collector,
		Enabled:   cfg.Telemetry.LogsEnabled,
		MinLevel:  level,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer shutdown(log, "logger provider", loggerProvider.Shutdown)
	log = loggerProvider.Bridge(log)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServerAddress,
		ApplicationName: serviceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting billing service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("payment_provider", cfg.Payment.Provider),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.DefaultDBTracingConfig()
		dbTracing.Enabled = true
		dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
		if cfg.Telemetry.DBSlowQueryThresh > 0 {
			dbTracing.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
		}
		if cfg.Database.Driver == "sqlite" {
			dbTracing.DBSystem = "sqlite"
		}
		if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	if cfg.Database.AutoMigrate {
		if err := migrateSchema(db, cfg.Database.Driver, log); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	if cfg.App.SeedDemoData {
		seeder := persistence.NewDemoSeeder(db.DB, log, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), persistence.DefaultDemoSeederConfig())
		if _, err := seeder.Seed(ctx); err != nil {
			log.Fatal("Failed to seed demo data", zap.Error(err))
		}
	}

	// Initialize repositories
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)

	billingMetrics, err := telemetry.NewBillingMetrics(meterProvider.Meter(meterName))
	if err != nil {
		log.Fatal("Failed to create billing metrics", zap.Error(err))
	}

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingHandler(log))
	eventBus.Subscribe(event.NewMetricsHandler(billingMetrics))

	serializer := event.NewBillingEventSerializer()
	if cfg.Redis.Enabled {
		redisClient, err := event.NewRedisClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		eventBus.Subscribe(event.NewRedisStreamHandler(redisClient, serializer, cfg.Redis.Stream, cfg.Redis.StreamMaxLen))
		log.Info("Publishing billing events to Redis stream",
			zap.String("addr", cfg.Redis.Addr()),
			zap.String("stream", cfg.Redis.Stream),
		)
	}
	if cfg.Kafka.Enabled {
		kafkaHandler := event.NewKafkaHandler(event.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.BatchTimeout), serializer)
		defer func() {
			if err := kafkaHandler.Close(); err != nil {
				log.Error("Error closing Kafka writer", zap.Error(err))
			}
		}()
		eventBus.Subscribe(kafkaHandler)
		log.Info("Publishing billing events to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer shutdown(log, "event bus", eventBus.Stop)

	// Initialize application services
	provider, err := payment.NewProvider(&cfg.Payment, log)
	if err != nil {
		log.Fatal("Failed to create payment provider", zap.Error(err))
	}

	billingService := appbilling.NewBillingService(
		invoiceRepo,
		provider,
		event.NewBusNotifier(eventBus, log),
		billingMetrics,
		log,
		appbilling.BillingServiceConfig{
			Workers:      cfg.Billing.Workers,
			AbortOnError: cfg.Billing.AbortOnError,
		},
	)
	invoiceService := appbilling.NewInvoiceService(invoiceRepo)
	customerService := appbilling.NewCustomerService(customerRepo)

	// Billing scheduler also serves the HTTP triggers, so it always starts
	location, err := time.LoadLocation(cfg.Scheduler.Location)
	if err != nil {
		log.Fatal("Invalid scheduler location", zap.Error(err))
	}
	billingScheduler := scheduler.NewBillingScheduler(billingService, log, scheduler.BillingSchedulerConfig{
		Enabled:       cfg.Scheduler.Enabled,
		ChargeDay:     cfg.Scheduler.ChargeDay,
		ChargeHour:    cfg.Scheduler.ChargeHour,
		OverdueDay:    cfg.Scheduler.OverdueDay,
		OverdueHour:   cfg.Scheduler.OverdueHour,
		JobTimeout:    cfg.Scheduler.JobTimeout,
		ManualTimeout: cfg.Billing.RunTimeout,
		Location:      location,
	})
	if err := billingScheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start billing scheduler", zap.Error(err))
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Tracing - Server span per request
	// 3. Metrics - Request count, duration and in-flight gauge
	// 4. Recovery - Catch panics
	// 5. Logger - Log requests
	// 6. Security - Add security headers
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: serviceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(meterProvider.Meter(meterName)))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(maxBodySize))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		RegisterTop(handler.NewWelcomeHandler()).
		RegisterTop(router.RegistrarFunc(func(rg *gin.RouterGroup) {
			rg.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		})).
		RegisterRoot(handler.NewHealthHandler(db)).
		Register(handler.NewBillingHandler(billingScheduler)).
		Register(handler.NewInvoiceHandler(invoiceService)).
		Register(handler.NewCustomerHandler(customerService)).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// In-flight billing runs are cancelled; invoices they did not reach stay PENDING.
	if err := billingScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Billing scheduler did not stop cleanly", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrateSchema applies the embedded SQL migrations on postgres and the GORM
// models on sqlite.
func migrateSchema(db *persistence.Database, driver string, log *zap.Logger) error {
	if driver == "sqlite" {
		log.Info("Auto-migrating sqlite schema")
		return db.AutoMigrate()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	migrator, err := migration.NewEmbedded(sqlDB, log)
	if err != nil {
		return err
	}
	return migrator.Up()
}

func shutdown(log *zap.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), componentShutdown)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}
