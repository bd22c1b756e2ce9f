// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"wedding-matching-workers/internal/common/aws"
	"wedding-matching-workers/internal/common/camunda"
	"wedding-matching-workers/internal/common/config"
	"wedding-matching-workers/internal/common/database"
	"wedding-matching-workers/internal/common/logger"
	"wedding-matching-workers/internal/common/observability"
	"wedding-matching-workers/internal/matching"
	"wedding-matching-workers/internal/store"
	"wedding-matching-workers/internal/store/escatalog"
	"wedding-matching-workers/internal/store/postgres"
	"wedding-matching-workers/internal/store/rediscache"
	"wedding-matching-workers/pkg/registry"

	awb "wedding-matching-workers/internal/workers/matching/allocate-wedding-budget"
	fac "wedding-matching-workers/internal/workers/matching/find-all-category-matches"
	fvm "wedding-matching-workers/internal/workers/matching/find-vendor-matches"
	gcr "wedding-matching-workers/internal/workers/matching/get-cached-recommendations"
	sve "wedding-matching-workers/internal/workers/matching/send-vendor-enquiries"
)

const (
	purgeInterval       = time.Hour
	defaultRegistryPath = "configs/activity-registry.json"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.Observability.ServiceName, log)
	shutdownTracing, err := observability.InitTracing(cfg.Observability, cfg.App.Version, log)
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(camunda.ConfigFromApp(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if cfg.Database.Postgres.RunMigrations {
		if err := postgres.Migrate(pg.DB, log); err != nil {
			zapLog.Fatal("migrations failed", zap.Error(err))
		}
	}

	// --- Matching collaborators ---
	catalog, err := buildCatalog(ctx, cfg, pg, zapLog)
	if err != nil {
		zapLog.Fatal("vendor catalog init failed", zap.Error(err))
	}
	breaker := breakerSettings(cfg.Matching.Breaker)
	guardedCatalog := store.NewGuardedCatalog(catalog, breaker, log)
	guardedAvailability := store.NewGuardedAvailability(postgres.NewAvailabilityStore(pg.DB), breaker, log)

	cache, purger, closeCache, err := buildCache(ctx, cfg, pg, zapLog)
	if err != nil {
		zapLog.Fatal("recommendation cache init failed", zap.Error(err))
	}
	defer closeCache()

	svc := matching.NewService(
		matchingConfig(cfg.Matching),
		guardedCatalog,
		guardedAvailability,
		postgres.NewWeddingStore(pg.DB),
		cache,
		log,
	)

	// --- Init External Service Clients ---
	var sesClient *aws.SESClient
	if cfg.Integrations.AWS.SES.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Integrations.AWS.Region, cfg.Integrations.AWS.SES.FromEmail)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
	}
	var publisher fac.EventPublisher
	if cfg.Integrations.AWS.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region, cfg.Integrations.AWS.SNS.TopicARN)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		publisher = snsClient
	}

	// --- Register workers ---
	client := zeebe.GetClient()
	var workers []*camunda.CamundaWorker
	register := func(w *camunda.CamundaWorker) {
		if w != nil {
			workers = append(workers, w)
		}
	}

	{
		wcfg := config.GetWorkerConfig(cfg, awb.TaskType)
		handlerCfg := awb.LoadConfig()
		overrideTimeout(&handlerCfg.Timeout, wcfg)
		handler := awb.NewHandler(handlerCfg, svc, obs, log)
		register(camunda.StartWorker(client, awb.TaskType, wcfg, handler.Handle, obs, log))
	}

	{
		wcfg := config.GetWorkerConfig(cfg, fvm.TaskType)
		handlerCfg := fvm.LoadConfig()
		overrideTimeout(&handlerCfg.Timeout, wcfg)
		handler := fvm.NewHandler(handlerCfg, svc, obs, log)
		register(camunda.StartWorker(client, fvm.TaskType, wcfg, handler.Handle, obs, log))
	}

	{
		wcfg := config.GetWorkerConfig(cfg, fac.TaskType)
		handlerCfg := fac.LoadConfig()
		overrideTimeout(&handlerCfg.Timeout, wcfg)
		handlerCfg.PublishEvents = cfg.Integrations.AWS.SNS.Enabled
		handler := fac.NewHandler(handlerCfg, svc, publisher, obs, log)
		register(camunda.StartWorker(client, fac.TaskType, wcfg, handler.Handle, obs, log))
	}

	{
		wcfg := config.GetWorkerConfig(cfg, gcr.TaskType)
		handlerCfg := gcr.LoadConfig()
		overrideTimeout(&handlerCfg.Timeout, wcfg)
		handler := gcr.NewHandler(handlerCfg, svc, obs, log)
		register(camunda.StartWorker(client, gcr.TaskType, wcfg, handler.Handle, obs, log))
	}

	if sesClient != nil {
		wcfg := config.GetWorkerConfig(cfg, sve.TaskType)
		handlerCfg := sve.LoadConfig()
		overrideTimeout(&handlerCfg.Timeout, wcfg)
		handlerCfg.DefaultPerCategory = cfg.Matching.EnquiriesPerLine
		handler := sve.NewHandler(handlerCfg, svc, guardedCatalog, sesClient, obs, log)
		register(camunda.StartWorker(client, sve.TaskType, wcfg, handler.Handle, obs, log))
	} else {
		zapLog.Warn("SES disabled, send-vendor-enquiries worker not registered")
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))
	checkRegistry(zapLog, awb.TaskType, fvm.TaskType, fac.TaskType, gcr.TaskType, sve.TaskType)

	if purger != nil {
		go purgeExpired(ctx, purger, zapLog)
	}

	// --- Health & Metrics Server ---
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{"zeebe": "ok", "postgres": "ok"}
		status := http.StatusOK
		if err := zeebe.HealthCheck(checkCtx); err != nil {
			checks["zeebe"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := pg.Ping(checkCtx); err != nil {
			checks["postgres"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		checks["catalogBreaker"] = guardedCatalog.State().String()
		checks["time"] = time.Now().Format(time.RFC3339)
		writeStatus(w, status, checks)
	})
	http.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		zapLog.Error("Error flushing traces", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping meter provider", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func buildCatalog(ctx context.Context, cfg *config.Config, pg *database.PostgresClient, zapLog *zap.Logger) (matching.VendorCatalog, error) {
	if cfg.Matching.CatalogBackend != config.BackendElasticsearch {
		return postgres.NewVendorCatalog(pg.DB), nil
	}

	var es *database.ElasticsearchClient
	err := retryWithBackoff(func() error {
		var err error
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return es.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		return nil, err
	}
	zapLog.Info("Elasticsearch connected successfully", zap.String("index", cfg.Matching.VendorIndex))
	return escatalog.NewVendorCatalog(es.Client, cfg.Matching.VendorIndex), nil
}

type expiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// buildCache returns the configured cache plus a purger when expired rows need sweeping.
func buildCache(ctx context.Context, cfg *config.Config, pg *database.PostgresClient, zapLog *zap.Logger) (matching.RecommendationCache, expiredPurger, func(), error) {
	ttl := cfg.Matching.CacheTTLDuration()

	if cfg.Matching.CacheBackend != config.BackendRedis {
		recs := postgres.NewRecommendationStore(pg.DB, ttl)
		return recs, recs, func() {}, nil
	}

	var rdb *database.RedisClient
	err := retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		return nil, nil, nil, err
	}
	zapLog.Info("Redis connected successfully")

	closeFn := func() {
		if err := rdb.Close(); err != nil {
			zapLog.Error("Error closing Redis client", zap.Error(err))
		}
	}
	return rediscache.NewRecommendationCache(rdb.Client, ttl), nil, closeFn, nil
}

func purgeExpired(ctx context.Context, purger expiredPurger, zapLog *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := purger.PurgeExpired(ctx)
			if err != nil {
				zapLog.Warn("purging expired recommendations failed", zap.Error(err))
				continue
			}
			if n > 0 {
				zapLog.Info("purged expired recommendations", zap.Int64("rows", n))
			}
		}
	}
}

func matchingConfig(m config.MatchingConfig) matching.Config {
	out := matching.Config{
		BudgetFlexibility: m.BudgetFlexibility,
		Limit:             m.Limit,
		CacheTopN:         m.CacheTopN,
		MaxConcurrency:    m.MaxConcurrency,
		MinPlatePrice:     m.MinPlatePrice,
	}
	if m.MinScore != nil {
		out.MinScore = *m.MinScore
	}
	return out
}

func breakerSettings(b config.BreakerConfig) store.BreakerSettings {
	return store.BreakerSettings{
		MaxRequests:      b.MaxRequests,
		Interval:         config.GetDuration(b.Interval),
		Timeout:          config.GetDuration(b.Timeout),
		FailureThreshold: b.FailureThreshold,
	}
}

// overrideTimeout applies the configured worker timeout to the handler deadline.
func overrideTimeout(timeout *time.Duration, wcfg config.WorkerConfig) {
	if wcfg.Timeout > 0 {
		*timeout = config.GetDuration(wcfg.Timeout)
	}
}

// checkRegistry warns when a served task type is missing from the activity registry.
func checkRegistry(zapLog *zap.Logger, taskTypes ...string) {
	path := os.Getenv("ACTIVITY_REGISTRY_PATH")
	if path == "" {
		path = defaultRegistryPath
	}
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		zapLog.Warn("activity registry not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := reg.Validate(); err != nil {
		zapLog.Warn("activity registry invalid", zap.Error(err))
	}
	if missing := reg.Missing(taskTypes); len(missing) > 0 {
		zapLog.Warn("task types missing from activity registry", zap.Strings("taskTypes", missing))
	}
}

func writeStatus(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
