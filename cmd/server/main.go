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

	"github.com/prometheus/client_golang/prometheus"

	"hrcore/internal/employee/cache"
	employeehandler "hrcore/internal/employee/handler"
	employeemetrics "hrcore/internal/employee/metrics"
	employeeservice "hrcore/internal/employee/service"
	"hrcore/internal/events"
	"hrcore/internal/platform/config"
	"hrcore/internal/platform/database"
	"hrcore/internal/platform/health"
	"hrcore/internal/platform/kafka/producer"
	"hrcore/internal/platform/logger"
	"hrcore/internal/platform/metrics"
	"hrcore/internal/platform/migrate"
	"hrcore/internal/platform/redis"
	"hrcore/internal/platform/tracer"
	"hrcore/internal/seeder"
	timesheethandler "hrcore/internal/timesheet/handler"
	tsmetrics "hrcore/internal/timesheet/metrics"
	timesheetservice "hrcore/internal/timesheet/service"
	httptransport "hrcore/internal/transport/http"
	"hrcore/internal/upload"
	"hrcore/pkg/platform/circuit"
	"hrcore/pkg/platform/middleware/request"
)

const poolStatsInterval = 15 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	log.Info("initializing hrcore",
		"addr", cfg.Addr,
		"env", cfg.Env,
		"postgres", cfg.Database.URL != "",
		"redis", cfg.Redis.URL != "",
		"kafka", len(cfg.Kafka.Brokers) > 0,
	)

	if cfg.MigrateOnStart && cfg.Database.URL != "" {
		if err := migrateUp(cfg.Database.URL, log); err != nil {
			return err
		}
	}

	healthHandler := health.New(cfg.Env)
	var recorders []metrics.PoolRecorder

	pool, err := database.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close() //nolint:errcheck // shutdown path
	st := newStores(nil)
	if pool != nil {
		st = newStores(pool.DB())
		healthHandler.RegisterCheck("database", pool.Health)
		recorders = append(recorders, pool)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	localDepartments := cache.NewInMemory(cfg.Redis.DepartmentTTL)
	var departments cache.DepartmentCache = localDepartments
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck // shutdown path
		departments = cache.NewResilient(
			cache.NewRedis(redisClient, cfg.Redis.DepartmentTTL),
			localDepartments,
			circuit.New("department_cache"),
			log,
		)
		healthHandler.RegisterCheck("redis", redisClient.Health)
		recorders = append(recorders, redisClient)
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		prod, err := producer.New(producer.DefaultConfig(cfg.Kafka.Brokers), log)
		if err != nil {
			return fmt.Errorf("create kafka producer: %w", err)
		}
		defer prod.Close() //nolint:errcheck // flushes pending events
		publisher = events.NewKafka(prod, cfg.Kafka.Topic,
			events.WithLogger(log),
			events.WithMetrics(events.NewMetrics(prometheus.DefaultRegisterer)),
		)
		healthHandler.RegisterCheck("kafka", prod.Health)
	}

	storage, err := upload.NewLocal(cfg.Uploads.Dir, cfg.Uploads.MaxBytes)
	if err != nil {
		return fmt.Errorf("prepare upload dir: %w", err)
	}

	trc := tracer.NewOTel(cfg.OTelServiceName)

	empService := employeeservice.New(st.employees, st.professions, st.documents, st.reviews, storage,
		employeeservice.WithLogger(log),
		employeeservice.WithMetrics(employeemetrics.New(prometheus.DefaultRegisterer)),
		employeeservice.WithTracer(trc),
		employeeservice.WithPublisher(publisher),
		employeeservice.WithDepartmentCache(departments),
		employeeservice.WithMinimumWage(cfg.Rules.MinimumWage),
		employeeservice.WithCountryCode(cfg.Rules.DefaultCountryCode),
	)
	tsService := timesheetservice.New(st.timesheets, st.employees,
		timesheetservice.WithLogger(log),
		timesheetservice.WithMetrics(tsmetrics.New(prometheus.DefaultRegisterer)),
		timesheetservice.WithTracer(trc),
		timesheetservice.WithPublisher(publisher),
	)

	if cfg.SeedOnStart {
		employees, professions, timesheets := st.seeder()
		if _, err := seeder.New(employees, professions, timesheets, log).SeedAll(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Employees:      employeehandler.New(empService, log, employeehandler.WithMaxUploadSize(cfg.Uploads.MaxBytes)),
		Timesheets:     timesheethandler.New(tsService, log),
		Health:         healthHandler,
		Uploads:        storage.Handler(),
		Metrics:        request.NewMetrics(prometheus.DefaultRegisterer),
		RequestTimeout: cfg.RequestTimeout,
	}, log)

	go metrics.RunPoolRecorders(ctx, poolStatsInterval, recorders...)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func migrateUp(databaseURL string, log *slog.Logger) error {
	runner, err := migrate.New(databaseURL, log)
	if err != nil {
		return err
	}
	defer runner.Close() //nolint:errcheck // source and driver handles only
	return runner.Up()
}
