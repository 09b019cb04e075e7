package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Env             string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	Database Database
	Redis    Redis
	Kafka    Kafka
	Uploads  Uploads
	Rules    Rules

	SeedOnStart     bool
	MigrateOnStart  bool
	OTelServiceName string
}

// Database configures the Postgres pool. An empty URL selects in-memory stores.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Redis configures the department directory cache. An empty URL selects the in-memory cache.
type Redis struct {
	URL           string
	DepartmentTTL time.Duration
}

// Kafka configures lifecycle event publishing. No brokers disables publishing.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Uploads configures local file storage.
type Uploads struct {
	Dir      string
	MaxBytes int64
}

// Rules holds the tunable business parameters.
type Rules struct {
	MinimumWage        float64
	DefaultCountryCode string
}

// Load reads .env (if present) and builds a Server config from environment variables
// so main stays lean.
func Load(envFiles ...string) Server {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env is a local development convenience.
	_ = godotenv.Load(files...)

	return Server{
		Addr:            env("HR_ADDR", ":8080"),
		Env:             env("HR_ENV", "local"),
		LogLevel:        env("LOG_LEVEL", "info"),
		RequestTimeout:  envDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Database: Database{
			URL:             env("DATABASE_URL", ""),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: Redis{
			URL:           env("REDIS_URL", ""),
			DepartmentTTL: envDuration("DEPARTMENT_CACHE_TTL", 10*time.Minute),
		},
		Kafka: Kafka{
			Brokers: envList("KAFKA_BROKERS"),
			Topic:   env("KAFKA_TOPIC", "hr.lifecycle"),
		},
		Uploads: Uploads{
			Dir:      env("UPLOAD_DIR", "public/uploads"),
			MaxBytes: int64(envInt("MAX_UPLOAD_BYTES", 10<<20)),
		},
		Rules: Rules{
			MinimumWage:        envFloat("MINIMUM_WAGE", 600),
			DefaultCountryCode: env("DEFAULT_PHONE_COUNTRY_CODE", "+961"),
		},
		SeedOnStart:     envBool("SEED_ON_START", false),
		MigrateOnStart:  envBool("MIGRATE_ON_START", false),
		OTelServiceName: env("OTEL_SERVICE_NAME", "hrcore"),
	}
}

// IsLocal reports whether the service runs in a developer environment.
func (s Server) IsLocal() bool {
	return s.Env == "local" || s.Env == "testing"
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
