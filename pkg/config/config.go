package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bistro/pkg/client"
	kafka_config "bistro/pkg/kafka/config"
	"bistro/pkg/logger"

	"github.com/joho/godotenv"
)

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Config struct {
	Port string

	StorageDriver string

	DatabaseURL   string
	DBConnTimeout time.Duration

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	CORSAllowedOrigins []string

	RestaurantTimezone string
	Location           *time.Location
	TablePoolSize      int
	OpeningTime        string
	WeekdayClosingTime string
	SundayClosingTime  string

	Kafka                  *kafka_config.Config
	KafkaReservationsTopic string
	KafkaNewsletterTopic   string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads an optional .env file from the working directory and then the process
// environment. Values already present in the environment win over the file.
func Load(serviceName string) *Config {
	dotenvErr := godotenv.Load()

	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		StorageDriver: strings.ToLower(getEnvStr(EnvStorageDriver, DefaultStorageDriver)),

		DatabaseURL:   getEnvStr(EnvDatabaseURL, DefaultDatabaseURL),
		DBConnTimeout: getEnvDuration(EnvDBConnTimeout, DefaultDBConnTimeout),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		CORSAllowedOrigins: splitList(getEnvStr(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins)),

		RestaurantTimezone: getEnvStr(EnvRestaurantTimezone, DefaultRestaurantTimezone),
		TablePoolSize:      getEnvNum(EnvTablePoolSize, DefaultTablePoolSize),
		OpeningTime:        getEnvStr(EnvOpeningTime, DefaultOpeningTime),
		WeekdayClosingTime: getEnvStr(EnvWeekdayClosingTime, DefaultWeekdayClosingTime),
		SundayClosingTime:  getEnvStr(EnvSundayClosingTime, DefaultSundayClosingTime),

		Kafka:                  kafka_config.Load(),
		KafkaReservationsTopic: getEnvStr(EnvKafkaReservationsTopic, DefaultKafkaReservationsTopic),
		KafkaNewsletterTopic:   getEnvStr(EnvKafkaNewsletterTopic, DefaultKafkaNewsletterTopic),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if loc, err := time.LoadLocation(cfg.RestaurantTimezone); err == nil {
		cfg.Location = loc
	}

	if dotenvErr != nil && !errors.Is(dotenvErr, os.ErrNotExist) {
		cfg.Log.Warn("Failed to read .env file", "error", dotenvErr)
	}

	return cfg
}

// Connect opens the storage client selected by StorageDriver.
func (cfg *Config) Connect(ctx context.Context) error {
	switch cfg.StorageDriver {
	case StoragePostgres:
		ctx, cancel := context.WithTimeout(ctx, cfg.DBConnTimeout)
		defer cancel()
		if err := cfg.Client.SetPostgres(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
		cfg.Log.Info("Successfully connected to PostgreSQL")
	case StorageMongo:
		ctx, cancel := context.WithTimeout(ctx, cfg.MongoConnTimeout)
		defer cancel()
		if err := cfg.Client.SetMongo(ctx, cfg.MongoURI); err != nil {
			return err
		}
		cfg.Log.Info("Successfully connected to MongoDB", "database", cfg.MongoDatabaseName)
	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
	return nil
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DatabaseURL cannot be empty")
		} else if !regexp.MustCompile(`^postgres(ql)?://`).MatchString(cfg.DatabaseURL) {
			errors = append(errors, fmt.Sprintf("DatabaseURL must start with 'postgres://' or 'postgresql://', got: %s", redactURI(cfg.DatabaseURL)))
		}
		if cfg.DBConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("DBConnTimeout must be positive, got: %s", cfg.DBConnTimeout))
		}
	case StorageMongo:
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	default:
		errors = append(errors, fmt.Sprintf("StorageDriver must be one of [%s, %s], got: %s", StoragePostgres, StorageMongo, cfg.StorageDriver))
	}

	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.Location == nil {
		errors = append(errors, fmt.Sprintf("RestaurantTimezone must be a valid IANA zone name, got: %s", cfg.RestaurantTimezone))
	}
	if cfg.TablePoolSize <= 0 {
		errors = append(errors, fmt.Sprintf("TablePoolSize must be positive, got: %d", cfg.TablePoolSize))
	}
	for name, value := range map[string]string{
		"OpeningTime":        cfg.OpeningTime,
		"WeekdayClosingTime": cfg.WeekdayClosingTime,
		"SundayClosingTime":  cfg.SundayClosingTime,
	} {
		if !clockRegex.MatchString(value) {
			errors = append(errors, fmt.Sprintf("%s must be in HH:MM format (00:00-23:59), got: %s", name, value))
		}
	}
	if clockRegex.MatchString(cfg.OpeningTime) {
		if clockRegex.MatchString(cfg.WeekdayClosingTime) && cfg.WeekdayClosingTime < cfg.OpeningTime {
			errors = append(errors, fmt.Sprintf("WeekdayClosingTime (%s) must not be before OpeningTime (%s)", cfg.WeekdayClosingTime, cfg.OpeningTime))
		}
		if clockRegex.MatchString(cfg.SundayClosingTime) && cfg.SundayClosingTime < cfg.OpeningTime {
			errors = append(errors, fmt.Sprintf("SundayClosingTime (%s) must not be before OpeningTime (%s)", cfg.SundayClosingTime, cfg.OpeningTime))
		}
	}

	if cfg.Kafka != nil && cfg.Kafka.Enabled() {
		if err := cfg.Kafka.Validate(); err != nil {
			errors = append(errors, err.Error())
		}
		if cfg.KafkaReservationsTopic == "" || cfg.KafkaNewsletterTopic == "" {
			errors = append(errors, "Kafka topics cannot be empty when brokers are configured")
		}
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"storage_driver", cfg.StorageDriver,
		"database_url", redactURI(cfg.DatabaseURL),
		"db_conn_timeout", cfg.DBConnTimeout,
		"mongo_uri", redactURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"restaurant_timezone", cfg.RestaurantTimezone,
		"table_pool_size", cfg.TablePoolSize,
		"opening_time", cfg.OpeningTime,
		"weekday_closing_time", cfg.WeekdayClosingTime,
		"sunday_closing_time", cfg.SundayClosingTime,
		"kafka_enabled", cfg.Kafka != nil && cfg.Kafka.Enabled(),
		"kafka_reservations_topic", cfg.KafkaReservationsTopic,
		"kafka_newsletter_topic", cfg.KafkaNewsletterTopic,
	)
	if cfg.Kafka != nil && cfg.Kafka.Enabled() {
		cfg.Kafka.LogConfiguration(cfg.Log.Info)
	}
}

func redactURI(uri string) string {
	credentialRegex := regexp.MustCompile(`^([a-z+]+://)[^:/@]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := cfg.Client.GracefulShutdown(ctx); err != nil {
		cfg.Log.Error("Failed to close storage client", "error", err)
	}
}
