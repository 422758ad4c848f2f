package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvStorageDriver = "STORAGE_DRIVER"

	EnvDatabaseURL   = "DATABASE_URL"
	EnvDBConnTimeout = "DB_CONN_TIMEOUT"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRestaurantTimezone = "RESTAURANT_TIMEZONE"
	EnvTablePoolSize      = "TABLE_POOL_SIZE"
	EnvOpeningTime        = "OPENING_TIME"
	EnvWeekdayClosingTime = "WEEKDAY_CLOSING_TIME"
	EnvSundayClosingTime  = "SUNDAY_CLOSING_TIME"

	EnvKafkaReservationsTopic = "KAFKA_RESERVATIONS_TOPIC"
	EnvKafkaNewsletterTopic   = "KAFKA_NEWSLETTER_TOPIC"
)
