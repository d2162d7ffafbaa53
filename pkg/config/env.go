package config

const (
	EnvPrefix = "LABSTOCK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names, kept in one place so tests and tooling agree.
const (
	EnvAppEnv          = "LABSTOCK_APP_ENV"
	EnvPort            = "LABSTOCK_APP_PORT"
	EnvLogLevel        = "LABSTOCK_LOG_LEVEL"
	EnvLogWarnStack    = "LABSTOCK_LOG_WARN_STACK"
	EnvCORSOrigins     = "LABSTOCK_CORS_ORIGINS"
	EnvShutdownTimeout = "LABSTOCK_SHUTDOWN_TIMEOUT"

	EnvJWTSecret              = "LABSTOCK_JWT_SECRET"
	EnvJWTIssuer              = "LABSTOCK_JWT_ISSUER"
	EnvJWTExpMins             = "LABSTOCK_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "LABSTOCK_REFRESH_TOKEN_TTL_MINUTES"

	EnvArgonMemoryKB    = "LABSTOCK_ARGON_MEMORY_KB"
	EnvArgonTime        = "LABSTOCK_ARGON_TIME"
	EnvArgonParallelism = "LABSTOCK_ARGON_PARALLELISM"
	EnvArgonSaltLen     = "LABSTOCK_ARGON_SALT_LEN"
	EnvArgonKeyLen      = "LABSTOCK_ARGON_KEY_LEN"

	EnvAdminUsername = "LABSTOCK_ADMIN_USERNAME"
	EnvAdminEmail    = "LABSTOCK_ADMIN_EMAIL"
	EnvAdminPassword = "LABSTOCK_ADMIN_PASSWORD"

	EnvRedisURL          = "LABSTOCK_REDIS_URL"
	EnvRedisAddr         = "LABSTOCK_REDIS_ADDR"
	EnvRedisPassword     = "LABSTOCK_REDIS_PASSWORD"
	EnvRedisDB           = "LABSTOCK_REDIS_DB"
	EnvRedisPoolSize     = "LABSTOCK_REDIS_POOL_SIZE"
	EnvRedisMinIdleConns = "LABSTOCK_REDIS_MIN_IDLE_CONNS"
	EnvRedisDialTimeout  = "LABSTOCK_REDIS_DIAL_TIMEOUT"
	EnvRedisReadTimeout  = "LABSTOCK_REDIS_READ_TIMEOUT"
	EnvRedisWriteTimeout = "LABSTOCK_REDIS_WRITE_TIMEOUT"

	EnvRateLimitLoginWindow       = "LABSTOCK_AUTH_RATE_LIMIT_LOGIN_WINDOW"
	EnvRateLimitLoginUserLimit    = "LABSTOCK_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT"
	EnvRateLimitLoginIPLimit      = "LABSTOCK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT"
	EnvRateLimitRegisterWindow    = "LABSTOCK_AUTH_RATE_LIMIT_REGISTER_WINDOW"
	EnvRateLimitRegisterUserLimit = "LABSTOCK_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT"
	EnvRateLimitRegisterIPLimit   = "LABSTOCK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT"

	EnvSeedDemoData   = "LABSTOCK_SEED_DEMO_DATA"
	EnvReportTimezone = "LABSTOCK_REPORT_TIMEZONE"
)
