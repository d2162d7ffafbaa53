package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Admin         AdminConfig
	Inventory     InventoryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Inventory.Location(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvReportTimezone, err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LABSTOCK_APP_ENV" required:"true"`
	Port         string `envconfig:"LABSTOCK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LABSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LABSTOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	CORSOrigins     []string      `envconfig:"LABSTOCK_CORS_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"LABSTOCK_SHUTDOWN_TIMEOUT" default:"10s"`
}

// RedisConfig is optional; when neither URL nor address is set the service
// keeps sessions in memory and skips auth rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"LABSTOCK_REDIS_URL"`
	Address      string        `envconfig:"LABSTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"LABSTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"LABSTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LABSTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LABSTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LABSTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LABSTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LABSTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret                 string `envconfig:"LABSTOCK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"LABSTOCK_JWT_ISSUER" default:"labstock"`
	ExpirationMinutes      int    `envconfig:"LABSTOCK_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"LABSTOCK_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LABSTOCK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LABSTOCK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LABSTOCK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LABSTOCK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LABSTOCK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"LABSTOCK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"LABSTOCK_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"LABSTOCK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"LABSTOCK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"LABSTOCK_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"LABSTOCK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// AdminConfig seeds the bootstrap account. An empty password disables seeding.
type AdminConfig struct {
	Username string `envconfig:"LABSTOCK_ADMIN_USERNAME" default:"admin"`
	Email    string `envconfig:"LABSTOCK_ADMIN_EMAIL" default:"admin@inventory.com"`
	Password string `envconfig:"LABSTOCK_ADMIN_PASSWORD"`
}

func (a AdminConfig) Enabled() bool {
	return strings.TrimSpace(a.Username) != "" && a.Password != ""
}

type InventoryConfig struct {
	SeedDemoData   bool   `envconfig:"LABSTOCK_SEED_DEMO_DATA" default:"false"`
	ReportTimezone string `envconfig:"LABSTOCK_REPORT_TIMEZONE" default:"UTC"`
}

// Location resolves the timezone used to bucket records into report months.
func (i InventoryConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(i.ReportTimezone)
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
