package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Razorpay     RazorpayConfig
	Donations    DonationsConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DONATIONS_APP_ENV" required:"true"`
	Port         string `envconfig:"DONATIONS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DONATIONS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DONATIONS_LOG_WARN_STACK" default:"false"`
	// AllowedOrigins is the deployed donation page origins, comma separated.
	AllowedOrigins []string `envconfig:"DONATIONS_ALLOWED_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DONATIONS_DB_DSN"`
	Driver string `envconfig:"DONATIONS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DONATIONS_DB_HOST"`
	LegacyPort     int    `envconfig:"DONATIONS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DONATIONS_DB_USER"`
	LegacyPassword string `envconfig:"DONATIONS_DB_PASSWORD"`
	LegacyName     string `envconfig:"DONATIONS_DB_NAME"`
	LegacySSLMode  string `envconfig:"DONATIONS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DONATIONS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DONATIONS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DONATIONS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DONATIONS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DONATIONS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DONATIONS_REDIS_ADDR"`
	Password     string        `envconfig:"DONATIONS_REDIS_PASSWORD"`
	DB           int           `envconfig:"DONATIONS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DONATIONS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DONATIONS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DONATIONS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DONATIONS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DONATIONS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type RazorpayConfig struct {
	KeyID     string `envconfig:"DONATIONS_RAZORPAY_KEY_ID" required:"true"`
	KeySecret string `envconfig:"DONATIONS_RAZORPAY_KEY_SECRET" required:"true"`
	// WebhookSecret is optional at startup; the webhook endpoint fails closed
	// when it is unset.
	WebhookSecret  string        `envconfig:"DONATIONS_RAZORPAY_WEBHOOK_SECRET"`
	RequestTimeout time.Duration `envconfig:"DONATIONS_RAZORPAY_REQUEST_TIMEOUT" default:"10s"`
}

type DonationsConfig struct {
	// MinimumAmount is the authoritative minimum, in major units (rupees).
	// Client-side minimums are advisory UX only.
	MinimumAmount int    `envconfig:"DONATIONS_MINIMUM_AMOUNT" default:"100"`
	Currency      string `envconfig:"DONATIONS_CURRENCY" default:"INR"`
	// WebhookIdempotencyTTL bounds how long processed webhook event ids are
	// remembered for duplicate suppression.
	WebhookIdempotencyTTL time.Duration `envconfig:"DONATIONS_WEBHOOK_IDEMPOTENCY_TTL" default:"720h"`
}

type RateLimitConfig struct {
	OrderWindow  time.Duration `envconfig:"DONATIONS_RATE_LIMIT_ORDER_WINDOW" default:"1m"`
	OrderIPLimit int           `envconfig:"DONATIONS_RATE_LIMIT_ORDER_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DONATIONS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
