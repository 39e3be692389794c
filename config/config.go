package config

import (
	"fmt"
	"strings"
	"time"

	"points-ledger/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Points      PointsConfig      `mapstructure:"points"`
	Eligibility EligibilityConfig `mapstructure:"eligibility"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Log         LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, memory
}

// PointsConfig holds the ledger economics. Amounts are decimal strings so
// that no float rounding happens between the file and the ledger.
type PointsConfig struct {
	WelcomeBonusPoints      string `mapstructure:"welcome_bonus_points"`
	EuroPerPoint            string `mapstructure:"euro_per_point"`
	MaxPointsPerTransaction string `mapstructure:"max_points_per_transaction"`
	PointsExpiryDays        int    `mapstructure:"points_expiry_days"`
}

// Policy converts the configuration into a validated domain.PointsPolicy.
func (p PointsConfig) Policy() (domain.PointsPolicy, error) {
	welcome, err := decimal.NewFromString(p.WelcomeBonusPoints)
	if err != nil {
		return domain.PointsPolicy{}, fmt.Errorf("points.welcome_bonus_points: %w", err)
	}
	euroPerPoint, err := decimal.NewFromString(p.EuroPerPoint)
	if err != nil {
		return domain.PointsPolicy{}, fmt.Errorf("points.euro_per_point: %w", err)
	}
	maxPoints, err := decimal.NewFromString(p.MaxPointsPerTransaction)
	if err != nil {
		return domain.PointsPolicy{}, fmt.Errorf("points.max_points_per_transaction: %w", err)
	}

	policy := domain.PointsPolicy{
		WelcomeBonus:            welcome,
		EuroPerPoint:            euroPerPoint,
		MaxPointsPerTransaction: maxPoints,
		ExpiryDays:              p.PointsExpiryDays,
	}
	if err := policy.Validate(); err != nil {
		return domain.PointsPolicy{}, fmt.Errorf("points: %w", err)
	}
	return policy, nil
}

type EligibilityConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type IdempotencyConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int64         `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PTS_.
// Nested keys use underscore: PTS_DATABASE_HOST, PTS_POINTS_EURO_PER_POINT, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "points_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("storage.driver", StorageDriverPostgres)
	v.SetDefault("points.welcome_bonus_points", "10.00")
	v.SetDefault("points.euro_per_point", "10.00")
	v.SetDefault("points.max_points_per_transaction", "500.00")
	v.SetDefault("points.points_expiry_days", 180)
	v.SetDefault("eligibility.cache_ttl", "5m")
	v.SetDefault("idempotency.ttl", "24h")
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.limit", 100)
	v.SetDefault("ratelimit.window", "1m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PTS_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	switch cfg.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return nil, fmt.Errorf("storage.driver must be %q or %q, got %q",
			StorageDriverPostgres, StorageDriverMemory, cfg.Storage.Driver)
	}

	return &cfg, nil
}
