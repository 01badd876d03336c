package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	MinRadius = 100.0
	MaxRadius = 20000.0
)

// Config holds the configuration settings for the geotourist engine and the address backfill worker.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the HTTP API and metrics server.
// - Radius: The initial search radius in meters.
// - PollInterval: How often the latest fix is re-evaluated.
// - Database: Configuration settings for the PostgreSQL database.
// - Redis: Optional Redis pub/sub notifier settings.
// - Backfill: Settings of the address backfill worker.
type Config struct {
	Env          string         `yaml:"env"`           // Env is the current environment: local, development, production.
	Port         int            `yaml:"http.port"`     // Port is the HTTP API port.
	Radius       float64        `yaml:"radius"`        // Radius is the initial search radius in meters.
	PollInterval time.Duration  `yaml:"poll_interval"` // PollInterval is the fix re-delivery period.
	Database     PostgresConfig `yaml:"postgres"`      // Database holds the postgres database configuration
	Redis        RedisConfig    `yaml:"redis"`         // Redis is disabled when Addr is empty.
	Backfill     BackfillConfig `yaml:"backfill"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Channel  string `yaml:"channel"`
}

// BackfillConfig configures the worker that fills in missing point addresses.
type BackfillConfig struct {
	ProviderType string        `yaml:"provider.type"` // ProviderType specifies which geocoding provider to use.
	APIKey       string        `yaml:"provider.key"`  // APIKey is required for Google.
	Workers      int           `yaml:"workers"`
	Interval     time.Duration `yaml:"interval"`
}

// MustLoad reads the configuration from the environment (and an optional .env file).
// Malformed values panic.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := newViper()

	port, err := strconv.Atoi(v.GetString("http_port"))
	if err != nil {
		panic("failed to parse http port from configuration")
	}

	radius, err := strconv.ParseFloat(v.GetString("radius"), 64)
	if err != nil {
		panic("failed to parse radius from configuration")
	}
	if radius < MinRadius || radius > MaxRadius {
		panic("radius must be between 100 and 20000 meters")
	}

	pollInterval, err := time.ParseDuration(v.GetString("poll_interval"))
	if err != nil || pollInterval <= 0 {
		panic("failed to parse poll interval from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("backfill_workers"))
	if err != nil || workers <= 0 {
		panic("failed to parse backfill workers from configuration, must be a positive integer")
	}

	backfillInterval, err := time.ParseDuration(v.GetString("backfill_interval"))
	if err != nil || backfillInterval <= 0 {
		panic("failed to parse backfill interval from configuration")
	}

	return &Config{
		Env:          v.GetString("env"),
		Port:         port,
		Radius:       radius,
		PollInterval: pollInterval,
		Database: PostgresConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.username"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			Channel:  v.GetString("redis.channel"),
		},
		Backfill: BackfillConfig{
			ProviderType: v.GetString("provider_type"),
			APIKey:       v.GetString("provider_key"),
			Workers:      workers,
			Interval:     backfillInterval,
		},
	}
}

// newViper resolves GEOTOURIST_* keys through the prefix and binds the shared DB_* and REDIS_* names directly.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("GEOTOURIST")
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("http_port", "8080")
	v.SetDefault("radius", "500")
	v.SetDefault("poll_interval", "10s")
	v.SetDefault("provider_type", "nominatim")
	v.SetDefault("backfill_workers", "4")
	v.SetDefault("backfill_interval", "10m")
	v.SetDefault("db.port", "5432")
	v.SetDefault("redis.channel", "geotourist:presentations")

	for key, env := range map[string]string{
		"db.host":        "DB_HOST",
		"db.port":        "DB_PORT",
		"db.username":    "DB_USERNAME",
		"db.password":    "DB_PASSWORD",
		"db.name":        "DB_NAME",
		"redis.addr":     "REDIS_ADDR",
		"redis.password": "REDIS_PASSWORD",
		"redis.channel":  "REDIS_CHANNEL",
	} {
		_ = v.BindEnv(key, env)
	}

	return v
}
