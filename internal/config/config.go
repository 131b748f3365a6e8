package config

import (
	"fmt"
	"strings"
	"time"

	"food_orders_backend/internal/database"
	"food_orders_backend/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is the fully resolved process configuration.
type Config struct {
	Port               string
	Env                string
	StoreDriver        string
	DB                 database.Config
	JWTSecret          string
	JWTIssuer          string
	DefaultTenantID    string
	CORSAllowedOrigins []string
	TenantSeedFile     string
	AuditBuffer        int

	LookupOTPTTL         time.Duration
	LookupOTPMaxAttempts int
	LookupOTPDebug       bool

	SimulatorEnabled  bool
	SimulatorInterval time.Duration
}

// Development reports whether the process runs with developer conveniences.
func (c *Config) Development() bool {
	return c.Env == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "food_orders")
	v.SetDefault("DB_PASSWORD", "food_orders")
	v.SetDefault("DB_NAME", "food_orders")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "food-orders-backend")
	v.SetDefault("DEFAULT_TENANT_ID", "tenant-a")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("TENANT_SEED_FILE", "")
	v.SetDefault("AUDIT_BUFFER", 256)
	v.SetDefault("LOOKUP_OTP_TTL", "5m")
	v.SetDefault("LOOKUP_OTP_MAX_ATTEMPTS", 5)
	v.SetDefault("LOOKUP_OTP_DEBUG", false)
	v.SetDefault("TRACKING_SIMULATOR_ENABLED", false)
	v.SetDefault("TRACKING_SIMULATOR_INTERVAL", "10s")
}

// Load reads an optional .env file and resolves configuration from the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Env:         strings.ToLower(v.GetString("APP_ENV")),
		StoreDriver: strings.ToLower(v.GetString("STORE_DRIVER")),
		DB: database.Config{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		DefaultTenantID: v.GetString("DEFAULT_TENANT_ID"),
		TenantSeedFile:  v.GetString("TENANT_SEED_FILE"),
		LookupOTPDebug:  v.GetBool("LOOKUP_OTP_DEBUG"),

		SimulatorEnabled: v.GetBool("TRACKING_SIMULATOR_ENABLED"),
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.AuditBuffer = positiveInt(v, "AUDIT_BUFFER", 256)
	cfg.LookupOTPMaxAttempts = positiveInt(v, "LOOKUP_OTP_MAX_ATTEMPTS", 5)
	cfg.LookupOTPTTL = positiveDuration(v, "LOOKUP_OTP_TTL", 5*time.Minute)
	cfg.SimulatorInterval = positiveDuration(v, "TRACKING_SIMULATOR_INTERVAL", 10*time.Second)

	switch cfg.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", cfg.StoreDriver, StoreMemory, StorePostgres)
	}
	if cfg.JWTSecret == "" && !cfg.Development() {
		return nil, fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", cfg.Env)
	}
	if cfg.LookupOTPDebug && !cfg.Development() {
		utils.LogWarn("LOOKUP_OTP_DEBUG ignored outside development")
		cfg.LookupOTPDebug = false
	}
	return cfg, nil
}

func positiveInt(v *viper.Viper, key string, def int) int {
	n := v.GetInt(key)
	if n <= 0 {
		utils.LogWarn("Invalid config value, using default", map[string]interface{}{"key": key, "value": v.GetString(key), "default": def})
		return def
	}
	return n
}

func positiveDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	d := v.GetDuration(key)
	if d <= 0 {
		utils.LogWarn("Invalid config value, using default", map[string]interface{}{"key": key, "value": v.GetString(key), "default": def.String()})
		return def
	}
	return d
}
