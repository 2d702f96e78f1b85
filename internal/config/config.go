package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	NATSURL           string
	JWTSecret         string
	TokenTTL          time.Duration
	PlanCacheTTL      time.Duration
	AnalyticsCacheTTL time.Duration
	WeakThreshold     float64
	WeeklyTargetHours float64
	SeedEnabled       bool
	SeedToken         string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("STUDENTHUB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "StudentHub API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("plan.cache_ttl", "2m")
	v.SetDefault("analytics.cache_ttl", "5m")
	v.SetDefault("grading.weak_threshold", 60.0)
	v.SetDefault("planner.weekly_target_hours", 20.0)
	v.SetDefault("seed.enabled", false)

	tokenTTL, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	planTTL, err := time.ParseDuration(v.GetString("plan.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid plan cache ttl: %w", err)
	}

	analyticsTTL, err := time.ParseDuration(v.GetString("analytics.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid analytics cache ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		TokenTTL:          tokenTTL,
		PlanCacheTTL:      planTTL,
		AnalyticsCacheTTL: analyticsTTL,
		WeakThreshold:     v.GetFloat64("grading.weak_threshold"),
		WeeklyTargetHours: v.GetFloat64("planner.weekly_target_hours"),
		SeedEnabled:       v.GetBool("seed.enabled"),
		SeedToken:         v.GetString("seed.token"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.WeakThreshold <= 0 {
		cfg.WeakThreshold = 60.0
	}

	if cfg.WeeklyTargetHours <= 0 {
		cfg.WeeklyTargetHours = 20.0
	}

	return cfg, nil
}
