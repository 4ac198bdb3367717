package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr     string
	DatabaseURL  string
	JWTSecret    string
	JWTTTL       time.Duration
	RedisAddr    string
	SlotCacheTTL time.Duration
	AMQPUrl      string
}

// Load reads configuration from the environment with sane local
// defaults. A .env file, if any, is loaded by the entrypoint before
// this runs.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "openstage.db")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("SLOT_CACHE_TTL", "30s")

	jwtTTL, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, err
	}
	cacheTTL, err := time.ParseDuration(v.GetString("SLOT_CACHE_TTL"))
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPAddr:     v.GetString("HTTP_ADDR"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		JWTTTL:       jwtTTL,
		RedisAddr:    v.GetString("REDIS_ADDR"),
		SlotCacheTTL: cacheTTL,
		AMQPUrl:      v.GetString("AMQP_URL"),
	}, nil
}
