package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	FrontendURL string

	MongoEnabled bool
	MongoURI     string
	MongoDB      string
	MongoTimeout time.Duration

	CacheEnabled bool
	RedisURL     string
	CacheTTL     time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	LogLevel  string
	LogFormat string

	StrictTransitions bool

	JobsEnabled           bool
	PendingReportSchedule string
	PendingStaleAfter     time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("MONGO_ENABLED", true)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "neuroscan")
	v.SetDefault("MONGO_TIMEOUT", "5s")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STRICT_TRANSITIONS", true)
	v.SetDefault("JOBS_ENABLED", true)
	v.SetDefault("PENDING_REPORT_SCHEDULE", "5 0 * * *")
	v.SetDefault("PENDING_STALE_AFTER", "48h")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
}

/*
* Load the .env file if present
* Read defaults and environment through viper
* JWT_SECRET has no default
 */
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error in loading the ENV")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                  v.GetString("PORT"),
		FrontendURL:           v.GetString("FRONTEND_URL"),
		MongoEnabled:          v.GetBool("MONGO_ENABLED"),
		MongoURI:              v.GetString("MONGO_URI"),
		MongoDB:               v.GetString("MONGO_DB"),
		MongoTimeout:          v.GetDuration("MONGO_TIMEOUT"),
		CacheEnabled:          v.GetBool("CACHE_ENABLED"),
		RedisURL:              v.GetString("REDIS_URL"),
		CacheTTL:              v.GetDuration("CACHE_TTL"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		JWTTTL:                v.GetDuration("JWT_TTL"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		LogFormat:             v.GetString("LOG_FORMAT"),
		StrictTransitions:     v.GetBool("STRICT_TRANSITIONS"),
		JobsEnabled:           v.GetBool("JOBS_ENABLED"),
		PendingReportSchedule: v.GetString("PENDING_REPORT_SCHEDULE"),
		PendingStaleAfter:     v.GetDuration("PENDING_STALE_AFTER"),
		RateLimitRPS:          v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:        v.GetInt("RATE_LIMIT_BURST"),
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}
