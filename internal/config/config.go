package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	AI        AIConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Broker    BrokerConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// AIConfig drives which response providers are built at startup. A provider
// with missing settings is simply left out of the chain.
type AIConfig struct {
	Primary        PrimaryLLMConfig
	Local          LocalLLMConfig
	CircuitBreaker CircuitBreakerConfig
}

type PrimaryLLMConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type LocalLLMConfig struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
}

type CircuitBreakerConfig struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

type StorageConfig struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// Enabled reports whether resume uploads can be stored.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

type BrokerConfig struct {
	URL      string
	Exchange string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment, optionally overlaid by a
// config.yaml in the working directory.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "groweasy")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "5000")
	v.SetDefault("LOG_JSON", true)

	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", "600s")

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", "168h")

	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_TIMEOUT", "30s")
	v.SetDefault("LLAMA_TIMEOUT", "60s")

	v.SetDefault("AI_BREAKER_ENABLED", true)
	v.SetDefault("AI_BREAKER_MAX_REQUESTS", 1)
	v.SetDefault("AI_BREAKER_INTERVAL", "60s")
	v.SetDefault("AI_BREAKER_TIMEOUT", "30s")
	v.SetDefault("AI_BREAKER_MIN_REQUESTS", 3)
	v.SetDefault("AI_BREAKER_FAILURE_THRESHOLD", 0.6)

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")

	v.SetDefault("STORAGE_REGION", "auto")
	v.SetDefault("BROKER_EXCHANGE", "groweasy.events")
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME"),
		Environment: opt("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     req("DB_PORT"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
	}

	cfg.AI = AIConfig{
		Primary: PrimaryLLMConfig{
			APIKey:  opt("GEMINI_API_KEY"),
			Model:   opt("GEMINI_MODEL"),
			Timeout: v.GetDuration("GEMINI_TIMEOUT"),
		},
		Local: LocalLLMConfig{
			Enabled: v.GetBool("ENABLE_AI"),
			BaseURL: opt("LLAMA_BASE_URL"),
			Timeout: v.GetDuration("LLAMA_TIMEOUT"),
		},
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:          v.GetBool("AI_BREAKER_ENABLED"),
			MaxRequests:      v.GetUint32("AI_BREAKER_MAX_REQUESTS"),
			Interval:         v.GetDuration("AI_BREAKER_INTERVAL"),
			Timeout:          v.GetDuration("AI_BREAKER_TIMEOUT"),
			MinRequests:      v.GetUint32("AI_BREAKER_MIN_REQUESTS"),
			FailureThreshold: v.GetFloat64("AI_BREAKER_FAILURE_THRESHOLD"),
		},
	}

	cfg.RateLimit = RateLimitConfig{
		Enabled:  v.GetBool("RATE_LIMIT_ENABLED"),
		Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
		Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
	}

	cfg.Storage = StorageConfig{
		Endpoint:      opt("STORAGE_ENDPOINT"),
		Region:        opt("STORAGE_REGION"),
		Bucket:        opt("STORAGE_BUCKET"),
		AccessKey:     opt("STORAGE_ACCESS_KEY"),
		SecretKey:     opt("STORAGE_SECRET_KEY"),
		PublicBaseURL: opt("STORAGE_PUBLIC_BASE_URL"),
	}

	cfg.Broker = BrokerConfig{
		URL:      opt("RABBITMQ_URL"),
		Exchange: opt("BROKER_EXCHANGE"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if cfg.JWT.AccessExpiresIn <= 0 || cfg.JWT.RefreshExpiresIn <= 0 {
		return Config{}, fmt.Errorf("invalid JWT expiry: access=%s refresh=%s", cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		return Config{}, fmt.Errorf("invalid rate limit: requests=%d window=%s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	return cfg, nil
}
