package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// StorefrontAPI points at the remote GraphQL API that owns products, orders and payments.
type StorefrontAPI struct {
	Endpoint string        `yaml:"GRAPHQL_ENDPOINT" env:"GRAPHQL_ENDPOINT" env-required:"true"`
	Timeout  time.Duration `yaml:"GRAPHQL_TIMEOUT" env:"GRAPHQL_TIMEOUT" env-default:"15s"`
}

type Razorpay struct {
	KeyID          string        `yaml:"RAZORPAY_KEY_ID" env:"RAZORPAY_KEY_ID" env-default:""`
	Currency       string        `yaml:"RAZORPAY_CURRENCY" env:"RAZORPAY_CURRENCY" env-default:"INR"`
	BrandName      string        `yaml:"RAZORPAY_BRAND_NAME" env:"RAZORPAY_BRAND_NAME" env-default:"EcoPlaster"`
	AttemptTimeout time.Duration `yaml:"RAZORPAY_ATTEMPT_TIMEOUT" env:"RAZORPAY_ATTEMPT_TIMEOUT" env-default:"30m"`
}

type Checkout struct {
	CheckoutPath         string        `yaml:"CHECKOUT_PATH" env:"CHECKOUT_PATH" env-default:"/checkout"`
	PaymentPath          string        `yaml:"PAYMENT_PATH" env:"PAYMENT_PATH" env-default:"/payment"`
	SuccessPath          string        `yaml:"SUCCESS_PATH" env:"SUCCESS_PATH" env-default:"/order-success"`
	ExpiredRedirectDelay time.Duration `yaml:"EXPIRED_REDIRECT_DELAY" env:"EXPIRED_REDIRECT_DELAY" env-default:"3s"`
	DraftTTL             time.Duration `yaml:"DRAFT_TTL" env:"DRAFT_TTL" env-default:"24h"`
	SessionIdleTTL       time.Duration `yaml:"SESSION_IDLE_TTL" env:"SESSION_IDLE_TTL" env-default:"30m"`
	SessionCookie        string        `yaml:"SESSION_COOKIE" env:"SESSION_COOKIE" env-default:"ecoplaster_session"`
	InsecureCookie       bool          `yaml:"INSECURE_COOKIE" env:"INSECURE_COOKIE"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"720h"`
}

// RateConfig bounds promotion code attempts per session in a sliding window.
type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"10"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"1m"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"ecoplaster-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:""`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env           string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer    `yaml:"http_server"`
	RedisConnect  RedisConnect  `yaml:"redis"`
	StorefrontAPI StorefrontAPI `yaml:"storefront_api"`
	Razorpay      Razorpay      `yaml:"razorpay"`
	Checkout      Checkout      `yaml:"checkout"`
	Cache         CacheConfig   `yaml:"cache"`
	RateConfig    RateConfig    `yaml:"rateConfig"`
	Security      Security      `yaml:"security"`
	Otel          Otel          `yaml:"otel"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = "./config/local.yaml"
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return &cfg, nil
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
