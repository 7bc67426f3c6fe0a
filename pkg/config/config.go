package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App            AppConfig
	Redis          RedisConfig
	Pricing        PricingConfig
	Recommendation RecommendationConfig
	Catalog        CatalogConfig
	Submission     SubmissionConfig
	Drafts         DraftsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.App.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FESTIVO_APP_ENV" required:"true"`
	Port         string `envconfig:"FESTIVO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FESTIVO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FESTIVO_LOG_WARN_STACK" default:"false"`
}

// envconfig's required tag only checks presence, so a variable exported as an
// empty string slips through; blank values are rejected here.
func (a AppConfig) validate() error {
	if strings.TrimSpace(a.Env) == "" {
		return fmt.Errorf("app env must not be empty")
	}
	if strings.TrimSpace(a.Port) == "" {
		return fmt.Errorf("app port must not be empty")
	}
	return nil
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"FESTIVO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FESTIVO_REDIS_ADDR"`
	Password     string        `envconfig:"FESTIVO_REDIS_PASSWORD"`
	DB           int           `envconfig:"FESTIVO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FESTIVO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FESTIVO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FESTIVO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FESTIVO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FESTIVO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig carries the platform pricing policy in basis points.
// Rates are policy knobs, not product invariants; the defaults mirror the
// marketplace terms in force at launch (10% platform fee, 18% tax).
type PricingConfig struct {
	PlatformFeeBps int `envconfig:"FESTIVO_PRICING_FEE_BPS" default:"1000"`
	TaxBps         int `envconfig:"FESTIVO_PRICING_TAX_BPS" default:"1800"`
}

func (p PricingConfig) validate() error {
	if p.PlatformFeeBps < 0 || p.PlatformFeeBps > 10000 {
		return fmt.Errorf("platform fee bps out of range: %d", p.PlatformFeeBps)
	}
	if p.TaxBps < 0 || p.TaxBps > 10000 {
		return fmt.Errorf("tax bps out of range: %d", p.TaxBps)
	}
	return nil
}

type RecommendationConfig struct {
	BaseURL string        `envconfig:"FESTIVO_RECOMMENDATION_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"FESTIVO_RECOMMENDATION_API_KEY"`
	Timeout time.Duration `envconfig:"FESTIVO_RECOMMENDATION_TIMEOUT" default:"10s"`
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"FESTIVO_CATALOG_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"FESTIVO_CATALOG_TIMEOUT" default:"10s"`
}

type SubmissionConfig struct {
	BaseURL string        `envconfig:"FESTIVO_SUBMISSION_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"FESTIVO_SUBMISSION_API_KEY"`
	Timeout time.Duration `envconfig:"FESTIVO_SUBMISSION_TIMEOUT" default:"30s"`
}

type DraftsConfig struct {
	TTL time.Duration `envconfig:"FESTIVO_DRAFT_TTL" default:"168h"`
}
