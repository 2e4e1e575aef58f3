// Package config loads service configuration from an optional YAML file
// plus environment variables (a local .env is honored). Every loan
// regulation (DTI ceilings, base rates, term and amount bounds) is
// configurable; the defaults mirror common UAE retail-lending practice.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// RedisConfig holds cache settings. An empty Addr selects the in-memory
// cache instead of redis.
type RedisConfig struct {
	Addr string        `mapstructure:"addr"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	Capacity       int           `mapstructure:"capacity"`
	RefillInterval time.Duration `mapstructure:"refill_interval"`
}

// LoggingConfig selects the zap profile.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoanConfig carries the regulation block for one loan product.
type LoanConfig struct {
	MaxDTIRatio    float64 `mapstructure:"max_dti_ratio"`
	RecommendedDTI float64 `mapstructure:"recommended_dti"`
	BaseRate       float64 `mapstructure:"base_rate"`
	MinTermMonths  int     `mapstructure:"min_term_months"`
	MaxTermMonths  int     `mapstructure:"max_term_months"`
	DefaultTerm    int     `mapstructure:"default_term_months"`
	MinAmount      float64 `mapstructure:"min_amount"`
	MaxAmount      float64 `mapstructure:"max_amount"`
}

// EligibilityConfig holds the thresholds the eligibility checker applies.
type EligibilityConfig struct {
	MinAge              int     `mapstructure:"min_age"`
	MaxAgeAtMaturity    int     `mapstructure:"max_age_at_maturity"`
	MinMonthlyIncome    float64 `mapstructure:"min_monthly_income"`
	MinCreditScore      int     `mapstructure:"min_credit_score"`
	MaxDTIRatio         float64 `mapstructure:"max_dti_ratio"`
	MinEmploymentYears  float64 `mapstructure:"min_employment_years"`
	MaxLoanAmount       float64 `mapstructure:"max_loan_amount"`
	MaxLoanToIncome     float64 `mapstructure:"max_loan_to_income"`
	ReferenceAnnualRate float64 `mapstructure:"reference_annual_rate"`
}

// AdvisorConfig configures the optional LLM explanation layer. With an
// empty APIKey the advisor falls back to deterministic text.
type AdvisorConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	APIURL    string        `mapstructure:"api_url"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Config is the root configuration for the service.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Redis       RedisConfig       `mapstructure:"redis"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Personal    LoanConfig        `mapstructure:"personal"`
	Mortgage    LoanConfig        `mapstructure:"mortgage"`
	Auto        LoanConfig        `mapstructure:"auto"`
	Eligibility EligibilityConfig `mapstructure:"eligibility"`
	Advisor     AdvisorConfig     `mapstructure:"advisor"`
}

// LoanConfigFor returns the regulation block for a loan type string;
// unknown types get the personal-loan block.
func (c *Config) LoanConfigFor(loanType string) LoanConfig {
	switch strings.ToLower(loanType) {
	case "mortgage":
		return c.Mortgage
	case "auto":
		return c.Auto
	}
	return c.Personal
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.ttl", time.Hour)

	v.SetDefault("rate_limit.capacity", 30)
	v.SetDefault("rate_limit.refill_interval", time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("personal.max_dti_ratio", 0.50)
	v.SetDefault("personal.recommended_dti", 0.36)
	v.SetDefault("personal.base_rate", 0.0699)
	v.SetDefault("personal.min_term_months", 12)
	v.SetDefault("personal.max_term_months", 60)
	v.SetDefault("personal.default_term_months", 36)
	v.SetDefault("personal.min_amount", 5_000)
	v.SetDefault("personal.max_amount", 500_000)

	v.SetDefault("mortgage.max_dti_ratio", 0.43)
	v.SetDefault("mortgage.recommended_dti", 0.36)
	v.SetDefault("mortgage.base_rate", 0.0449)
	v.SetDefault("mortgage.min_term_months", 120)
	v.SetDefault("mortgage.max_term_months", 360)
	v.SetDefault("mortgage.default_term_months", 360)
	v.SetDefault("mortgage.min_amount", 50_000)
	v.SetDefault("mortgage.max_amount", 10_000_000)

	v.SetDefault("auto.max_dti_ratio", 0.45)
	v.SetDefault("auto.recommended_dti", 0.36)
	v.SetDefault("auto.base_rate", 0.0549)
	v.SetDefault("auto.min_term_months", 36)
	v.SetDefault("auto.max_term_months", 84)
	v.SetDefault("auto.default_term_months", 60)
	v.SetDefault("auto.min_amount", 10_000)
	v.SetDefault("auto.max_amount", 500_000)

	v.SetDefault("eligibility.min_age", 18)
	v.SetDefault("eligibility.max_age_at_maturity", 65)
	v.SetDefault("eligibility.min_monthly_income", 5_000)
	v.SetDefault("eligibility.min_credit_score", 600)
	v.SetDefault("eligibility.max_dti_ratio", 0.50)
	v.SetDefault("eligibility.min_employment_years", 1.0)
	v.SetDefault("eligibility.max_loan_amount", 1_000_000)
	v.SetDefault("eligibility.max_loan_to_income", 3.0)
	v.SetDefault("eligibility.reference_annual_rate", 0.05)

	v.SetDefault("advisor.api_key", "")
	v.SetDefault("advisor.api_url", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("advisor.model", "gpt-4o-mini")
	v.SetDefault("advisor.max_tokens", 400)
	v.SetDefault("advisor.timeout", 30*time.Second)
}

// Load reads configuration from config.yaml (optional) and the
// environment. Environment keys use underscores: SERVER_ADDR,
// MORTGAGE_MAX_DTI_RATIO, ADVISOR_API_KEY, and so on.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	for name, lc := range map[string]LoanConfig{
		"personal": cfg.Personal,
		"mortgage": cfg.Mortgage,
		"auto":     cfg.Auto,
	} {
		if lc.MaxDTIRatio <= 0 || lc.MaxDTIRatio > 1 {
			return fmt.Errorf("invalid %s.max_dti_ratio: %v", name, lc.MaxDTIRatio)
		}
		if lc.BaseRate < 0 || lc.BaseRate > 1 {
			return fmt.Errorf("invalid %s.base_rate: %v", name, lc.BaseRate)
		}
		if lc.MinTermMonths <= 0 || lc.MaxTermMonths < lc.MinTermMonths {
			return fmt.Errorf("invalid %s term bounds: %d..%d", name, lc.MinTermMonths, lc.MaxTermMonths)
		}
	}
	if cfg.Eligibility.MaxDTIRatio <= 0 || cfg.Eligibility.MaxDTIRatio > 1 {
		return fmt.Errorf("invalid eligibility.max_dti_ratio: %v", cfg.Eligibility.MaxDTIRatio)
	}
	if cfg.RateLimit.Capacity <= 0 {
		return fmt.Errorf("invalid rate_limit.capacity: %d", cfg.RateLimit.Capacity)
	}
	return nil
}
