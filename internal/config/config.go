package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/nil-compliance/internal/scoring"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Rules   RulesConfig   `yaml:"rules" mapstructure:"rules"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`

	Monitoring MonitoringConfig `yaml:"monitoring" mapstructure:"monitoring"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ScoringConfig configures the dimension scorers. Weights must sum to 1.0;
// Load fails otherwise rather than letting a skewed profile score deals.
type ScoringConfig struct {
	Weights             scoring.Weights `yaml:"weights" mapstructure:"weights"`
	SensitiveCategories []string        `yaml:"sensitive_categories" mapstructure:"sensitive_categories"`
	MinContractChars    int             `yaml:"min_contract_chars" mapstructure:"min_contract_chars"`
	ReportingThreshold  float64         `yaml:"reporting_threshold" mapstructure:"reporting_threshold"`
}

// RulesConfig configures the jurisdiction rule source.
type RulesConfig struct {
	// File optionally overrides the built-in rule seed with a YAML file.
	File string `yaml:"file" mapstructure:"file"`
}

// BatchConfig configures batch rescoring.
type BatchConfig struct {
	MaxConcurrentDeals int `yaml:"max_concurrent_deals" mapstructure:"max_concurrent_deals"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port              int     `yaml:"port" mapstructure:"port"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// MonitoringConfig configures the background compliance health checker.
// A zero CheckIntervalSecs disables the checker.
type MonitoringConfig struct {
	CheckIntervalSecs int     `yaml:"check_interval_secs" mapstructure:"check_interval_secs"`
	WebhookURL        string  `yaml:"webhook_url" mapstructure:"webhook_url"`
	OverdueThreshold  int     `yaml:"overdue_threshold" mapstructure:"overdue_threshold"`
	RedRateThreshold  float64 `yaml:"red_rate_threshold" mapstructure:"red_rate_threshold"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ScoringEngineConfig assembles the scorer configuration from the loaded
// settings, falling back to the default FMV bands.
func (c *Config) ScoringEngineConfig() scoring.Config {
	cfg := scoring.Config{
		Weights:             c.Scoring.Weights,
		FMVBands:            scoring.DefaultFMVBands(),
		SensitiveCategories: c.Scoring.SensitiveCategories,
		MinContractChars:    c.Scoring.MinContractChars,
		ReportingThreshold:  c.Scoring.ReportingThreshold,
	}
	return cfg
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("NILCOMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "nil-compliance.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.requests_per_second", 20)
	v.SetDefault("batch.max_concurrent_deals", 5)
	v.SetDefault("monitoring.check_interval_secs", 0)
	v.SetDefault("monitoring.overdue_threshold", 1)
	v.SetDefault("monitoring.red_rate_threshold", 0.5)

	defaults := scoring.DefaultConfig()
	v.SetDefault("scoring.weights.policy_fit", defaults.Weights.PolicyFit)
	v.SetDefault("scoring.weights.document_hygiene", defaults.Weights.DocumentHygiene)
	v.SetDefault("scoring.weights.fmv_verification", defaults.Weights.FMVVerification)
	v.SetDefault("scoring.weights.tax_readiness", defaults.Weights.TaxReadiness)
	v.SetDefault("scoring.weights.brand_safety", defaults.Weights.BrandSafety)
	v.SetDefault("scoring.weights.guardian_consent", defaults.Weights.GuardianConsent)
	v.SetDefault("scoring.sensitive_categories", defaults.SensitiveCategories)
	v.SetDefault("scoring.min_contract_chars", defaults.MinContractChars)
	v.SetDefault("scoring.reporting_threshold", defaults.ReportingThreshold)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Scoring.Weights.Validate(); err != nil {
		return nil, eris.Wrap(err, "config: scoring weights")
	}
	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
