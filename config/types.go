package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Alijeyrad/nutriguard_backend/pkg/util/phone"
)

type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Server        ServerConfig        `mapstructure:"server"`
	AI            AIConfig            `mapstructure:"ai"`
	Notifications NotificationConfig  `mapstructure:"notifications"`
	Email         EmailConfig         `mapstructure:"email"`
	SMS           SMSConfig           `mapstructure:"sms"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	S3            S3Config            `mapstructure:"s3"`
	Nats          NatsConfig          `mapstructure:"nats"`
}

// APIConfig describes the service as reported by the root endpoint.
type APIConfig struct {
	Title       string `mapstructure:"title"`
	Version     string `mapstructure:"version"`
	Description string `mapstructure:"description"`
}

type NatsConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

type DatabaseConfig struct {
	Host       string                  `mapstructure:"host"`
	Port       int                     `mapstructure:"port"`
	User       string                  `mapstructure:"user"`
	Password   string                  `mapstructure:"password"`
	DBName     string                  `mapstructure:"dbname"`
	Schema     string                  `mapstructure:"schema"`
	SSLMode    string                  `mapstructure:"sslmode"`
	Pool       DatabasePoolConfig      `mapstructure:"pool"`
	Migrations DatabaseMigrationConfig `mapstructure:"migrations"`
}

type DatabasePoolConfig struct {
	MaxOpenConns       int `mapstructure:"max_open_conns"`
	MaxIdleConns       int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int `mapstructure:"conn_max_lifetime_minutes"`
}

type DatabaseMigrationConfig struct {
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	Table       string `mapstructure:"table"`
}

type RedisConfig struct {
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type RateLimitConfig struct {
	Max               int `mapstructure:"max"`
	ExpirationSeconds int `mapstructure:"expiration_seconds"`
}

type ServerConfig struct {
	Port           int             `mapstructure:"port"`
	TimeoutSeconds int             `mapstructure:"timeout_seconds"`
	Environment    string          `mapstructure:"environment"`
	Domain         string          `mapstructure:"domain"`
	CORS           CORSConfig      `mapstructure:"cors"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAgeSeconds    int      `mapstructure:"max_age_seconds"`
}

// AIConfig selects and tunes the language-model provider behind the agents.
type AIConfig struct {
	Enabled        bool              `mapstructure:"enabled"`
	Provider       string            `mapstructure:"provider"` // gemini, googleai, openai
	Model          string            `mapstructure:"model"`
	APIKey         string            `mapstructure:"api_key"`
	BaseURL        string            `mapstructure:"base_url"`
	MaxRetries     int               `mapstructure:"max_retries"`
	TimeoutSeconds int               `mapstructure:"timeout_seconds"`
	Search         bool              `mapstructure:"search"`
	Temperatures   AITemperatureConf `mapstructure:"temperatures"`
}

type AITemperatureConf struct {
	DietPlanner      float64 `mapstructure:"diet_planner"`
	RecipeModifier   float64 `mapstructure:"recipe_modifier"`
	NutritionAnalyst float64 `mapstructure:"nutrition_analyst"`
	SafetyInspector  float64 `mapstructure:"safety_inspector"`
}

// NotificationConfig lists who hears about newly raised alerts.
type NotificationConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	EmailRecipients []string `mapstructure:"email_recipients"`
	SMSRecipients   []string `mapstructure:"sms_recipients"`
	DefaultRegion   string   `mapstructure:"default_region"`
}

type EmailConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	From    string     `mapstructure:"from"`
	SMTP    SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	UseTLS         bool   `mapstructure:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SMSConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	SMSIR   SMSIRConfig `mapstructure:"smsir"`
}

type SMSIRConfig struct {
	APIKey     string `mapstructure:"api_key"`
	SecretKey  string `mapstructure:"secret_key"`
	TemplateID string `mapstructure:"template_id"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/nutriguard.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // e.g. "http://localhost:3100"
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	PresignTTLSec   int    `mapstructure:"presign_ttl_sec"`
}

// Enabled reports whether object storage is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

var supportedProviders = []string{"gemini", "googleai", "openai"}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Database.Schema == "" {
		errs = append(errs, errors.New("database.schema is required"))
	}

	provider := strings.ToLower(c.AI.Provider)
	valid := false
	for _, p := range supportedProviders {
		if provider == p {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Errorf("ai.provider must be one of: %s", strings.Join(supportedProviders, ", ")))
	}
	c.AI.Provider = provider

	temps := map[string]float64{
		"diet_planner":      c.AI.Temperatures.DietPlanner,
		"recipe_modifier":   c.AI.Temperatures.RecipeModifier,
		"nutrition_analyst": c.AI.Temperatures.NutritionAnalyst,
		"safety_inspector":  c.AI.Temperatures.SafetyInspector,
	}
	for name, t := range temps {
		if t < 0 || t > 2 {
			errs = append(errs, fmt.Errorf("ai.temperatures.%s must be between 0 and 2", name))
		}
	}
	if c.AI.MaxRetries < 0 {
		errs = append(errs, errors.New("ai.max_retries must not be negative"))
	}

	for i, number := range c.Notifications.SMSRecipients {
		normalized, err := phone.Normalize(number, c.Notifications.DefaultRegion)
		if err != nil {
			errs = append(errs, fmt.Errorf("notifications.sms_recipients[%d]: %w", i, err))
			continue
		}
		c.Notifications.SMSRecipients[i] = normalized
	}

	return errors.Join(errs...)
}
