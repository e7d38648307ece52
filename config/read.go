package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Alijeyrad/nutriguard_backend/pkg/constants"
	"github.com/spf13/viper"
)

func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	// Allow env vars to override config values.
	// e.g. NUTRIGUARD_DATABASE_HOST overrides database.host
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindEnv(v, reflect.TypeOf(Config{}), ""); err != nil {
		return nil, fmt.Errorf("error binding env vars: %w", err)
	}

	// The config file is optional; defaults plus env vars are enough to boot.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}
	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.title", "NutriGuard API")
	v.SetDefault("api.version", "1.0.0")
	v.SetDefault("api.description", "Healthcare Food Management System")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.rate_limit.max", 20)
	v.SetDefault("server.rate_limit.expiration_seconds", 30)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "nutriguard")
	v.SetDefault("database.schema", "nutriguard")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.pool.max_open_conns", 25)
	v.SetDefault("database.pool.max_idle_conns", 5)
	v.SetDefault("database.pool.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.migrations.table", "schema_migrations")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.5-pro")
	v.SetDefault("ai.max_retries", 3)
	v.SetDefault("ai.timeout_seconds", 120)
	v.SetDefault("ai.search", true)
	v.SetDefault("ai.temperatures.diet_planner", 0.2)
	v.SetDefault("ai.temperatures.recipe_modifier", 0.1)
	v.SetDefault("ai.temperatures.nutrition_analyst", 0.1)
	v.SetDefault("ai.temperatures.safety_inspector", 0.05)

	v.SetDefault("notifications.default_region", "US")

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.presign_ttl_sec", 900)

	v.SetDefault("observability.service_name", "nutriguard_backend")
	v.SetDefault("observability.service_version", "1.0.0")
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output.stdout", true)
}

// bindEnv registers every mapstructure key of t with viper. AutomaticEnv
// alone is invisible to Unmarshal for keys that have no default and are
// absent from the config file.
func bindEnv(v *viper.Viper, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct {
			if err := bindEnv(v, f.Type, key); err != nil {
				return err
			}
			continue
		}
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}
	return nil
}
