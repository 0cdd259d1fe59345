package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "LABQC"

// newViper builds a pre-configured Viper instance: YAML file type, LABQC_
// env prefix, automatic env binding, and a key replacer so nested keys like
// "database.host" resolve to "LABQC_DATABASE_HOST".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Viper only binds environment variables for keys it knows about, so
	// every overridable key needs a registered default.
	for _, key := range []string{
		"server.port", "server.mode", "server.read_timeout",
		"server.write_timeout", "server.shutdown_timeout",
		"auth.api_key",
		"logging.level", "logging.format",
		"database.host", "database.port", "database.database",
		"database.username", "database.password", "database.ssl_mode",
		"migrations.path", "migrations.auto_migrate",
		"redis.addr", "redis.password", "redis.db", "redis.rule_ttl",
		"kafka.brokers", "kafka.acks",
		"storage.endpoint", "storage.access_key_id", "storage.secret_access_key",
		"storage.bucket", "storage.use_ssl",
		"cache_enabled", "events_enabled", "storage_enabled",
	} {
		v.SetDefault(key, nil)
	}
	return v
}

// Load reads the YAML file at configPath, merges LABQC_* environment
// overrides, applies defaults, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from LABQC_* environment variables,
// with no config file required.  Preferred for containerised deployments.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the re-parsed Config
// whenever the file changes on disk.  Intended for hot-reloading settings
// like log level; callers decide which subset is safe to apply at runtime.
// A change that fails to parse or validate is skipped.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; callers should have called Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad panics on any load error.  For use in main() where a config
// failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
