// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Typed pool configuration loaded from file and environment.

package control

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/momentics/hioload-pool/pool"
)

// EnvPrefix prefixes environment overrides, e.g. HIOLOAD_POOL_CAPACITY.
const EnvPrefix = "HIOLOAD_POOL"

// Config holds pool and observability settings.
type Config struct {
	Name             string `mapstructure:"name"`              // pool name used in logs and metrics
	Capacity         int    `mapstructure:"capacity"`          // preallocated slots
	PanicOnMisuse    bool   `mapstructure:"panic_on_misuse"`   // panic instead of returning errors
	MetricsNamespace string `mapstructure:"metrics_namespace"` // Prometheus namespace
	ViolationLogSize int    `mapstructure:"violation_log_size"`
	LogLevel         string `mapstructure:"log_level"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:             "pool",
		Capacity:         0,
		PanicOnMisuse:    false,
		MetricsNamespace: "hioload",
		ViolationLogSize: DefaultViolationLogSize,
		LogLevel:         "info",
	}
}

// LoadConfig reads path (any format viper understands) over the defaults,
// then applies HIOLOAD_POOL_* environment overrides. An empty path skips
// the file.
func LoadConfig(path string) (*Config, error) {
	def := DefaultConfig()
	v := viper.New()
	v.SetDefault("name", def.Name)
	v.SetDefault("capacity", def.Capacity)
	v.SetDefault("panic_on_misuse", def.PanicOnMisuse)
	v.SetDefault("metrics_namespace", def.MetricsNamespace)
	v.SetDefault("violation_log_size", def.ViolationLogSize)
	v.SetDefault("log_level", def.LogLevel)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "while reading config: %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "while decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Name == "" {
		return errors.New("config: name must not be empty")
	}
	if c.Capacity < 0 {
		return errors.Errorf("config: capacity must be >= 0, got %d", c.Capacity)
	}
	if c.ViolationLogSize < 0 {
		return errors.Errorf("config: violation_log_size must be >= 0, got %d", c.ViolationLogSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, errors.Wrapf(err, "config: log_level %q", c.LogLevel)
	}
	return lvl, nil
}

// PoolOptions translates the config into pool options; extra options are
// appended and take precedence.
func (c *Config) PoolOptions(logger *zap.Logger, extra ...pool.Option) []pool.Option {
	opts := []pool.Option{
		pool.WithName(c.Name),
		pool.WithCapacity(c.Capacity),
		pool.WithLogger(logger),
	}
	if c.PanicOnMisuse {
		opts = append(opts, pool.WithPanicOnMisuse())
	}
	return append(opts, extra...)
}
