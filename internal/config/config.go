package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rawbytedev/stackie/internal/sized"
)

// EnvPrefix prefixes every environment override, e.g. STACKIE_CAPACITY.
const EnvPrefix = "STACKIE"

// Config drives the stackie command.
type Config struct {
	Capacity int       `mapstructure:"capacity"`
	Mode     string    `mapstructure:"mode"`
	Log      LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("capacity", 256)
	v.SetDefault("mode", string(sized.ModeString))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stderr")
}

// Load reads configuration from path (TOML, YAML or JSON by extension),
// then the environment. With an empty path it looks for stackie.toml in the
// working directory and carries on without one. A .env file in the working
// directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("stackie")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the capacity and mode are ones the command can use.
func (c *Config) Validate() error {
	if !sized.Supported(c.Capacity) {
		return fmt.Errorf("config capacity: %w: %d", sized.ErrCapacity, c.Capacity)
	}
	if _, err := sized.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config mode: %w", err)
	}
	return nil
}
