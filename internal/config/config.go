package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".mystic-tarot"
	envPrefix  = "TAROT"

	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendTOML   = "toml"
)

type Config struct {
	App struct {
		Timezone string
	} `mapstructure:"app"`

	State struct {
		Dir     string
		Backend string
	} `mapstructure:"state"`

	Log struct {
		Level  string
		Format string
	} `mapstructure:"log"`
}

// Load reads ~/.mystic-tarot/config.toml when present; TAROT_* environment
// variables override file values (TAROT_STATE_BACKEND for state.backend).
func Load(v *viper.Viper, homeDir string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	baseDir := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(baseDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.timezone", "")
	v.SetDefault("state.dir", filepath.Join(baseDir, "state"))
	v.SetDefault("state.backend", BackendFile)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.State.Dir) == "" {
		return errors.New("state.dir is empty")
	}

	switch c.State.Backend {
	case BackendFile, BackendSQLite, BackendTOML:
	default:
		return fmt.Errorf("unsupported state.backend %q (want %s, %s or %s)", c.State.Backend, BackendFile, BackendSQLite, BackendTOML)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location is the zone that decides when a new calendar day starts.
// An empty timezone means the process-local zone.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.App.Timezone) == "" {
		return time.Local, nil
	}

	location, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load app.timezone %q: %w", c.App.Timezone, err)
	}
	return location, nil
}
