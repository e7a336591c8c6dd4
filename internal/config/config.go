// Package config loads the service configuration from a YAML file.
//
// Values missing from the file keep their defaults. The result is validated
// with struct tags before use.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no path is given; it may be absent
const DefaultPath = "config.yml"

// PortEnv overrides server.port when set
const PortEnv = "EASYRIDER_PORT"

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         int           `yaml:"port" validate:"gt=0,lte=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" validate:"gte=0"`
}

// LimitsConfig bounds the batches accepted for checking
type LimitsConfig struct {
	MaxBatchBytes int64         `yaml:"max_batch_bytes" validate:"gt=0"`
	MaxRecords    int           `yaml:"max_records" validate:"gte=0"` // 0 means unlimited
	FetchTimeout  time.Duration `yaml:"fetch_timeout" validate:"gt=0"`
}

// Config is the root configuration structure
type Config struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	Limits LimitsConfig `yaml:"limits" validate:"required"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Limits: LimitsConfig{
			MaxBatchBytes: 10 << 20,
			FetchTimeout:  30 * time.Second,
		},
	}
}

// Load reads the configuration at path over the defaults.
// An empty path reads DefaultPath if it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, err
	}

	if port := os.Getenv(PortEnv); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", PortEnv, err)
		}
		cfg.Server.Port = p
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr returns the listen address of the server
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}
