package binder

import (
	"fmt"

	"github.com/kbukum/restbind/config"
	"github.com/kbukum/restbind/logger"
	"github.com/kbukum/restbind/observability"
	"github.com/kbukum/restbind/transport"
	"github.com/kbukum/restbind/validation"
)

// Config is the file and environment configuration of a bound client.
type Config struct {
	// BaseURI is the absolute URI method targets are resolved against.
	BaseURI   string               `yaml:"base_uri" mapstructure:"base_uri" validate:"required,url"`
	Transport transport.Config     `yaml:"transport" mapstructure:"transport"`
	Logging   logger.Config        `yaml:"logging" mapstructure:"logging"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.Transport.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Transport.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.Telemetry.Validate()
}

// LoadConfig reads the configuration named name from YAML, .env files and
// the environment, then applies defaults and validates it.
func LoadConfig(name string, opts ...config.LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(name, cfg, opts...); err != nil {
		return nil, fmt.Errorf("binder: %w", err)
	}
	return cfg, nil
}
