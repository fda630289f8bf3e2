package transport

import (
	"fmt"
	"time"

	"github.com/kbukum/restbind/resilience"
	"github.com/kbukum/restbind/security"
	"github.com/kbukum/restbind/version"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultDialTimeout = 10 * time.Second
)

// Config configures the HTTP transport.
type Config struct {
	// Timeout bounds a whole exchange. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// DialTimeout bounds connection establishment. Defaults to 10s.
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	// TLS configures https targets.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
	// Headers are sent on every request. Request headers of the same name win.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	// UserAgent defaults to "restbind/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
	// RequestIDHeader, when set, carries a fresh UUID on every request.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header"`
	// H2C speaks HTTP/2 over cleartext TCP. It cannot be combined with TLS.
	H2C bool `yaml:"h2c" mapstructure:"h2c"`
	// FailOnErrorStatus turns 4xx/5xx responses into *Error values. By
	// default a status code is a completed exchange.
	FailOnErrorStatus bool `yaml:"fail_on_error_status" mapstructure:"fail_on_error_status"`
	// Auth authenticates every request. Nil disables it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`
	// CircuitBreaker guards the server. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
	// RateLimiter spaces exchanges. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"rate_limiter" mapstructure:"rate_limiter"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("transport: timeout must be positive")
	}
	if err := c.TLS.Validate(); err != nil {
		return err
	}
	if c.H2C && c.TLS.IsEnabled() {
		return fmt.Errorf("transport: h2c is cleartext and cannot use tls settings")
	}
	return c.Auth.Validate()
}
