package core

import (
	"net/url"
	"strings"
	"time"
)

const (
	DefaultServiceName          = "remoteauth"
	DefaultTransportKind        = "rest"
	DefaultTimeout              = 30 * time.Second
	DefaultMaxResponseBodyBytes = int64(1 << 20)
)

type Config struct {
	ServiceName          string        `koanf:"service_name" mapstructure:"service_name"`
	LoginURL             string        `koanf:"login_url" mapstructure:"login_url"`
	Transport            string        `koanf:"transport" mapstructure:"transport"`
	Timeout              time.Duration `koanf:"timeout" mapstructure:"timeout"`
	MaxResponseBodyBytes int64         `koanf:"max_response_body_bytes" mapstructure:"max_response_body_bytes"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:          DefaultServiceName,
		Transport:            DefaultTransportKind,
		Timeout:              DefaultTimeout,
		MaxResponseBodyBytes: DefaultMaxResponseBodyBytes,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return configError("core: service_name is required")
	}
	loginURL := strings.TrimSpace(c.LoginURL)
	if loginURL == "" {
		return configError("core: login_url is required")
	}
	parsed, err := url.Parse(loginURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return configError("core: login_url must be an absolute url")
	}
	if strings.TrimSpace(c.Transport) == "" {
		return configError("core: transport is required")
	}
	if c.Timeout <= 0 {
		return configError("core: timeout must be positive")
	}
	if c.MaxResponseBodyBytes <= 0 {
		return configError("core: max_response_body_bytes must be positive")
	}
	return nil
}
