package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPListenAddr    string        `yaml:"http_listen_addr" env:"HTTP_LISTEN_ADDR" validate:"required"`
	MetricsListenAddr string        `yaml:"metrics_listen_addr" env:"METRICS_LISTEN_ADDR"`
	LogLevel          string        `yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFile           string        `yaml:"log_file" env:"LOG_FILE"`
	ServiceName       string        `yaml:"service_name" env:"SERVICE_NAME"`
	CloudflareAPIURL  string        `yaml:"cloudflare_api_url" env:"CLOUDFLARE_API_URL" validate:"required,url"`
	ProviderTimeout   time.Duration `yaml:"provider_timeout" env:"PROVIDER_TIMEOUT" validate:"gt=0"`
	// RequestTimeout bounds the whole provider exchange of one update
	// request, however many hostnames and zones it spans.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" validate:"gt=0"`
	// ClientIPHeader names the header set by the fronting proxy with the
	// caller's address. It is only read for ip=auto.
	ClientIPHeader string        `yaml:"client_ip_header" env:"CLIENT_IP_HEADER" validate:"required"`
	NotifyURL      string        `yaml:"notify_url" env:"NOTIFY_URL" validate:"omitempty,url"`
	NotifyTimeout  time.Duration `yaml:"notify_timeout" env:"NOTIFY_TIMEOUT" validate:"gt=0"`
}

func defaults() *Config {
	return &Config{
		HTTPListenAddr:    ":8080",
		MetricsListenAddr: ":9090",
		LogLevel:          "info",
		ServiceName:       "ddns",
		CloudflareAPIURL:  "https://api.cloudflare.com/client/v4",
		ProviderTimeout:   30 * time.Second,
		RequestTimeout:    2 * time.Minute,
		ClientIPHeader:    "CF-Connecting-IP",
		NotifyTimeout:     10 * time.Second,
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.HTTPListenAddr = getEnv("HTTP_LISTEN_ADDR", cfg.HTTPListenAddr)
	cfg.MetricsListenAddr = getEnvAllowEmpty("METRICS_LISTEN_ADDR", cfg.MetricsListenAddr)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.ServiceName = getEnv("SERVICE_NAME", cfg.ServiceName)
	cfg.CloudflareAPIURL = getEnv("CLOUDFLARE_API_URL", cfg.CloudflareAPIURL)
	cfg.ClientIPHeader = getEnv("CLIENT_IP_HEADER", cfg.ClientIPHeader)
	cfg.NotifyURL = getEnv("NOTIFY_URL", cfg.NotifyURL)

	var err error
	if cfg.ProviderTimeout, err = getDuration("PROVIDER_TIMEOUT", cfg.ProviderTimeout); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return nil, err
	}
	if cfg.NotifyTimeout, err = getDuration("NOTIFY_TIMEOUT", cfg.NotifyTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("env")
	})
}

// Validate reports every invalid field by its environment variable name.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var invalid []string
	for _, fe := range verrs {
		invalid = append(invalid, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(invalid, ", "))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvAllowEmpty lets an explicitly empty variable override the fallback,
// e.g. METRICS_LISTEN_ADDR= to disable the metrics listener.
func getEnvAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
