package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	defaultEnvFile      = ".env"
	defaultAddress      = ":8080"
	defaultBasePath     = "/"
	defaultAuthEndpoint = "/api/auth"
	defaultTheme        = "light"
	defaultLanguage     = "ja"
	defaultCSRFCookie   = "stayhub_csrf"
	defaultCSRFHeader   = "X-CSRF-Token"
	defaultEnvironment  = "development"
	defaultLogLevel     = "info"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// Config captures runtime options for the web server, grouped by concern.
type Config struct {
	Server      ServerConfig
	Pages       PagesConfig
	CSRF        CSRFConfig
	Logging     LoggingConfig
	Environment string `validate:"required"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address      string        `validate:"required"`
	BasePath     string        `validate:"required,startswith=/"`
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`
	IdleTimeout  time.Duration `validate:"gt=0"`
}

// PagesConfig controls how the auth pages look and where their forms post.
type PagesConfig struct {
	AuthEndpoint    string `validate:"required"`
	Theme           string `validate:"oneof=light dark"`
	Backdrop        bool
	DefaultLanguage string   `validate:"required"`
	Languages       []string `validate:"min=1,dive,required"`
}

// CSRFConfig configures the double-submit cookie issued with every page.
type CSRFConfig struct {
	CookieName   string `validate:"required"`
	HeaderName   string `validate:"required"`
	CookieSecure bool
}

// LoggingConfig selects the zap level.
type LoggingConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map. Values in the map take precedence over the
// system environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load assembles the configuration from defaults, a .env file, the process environment
// and an optional explicit map, in increasing order of precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Address:      stringWithDefault(lookup, "WEB_HTTP_ADDR", defaultAddress),
			BasePath:     normalizeBasePath(stringWithDefault(lookup, "WEB_BASE_PATH", defaultBasePath)),
			ReadTimeout:  durationWithDefault(lookup, "WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "WEB_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Pages: PagesConfig{
			AuthEndpoint:    strings.TrimRight(stringWithDefault(lookup, "WEB_AUTH_ENDPOINT", defaultAuthEndpoint), "/"),
			Theme:           strings.ToLower(stringWithDefault(lookup, "WEB_THEME", defaultTheme)),
			Backdrop:        boolWithDefault(lookup, "WEB_BACKDROP", true),
			DefaultLanguage: strings.ToLower(stringWithDefault(lookup, "WEB_DEFAULT_LANG", defaultLanguage)),
			Languages:       csvWithDefault(lookup, "WEB_LANGUAGES", []string{"ja", "en"}),
		},
		CSRF: CSRFConfig{
			CookieName:   stringWithDefault(lookup, "WEB_CSRF_COOKIE_NAME", defaultCSRFCookie),
			HeaderName:   stringWithDefault(lookup, "WEB_CSRF_HEADER_NAME", defaultCSRFHeader),
			CookieSecure: boolWithDefault(lookup, "WEB_CSRF_COOKIE_SECURE", false),
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
		},
		Environment: strings.ToLower(stringWithDefault(lookup, "WEB_ENVIRONMENT", defaultEnvironment)),
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: validate: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.TrimPrefix(fe.Namespace(), "Config."))
	}
	return &ValidationError{fields: fields}
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func normalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}
	return p
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return parsed
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string, fallback []string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return append([]string(nil), fallback...)
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
