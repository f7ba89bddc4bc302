package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"

	"BoutiqueAdmin/internal/mockapi"
)

// EnvPrefix namespaces every variable (BOUTIQUE_PORT, ...). envconfig also
// accepts the bare tag name, so BACKEND_URL works as well.
const EnvPrefix = "BOUTIQUE"

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// BackendURL is the real API the gateway proxies to. Empty serves the
	// mock directly.
	BackendURL    string        `envconfig:"BACKEND_URL"`
	BasePath      string        `envconfig:"BASE_PATH" default:"/api"`
	FallbackOn5xx bool          `envconfig:"FALLBACK_ON_5XX" default:"false"`
	ProxyTimeout  time.Duration `envconfig:"PROXY_TIMEOUT" default:"5s"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	JWTSecret     string        `envconfig:"JWT_SECRET"`
	TokenTTL      time.Duration `envconfig:"TOKEN_TTL" default:"15m"`
	AdminEmail    string        `envconfig:"ADMIN_EMAIL"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD"`
	AuthRequired  bool          `envconfig:"AUTH_REQUIRED" default:"false"`

	MetricsToken string `envconfig:"METRICS_TOKEN"`

	Delays Delays
}

// Delays are the simulated latencies of the direct customer client. The
// fields are untagged so only the prefixed names (BOUTIQUE_DELAYS_GET) apply.
type Delays struct {
	List   time.Duration `default:"500ms"`
	Get    time.Duration `default:"300ms"`
	Create time.Duration `default:"600ms"`
	Update time.Duration `default:"500ms"`
	Delete time.Duration `default:"400ms"`
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	cfg.BasePath = mockapi.NormalizeBasePath(cfg.BasePath)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Addr() string { return ":" + strings.TrimPrefix(c.Port, ":") }

func (c Config) AdminConfigured() bool { return c.AdminEmail != "" && c.AdminPassword != "" }

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error

	if c.BackendURL != "" {
		u, perr := url.Parse(c.BackendURL)
		if perr != nil || u.Scheme == "" || u.Host == "" {
			err = multierr.Append(err, fmt.Errorf("BACKEND_URL %q is not an absolute URL", c.BackendURL))
		}
	}
	if c.Port == "" {
		err = multierr.Append(err, errors.New("PORT is required"))
	}
	if c.AuthRequired && c.JWTSecret == "" {
		err = multierr.Append(err, errors.New("JWT_SECRET is required when AUTH_REQUIRED is set"))
	}
	if c.AuthRequired && !c.AdminConfigured() {
		err = multierr.Append(err, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required when AUTH_REQUIRED is set"))
	}
	if c.AdminPassword != "" && len(c.AdminPassword) < 8 {
		err = multierr.Append(err, errors.New("ADMIN_PASSWORD must be at least 8 characters"))
	}
	if c.ProxyTimeout <= 0 {
		err = multierr.Append(err, errors.New("PROXY_TIMEOUT must be positive"))
	}
	for name, d := range map[string]time.Duration{
		"LIST": c.Delays.List, "GET": c.Delays.Get, "CREATE": c.Delays.Create,
		"UPDATE": c.Delays.Update, "DELETE": c.Delays.Delete,
	} {
		if d < 0 {
			err = multierr.Append(err, fmt.Errorf("DELAYS_%s must not be negative", name))
		}
	}
	return err
}
